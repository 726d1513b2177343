package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/whwar9739/dramcellar/internal/domain"
	domainerrors "github.com/whwar9739/dramcellar/internal/errors"
	"github.com/whwar9739/dramcellar/internal/id"
)

const collectionColumns = `id, name, created_at, updated_at`

func scanCollection(scanner interface{ Scan(dest ...any) error }) (*domain.Collection, error) {
	var c domain.Collection
	var createdAt, updatedAt string

	err := scanner.Scan(&c.ID, &c.Name, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	c.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	c.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}

	return &c, nil
}

const memberColumns = `id, collection_id, user_id, role, created_at`

func scanMember(scanner interface{ Scan(dest ...any) error }) (*domain.CollectionMember, error) {
	var m domain.CollectionMember
	var createdAt string

	err := scanner.Scan(&m.ID, &m.CollectionID, &m.UserID, &m.Role, &createdAt)
	if err != nil {
		return nil, err
	}

	m.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}

	return &m, nil
}

// CreateCollectionWithOwner inserts a collection and an owner membership for
// ownerUserID in one transaction.
func (s *Store) CreateCollectionWithOwner(ctx context.Context, coll *domain.Collection, ownerUserID string) error {
	now := time.Now().UTC()
	coll.CreatedAt = now
	coll.UpdatedAt = now

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO collections (id, name, created_at, updated_at)
		VALUES (?, ?, ?, ?)`,
		coll.ID,
		coll.Name,
		formatTime(coll.CreatedAt),
		formatTime(coll.UpdatedAt),
	)
	if err != nil {
		return mapConstraintErr(err)
	}

	memberID, err := id.Generate("mem")
	if err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx, `
		INSERT INTO collection_members (id, collection_id, user_id, role, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		memberID,
		coll.ID,
		ownerUserID,
		domain.RoleOwner,
		formatTime(now),
	)
	if err != nil {
		return mapConstraintErr(err)
	}

	return tx.Commit()
}

// GetCollection retrieves a collection by ID. Returns ErrNotFound if missing.
func (s *Store) GetCollection(ctx context.Context, collID string) (*domain.Collection, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+collectionColumns+` FROM collections WHERE id = ?`, collID)

	c, err := scanCollection(row)
	if err == sql.ErrNoRows {
		return nil, domainerrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

// DeleteCollection removes the collection with its memberships, invitations,
// and bottles in one transaction. Each bottle's tasting notes and blend
// ledger rows go with it, leaf tables first.
func (s *Store) DeleteCollection(ctx context.Context, collID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		DELETE FROM blend_components
		WHERE source_bottle_id IN (SELECT id FROM bottles WHERE collection_id = ?)
		   OR infinity_bottle_id IN (SELECT id FROM bottles WHERE collection_id = ?)`,
		collID, collID)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `
		DELETE FROM tasting_notes
		WHERE bottle_id IN (SELECT id FROM bottles WHERE collection_id = ?)`, collID)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx,
		`DELETE FROM bottles WHERE collection_id = ?`, collID)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx,
		`DELETE FROM collection_invitations WHERE collection_id = ?`, collID)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx,
		`DELETE FROM collection_members WHERE collection_id = ?`, collID)
	if err != nil {
		return err
	}

	result, err := tx.ExecContext(ctx,
		`DELETE FROM collections WHERE id = ?`, collID)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domainerrors.ErrNotFound
	}

	return tx.Commit()
}

// ListUserCollections returns the collections the user is a member of,
// ordered by membership age (oldest first).
func (s *Store) ListUserCollections(ctx context.Context, userID string) ([]*domain.Collection, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT c.id, c.name, c.created_at, c.updated_at
		FROM collections c
		JOIN collection_members m ON m.collection_id = c.id
		WHERE m.user_id = ?
		ORDER BY m.rowid`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var collections []*domain.Collection
	for rows.Next() {
		c, err := scanCollection(rows)
		if err != nil {
			return nil, err
		}
		collections = append(collections, c)
	}
	return collections, rows.Err()
}

// ListCollectionMembers returns every membership of the collection.
func (s *Store) ListCollectionMembers(ctx context.Context, collID string) ([]*domain.CollectionMember, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+memberColumns+` FROM collection_members WHERE collection_id = ? ORDER BY rowid`,
		collID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []*domain.CollectionMember
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

// GetMembership returns the user's membership in the collection, or
// ErrNotFound when the user is not a member.
func (s *Store) GetMembership(ctx context.Context, collID, userID string) (*domain.CollectionMember, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+memberColumns+` FROM collection_members WHERE collection_id = ? AND user_id = ?`,
		collID, userID)

	m, err := scanMember(row)
	if err == sql.ErrNoRows {
		return nil, domainerrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return m, nil
}

// CreateMembership inserts a membership. Returns ErrAlreadyExists when the
// user is already a member of the collection.
func (s *Store) CreateMembership(ctx context.Context, member *domain.CollectionMember) error {
	member.CreatedAt = time.Now().UTC()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO collection_members (id, collection_id, user_id, role, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		member.ID,
		member.CollectionID,
		member.UserID,
		member.Role,
		formatTime(member.CreatedAt),
	)
	return mapConstraintErr(err)
}

// ProvisionDefaultCollection creates coll with an owner membership for
// ownerUserID, but only if the user has no memberships at all. The count and
// the inserts share one write transaction, so two concurrent calls cannot
// both provision. Returns whether the collection was created.
func (s *Store) ProvisionDefaultCollection(ctx context.Context, coll *domain.Collection, ownerUserID string) (bool, error) {
	now := time.Now().UTC()
	coll.CreatedAt = now
	coll.UpdatedAt = now

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	var count int
	err = tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM collection_members WHERE user_id = ?`, ownerUserID).Scan(&count)
	if err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO collections (id, name, created_at, updated_at)
		VALUES (?, ?, ?, ?)`,
		coll.ID,
		coll.Name,
		formatTime(coll.CreatedAt),
		formatTime(coll.UpdatedAt),
	)
	if err != nil {
		return false, mapConstraintErr(err)
	}

	memberID, err := id.Generate("mem")
	if err != nil {
		return false, err
	}
	_, err = tx.ExecContext(ctx, `
		INSERT INTO collection_members (id, collection_id, user_id, role, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		memberID,
		coll.ID,
		ownerUserID,
		domain.RoleOwner,
		formatTime(now),
	)
	if err != nil {
		return false, mapConstraintErr(err)
	}

	if err := tx.Commit(); err != nil {
		return false, err
	}
	return true, nil
}

// GetFirstMembership returns the user's oldest membership by insertion order.
// Returns ErrNotFound when the user has none.
func (s *Store) GetFirstMembership(ctx context.Context, userID string) (*domain.CollectionMember, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+memberColumns+` FROM collection_members WHERE user_id = ? ORDER BY rowid LIMIT 1`,
		userID)

	m, err := scanMember(row)
	if err == sql.ErrNoRows {
		return nil, domainerrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return m, nil
}
