package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/whwar9739/dramcellar/internal/domain"
	domainerrors "github.com/whwar9739/dramcellar/internal/errors"
)

const invitationColumns = `id, token, collection_id, inviter_id, invitee_email, role, status, created_at`

func scanInvitation(scanner interface{ Scan(dest ...any) error }) (*domain.CollectionInvitation, error) {
	var inv domain.CollectionInvitation
	var createdAt string

	err := scanner.Scan(
		&inv.ID,
		&inv.Token,
		&inv.CollectionID,
		&inv.InviterID,
		&inv.InviteeEmail,
		&inv.Role,
		&inv.Status,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	inv.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}

	return &inv, nil
}

// CreateInvitation inserts an invitation.
func (s *Store) CreateInvitation(ctx context.Context, inv *domain.CollectionInvitation) error {
	inv.CreatedAt = time.Now().UTC()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO collection_invitations (
			id, token, collection_id, inviter_id, invitee_email, role, status, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		inv.ID,
		inv.Token,
		inv.CollectionID,
		inv.InviterID,
		inv.InviteeEmail,
		inv.Role,
		inv.Status,
		formatTime(inv.CreatedAt),
	)
	return mapConstraintErr(err)
}

// GetInvitation retrieves an invitation by ID. Returns ErrNotFound if missing.
func (s *Store) GetInvitation(ctx context.Context, invID string) (*domain.CollectionInvitation, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+invitationColumns+` FROM collection_invitations WHERE id = ?`, invID)

	inv, err := scanInvitation(row)
	if err == sql.ErrNoRows {
		return nil, domainerrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return inv, nil
}

// HasPendingInvitation reports whether a pending invitation already exists
// for the (collection, email) pair. Email comparison is case-insensitive.
func (s *Store) HasPendingInvitation(ctx context.Context, collID, email string) (bool, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM collection_invitations
		WHERE collection_id = ? AND invitee_email = ? AND status = ?`,
		collID, email, domain.InvitationPending).Scan(&count)
	return count > 0, err
}

// ListPendingInvitationsByEmail returns pending invitations addressed to the
// email, newest first.
func (s *Store) ListPendingInvitationsByEmail(ctx context.Context, email string) ([]*domain.CollectionInvitation, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+invitationColumns+` FROM collection_invitations
		WHERE invitee_email = ? AND status = ?
		ORDER BY created_at DESC`,
		email, domain.InvitationPending)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectInvitations(rows)
}

// ListPendingInvitationsForCollection returns the collection's pending
// invitations, newest first.
func (s *Store) ListPendingInvitationsForCollection(ctx context.Context, collID string) ([]*domain.CollectionInvitation, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+invitationColumns+` FROM collection_invitations
		WHERE collection_id = ? AND status = ?
		ORDER BY created_at DESC`,
		collID, domain.InvitationPending)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectInvitations(rows)
}

func collectInvitations(rows *sql.Rows) ([]*domain.CollectionInvitation, error) {
	var invitations []*domain.CollectionInvitation
	for rows.Next() {
		inv, err := scanInvitation(rows)
		if err != nil {
			return nil, err
		}
		invitations = append(invitations, inv)
	}
	return invitations, rows.Err()
}

// AcceptInvitation marks the invitation accepted and inserts the membership
// in one transaction. The status update only applies to a pending row; a
// raced-away invitation surfaces as ErrNotFound.
func (s *Store) AcceptInvitation(ctx context.Context, inv *domain.CollectionInvitation, member *domain.CollectionMember) error {
	member.CreatedAt = time.Now().UTC()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `
		UPDATE collection_invitations SET status = ?
		WHERE id = ? AND status = ?`,
		domain.InvitationAccepted, inv.ID, domain.InvitationPending)
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

	_, err = tx.ExecContext(ctx, `
		INSERT INTO collection_members (id, collection_id, user_id, role, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		member.ID,
		member.CollectionID,
		member.UserID,
		member.Role,
		formatTime(member.CreatedAt),
	)
	if err != nil {
		return mapConstraintErr(err)
	}

	inv.Status = domain.InvitationAccepted
	return tx.Commit()
}

// UpdateInvitationStatus transitions a pending invitation to the given
// status. Returns ErrNotFound when no pending invitation matches.
func (s *Store) UpdateInvitationStatus(ctx context.Context, invID string, status domain.InvitationStatus) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE collection_invitations SET status = ?
		WHERE id = ? AND status = ?`,
		status, invID, domain.InvitationPending)
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
	return nil
}
