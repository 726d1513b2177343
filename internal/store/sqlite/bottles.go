package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/whwar9739/dramcellar/internal/domain"
	domainerrors "github.com/whwar9739/dramcellar/internal/errors"
)

// bottleColumns is the ordered list of columns selected in bottle queries.
// Must match the scan order in scanBottle.
const bottleColumns = `id, whiskey_id, owner_user_id, collection_id, status, capacity_ml, current_volume_ml, is_infinity_bottle, purchase_date, purchase_price, purchase_location, bottling_date, created_at, updated_at`

func scanBottle(scanner interface{ Scan(dest ...any) error }) (*domain.Bottle, error) {
	var b domain.Bottle

	var (
		ownerID       sql.NullString
		collectionID  sql.NullString
		isInfinity    int
		purchaseDate  sql.NullString
		purchasePrice sql.NullFloat64
		bottlingDate  sql.NullString
		createdAt     string
		updatedAt     string
	)

	err := scanner.Scan(
		&b.ID,
		&b.WhiskeyID,
		&ownerID,
		&collectionID,
		&b.Status,
		&b.CapacityMl,
		&b.CurrentVolumeMl,
		&isInfinity,
		&purchaseDate,
		&purchasePrice,
		&b.PurchaseLocation,
		&bottlingDate,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if ownerID.Valid {
		b.OwnerID = &ownerID.String
	}
	if collectionID.Valid {
		b.CollectionID = &collectionID.String
	}
	b.IsInfinityBottle = isInfinity != 0
	if purchasePrice.Valid {
		b.PurchasePrice = &purchasePrice.Float64
	}

	b.PurchaseDate, err = parseNullableTime(purchaseDate)
	if err != nil {
		return nil, err
	}
	b.BottlingDate, err = parseNullableTime(bottlingDate)
	if err != nil {
		return nil, err
	}
	b.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	b.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}

	return &b, nil
}

// CreateBottle inserts a bottle.
func (s *Store) CreateBottle(ctx context.Context, b *domain.Bottle) error {
	now := time.Now().UTC()
	b.CreatedAt = now
	b.UpdatedAt = now

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO bottles (
			id, whiskey_id, owner_user_id, collection_id, status, capacity_ml,
			current_volume_ml, is_infinity_bottle, purchase_date, purchase_price,
			purchase_location, bottling_date, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		b.ID,
		b.WhiskeyID,
		nullableString(b.OwnerID),
		nullableString(b.CollectionID),
		b.Status,
		b.CapacityMl,
		b.CurrentVolumeMl,
		boolToInt(b.IsInfinityBottle),
		nullTimeString(b.PurchaseDate),
		nullableFloat(b.PurchasePrice),
		b.PurchaseLocation,
		nullTimeString(b.BottlingDate),
		formatTime(b.CreatedAt),
		formatTime(b.UpdatedAt),
	)
	return mapConstraintErr(err)
}

// GetBottle retrieves a bottle by ID. Returns ErrNotFound if missing.
func (s *Store) GetBottle(ctx context.Context, bottleID string) (*domain.Bottle, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+bottleColumns+` FROM bottles WHERE id = ?`, bottleID)

	b, err := scanBottle(row)
	if err == sql.ErrNoRows {
		return nil, domainerrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

// UpdateBottle persists all mutable bottle fields. Returns ErrNotFound if
// the bottle no longer exists.
func (s *Store) UpdateBottle(ctx context.Context, b *domain.Bottle) error {
	b.UpdatedAt = time.Now().UTC()

	result, err := s.db.ExecContext(ctx, `
		UPDATE bottles SET
			whiskey_id = ?, owner_user_id = ?, collection_id = ?, status = ?,
			capacity_ml = ?, current_volume_ml = ?, is_infinity_bottle = ?,
			purchase_date = ?, purchase_price = ?, purchase_location = ?,
			bottling_date = ?, updated_at = ?
		WHERE id = ?`,
		b.WhiskeyID,
		nullableString(b.OwnerID),
		nullableString(b.CollectionID),
		b.Status,
		b.CapacityMl,
		b.CurrentVolumeMl,
		boolToInt(b.IsInfinityBottle),
		nullTimeString(b.PurchaseDate),
		nullableFloat(b.PurchasePrice),
		b.PurchaseLocation,
		nullTimeString(b.BottlingDate),
		formatTime(b.UpdatedAt),
		b.ID,
	)
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

// DeleteBottle removes the bottle, its tasting notes, and every blend
// component referencing it from either side, in one transaction.
func (s *Store) DeleteBottle(ctx context.Context, bottleID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		DELETE FROM blend_components
		WHERE source_bottle_id = ? OR infinity_bottle_id = ?`,
		bottleID, bottleID)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx,
		`DELETE FROM tasting_notes WHERE bottle_id = ?`, bottleID)
	if err != nil {
		return err
	}

	result, err := tx.ExecContext(ctx,
		`DELETE FROM bottles WHERE id = ?`, bottleID)
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

// queryBottles runs a bottle query and collects the results.
func (s *Store) queryBottles(ctx context.Context, query string, args ...any) ([]*domain.Bottle, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bottles []*domain.Bottle
	for rows.Next() {
		b, err := scanBottle(rows)
		if err != nil {
			return nil, err
		}
		bottles = append(bottles, b)
	}
	return bottles, rows.Err()
}

// ListBottlesForUser returns every bottle in the user's collections,
// newest first.
func (s *Store) ListBottlesForUser(ctx context.Context, userID string) ([]*domain.Bottle, error) {
	return s.queryBottles(ctx, `
		SELECT `+bottleColumns+` FROM bottles
		WHERE collection_id IN (
			SELECT collection_id FROM collection_members WHERE user_id = ?
		)
		ORDER BY created_at DESC`, userID)
}

// ListBottlesInCollection returns the bottles of one collection, newest first.
func (s *Store) ListBottlesInCollection(ctx context.Context, collID string) ([]*domain.Bottle, error) {
	return s.queryBottles(ctx, `
		SELECT `+bottleColumns+` FROM bottles
		WHERE collection_id = ?
		ORDER BY created_at DESC`, collID)
}

// ListPourableBottlesForUser returns non-empty bottles across the user's
// collections, for the tasting flow.
func (s *Store) ListPourableBottlesForUser(ctx context.Context, userID string) ([]*domain.Bottle, error) {
	return s.queryBottles(ctx, `
		SELECT `+bottleColumns+` FROM bottles
		WHERE collection_id IN (
			SELECT collection_id FROM collection_members WHERE user_id = ?
		)
		AND status != ? AND current_volume_ml > 0
		ORDER BY created_at DESC`, userID, domain.BottleEmpty)
}

// ListOpenInfinityBottlesForUser returns the user's infinity bottles that can
// still receive blends.
func (s *Store) ListOpenInfinityBottlesForUser(ctx context.Context, userID string) ([]*domain.Bottle, error) {
	return s.queryBottles(ctx, `
		SELECT `+bottleColumns+` FROM bottles
		WHERE collection_id IN (
			SELECT collection_id FROM collection_members WHERE user_id = ?
		)
		AND is_infinity_bottle = 1
		ORDER BY created_at DESC`, userID)
}

// AdoptOrphanBottles assigns every bottle owned by userID that has no
// collection to the given collection. Returns the number adopted.
func (s *Store) AdoptOrphanBottles(ctx context.Context, userID, collID string) (int, error) {
	result, err := s.db.ExecContext(ctx, `
		UPDATE bottles SET collection_id = ?, updated_at = ?
		WHERE owner_user_id = ? AND collection_id IS NULL`,
		collID, formatTime(time.Now().UTC()), userID)
	if err != nil {
		return 0, err
	}
	rows, err := result.RowsAffected()
	return int(rows), err
}
