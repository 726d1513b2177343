package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/whwar9739/dramcellar/internal/domain"
	domainerrors "github.com/whwar9739/dramcellar/internal/errors"
	"github.com/whwar9739/dramcellar/internal/store"
)

// whiskeyColumns is the ordered list of columns selected in whiskey queries.
// Must match the scan order in scanWhiskey.
const whiskeyColumns = `id, name, distillery, region, type, cask_type, general_notes, age, abv, created_at, updated_at`

func scanWhiskey(scanner interface{ Scan(dest ...any) error }) (*domain.Whiskey, error) {
	var w domain.Whiskey

	var (
		age       sql.NullInt64
		abv       sql.NullFloat64
		createdAt string
		updatedAt string
	)

	err := scanner.Scan(
		&w.ID,
		&w.Name,
		&w.Distillery,
		&w.Region,
		&w.Type,
		&w.CaskType,
		&w.GeneralNotes,
		&age,
		&abv,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if age.Valid {
		v := int(age.Int64)
		w.Age = &v
	}
	if abv.Valid {
		v := abv.Float64
		w.ABV = &v
	}

	w.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	w.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}

	return &w, nil
}

// CreateWhiskey inserts a catalog entry.
func (s *Store) CreateWhiskey(ctx context.Context, w *domain.Whiskey) error {
	now := time.Now().UTC()
	w.CreatedAt = now
	w.UpdatedAt = now

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO whiskies (
			id, name, distillery, region, type, cask_type, general_notes, age, abv, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		w.ID,
		w.Name,
		w.Distillery,
		w.Region,
		w.Type,
		w.CaskType,
		w.GeneralNotes,
		nullableInt(w.Age),
		nullableFloat(w.ABV),
		formatTime(w.CreatedAt),
		formatTime(w.UpdatedAt),
	)
	return mapConstraintErr(err)
}

// GetWhiskey retrieves a whiskey by ID. Returns ErrNotFound if missing.
func (s *Store) GetWhiskey(ctx context.Context, id string) (*domain.Whiskey, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+whiskeyColumns+` FROM whiskies WHERE id = ?`, id)

	w, err := scanWhiskey(row)
	if err == sql.ErrNoRows {
		return nil, domainerrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return w, nil
}

// UpdateWhiskey updates a catalog entry. Returns ErrNotFound if missing.
func (s *Store) UpdateWhiskey(ctx context.Context, w *domain.Whiskey) error {
	w.UpdatedAt = time.Now().UTC()

	result, err := s.db.ExecContext(ctx, `
		UPDATE whiskies SET
			name = ?, distillery = ?, region = ?, type = ?, cask_type = ?,
			general_notes = ?, age = ?, abv = ?, updated_at = ?
		WHERE id = ?`,
		w.Name,
		w.Distillery,
		w.Region,
		w.Type,
		w.CaskType,
		w.GeneralNotes,
		nullableInt(w.Age),
		nullableFloat(w.ABV),
		formatTime(w.UpdatedAt),
		w.ID,
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

// DeleteWhiskey removes a whiskey and everything hanging off it: its bottles,
// tasting notes referencing the whiskey or those bottles, and blend components
// touching those bottles from either side. One transaction.
func (s *Store) DeleteWhiskey(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var exists int
	err = tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM whiskies WHERE id = ?`, id).Scan(&exists)
	if err != nil {
		return err
	}
	if exists == 0 {
		return domainerrors.ErrNotFound
	}

	_, err = tx.ExecContext(ctx, `
		DELETE FROM blend_components
		WHERE source_bottle_id IN (SELECT id FROM bottles WHERE whiskey_id = ?)
		   OR infinity_bottle_id IN (SELECT id FROM bottles WHERE whiskey_id = ?)`,
		id, id)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `
		DELETE FROM tasting_notes
		WHERE whiskey_id = ?
		   OR bottle_id IN (SELECT id FROM bottles WHERE whiskey_id = ?)`,
		id, id)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `DELETE FROM bottles WHERE whiskey_id = ?`, id)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `DELETE FROM whiskies WHERE id = ?`, id)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// ListWhiskies returns catalog entries matching the filter, ordered by name.
func (s *Store) ListWhiskies(ctx context.Context, filter store.WhiskeyFilter) ([]*domain.Whiskey, error) {
	query := `SELECT ` + whiskeyColumns + ` FROM whiskies WHERE 1=1`
	var args []any

	if filter.Search != "" {
		query += ` AND (name LIKE ? COLLATE NOCASE OR distillery LIKE ? COLLATE NOCASE)`
		pattern := "%" + filter.Search + "%"
		args = append(args, pattern, pattern)
	}
	if filter.Region != "" {
		query += ` AND region = ?`
		args = append(args, filter.Region)
	}
	query += ` ORDER BY name`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var whiskies []*domain.Whiskey
	for rows.Next() {
		w, err := scanWhiskey(rows)
		if err != nil {
			return nil, err
		}
		whiskies = append(whiskies, w)
	}
	return whiskies, rows.Err()
}

// ListWhiskeyRegions returns the distinct non-empty regions in the catalog.
func (s *Store) ListWhiskeyRegions(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT DISTINCT region FROM whiskies WHERE region != '' ORDER BY region`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var regions []string
	for rows.Next() {
		var region string
		if err := rows.Scan(&region); err != nil {
			return nil, err
		}
		regions = append(regions, region)
	}
	return regions, rows.Err()
}
