package sqlite

import (
	"context"

	"github.com/whwar9739/dramcellar/internal/domain"
	domainerrors "github.com/whwar9739/dramcellar/internal/errors"
)

const blendColumns = `id, source_bottle_id, infinity_bottle_id, amount_added_ml, date_added`

func scanBlendComponent(scanner interface{ Scan(dest ...any) error }) (*domain.BlendComponent, error) {
	var c domain.BlendComponent
	var dateAdded string

	err := scanner.Scan(
		&c.ID,
		&c.SourceBottleID,
		&c.InfinityBottleID,
		&c.AmountAddedMl,
		&dateAdded,
	)
	if err != nil {
		return nil, err
	}

	c.DateAdded, err = parseTime(dateAdded)
	if err != nil {
		return nil, err
	}

	return &c, nil
}

// TransferBlend persists both updated bottles and appends the blend component
// in one transaction. The volume math has already happened on the domain
// objects; this method only makes the resulting state durable atomically.
// Either bottle disappearing between the caller's read and this write
// returns ErrNotFound with the whole transfer rolled back.
func (s *Store) TransferBlend(ctx context.Context, source, target *domain.Bottle, comp *domain.BlendComponent) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := formatTime(comp.DateAdded)

	for _, b := range []*domain.Bottle{source, target} {
		result, err := tx.ExecContext(ctx, `
			UPDATE bottles SET status = ?, current_volume_ml = ?, updated_at = ?
			WHERE id = ?`,
			b.Status, b.CurrentVolumeMl, now, b.ID)
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
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO blend_components (id, source_bottle_id, infinity_bottle_id, amount_added_ml, date_added)
		VALUES (?, ?, ?, ?, ?)`,
		comp.ID,
		comp.SourceBottleID,
		comp.InfinityBottleID,
		comp.AmountAddedMl,
		formatTime(comp.DateAdded),
	)
	if err != nil {
		return mapConstraintErr(err)
	}

	return tx.Commit()
}

// ListBlendComponents returns the infinity bottle's ledger, newest first.
func (s *Store) ListBlendComponents(ctx context.Context, infinityBottleID string) ([]*domain.BlendComponent, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+blendColumns+` FROM blend_components
		WHERE infinity_bottle_id = ?
		ORDER BY date_added DESC, rowid DESC`, infinityBottleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var components []*domain.BlendComponent
	for rows.Next() {
		c, err := scanBlendComponent(rows)
		if err != nil {
			return nil, err
		}
		components = append(components, c)
	}
	return components, rows.Err()
}
