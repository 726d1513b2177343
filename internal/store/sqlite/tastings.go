package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/whwar9739/dramcellar/internal/domain"
	domainerrors "github.com/whwar9739/dramcellar/internal/errors"
)

const sessionColumns = `id, user_id, title, date, created_at`

func scanSession(scanner interface{ Scan(dest ...any) error }) (*domain.TastingSession, error) {
	var sess domain.TastingSession
	var date, createdAt string

	err := scanner.Scan(&sess.ID, &sess.UserID, &sess.Title, &date, &createdAt)
	if err != nil {
		return nil, err
	}

	sess.Date, err = parseTime(date)
	if err != nil {
		return nil, err
	}
	sess.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}

	return &sess, nil
}

const noteColumns = `id, session_id, whiskey_id, bottle_id, order_index, rating, notes, pour_amount_ml, created_at`

func scanNote(scanner interface{ Scan(dest ...any) error }) (*domain.TastingNote, error) {
	var n domain.TastingNote
	var bottleID sql.NullString
	var createdAt string

	err := scanner.Scan(
		&n.ID,
		&n.SessionID,
		&n.WhiskeyID,
		&bottleID,
		&n.OrderIndex,
		&n.Rating,
		&n.Notes,
		&n.PourAmountMl,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	if bottleID.Valid {
		n.BottleID = &bottleID.String
	}
	n.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}

	return &n, nil
}

// CreateTastingSession inserts a session.
func (s *Store) CreateTastingSession(ctx context.Context, sess *domain.TastingSession) error {
	sess.CreatedAt = time.Now().UTC()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO tasting_sessions (id, user_id, title, date, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		sess.ID,
		sess.UserID,
		sess.Title,
		formatTime(sess.Date),
		formatTime(sess.CreatedAt),
	)
	return mapConstraintErr(err)
}

// GetTastingSession retrieves a session by ID. Returns ErrNotFound if missing.
func (s *Store) GetTastingSession(ctx context.Context, sessionID string) (*domain.TastingSession, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+sessionColumns+` FROM tasting_sessions WHERE id = ?`, sessionID)

	sess, err := scanSession(row)
	if err == sql.ErrNoRows {
		return nil, domainerrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return sess, nil
}

// ListTastingSessions returns the user's sessions, newest first.
func (s *Store) ListTastingSessions(ctx context.Context, userID string) ([]*domain.TastingSession, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+sessionColumns+` FROM tasting_sessions
		WHERE user_id = ?
		ORDER BY date DESC, rowid DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []*domain.TastingSession
	for rows.Next() {
		sess, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, sess)
	}
	return sessions, rows.Err()
}

// CreateTastingNote inserts the note and, when bottle is non-nil, persists
// the bottle's deducted volume in the same transaction. The note's order
// index is assigned here, inside the transaction, as one more than the
// session's current note count. A bottle deleted since the caller read it
// returns ErrNotFound and nothing is written.
func (s *Store) CreateTastingNote(ctx context.Context, note *domain.TastingNote, bottle *domain.Bottle) error {
	note.CreatedAt = time.Now().UTC()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var count int
	err = tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM tasting_notes WHERE session_id = ?`, note.SessionID).Scan(&count)
	if err != nil {
		return err
	}
	note.OrderIndex = count + 1

	_, err = tx.ExecContext(ctx, `
		INSERT INTO tasting_notes (
			id, session_id, whiskey_id, bottle_id, order_index, rating, notes, pour_amount_ml, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		note.ID,
		note.SessionID,
		note.WhiskeyID,
		nullableString(note.BottleID),
		note.OrderIndex,
		note.Rating,
		note.Notes,
		note.PourAmountMl,
		formatTime(note.CreatedAt),
	)
	if err != nil {
		return mapConstraintErr(err)
	}

	if bottle != nil {
		result, err := tx.ExecContext(ctx, `
			UPDATE bottles SET status = ?, current_volume_ml = ?, updated_at = ?
			WHERE id = ?`,
			bottle.Status, bottle.CurrentVolumeMl, formatTime(note.CreatedAt), bottle.ID)
		if err != nil {
			return err
		}
		rows, err := result.RowsAffected()
		if err != nil {
			return err
		}
		if rows == 0 {
			// Bottle deleted since the caller read it.
			return domainerrors.ErrNotFound
		}
	}

	return tx.Commit()
}

// ListSessionNotes returns a session's notes in pour order.
func (s *Store) ListSessionNotes(ctx context.Context, sessionID string) ([]*domain.TastingNote, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+noteColumns+` FROM tasting_notes
		WHERE session_id = ?
		ORDER BY order_index`, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notes []*domain.TastingNote
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}
