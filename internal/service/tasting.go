package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/whwar9739/dramcellar/internal/domain"
	domainerrors "github.com/whwar9739/dramcellar/internal/errors"
	"github.com/whwar9739/dramcellar/internal/id"
	"github.com/whwar9739/dramcellar/internal/metrics"
	"github.com/whwar9739/dramcellar/internal/store"
)

// TastingService manages tasting sessions and pour logging.
type TastingService struct {
	store   store.Store
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// NewTastingService creates a new tasting service.
func NewTastingService(store store.Store, logger *slog.Logger, metrics *metrics.Metrics) *TastingService {
	return &TastingService{store: store, logger: logger, metrics: metrics}
}

// SessionInput carries the fields for creating a tasting session.
type SessionInput struct {
	Title string     `json:"title" validate:"required"`
	Date  *time.Time `json:"date"`
}

// PourInput carries the fields for logging one pour. Exactly one of
// BottleID and WhiskeyID drives the pour: a bottle pour deducts volume,
// a whiskey-only pour just records the note.
type PourInput struct {
	BottleID     string  `json:"bottle_id"`
	WhiskeyID    string  `json:"whiskey_id"`
	Rating       int     `json:"rating" validate:"required,gte=1,lte=5"`
	Notes        string  `json:"notes" validate:"required"`
	PourAmountMl float64 `json:"pour_amount_ml" validate:"omitempty,gt=0"`
}

// SessionDetail bundles a session with its ordered notes.
type SessionDetail struct {
	Session *domain.TastingSession `json:"session"`
	Notes   []*domain.TastingNote  `json:"notes"`
}

// CreateSession starts a tasting session for the caller.
func (s *TastingService) CreateSession(ctx context.Context, userID string, in *SessionInput) (*domain.TastingSession, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, domainerrors.Validation("session title is required")
	}
	date := time.Now().UTC()
	if in.Date != nil {
		date = in.Date.UTC()
	}

	sess := &domain.TastingSession{
		ID:     id.MustGenerate("session"),
		UserID: userID,
		Title:  title,
		Date:   date,
	}
	if err := s.store.CreateTastingSession(ctx, sess); err != nil {
		return nil, fmt.Errorf("create tasting session: %w", err)
	}

	s.logger.Info("tasting session created", "session_id", sess.ID, "user_id", userID)
	return sess, nil
}

// ownedSession fetches the caller's session. Other users' sessions read as
// not found.
func (s *TastingService) ownedSession(ctx context.Context, userID, sessionID string) (*domain.TastingSession, error) {
	sess, err := s.store.GetTastingSession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("get tasting session: %w", err)
	}
	if sess.UserID != userID {
		return nil, domainerrors.ErrNotFound
	}
	return sess, nil
}

// GetSession returns the caller's session with its notes.
func (s *TastingService) GetSession(ctx context.Context, userID, sessionID string) (*SessionDetail, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sess, err := s.ownedSession(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}

	notes, err := s.store.ListSessionNotes(ctx, sess.ID)
	if err != nil {
		return nil, fmt.Errorf("list session notes: %w", err)
	}
	return &SessionDetail{Session: sess, Notes: notes}, nil
}

// ListSessions returns the caller's sessions, newest first.
func (s *TastingService) ListSessions(ctx context.Context, userID string) ([]*domain.TastingSession, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sessions, err := s.store.ListTastingSessions(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list tasting sessions: %w", err)
	}
	return sessions, nil
}

// LogPour appends a note to the caller's session. A bottle pour requires
// the bottle to be reachable through the caller's collections and deducts
// the pour amount in the same transaction that records the note.
func (s *TastingService) LogPour(ctx context.Context, userID, sessionID string, in *PourInput) (*domain.TastingNote, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sess, err := s.ownedSession(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}

	if in.BottleID == "" && in.WhiskeyID == "" {
		return nil, domainerrors.ValidationWithDetails("select a bottle or a whiskey", map[string]string{
			"bottle_id":  "select a bottle or a whiskey",
			"whiskey_id": "select a bottle or a whiskey",
		})
	}
	if strings.TrimSpace(in.Notes) == "" {
		return nil, domainerrors.ValidationWithDetails("notes are required", map[string]string{
			"notes": "is required",
		})
	}
	if in.Rating < 1 || in.Rating > 5 {
		return nil, domainerrors.ValidationWithDetails("rating must be between 1 and 5", map[string]string{
			"rating": "must be between 1 and 5",
		})
	}

	note := &domain.TastingNote{
		ID:           id.MustGenerate("note"),
		SessionID:    sess.ID,
		Rating:       in.Rating,
		Notes:        in.Notes,
		PourAmountMl: in.PourAmountMl,
	}

	var bottle *domain.Bottle
	if in.BottleID != "" {
		bottle, err = accessibleBottle(ctx, s.store, userID, in.BottleID)
		if domainerrors.Is(err, domainerrors.ErrNotFound) {
			// A bottle outside the caller's collections is indistinguishable
			// from a bad selection.
			return nil, domainerrors.ValidationWithDetails("bottle is not in your collections", map[string]string{
				"bottle_id": "bottle is not in your collections",
			})
		}
		if err != nil {
			return nil, err
		}
		note.BottleID = &bottle.ID
		note.WhiskeyID = bottle.WhiskeyID
		bottle.Deduct(in.PourAmountMl)
	} else {
		if _, err := s.store.GetWhiskey(ctx, in.WhiskeyID); err != nil {
			return nil, fmt.Errorf("get whiskey: %w", err)
		}
		note.WhiskeyID = in.WhiskeyID
	}

	if err := s.store.CreateTastingNote(ctx, note, bottle); err != nil {
		return nil, fmt.Errorf("create tasting note: %w", err)
	}

	if bottle != nil {
		s.metrics.PoursLogged.Inc()
	}
	s.logger.Info("pour logged",
		"session_id", sess.ID,
		"note_id", note.ID,
		"whiskey_id", note.WhiskeyID,
		"order_index", note.OrderIndex,
	)
	return note, nil
}
