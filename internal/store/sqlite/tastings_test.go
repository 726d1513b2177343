package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/whwar9739/dramcellar/internal/domain"
	domainerrors "github.com/whwar9739/dramcellar/internal/errors"
	"github.com/whwar9739/dramcellar/internal/id"
)

func seedSession(t *testing.T, s *Store, userID, title string) *domain.TastingSession {
	t.Helper()
	sess := &domain.TastingSession{
		ID:     id.MustGenerate("session"),
		UserID: userID,
		Title:  title,
		Date:   time.Now().UTC(),
	}
	if err := s.CreateTastingSession(context.Background(), sess); err != nil {
		t.Fatalf("seed session: %v", err)
	}
	return sess
}

func TestCreateTastingNoteAssignsOrder(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	userID := seedUser(t, s, "user@example.com")
	whiskeyID := seedWhiskey(t, s, "Glenfoo 12")
	sess := seedSession(t, s, userID, "Friday flight")

	for i := 1; i <= 3; i++ {
		note := &domain.TastingNote{
			ID:        id.MustGenerate("note"),
			SessionID: sess.ID,
			WhiskeyID: whiskeyID,
			Rating:    4,
			Notes:     "smooth",
		}
		if err := s.CreateTastingNote(ctx, note, nil); err != nil {
			t.Fatalf("create note %d: %v", i, err)
		}
		if note.OrderIndex != i {
			t.Errorf("expected order %d, got %d", i, note.OrderIndex)
		}
	}

	notes, err := s.ListSessionNotes(ctx, sess.ID)
	if err != nil {
		t.Fatalf("list notes: %v", err)
	}
	if len(notes) != 3 {
		t.Fatalf("expected 3 notes, got %d", len(notes))
	}
	for i, n := range notes {
		if n.OrderIndex != i+1 {
			t.Errorf("note %d has order %d", i, n.OrderIndex)
		}
	}
}

func TestCreateTastingNoteDeductsBottle(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	userID := seedUser(t, s, "user@example.com")
	collID := seedCollection(t, s, userID, "Bar")
	whiskeyID := seedWhiskey(t, s, "Glenfoo 12")
	bottle := seedBottle(t, s, whiskeyID, &userID, &collID)
	sess := seedSession(t, s, userID, "Evening dram")

	bottle.Deduct(30)
	note := &domain.TastingNote{
		ID:           id.MustGenerate("note"),
		SessionID:    sess.ID,
		WhiskeyID:    whiskeyID,
		BottleID:     &bottle.ID,
		Rating:       5,
		Notes:        "sherried, long finish",
		PourAmountMl: 30,
	}
	if err := s.CreateTastingNote(ctx, note, bottle); err != nil {
		t.Fatalf("create note: %v", err)
	}

	got, err := s.GetBottle(ctx, bottle.ID)
	if err != nil {
		t.Fatalf("get bottle: %v", err)
	}
	if got.CurrentVolumeMl != 720 {
		t.Errorf("expected 720ml after pour, got %v", got.CurrentVolumeMl)
	}
	if got.Status != domain.BottleOpened {
		t.Errorf("expected opened, got %s", got.Status)
	}
}

func TestListTastingSessionsNewestFirst(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	userID := seedUser(t, s, "user@example.com")
	other := seedUser(t, s, "other@example.com")

	first := &domain.TastingSession{
		ID: id.MustGenerate("session"), UserID: userID, Title: "Older",
		Date: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	second := &domain.TastingSession{
		ID: id.MustGenerate("session"), UserID: userID, Title: "Newer",
		Date: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
	}
	for _, sess := range []*domain.TastingSession{first, second} {
		if err := s.CreateTastingSession(ctx, sess); err != nil {
			t.Fatalf("create session: %v", err)
		}
	}
	seedSession(t, s, other, "Not mine")

	sessions, err := s.ListTastingSessions(ctx, userID)
	if err != nil {
		t.Fatalf("list sessions: %v", err)
	}
	if len(sessions) != 2 {
		t.Fatalf("expected 2 sessions, got %d", len(sessions))
	}
	if sessions[0].Title != "Newer" {
		t.Errorf("expected newest first, got %s", sessions[0].Title)
	}
}

func TestCreateTastingNoteBottleDeleted(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	userID := seedUser(t, s, "user@example.com")
	collID := seedCollection(t, s, userID, "Bar")
	whiskeyID := seedWhiskey(t, s, "Glenfoo 12")
	bottle := seedBottle(t, s, whiskeyID, &userID, &collID)
	sess := seedSession(t, s, userID, "Evening dram")

	// The bottle vanishes between the caller's read and the pour.
	if err := s.DeleteBottle(ctx, bottle.ID); err != nil {
		t.Fatalf("delete bottle: %v", err)
	}

	bottle.Deduct(30)
	note := &domain.TastingNote{
		ID:           id.MustGenerate("note"),
		SessionID:    sess.ID,
		WhiskeyID:    whiskeyID,
		BottleID:     &bottle.ID,
		Rating:       4,
		Notes:        "smooth",
		PourAmountMl: 30,
	}
	err := s.CreateTastingNote(ctx, note, bottle)
	if !domainerrors.Is(err, domainerrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	// The note insert rolled back with the bottle update.
	notes, err := s.ListSessionNotes(ctx, sess.ID)
	if err != nil {
		t.Fatalf("list notes: %v", err)
	}
	if len(notes) != 0 {
		t.Errorf("expected no notes, got %d", len(notes))
	}
}
