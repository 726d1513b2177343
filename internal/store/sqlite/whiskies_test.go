package sqlite

import (
	"context"
	"testing"

	"github.com/whwar9739/dramcellar/internal/domain"
	domainerrors "github.com/whwar9739/dramcellar/internal/errors"
	"github.com/whwar9739/dramcellar/internal/id"
	"github.com/whwar9739/dramcellar/internal/store"
)

func TestWhiskeyRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	age := 12
	abv := 43.0
	w := &domain.Whiskey{
		ID:         id.MustGenerate("whk"),
		Name:       "Glenfoo 12",
		Distillery: "Glenfoo",
		Region:     "Speyside",
		Type:       "Single Malt",
		CaskType:   "Ex-Bourbon",
		Age:        &age,
		ABV:        &abv,
	}
	if err := s.CreateWhiskey(ctx, w); err != nil {
		t.Fatalf("create whiskey: %v", err)
	}

	got, err := s.GetWhiskey(ctx, w.ID)
	if err != nil {
		t.Fatalf("get whiskey: %v", err)
	}
	if got.Name != "Glenfoo 12" || got.Region != "Speyside" {
		t.Errorf("fields not preserved: %+v", got)
	}
	if got.Age == nil || *got.Age != 12 {
		t.Errorf("age not preserved: %v", got.Age)
	}
	if got.ABV == nil || *got.ABV != 43.0 {
		t.Errorf("abv not preserved: %v", got.ABV)
	}
}

func TestUpdateWhiskeyNotFound(t *testing.T) {
	s := newTestStore(t)

	w := &domain.Whiskey{ID: "whk-missing", Name: "Ghost", Distillery: "Nowhere"}
	err := s.UpdateWhiskey(context.Background(), w)
	if !domainerrors.Is(err, domainerrors.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestListWhiskiesFilter(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	entries := []*domain.Whiskey{
		{ID: id.MustGenerate("whk"), Name: "Glenfoo 12", Distillery: "Glenfoo", Region: "Speyside"},
		{ID: id.MustGenerate("whk"), Name: "Ardbog 10", Distillery: "Ardbog", Region: "Islay"},
		{ID: id.MustGenerate("whk"), Name: "Foo Reserve", Distillery: "Barton", Region: "Islay"},
	}
	for _, w := range entries {
		if err := s.CreateWhiskey(ctx, w); err != nil {
			t.Fatalf("create whiskey: %v", err)
		}
	}

	// Case-insensitive substring over name and distillery.
	got, err := s.ListWhiskies(ctx, store.WhiskeyFilter{Search: "foo"})
	if err != nil {
		t.Fatalf("list whiskies: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("expected 2 matches for foo, got %d", len(got))
	}

	got, err = s.ListWhiskies(ctx, store.WhiskeyFilter{Region: "Islay"})
	if err != nil {
		t.Fatalf("list whiskies: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("expected 2 Islay whiskies, got %d", len(got))
	}

	got, err = s.ListWhiskies(ctx, store.WhiskeyFilter{Search: "foo", Region: "Islay"})
	if err != nil {
		t.Fatalf("list whiskies: %v", err)
	}
	if len(got) != 1 || got[0].Name != "Foo Reserve" {
		t.Errorf("expected Foo Reserve only, got %d", len(got))
	}
}

func TestListWhiskeyRegions(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, w := range []*domain.Whiskey{
		{ID: id.MustGenerate("whk"), Name: "A", Distillery: "A", Region: "Speyside"},
		{ID: id.MustGenerate("whk"), Name: "B", Distillery: "B", Region: "Islay"},
		{ID: id.MustGenerate("whk"), Name: "C", Distillery: "C", Region: "Islay"},
		{ID: id.MustGenerate("whk"), Name: "D", Distillery: "D"},
	} {
		if err := s.CreateWhiskey(ctx, w); err != nil {
			t.Fatalf("create whiskey: %v", err)
		}
	}

	regions, err := s.ListWhiskeyRegions(ctx)
	if err != nil {
		t.Fatalf("list regions: %v", err)
	}
	if len(regions) != 2 {
		t.Fatalf("expected 2 regions, got %d", len(regions))
	}
	if regions[0] != "Islay" || regions[1] != "Speyside" {
		t.Errorf("expected sorted regions, got %v", regions)
	}
}

func TestDeleteWhiskeyCascades(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	userID := seedUser(t, s, "user@example.com")
	collID := seedCollection(t, s, userID, "Bar")
	whiskeyID := seedWhiskey(t, s, "Doomed Dram")
	keptWhiskey := seedWhiskey(t, s, "Survivor")

	bottle := seedBottle(t, s, whiskeyID, &userID, &collID)
	kept := seedBottle(t, s, keptWhiskey, &userID, &collID)

	sess := seedSession(t, s, userID, "Flight")
	note := &domain.TastingNote{
		ID:        id.MustGenerate("note"),
		SessionID: sess.ID,
		WhiskeyID: whiskeyID,
		BottleID:  &bottle.ID,
		Rating:    3,
		Notes:     "fine",
	}
	if err := s.CreateTastingNote(ctx, note, nil); err != nil {
		t.Fatalf("create note: %v", err)
	}

	if err := s.DeleteWhiskey(ctx, whiskeyID); err != nil {
		t.Fatalf("delete whiskey: %v", err)
	}

	if _, err := s.GetWhiskey(ctx, whiskeyID); !domainerrors.Is(err, domainerrors.ErrNotFound) {
		t.Errorf("expected whiskey gone, got %v", err)
	}
	if _, err := s.GetBottle(ctx, bottle.ID); !domainerrors.Is(err, domainerrors.ErrNotFound) {
		t.Errorf("expected bottle gone, got %v", err)
	}

	notes, err := s.ListSessionNotes(ctx, sess.ID)
	if err != nil {
		t.Fatalf("list notes: %v", err)
	}
	if len(notes) != 0 {
		t.Errorf("expected notes removed, got %d", len(notes))
	}

	// Unrelated data survives.
	if _, err := s.GetBottle(ctx, kept.ID); err != nil {
		t.Errorf("expected kept bottle, got %v", err)
	}
}

func TestDeleteWhiskeyNotFound(t *testing.T) {
	s := newTestStore(t)

	err := s.DeleteWhiskey(context.Background(), "whk-missing")
	if !domainerrors.Is(err, domainerrors.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
