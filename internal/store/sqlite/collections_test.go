package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/whwar9739/dramcellar/internal/domain"
	domainerrors "github.com/whwar9739/dramcellar/internal/errors"
	"github.com/whwar9739/dramcellar/internal/id"
)

func TestCreateCollectionWithOwner(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	userID := seedUser(t, s, "owner@example.com")
	collID := seedCollection(t, s, userID, "My Home Bar")

	coll, err := s.GetCollection(ctx, collID)
	if err != nil {
		t.Fatalf("get collection: %v", err)
	}
	if coll.Name != "My Home Bar" {
		t.Errorf("expected name My Home Bar, got %s", coll.Name)
	}

	member, err := s.GetMembership(ctx, collID, userID)
	if err != nil {
		t.Fatalf("get membership: %v", err)
	}
	if member.Role != domain.RoleOwner {
		t.Errorf("expected owner role, got %s", member.Role)
	}
}

func TestGetCollectionNotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.GetCollection(context.Background(), "col-missing")
	if !domainerrors.Is(err, domainerrors.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestGetMembershipNonMember(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	owner := seedUser(t, s, "owner@example.com")
	stranger := seedUser(t, s, "stranger@example.com")
	collID := seedCollection(t, s, owner, "Shared Shelf")

	_, err := s.GetMembership(ctx, collID, stranger)
	if !domainerrors.Is(err, domainerrors.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestCreateMembershipDuplicate(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	owner := seedUser(t, s, "owner@example.com")
	collID := seedCollection(t, s, owner, "Shared Shelf")

	member := &domain.CollectionMember{
		ID:           id.MustGenerate("mem"),
		CollectionID: collID,
		UserID:       owner,
		Role:         domain.RoleViewer,
	}
	err := s.CreateMembership(ctx, member)
	if !domainerrors.Is(err, domainerrors.ErrAlreadyExists) {
		t.Errorf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestListUserCollectionsOrder(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	userID := seedUser(t, s, "user@example.com")
	first := seedCollection(t, s, userID, "First")
	second := seedCollection(t, s, userID, "Second")

	colls, err := s.ListUserCollections(ctx, userID)
	if err != nil {
		t.Fatalf("list collections: %v", err)
	}
	if len(colls) != 2 {
		t.Fatalf("expected 2 collections, got %d", len(colls))
	}
	if colls[0].ID != first || colls[1].ID != second {
		t.Errorf("expected membership order [%s %s], got [%s %s]", first, second, colls[0].ID, colls[1].ID)
	}
}

func TestGetFirstMembership(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	userID := seedUser(t, s, "user@example.com")

	_, err := s.GetFirstMembership(ctx, userID)
	if !domainerrors.Is(err, domainerrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound with no memberships, got %v", err)
	}

	first := seedCollection(t, s, userID, "First")
	seedCollection(t, s, userID, "Second")

	m, err := s.GetFirstMembership(ctx, userID)
	if err != nil {
		t.Fatalf("get first membership: %v", err)
	}
	if m.CollectionID != first {
		t.Errorf("expected first collection %s, got %s", first, m.CollectionID)
	}
}

func TestProvisionDefaultCollection(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	userID := seedUser(t, s, "user@example.com")

	coll := &domain.Collection{ID: id.MustGenerate("col"), Name: "My Home Bar"}
	created, err := s.ProvisionDefaultCollection(ctx, coll, userID)
	if err != nil {
		t.Fatalf("provision: %v", err)
	}
	if !created {
		t.Fatal("expected first provision to create")
	}

	m, err := s.GetMembership(ctx, coll.ID, userID)
	if err != nil {
		t.Fatalf("get membership: %v", err)
	}
	if m.Role != domain.RoleOwner {
		t.Errorf("expected owner membership, got %s", m.Role)
	}

	// A user with any membership is left alone.
	again := &domain.Collection{ID: id.MustGenerate("col"), Name: "My Home Bar"}
	created, err = s.ProvisionDefaultCollection(ctx, again, userID)
	if err != nil {
		t.Fatalf("provision again: %v", err)
	}
	if created {
		t.Error("expected second provision to be a no-op")
	}

	colls, err := s.ListUserCollections(ctx, userID)
	if err != nil {
		t.Fatalf("list collections: %v", err)
	}
	if len(colls) != 1 {
		t.Errorf("expected 1 collection, got %d", len(colls))
	}
}

func TestDeleteCollectionCascades(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	userID := seedUser(t, s, "user@example.com")
	collID := seedCollection(t, s, userID, "Doomed")
	whiskeyID := seedWhiskey(t, s, "Test Dram")
	bottle := seedBottle(t, s, whiskeyID, &userID, &collID)
	infinity := seedBottle(t, s, whiskeyID, &userID, &collID)
	seedInvitation(t, s, collID, userID, "guest@example.com", domain.RoleViewer)

	// Give the bottle a tasting note and a blend ledger row so the
	// cascade has dependents to clean up.
	sess := seedSession(t, s, userID, "Last call")
	note := &domain.TastingNote{
		ID:        id.MustGenerate("note"),
		SessionID: sess.ID,
		WhiskeyID: whiskeyID,
		BottleID:  &bottle.ID,
		Rating:    4,
		Notes:     "final dram",
	}
	if err := s.CreateTastingNote(ctx, note, nil); err != nil {
		t.Fatalf("create note: %v", err)
	}
	comp := &domain.BlendComponent{
		ID:               id.MustGenerate("blend"),
		SourceBottleID:   bottle.ID,
		InfinityBottleID: infinity.ID,
		AmountAddedMl:    50,
		DateAdded:        time.Now().UTC(),
	}
	if err := s.TransferBlend(ctx, bottle, infinity, comp); err != nil {
		t.Fatalf("transfer blend: %v", err)
	}

	if err := s.DeleteCollection(ctx, collID); err != nil {
		t.Fatalf("delete collection: %v", err)
	}

	if _, err := s.GetCollection(ctx, collID); !domainerrors.Is(err, domainerrors.ErrNotFound) {
		t.Errorf("expected collection gone, got %v", err)
	}

	// The bottles go with the collection, dependents first.
	for _, bottleID := range []string{bottle.ID, infinity.ID} {
		if _, err := s.GetBottle(ctx, bottleID); !domainerrors.Is(err, domainerrors.ErrNotFound) {
			t.Errorf("expected bottle %s gone, got %v", bottleID, err)
		}
	}

	notes, err := s.ListSessionNotes(ctx, sess.ID)
	if err != nil {
		t.Fatalf("list notes: %v", err)
	}
	if len(notes) != 0 {
		t.Errorf("expected notes cascaded, got %d", len(notes))
	}

	comps, err := s.ListBlendComponents(ctx, infinity.ID)
	if err != nil {
		t.Fatalf("list components: %v", err)
	}
	if len(comps) != 0 {
		t.Errorf("expected blend rows cascaded, got %d", len(comps))
	}

	if _, err := s.GetMembership(ctx, collID, userID); !domainerrors.Is(err, domainerrors.ErrNotFound) {
		t.Errorf("expected membership removed, got %v", err)
	}
	invs, err := s.ListPendingInvitationsForCollection(ctx, collID)
	if err != nil {
		t.Fatalf("list invitations: %v", err)
	}
	if len(invs) != 0 {
		t.Errorf("expected invitations removed, got %d", len(invs))
	}
}
