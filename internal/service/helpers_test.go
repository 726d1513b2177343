package service

import (
	"context"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"github.com/whwar9739/dramcellar/internal/domain"
	"github.com/whwar9739/dramcellar/internal/id"
	"github.com/whwar9739/dramcellar/internal/metrics"
	"github.com/whwar9739/dramcellar/internal/store"
	"github.com/whwar9739/dramcellar/internal/store/sqlite"
)

// testEnv bundles everything service tests need.
type testEnv struct {
	store       store.Store
	logger      *slog.Logger
	metrics     *metrics.Metrics
	reconciler  *Reconciler
	collections *CollectionService
	invitations *InvitationService
	whiskies    *WhiskeyService
	bottles     *BottleService
	blends      *BlendService
	tastings    *TastingService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	s, err := sqlite.Open(dbPath, slog.New(slog.DiscardHandler))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	logger := slog.New(slog.DiscardHandler)
	m := metrics.New(prometheus.NewRegistry())
	reconciler := NewReconciler(s, logger, m)

	return &testEnv{
		store:       s,
		logger:      logger,
		metrics:     m,
		reconciler:  reconciler,
		collections: NewCollectionService(s, logger),
		invitations: NewInvitationService(s, logger),
		whiskies:    NewWhiskeyService(s, logger),
		bottles:     NewBottleService(s, reconciler, logger),
		blends:      NewBlendService(s, logger, m),
		tastings:    NewTastingService(s, logger, m),
	}
}

// createUser inserts an identity row and returns its ID.
func (e *testEnv) createUser(t *testing.T, email string) string {
	t.Helper()
	user := &domain.User{ID: id.MustGenerate("usr"), Email: email}
	require.NoError(t, e.store.UpsertUser(context.Background(), user))
	return user.ID
}

// createCollection makes a collection owned by userID.
func (e *testEnv) createCollection(t *testing.T, userID, name string) *domain.Collection {
	t.Helper()
	coll, err := e.collections.Create(context.Background(), userID, name)
	require.NoError(t, err)
	return coll
}

// createWhiskey adds a minimal catalog entry.
func (e *testEnv) createWhiskey(t *testing.T, name string) *domain.Whiskey {
	t.Helper()
	w, err := e.whiskies.Create(context.Background(), &WhiskeyInput{
		Name:       name,
		Distillery: "Test Distillery",
	})
	require.NoError(t, err)
	return w
}

// createBottle adds a full bottle of the whiskey to the collection.
func (e *testEnv) createBottle(t *testing.T, userID, whiskeyID, collectionID string) *domain.Bottle {
	t.Helper()
	b, err := e.bottles.Create(context.Background(), userID, &CreateBottleInput{
		WhiskeyID:    whiskeyID,
		CollectionID: collectionID,
	})
	require.NoError(t, err)
	return b
}

// createInfinityBottle adds an infinity bottle to the collection.
func (e *testEnv) createInfinityBottle(t *testing.T, userID, whiskeyID, collectionID string) *domain.Bottle {
	t.Helper()
	b, err := e.bottles.Create(context.Background(), userID, &CreateBottleInput{
		WhiskeyID:        whiskeyID,
		CollectionID:     collectionID,
		IsInfinityBottle: true,
	})
	require.NoError(t, err)
	return b
}

// addMember gives userID a role in the collection directly.
func (e *testEnv) addMember(t *testing.T, collectionID, userID string, role domain.Role) {
	t.Helper()
	member := &domain.CollectionMember{
		ID:           id.MustGenerate("mem"),
		CollectionID: collectionID,
		UserID:       userID,
		Role:         role,
	}
	require.NoError(t, e.store.CreateMembership(context.Background(), member))
}
