package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/whwar9739/dramcellar/internal/domain"
	domainerrors "github.com/whwar9739/dramcellar/internal/errors"
	"github.com/whwar9739/dramcellar/internal/id"
	"github.com/whwar9739/dramcellar/internal/metrics"
	"github.com/whwar9739/dramcellar/internal/store"
)

// Reconciler brings pre-collection data into the collection model. Users who
// predate collections have no membership and may own bottles placed nowhere;
// both get repaired on their next inventory read.
type Reconciler struct {
	store   store.Store
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// NewReconciler creates a new reconciler.
func NewReconciler(store store.Store, logger *slog.Logger, metrics *metrics.Metrics) *Reconciler {
	return &Reconciler{store: store, logger: logger, metrics: metrics}
}

// EnsureUserHasCollection provisions a default collection for a user with no
// memberships, then adopts the user's collectionless bottles into their first
// collection. Idempotent and safe to run concurrently on every inventory
// read; provisioning is guarded by the store's transactional membership
// count.
func (r *Reconciler) EnsureUserHasCollection(ctx context.Context, userID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	coll := &domain.Collection{
		ID:   id.MustGenerate("col"),
		Name: domain.DefaultCollectionName,
	}
	created, err := r.store.ProvisionDefaultCollection(ctx, coll, userID)
	if err != nil {
		return fmt.Errorf("provision default collection: %w", err)
	}
	if created {
		r.metrics.Reconciliations.Inc()
		r.logger.Info("default collection provisioned",
			"user_id", userID,
			"collection_id", coll.ID,
		)
	}

	first, err := r.store.GetFirstMembership(ctx, userID)
	if domainerrors.Is(err, domainerrors.ErrNotFound) {
		// Nothing to adopt into; should not happen after provisioning.
		return nil
	}
	if err != nil {
		return fmt.Errorf("get first membership: %w", err)
	}

	adopted, err := r.store.AdoptOrphanBottles(ctx, userID, first.CollectionID)
	if err != nil {
		return fmt.Errorf("adopt orphan bottles: %w", err)
	}
	if adopted > 0 {
		r.metrics.OrphansAdopted.Add(float64(adopted))
		r.logger.Info("orphan bottles adopted",
			"user_id", userID,
			"collection_id", first.CollectionID,
			"count", adopted,
		)
	}

	return nil
}
