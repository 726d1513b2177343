package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/whwar9739/dramcellar/internal/domain"
	domainerrors "github.com/whwar9739/dramcellar/internal/errors"
	"github.com/whwar9739/dramcellar/internal/id"
	"github.com/whwar9739/dramcellar/internal/store"
)

// BottleService manages bottle inventory.
type BottleService struct {
	store      store.Store
	reconciler *Reconciler
	logger     *slog.Logger
}

// NewBottleService creates a new bottle service.
func NewBottleService(store store.Store, reconciler *Reconciler, logger *slog.Logger) *BottleService {
	return &BottleService{store: store, reconciler: reconciler, logger: logger}
}

// CreateBottleInput carries the fields for adding a bottle.
type CreateBottleInput struct {
	WhiskeyID        string     `json:"whiskey_id" validate:"required"`
	CollectionID     string     `json:"collection_id" validate:"required"`
	CapacityMl       *float64   `json:"capacity_ml" validate:"omitempty,gt=0"`
	IsInfinityBottle bool       `json:"is_infinity_bottle"`
	PurchaseDate     *time.Time `json:"purchase_date"`
	PurchasePrice    *float64   `json:"purchase_price" validate:"omitempty,gte=0"`
	PurchaseLocation string     `json:"purchase_location"`
	BottlingDate     *time.Time `json:"bottling_date"`
}

// UpdateBottleInput carries optional fields for editing a bottle. Nil fields
// are left unchanged.
type UpdateBottleInput struct {
	CollectionID     *string    `json:"collection_id"`
	PurchaseDate     *time.Time `json:"purchase_date"`
	PurchasePrice    *float64   `json:"purchase_price" validate:"omitempty,gte=0"`
	PurchaseLocation *string    `json:"purchase_location"`
	BottlingDate     *time.Time `json:"bottling_date"`
}

// Create adds a bottle to a collection the caller is a member of. New
// bottles start full at their capacity.
func (s *BottleService) Create(ctx context.Context, userID string, in *CreateBottleInput) (*domain.Bottle, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if _, err := s.store.GetWhiskey(ctx, in.WhiskeyID); err != nil {
		return nil, fmt.Errorf("get whiskey: %w", err)
	}
	if _, err := requireMembership(ctx, s.store, userID, in.CollectionID, domain.RoleViewer); err != nil {
		return nil, err
	}

	capacity := domain.DefaultCapacityMl
	if in.CapacityMl != nil {
		capacity = *in.CapacityMl
	}
	if capacity <= 0 {
		return nil, domainerrors.Validation("capacity must be positive")
	}

	bottle := &domain.Bottle{
		ID:               id.MustGenerate("btl"),
		WhiskeyID:        in.WhiskeyID,
		OwnerID:          &userID,
		CollectionID:     &in.CollectionID,
		Status:           domain.BottleFull,
		CapacityMl:       capacity,
		CurrentVolumeMl:  capacity,
		IsInfinityBottle: in.IsInfinityBottle,
		PurchaseDate:     in.PurchaseDate,
		PurchasePrice:    in.PurchasePrice,
		PurchaseLocation: in.PurchaseLocation,
		BottlingDate:     in.BottlingDate,
	}
	if err := s.store.CreateBottle(ctx, bottle); err != nil {
		return nil, fmt.Errorf("create bottle: %w", err)
	}

	s.logger.Info("bottle created",
		"bottle_id", bottle.ID,
		"whiskey_id", bottle.WhiskeyID,
		"collection_id", in.CollectionID,
		"owner_id", userID,
	)
	return bottle, nil
}

// Get returns a bottle the caller can reach. Bottles outside the caller's
// collections read as not found.
func (s *BottleService) Get(ctx context.Context, userID, bottleID string) (*domain.Bottle, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return accessibleBottle(ctx, s.store, userID, bottleID)
}

// Update edits a bottle. Moving to a different collection requires
// membership in both the current and the target collection; the whole edit
// is all-or-nothing.
func (s *BottleService) Update(ctx context.Context, userID, bottleID string, in *UpdateBottleInput) (*domain.Bottle, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	bottle, err := accessibleBottle(ctx, s.store, userID, bottleID)
	if err != nil {
		return nil, err
	}

	if in.CollectionID != nil && !bottle.InCollection(*in.CollectionID) {
		if _, err := requireMembership(ctx, s.store, userID, *in.CollectionID, domain.RoleViewer); err != nil {
			return nil, err
		}
		bottle.CollectionID = in.CollectionID
	}
	if in.PurchaseDate != nil {
		bottle.PurchaseDate = in.PurchaseDate
	}
	if in.PurchasePrice != nil {
		bottle.PurchasePrice = in.PurchasePrice
	}
	if in.PurchaseLocation != nil {
		bottle.PurchaseLocation = *in.PurchaseLocation
	}
	if in.BottlingDate != nil {
		bottle.BottlingDate = in.BottlingDate
	}

	if err := s.store.UpdateBottle(ctx, bottle); err != nil {
		return nil, fmt.Errorf("update bottle: %w", err)
	}

	s.logger.Info("bottle updated", "bottle_id", bottle.ID, "updated_by", userID)
	return bottle, nil
}

// Delete removes a bottle with its tasting notes and blend ledger entries.
func (s *BottleService) Delete(ctx context.Context, userID, bottleID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	bottle, err := accessibleBottle(ctx, s.store, userID, bottleID)
	if err != nil {
		return err
	}

	if err := s.store.DeleteBottle(ctx, bottle.ID); err != nil {
		return fmt.Errorf("delete bottle: %w", err)
	}

	s.logger.Info("bottle deleted", "bottle_id", bottle.ID, "deleted_by", userID)
	return nil
}

// ListInventory returns every bottle across the caller's collections,
// reconciling legacy data first.
func (s *BottleService) ListInventory(ctx context.Context, userID string) ([]*domain.Bottle, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := s.reconciler.EnsureUserHasCollection(ctx, userID); err != nil {
		return nil, fmt.Errorf("reconcile: %w", err)
	}

	bottles, err := s.store.ListBottlesForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list bottles: %w", err)
	}
	return bottles, nil
}

// ListInCollection returns the bottles of one collection. Member only.
func (s *BottleService) ListInCollection(ctx context.Context, userID, collectionID string) ([]*domain.Bottle, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if _, err := requireMembership(ctx, s.store, userID, collectionID, domain.RoleViewer); err != nil {
		return nil, err
	}

	bottles, err := s.store.ListBottlesInCollection(ctx, collectionID)
	if err != nil {
		return nil, fmt.Errorf("list bottles: %w", err)
	}
	return bottles, nil
}

// ListPourable returns non-empty bottles across the caller's collections.
func (s *BottleService) ListPourable(ctx context.Context, userID string) ([]*domain.Bottle, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	bottles, err := s.store.ListPourableBottlesForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list pourable bottles: %w", err)
	}
	return bottles, nil
}

// ListInfinity returns the caller's infinity bottles.
func (s *BottleService) ListInfinity(ctx context.Context, userID string) ([]*domain.Bottle, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	bottles, err := s.store.ListOpenInfinityBottlesForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list infinity bottles: %w", err)
	}
	return bottles, nil
}
