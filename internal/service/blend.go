package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/whwar9739/dramcellar/internal/domain"
	domainerrors "github.com/whwar9739/dramcellar/internal/errors"
	"github.com/whwar9739/dramcellar/internal/id"
	"github.com/whwar9739/dramcellar/internal/metrics"
	"github.com/whwar9739/dramcellar/internal/store"
)

// BlendService manages transfers into infinity bottles and their ledgers.
type BlendService struct {
	store   store.Store
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// NewBlendService creates a new blend service.
func NewBlendService(store store.Store, logger *slog.Logger, metrics *metrics.Metrics) *BlendService {
	return &BlendService{store: store, logger: logger, metrics: metrics}
}

// TransferInput names the two bottles and the amount credited to the blend.
type TransferInput struct {
	SourceBottleID   string  `json:"source_bottle_id" validate:"required"`
	InfinityBottleID string  `json:"infinity_bottle_id" validate:"required"`
	AmountMl         float64 `json:"amount_ml" validate:"required,gte=1,lte=1000"`
}

// InfinityBottleView is an infinity bottle with its blend ledger.
type InfinityBottleView struct {
	Bottle     *domain.Bottle          `json:"bottle"`
	Components []*domain.BlendComponent `json:"components"`
}

// Transfer pours a source bottle into an infinity bottle. The source is
// emptied entirely no matter how much is credited to the blend; whatever is
// not transferred is considered lost to the pour. The target gains exactly
// the stated amount and one ledger entry is appended. All of it commits
// atomically.
func (s *BlendService) Transfer(ctx context.Context, userID string, in *TransferInput) (*domain.BlendComponent, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if in.AmountMl < domain.MinBlendAmountMl || in.AmountMl > domain.MaxBlendAmountMl {
		return nil, domainerrors.Validationf("amount must be between %v and %v ml",
			domain.MinBlendAmountMl, domain.MaxBlendAmountMl)
	}
	if in.SourceBottleID == in.InfinityBottleID {
		return nil, domainerrors.Validation("source and target must be different bottles")
	}

	source, err := accessibleBottle(ctx, s.store, userID, in.SourceBottleID)
	if err != nil {
		return nil, err
	}
	target, err := accessibleBottle(ctx, s.store, userID, in.InfinityBottleID)
	if err != nil {
		return nil, err
	}

	if !target.IsInfinityBottle {
		return nil, domainerrors.Validation("target is not an infinity bottle")
	}
	if !source.IsPourable() {
		return nil, domainerrors.Validation("source bottle is empty")
	}

	source.Deduct(source.CurrentVolumeMl)
	target.ReceiveBlend(in.AmountMl)

	comp := &domain.BlendComponent{
		ID:               id.MustGenerate("blend"),
		SourceBottleID:   source.ID,
		InfinityBottleID: target.ID,
		AmountAddedMl:    in.AmountMl,
		DateAdded:        time.Now().UTC(),
	}
	if err := s.store.TransferBlend(ctx, source, target, comp); err != nil {
		return nil, fmt.Errorf("transfer blend: %w", err)
	}

	s.metrics.BlendTransfers.Inc()
	s.logger.Info("blend transferred",
		"source_bottle_id", source.ID,
		"infinity_bottle_id", target.ID,
		"amount_ml", in.AmountMl,
		"user_id", userID,
	)
	return comp, nil
}

// Ledger returns an infinity bottle with its components, newest first.
func (s *BlendService) Ledger(ctx context.Context, userID, bottleID string) (*InfinityBottleView, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	bottle, err := accessibleBottle(ctx, s.store, userID, bottleID)
	if err != nil {
		return nil, err
	}
	if !bottle.IsInfinityBottle {
		return nil, domainerrors.Validation("bottle is not an infinity bottle")
	}

	components, err := s.store.ListBlendComponents(ctx, bottle.ID)
	if err != nil {
		return nil, fmt.Errorf("list blend components: %w", err)
	}

	return &InfinityBottleView{Bottle: bottle, Components: components}, nil
}
