package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/whwar9739/dramcellar/internal/domain"
	domainerrors "github.com/whwar9739/dramcellar/internal/errors"
	"github.com/whwar9739/dramcellar/internal/id"
	"github.com/whwar9739/dramcellar/internal/store"
)

// WhiskeyService manages the shared whiskey catalog.
type WhiskeyService struct {
	store  store.Store
	logger *slog.Logger
}

// NewWhiskeyService creates a new whiskey service.
func NewWhiskeyService(store store.Store, logger *slog.Logger) *WhiskeyService {
	return &WhiskeyService{store: store, logger: logger}
}

// WhiskeyInput carries catalog fields for create and update.
type WhiskeyInput struct {
	Name         string   `json:"name" validate:"required"`
	Distillery   string   `json:"distillery" validate:"required"`
	Region       string   `json:"region"`
	Type         string   `json:"type"`
	CaskType     string   `json:"cask_type"`
	GeneralNotes string   `json:"general_notes"`
	Age          *int     `json:"age" validate:"omitempty,gte=0"`
	ABV          *float64 `json:"abv" validate:"omitempty,gt=0,lte=100"`
}

func (in *WhiskeyInput) apply(w *domain.Whiskey) {
	w.Name = strings.TrimSpace(in.Name)
	w.Distillery = strings.TrimSpace(in.Distillery)
	w.Region = strings.TrimSpace(in.Region)
	w.Type = in.Type
	w.CaskType = in.CaskType
	w.GeneralNotes = in.GeneralNotes
	w.Age = in.Age
	w.ABV = in.ABV
}

// Create adds a catalog entry.
func (s *WhiskeyService) Create(ctx context.Context, in *WhiskeyInput) (*domain.Whiskey, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Distillery) == "" {
		return nil, domainerrors.Validation("name and distillery are required")
	}

	w := &domain.Whiskey{ID: id.MustGenerate("whk")}
	in.apply(w)

	if err := s.store.CreateWhiskey(ctx, w); err != nil {
		return nil, fmt.Errorf("create whiskey: %w", err)
	}

	s.logger.Info("whiskey created", "whiskey_id", w.ID, "name", w.Name)
	return w, nil
}

// Get returns one catalog entry.
func (s *WhiskeyService) Get(ctx context.Context, whiskeyID string) (*domain.Whiskey, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	w, err := s.store.GetWhiskey(ctx, whiskeyID)
	if err != nil {
		return nil, fmt.Errorf("get whiskey: %w", err)
	}
	return w, nil
}

// Update replaces the catalog fields of an entry.
func (s *WhiskeyService) Update(ctx context.Context, whiskeyID string, in *WhiskeyInput) (*domain.Whiskey, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	w, err := s.store.GetWhiskey(ctx, whiskeyID)
	if err != nil {
		return nil, fmt.Errorf("get whiskey: %w", err)
	}

	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Distillery) == "" {
		return nil, domainerrors.Validation("name and distillery are required")
	}
	in.apply(w)

	if err := s.store.UpdateWhiskey(ctx, w); err != nil {
		return nil, fmt.Errorf("update whiskey: %w", err)
	}

	s.logger.Info("whiskey updated", "whiskey_id", w.ID)
	return w, nil
}

// Delete removes a catalog entry and everything referencing it.
func (s *WhiskeyService) Delete(ctx context.Context, whiskeyID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := s.store.DeleteWhiskey(ctx, whiskeyID); err != nil {
		return fmt.Errorf("delete whiskey: %w", err)
	}

	s.logger.Info("whiskey deleted", "whiskey_id", whiskeyID)
	return nil
}

// List returns catalog entries matching the filter.
func (s *WhiskeyService) List(ctx context.Context, filter store.WhiskeyFilter) ([]*domain.Whiskey, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	whiskies, err := s.store.ListWhiskies(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list whiskies: %w", err)
	}
	return whiskies, nil
}

// Regions returns the distinct regions present in the catalog.
func (s *WhiskeyService) Regions(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	regions, err := s.store.ListWhiskeyRegions(ctx)
	if err != nil {
		return nil, fmt.Errorf("list regions: %w", err)
	}
	return regions, nil
}
