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

// CollectionService manages collections and their memberships.
type CollectionService struct {
	store  store.Store
	logger *slog.Logger
}

// NewCollectionService creates a new collection service.
func NewCollectionService(store store.Store, logger *slog.Logger) *CollectionService {
	return &CollectionService{store: store, logger: logger}
}

// CollectionDetail bundles a collection with its memberships.
type CollectionDetail struct {
	Collection *domain.Collection        `json:"collection"`
	Members    []*domain.CollectionMember `json:"members"`
}

// Create makes a new collection with the caller as owner.
func (s *CollectionService) Create(ctx context.Context, userID, name string) (*domain.Collection, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domainerrors.Validation("collection name is required")
	}

	coll := &domain.Collection{
		ID:   id.MustGenerate("col"),
		Name: name,
	}
	if err := s.store.CreateCollectionWithOwner(ctx, coll, userID); err != nil {
		return nil, fmt.Errorf("create collection: %w", err)
	}

	s.logger.Info("collection created",
		"collection_id", coll.ID,
		"owner_id", userID,
	)
	return coll, nil
}

// Get returns the collection with its members. Non-members get Forbidden.
func (s *CollectionService) Get(ctx context.Context, userID, collectionID string) (*CollectionDetail, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	coll, err := s.store.GetCollection(ctx, collectionID)
	if err != nil {
		return nil, fmt.Errorf("get collection: %w", err)
	}

	if _, err := requireMembership(ctx, s.store, userID, collectionID, domain.RoleViewer); err != nil {
		return nil, err
	}

	members, err := s.store.ListCollectionMembers(ctx, collectionID)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}

	return &CollectionDetail{Collection: coll, Members: members}, nil
}

// List returns the caller's collections.
func (s *CollectionService) List(ctx context.Context, userID string) ([]*domain.Collection, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	colls, err := s.store.ListUserCollections(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list collections: %w", err)
	}
	return colls, nil
}

// ListMembers returns the collection's memberships. Any member may look.
func (s *CollectionService) ListMembers(ctx context.Context, userID, collectionID string) ([]*domain.CollectionMember, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if _, err := requireMembership(ctx, s.store, userID, collectionID, domain.RoleViewer); err != nil {
		return nil, err
	}

	members, err := s.store.ListCollectionMembers(ctx, collectionID)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	return members, nil
}

// Delete removes the collection. Owner only. The collection's bottles are
// deleted with it, along with their tasting notes and blend ledger rows.
func (s *CollectionService) Delete(ctx context.Context, userID, collectionID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if _, err := s.store.GetCollection(ctx, collectionID); err != nil {
		return fmt.Errorf("get collection: %w", err)
	}
	if _, err := requireMembership(ctx, s.store, userID, collectionID, domain.RoleOwner); err != nil {
		return err
	}

	if err := s.store.DeleteCollection(ctx, collectionID); err != nil {
		return fmt.Errorf("delete collection: %w", err)
	}

	s.logger.Info("collection deleted",
		"collection_id", collectionID,
		"deleted_by", userID,
	)
	return nil
}
