// Package store defines the persistence interface for the dramcellar server.
package store

import (
	"context"

	"github.com/whwar9739/dramcellar/internal/domain"
)

// WhiskeyFilter narrows a whiskey catalog listing.
type WhiskeyFilter struct {
	// Search matches name or distillery, case-insensitive substring.
	Search string
	// Region filters to an exact region when non-empty.
	Region string
}

// Store defines the interface for all persistence operations.
// Multi-step mutations are transactional inside the implementation.
type Store interface {
	// Lifecycle
	Close() error

	// Users
	UpsertUser(ctx context.Context, user *domain.User) error
	GetUser(ctx context.Context, id string) (*domain.User, error)

	// Whiskey catalog
	CreateWhiskey(ctx context.Context, w *domain.Whiskey) error
	GetWhiskey(ctx context.Context, id string) (*domain.Whiskey, error)
	UpdateWhiskey(ctx context.Context, w *domain.Whiskey) error
	// DeleteWhiskey removes the whiskey, its bottles (with their tasting
	// notes and blend components on either side), and whiskey-level tasting
	// notes in one transaction.
	DeleteWhiskey(ctx context.Context, id string) error
	ListWhiskies(ctx context.Context, filter WhiskeyFilter) ([]*domain.Whiskey, error)
	ListWhiskeyRegions(ctx context.Context) ([]string, error)

	// Collections and memberships
	// CreateCollectionWithOwner inserts the collection and an owner
	// membership for ownerUserID in one transaction.
	CreateCollectionWithOwner(ctx context.Context, coll *domain.Collection, ownerUserID string) error
	GetCollection(ctx context.Context, id string) (*domain.Collection, error)
	// DeleteCollection removes the collection with its memberships,
	// invitations, and bottles in one transaction; the bottles' tasting
	// notes and blend ledger rows cascade with them.
	DeleteCollection(ctx context.Context, id string) error
	ListUserCollections(ctx context.Context, userID string) ([]*domain.Collection, error)
	ListCollectionMembers(ctx context.Context, collectionID string) ([]*domain.CollectionMember, error)
	GetMembership(ctx context.Context, collectionID, userID string) (*domain.CollectionMember, error)
	CreateMembership(ctx context.Context, member *domain.CollectionMember) error
	// ProvisionDefaultCollection creates coll owned by ownerUserID only if
	// the user has no memberships, atomically with the membership count, so
	// concurrent calls cannot provision twice. Reports whether it created.
	ProvisionDefaultCollection(ctx context.Context, coll *domain.Collection, ownerUserID string) (bool, error)
	// GetFirstMembership returns the user's oldest membership by insertion
	// order, used to pick the adoption target during reconciliation.
	GetFirstMembership(ctx context.Context, userID string) (*domain.CollectionMember, error)

	// Invitations
	CreateInvitation(ctx context.Context, inv *domain.CollectionInvitation) error
	GetInvitation(ctx context.Context, id string) (*domain.CollectionInvitation, error)
	HasPendingInvitation(ctx context.Context, collectionID, email string) (bool, error)
	ListPendingInvitationsByEmail(ctx context.Context, email string) ([]*domain.CollectionInvitation, error)
	ListPendingInvitationsForCollection(ctx context.Context, collectionID string) ([]*domain.CollectionInvitation, error)
	// AcceptInvitation marks the invitation accepted and inserts the new
	// membership in one transaction.
	AcceptInvitation(ctx context.Context, inv *domain.CollectionInvitation, member *domain.CollectionMember) error
	UpdateInvitationStatus(ctx context.Context, id string, status domain.InvitationStatus) error

	// Bottles
	CreateBottle(ctx context.Context, b *domain.Bottle) error
	GetBottle(ctx context.Context, id string) (*domain.Bottle, error)
	UpdateBottle(ctx context.Context, b *domain.Bottle) error
	// DeleteBottle removes the bottle, its tasting notes, and blend
	// components referencing it from either side, in one transaction.
	DeleteBottle(ctx context.Context, id string) error
	ListBottlesForUser(ctx context.Context, userID string) ([]*domain.Bottle, error)
	ListBottlesInCollection(ctx context.Context, collectionID string) ([]*domain.Bottle, error)
	ListPourableBottlesForUser(ctx context.Context, userID string) ([]*domain.Bottle, error)
	ListOpenInfinityBottlesForUser(ctx context.Context, userID string) ([]*domain.Bottle, error)
	// AdoptOrphanBottles assigns every bottle owned by userID with no
	// collection to the given collection. Returns the number adopted.
	AdoptOrphanBottles(ctx context.Context, userID, collectionID string) (int, error)

	// Blend ledger
	// TransferBlend persists both updated bottles and appends the component
	// in one transaction. Volume math happens on the domain objects before
	// the call.
	TransferBlend(ctx context.Context, source, target *domain.Bottle, comp *domain.BlendComponent) error
	ListBlendComponents(ctx context.Context, infinityBottleID string) ([]*domain.BlendComponent, error)

	// Tastings
	CreateTastingSession(ctx context.Context, sess *domain.TastingSession) error
	GetTastingSession(ctx context.Context, id string) (*domain.TastingSession, error)
	ListTastingSessions(ctx context.Context, userID string) ([]*domain.TastingSession, error)
	// CreateTastingNote inserts the note and, when bottle is non-nil,
	// persists the bottle's deducted volume in the same transaction. The
	// note's order index is assigned inside the transaction.
	CreateTastingNote(ctx context.Context, note *domain.TastingNote, bottle *domain.Bottle) error
	ListSessionNotes(ctx context.Context, sessionID string) ([]*domain.TastingNote, error)
}
