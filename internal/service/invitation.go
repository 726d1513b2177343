package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/whwar9739/dramcellar/internal/domain"
	domainerrors "github.com/whwar9739/dramcellar/internal/errors"
	"github.com/whwar9739/dramcellar/internal/id"
	"github.com/whwar9739/dramcellar/internal/store"
)

// InvitationService manages the collection invitation lifecycle.
type InvitationService struct {
	store  store.Store
	logger *slog.Logger
}

// NewInvitationService creates a new invitation service.
func NewInvitationService(store store.Store, logger *slog.Logger) *InvitationService {
	return &InvitationService{store: store, logger: logger}
}

// Invite creates a pending invitation to the collection. Owner only.
// Rejected when the invitee is already a member or a pending invitation for
// the same (collection, email) pair exists.
func (s *InvitationService) Invite(ctx context.Context, inviterID, collectionID, inviteeEmail string, role domain.Role) (*domain.CollectionInvitation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	inviteeEmail = strings.TrimSpace(strings.ToLower(inviteeEmail))
	if inviteeEmail == "" {
		return nil, domainerrors.Validation("invitee email is required")
	}
	if !role.IsValid() {
		return nil, domainerrors.Validationf("invalid role %q", role)
	}

	if _, err := s.store.GetCollection(ctx, collectionID); err != nil {
		return nil, fmt.Errorf("get collection: %w", err)
	}
	if _, err := requireMembership(ctx, s.store, inviterID, collectionID, domain.RoleOwner); err != nil {
		return nil, err
	}

	// Already a member? The invitee may not have a user row yet; check by
	// membership of any member whose email matches.
	members, err := s.store.ListCollectionMembers(ctx, collectionID)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	for _, m := range members {
		member, err := s.store.GetUser(ctx, m.UserID)
		if err != nil {
			return nil, fmt.Errorf("get member user: %w", err)
		}
		if strings.EqualFold(member.Email, inviteeEmail) {
			return nil, domainerrors.AlreadyExists("user is already a member of this collection")
		}
	}

	pending, err := s.store.HasPendingInvitation(ctx, collectionID, inviteeEmail)
	if err != nil {
		return nil, fmt.Errorf("check pending invitation: %w", err)
	}
	if pending {
		return nil, domainerrors.AlreadyExists("an invitation for this email is already pending")
	}

	inv := &domain.CollectionInvitation{
		ID:           id.MustGenerate("inv"),
		Token:        uuid.NewString(),
		CollectionID: collectionID,
		InviterID:    inviterID,
		InviteeEmail: inviteeEmail,
		Role:         role,
		Status:       domain.InvitationPending,
	}
	if err := s.store.CreateInvitation(ctx, inv); err != nil {
		return nil, fmt.Errorf("create invitation: %w", err)
	}

	s.logger.Info("invitation created",
		"invitation_id", inv.ID,
		"collection_id", collectionID,
		"inviter_id", inviterID,
		"role", role,
	)
	return inv, nil
}

// ListForCollection returns the collection's pending invitations. Owner only.
func (s *InvitationService) ListForCollection(ctx context.Context, userID, collectionID string) ([]*domain.CollectionInvitation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if _, err := s.store.GetCollection(ctx, collectionID); err != nil {
		return nil, fmt.Errorf("get collection: %w", err)
	}
	if _, err := requireMembership(ctx, s.store, userID, collectionID, domain.RoleOwner); err != nil {
		return nil, err
	}

	invs, err := s.store.ListPendingInvitationsForCollection(ctx, collectionID)
	if err != nil {
		return nil, fmt.Errorf("list invitations: %w", err)
	}
	return invs, nil
}

// ListForUser returns pending invitations addressed to the caller's email.
func (s *InvitationService) ListForUser(ctx context.Context, email string) ([]*domain.CollectionInvitation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	invs, err := s.store.ListPendingInvitationsByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("list invitations: %w", err)
	}
	return invs, nil
}

// resolve fetches a pending invitation addressed to the caller. Invitations
// for other people's email read as not found.
func (s *InvitationService) resolve(ctx context.Context, email, invitationID string) (*domain.CollectionInvitation, error) {
	inv, err := s.store.GetInvitation(ctx, invitationID)
	if err != nil {
		return nil, fmt.Errorf("get invitation: %w", err)
	}
	if !inv.IsFor(email) {
		return nil, domainerrors.ErrNotFound
	}
	if !inv.IsPending() {
		return nil, domainerrors.ErrNotFound
	}
	return inv, nil
}

// Accept joins the caller to the collection with the invited role and marks
// the invitation accepted.
func (s *InvitationService) Accept(ctx context.Context, userID, email, invitationID string) (*domain.CollectionMember, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	inv, err := s.resolve(ctx, email, invitationID)
	if err != nil {
		return nil, err
	}

	member := &domain.CollectionMember{
		ID:           id.MustGenerate("mem"),
		CollectionID: inv.CollectionID,
		UserID:       userID,
		Role:         inv.Role,
	}
	if err := s.store.AcceptInvitation(ctx, inv, member); err != nil {
		return nil, fmt.Errorf("accept invitation: %w", err)
	}

	s.logger.Info("invitation accepted",
		"invitation_id", inv.ID,
		"collection_id", inv.CollectionID,
		"user_id", userID,
		"role", inv.Role,
	)
	return member, nil
}

// Decline marks the invitation declined.
func (s *InvitationService) Decline(ctx context.Context, email, invitationID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	inv, err := s.resolve(ctx, email, invitationID)
	if err != nil {
		return err
	}

	if err := s.store.UpdateInvitationStatus(ctx, inv.ID, domain.InvitationDeclined); err != nil {
		return fmt.Errorf("decline invitation: %w", err)
	}

	s.logger.Info("invitation declined",
		"invitation_id", inv.ID,
		"collection_id", inv.CollectionID,
	)
	return nil
}
