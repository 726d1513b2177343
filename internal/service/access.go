// Package service provides the business logic layer for the cellar: catalog,
// inventory, blends, collections, invitations, and tastings.
package service

import (
	"context"
	"fmt"

	"github.com/whwar9739/dramcellar/internal/domain"
	domainerrors "github.com/whwar9739/dramcellar/internal/errors"
	"github.com/whwar9739/dramcellar/internal/store"
)

// requireMembership returns the caller's membership in the collection,
// failing with Forbidden when the caller is not a member or the role is
// below min. Use this where the collection's existence is not a secret.
func requireMembership(ctx context.Context, st store.Store, userID, collectionID string, min domain.Role) (*domain.CollectionMember, error) {
	member, err := st.GetMembership(ctx, collectionID, userID)
	if domainerrors.Is(err, domainerrors.ErrNotFound) {
		return nil, domainerrors.Forbidden("you do not have access to this collection")
	}
	if err != nil {
		return nil, fmt.Errorf("get membership: %w", err)
	}
	if !member.Role.Meets(min) {
		return nil, domainerrors.Forbiddenf("requires %s access", min)
	}
	return member, nil
}

// isMember reports whether the user belongs to the collection with any role.
func isMember(ctx context.Context, st store.Store, userID, collectionID string) (bool, error) {
	_, err := st.GetMembership(ctx, collectionID, userID)
	if domainerrors.Is(err, domainerrors.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("get membership: %w", err)
	}
	return true, nil
}

// accessibleBottle fetches the bottle and hides it from non-members: any
// bottle the caller cannot reach through a membership reads as not found.
func accessibleBottle(ctx context.Context, st store.Store, userID, bottleID string) (*domain.Bottle, error) {
	bottle, err := st.GetBottle(ctx, bottleID)
	if err != nil {
		return nil, fmt.Errorf("get bottle: %w", err)
	}

	if bottle.CollectionID == nil {
		// Released or never-placed bottles are reachable only by their owner.
		if bottle.OwnerID != nil && *bottle.OwnerID == userID {
			return bottle, nil
		}
		return nil, domainerrors.ErrNotFound
	}

	member, err := isMember(ctx, st, userID, *bottle.CollectionID)
	if err != nil {
		return nil, err
	}
	if !member {
		return nil, domainerrors.ErrNotFound
	}
	return bottle, nil
}
