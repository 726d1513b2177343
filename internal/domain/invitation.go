package domain

import (
	"strings"
	"time"
)

// InvitationStatus tracks an invitation through its lifecycle.
// Pending is the only state from which transitions are allowed.
type InvitationStatus string

const (
	InvitationPending  InvitationStatus = "pending"
	InvitationAccepted InvitationStatus = "accepted"
	InvitationDeclined InvitationStatus = "declined"
)

// CollectionInvitation invites a user, identified by email, into a collection
// with a pre-assigned role. Invitations are created by collection owners and
// resolved by the invitee; accepted and declined are terminal.
type CollectionInvitation struct {
	CreatedAt    time.Time        `json:"created_at"`
	ID           string           `json:"id"`
	Token        string           `json:"token"`
	CollectionID string           `json:"collection_id"`
	InviterID    string           `json:"inviter_id"`
	InviteeEmail string           `json:"invitee_email"`
	Role         Role             `json:"role"`
	Status       InvitationStatus `json:"status"`
}

// IsPending returns true if the invitation can still be accepted or declined.
func (i *CollectionInvitation) IsPending() bool {
	return i.Status == InvitationPending
}

// IsFor reports whether the invitation is addressed to the given email,
// compared case-insensitively.
func (i *CollectionInvitation) IsFor(email string) bool {
	return strings.EqualFold(i.InviteeEmail, email)
}
