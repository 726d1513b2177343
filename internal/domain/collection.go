// Package domain contains the core entities of the cellar: whiskies, bottles,
// blends, collections, and tasting records. These types carry no persistence
// or transport concerns.
package domain

import "time"

// Role defines a member's privilege level within a collection.
type Role string

const (
	RoleOwner  Role = "owner"
	RoleEditor Role = "editor"
	RoleViewer Role = "viewer"
)

// roleRank orders roles for comparison. Higher rank means more privilege.
var roleRank = map[Role]int{
	RoleViewer: 1,
	RoleEditor: 2,
	RoleOwner:  3,
}

// IsValid returns true if the role is one of the known values.
func (r Role) IsValid() bool {
	_, ok := roleRank[r]
	return ok
}

// Meets returns true if the role grants at least the privilege of min.
func (r Role) Meets(min Role) bool {
	return roleRank[r] >= roleRank[min]
}

// Collection is a shared privacy boundary around bottles. Every bottle that
// users can reach lives in exactly one collection; access flows entirely
// through membership, never through bottle ownership.
type Collection struct {
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	ID        string    `json:"id"`
	Name      string    `json:"name"`
}

// DefaultCollectionName is the name given to the collection created for a
// user who has none. Kept stable so repeated provisioning stays recognizable.
const DefaultCollectionName = "My Home Bar"

// CollectionMember links a user to a collection with a role.
// A user holds at most one membership per collection.
type CollectionMember struct {
	CreatedAt    time.Time `json:"created_at"`
	ID           string    `json:"id"`
	CollectionID string    `json:"collection_id"`
	UserID       string    `json:"user_id"`
	Role         Role      `json:"role"`
}
