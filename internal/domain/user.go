package domain

import "time"

// User is a lightweight identity record. Authentication happens upstream;
// we keep a row per identity so foreign keys and invitation email matching
// have something to point at.
type User struct {
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	ID        string    `json:"id"`
	Email     string    `json:"email"`
}
