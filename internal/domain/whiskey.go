package domain

import "time"

// Whiskey is a catalog entry describing a bottling, shared across all users.
// Bottles reference a whiskey; the catalog itself carries no access control.
type Whiskey struct {
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Distillery   string    `json:"distillery"`
	Region       string    `json:"region,omitempty"`
	Type         string    `json:"type,omitempty"`
	CaskType     string    `json:"cask_type,omitempty"`
	GeneralNotes string    `json:"general_notes,omitempty"`
	Age          *int      `json:"age,omitempty"`
	ABV          *float64  `json:"abv,omitempty"`
}
