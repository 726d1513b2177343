package domain

import "time"

// TastingSession groups a user's tasting notes for one sitting.
// Sessions are private to their creator.
type TastingSession struct {
	CreatedAt time.Time `json:"created_at"`
	Date      time.Time `json:"date"`
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Title     string    `json:"title"`
}

// TastingNote is one pour within a session. A note references either a
// specific bottle (in which case logging it deducts the pour from that
// bottle) or just a catalog whiskey when the pour came from elsewhere.
type TastingNote struct {
	CreatedAt    time.Time `json:"created_at"`
	ID           string    `json:"id"`
	SessionID    string    `json:"session_id"`
	WhiskeyID    string    `json:"whiskey_id"`
	BottleID     *string   `json:"bottle_id,omitempty"`
	OrderIndex   int       `json:"order_index"`
	Rating       int       `json:"rating"`
	Notes        string    `json:"notes"`
	PourAmountMl float64   `json:"pour_amount_ml"`
}
