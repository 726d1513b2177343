package domain

import "time"

// Blend transfer amounts must fall within this range, in milliliters.
const (
	MinBlendAmountMl = 1.0
	MaxBlendAmountMl = 1000.0
)

// BlendComponent is one ledger entry in an infinity bottle's history: a
// transfer of whiskey from a source bottle into the blend. The ledger is
// append-only; components are never edited, only removed when a bottle on
// either side is deleted.
type BlendComponent struct {
	DateAdded        time.Time `json:"date_added"`
	ID               string    `json:"id"`
	SourceBottleID   string    `json:"source_bottle_id"`
	InfinityBottleID string    `json:"infinity_bottle_id"`
	AmountAddedMl    float64   `json:"amount_added_ml"`
}
