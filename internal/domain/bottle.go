package domain

import "time"

// BottleStatus tracks a bottle's lifecycle. Status only moves forward:
// full -> opened -> empty. Nothing refills a bottle except a blend transfer
// into an infinity bottle, which manages volume directly.
type BottleStatus string

const (
	BottleFull   BottleStatus = "full"
	BottleOpened BottleStatus = "opened"
	BottleEmpty  BottleStatus = "empty"
)

// DefaultCapacityMl is the assumed bottle size when none is given.
const DefaultCapacityMl = 750.0

// Bottle is a physical bottle of a catalog whiskey, living in a collection.
// OwnerID records who bought it and is pure attribution; every access
// decision goes through collection membership instead.
type Bottle struct {
	CreatedAt        time.Time    `json:"created_at"`
	UpdatedAt        time.Time    `json:"updated_at"`
	ID               string       `json:"id"`
	WhiskeyID        string       `json:"whiskey_id"`
	OwnerID          *string      `json:"owner_id,omitempty"`
	CollectionID     *string      `json:"collection_id,omitempty"`
	Status           BottleStatus `json:"status"`
	CapacityMl       float64      `json:"capacity_ml"`
	CurrentVolumeMl  float64      `json:"current_volume_ml"`
	IsInfinityBottle bool         `json:"is_infinity_bottle"`
	PurchaseDate     *time.Time   `json:"purchase_date,omitempty"`
	PurchasePrice    *float64     `json:"purchase_price,omitempty"`
	PurchaseLocation string       `json:"purchase_location,omitempty"`
	BottlingDate     *time.Time   `json:"bottling_date,omitempty"`
}

// Deduct removes amount from the bottle's volume. This is the only way
// volume leaves a bottle. Volume clamps at zero and a drained bottle is
// forced to empty; any deduction from a full bottle opens it.
func (b *Bottle) Deduct(amountMl float64) {
	if amountMl <= 0 {
		return
	}
	b.CurrentVolumeMl -= amountMl
	if b.CurrentVolumeMl <= 0 {
		b.CurrentVolumeMl = 0
		b.Status = BottleEmpty
		return
	}
	if b.Status == BottleFull {
		b.Status = BottleOpened
	}
}

// ReceiveBlend adds amount to an infinity bottle. Capacity is advisory for
// blends, so no clamping happens on the way in.
func (b *Bottle) ReceiveBlend(amountMl float64) {
	b.CurrentVolumeMl += amountMl
	if b.Status == BottleEmpty && b.CurrentVolumeMl > 0 {
		b.Status = BottleOpened
	}
}

// IsPourable returns true if the bottle still has whiskey in it.
func (b *Bottle) IsPourable() bool {
	return b.Status != BottleEmpty && b.CurrentVolumeMl > 0
}

// InCollection reports whether the bottle lives in the given collection.
func (b *Bottle) InCollection(collectionID string) bool {
	return b.CollectionID != nil && *b.CollectionID == collectionID
}

// IsOrphaned returns true if the bottle has an owner but no collection.
// Orphans predate the collection model and get adopted during reconciliation.
func (b *Bottle) IsOrphaned() bool {
	return b.CollectionID == nil && b.OwnerID != nil
}
