package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/whwar9739/dramcellar/internal/domain"
	domainerrors "github.com/whwar9739/dramcellar/internal/errors"
	"github.com/whwar9739/dramcellar/internal/id"
)

func TestTransferBlendAtomicity(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	userID := seedUser(t, s, "user@example.com")
	collID := seedCollection(t, s, userID, "Bar")
	whiskeyID := seedWhiskey(t, s, "Glenfoo 12")

	source := seedBottle(t, s, whiskeyID, &userID, &collID)
	infinity := seedBottle(t, s, whiskeyID, &userID, &collID)
	infinity.IsInfinityBottle = true
	infinity.CurrentVolumeMl = 0
	infinity.Status = domain.BottleEmpty
	if err := s.UpdateBottle(ctx, infinity); err != nil {
		t.Fatalf("update infinity: %v", err)
	}

	// The transfer empties the source entirely and credits only the
	// transferred amount to the target.
	source.Deduct(source.CurrentVolumeMl)
	infinity.ReceiveBlend(100)
	comp := &domain.BlendComponent{
		ID:               id.MustGenerate("blend"),
		SourceBottleID:   source.ID,
		InfinityBottleID: infinity.ID,
		AmountAddedMl:    100,
		DateAdded:        time.Now().UTC(),
	}
	if err := s.TransferBlend(ctx, source, infinity, comp); err != nil {
		t.Fatalf("transfer blend: %v", err)
	}

	gotSource, err := s.GetBottle(ctx, source.ID)
	if err != nil {
		t.Fatalf("get source: %v", err)
	}
	if gotSource.CurrentVolumeMl != 0 || gotSource.Status != domain.BottleEmpty {
		t.Errorf("expected drained source, got %v ml status %s", gotSource.CurrentVolumeMl, gotSource.Status)
	}

	gotTarget, err := s.GetBottle(ctx, infinity.ID)
	if err != nil {
		t.Fatalf("get target: %v", err)
	}
	if gotTarget.CurrentVolumeMl != 100 {
		t.Errorf("expected 100ml in target, got %v", gotTarget.CurrentVolumeMl)
	}

	comps, err := s.ListBlendComponents(ctx, infinity.ID)
	if err != nil {
		t.Fatalf("list components: %v", err)
	}
	if len(comps) != 1 {
		t.Fatalf("expected 1 component, got %d", len(comps))
	}
	if comps[0].AmountAddedMl != 100 {
		t.Errorf("expected 100ml component, got %v", comps[0].AmountAddedMl)
	}
}

func TestListBlendComponentsNewestFirst(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	userID := seedUser(t, s, "user@example.com")
	collID := seedCollection(t, s, userID, "Bar")
	whiskeyID := seedWhiskey(t, s, "Glenfoo 12")

	infinity := seedBottle(t, s, whiskeyID, &userID, &collID)
	infinity.IsInfinityBottle = true
	if err := s.UpdateBottle(ctx, infinity); err != nil {
		t.Fatalf("update infinity: %v", err)
	}

	base := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	var total float64
	for i, amount := range []float64{50, 75, 25} {
		src := seedBottle(t, s, whiskeyID, &userID, &collID)
		src.Deduct(src.CurrentVolumeMl)
		infinity.ReceiveBlend(amount)
		total += amount
		comp := &domain.BlendComponent{
			ID:               id.MustGenerate("blend"),
			SourceBottleID:   src.ID,
			InfinityBottleID: infinity.ID,
			AmountAddedMl:    amount,
			DateAdded:        base.AddDate(0, 0, i),
		}
		if err := s.TransferBlend(ctx, src, infinity, comp); err != nil {
			t.Fatalf("transfer blend: %v", err)
		}
	}

	comps, err := s.ListBlendComponents(ctx, infinity.ID)
	if err != nil {
		t.Fatalf("list components: %v", err)
	}
	if len(comps) != 3 {
		t.Fatalf("expected 3 components, got %d", len(comps))
	}
	if comps[0].AmountAddedMl != 25 || comps[2].AmountAddedMl != 50 {
		t.Errorf("expected newest first, got [%v %v %v]",
			comps[0].AmountAddedMl, comps[1].AmountAddedMl, comps[2].AmountAddedMl)
	}

	// Target volume matches the sum of its ledger.
	got, err := s.GetBottle(ctx, infinity.ID)
	if err != nil {
		t.Fatalf("get target: %v", err)
	}
	want := domain.DefaultCapacityMl + total
	if got.CurrentVolumeMl != want {
		t.Errorf("expected %vml, got %v", want, got.CurrentVolumeMl)
	}
}

func TestTransferBlendSourceDeleted(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	userID := seedUser(t, s, "user@example.com")
	collID := seedCollection(t, s, userID, "Bar")
	whiskeyID := seedWhiskey(t, s, "Glenfoo 12")

	source := seedBottle(t, s, whiskeyID, &userID, &collID)
	infinity := seedBottle(t, s, whiskeyID, &userID, &collID)
	infinity.IsInfinityBottle = true
	if err := s.UpdateBottle(ctx, infinity); err != nil {
		t.Fatalf("update infinity: %v", err)
	}

	// The source vanishes between the caller's read and the write.
	if err := s.DeleteBottle(ctx, source.ID); err != nil {
		t.Fatalf("delete source: %v", err)
	}

	source.Deduct(source.CurrentVolumeMl)
	infinity.ReceiveBlend(100)
	comp := &domain.BlendComponent{
		ID:               id.MustGenerate("blend"),
		SourceBottleID:   source.ID,
		InfinityBottleID: infinity.ID,
		AmountAddedMl:    100,
		DateAdded:        time.Now().UTC(),
	}
	err := s.TransferBlend(ctx, source, infinity, comp)
	if !domainerrors.Is(err, domainerrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	// Rolled back entirely: target untouched, no ledger row.
	got, err := s.GetBottle(ctx, infinity.ID)
	if err != nil {
		t.Fatalf("get target: %v", err)
	}
	if got.CurrentVolumeMl != domain.DefaultCapacityMl {
		t.Errorf("expected untouched target, got %vml", got.CurrentVolumeMl)
	}
	comps, err := s.ListBlendComponents(ctx, infinity.ID)
	if err != nil {
		t.Fatalf("list components: %v", err)
	}
	if len(comps) != 0 {
		t.Errorf("expected no components, got %d", len(comps))
	}
}

func TestTransferBlendTargetDeleted(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	userID := seedUser(t, s, "user@example.com")
	collID := seedCollection(t, s, userID, "Bar")
	whiskeyID := seedWhiskey(t, s, "Glenfoo 12")

	source := seedBottle(t, s, whiskeyID, &userID, &collID)
	infinity := seedBottle(t, s, whiskeyID, &userID, &collID)

	if err := s.DeleteBottle(ctx, infinity.ID); err != nil {
		t.Fatalf("delete target: %v", err)
	}

	source.Deduct(source.CurrentVolumeMl)
	comp := &domain.BlendComponent{
		ID:               id.MustGenerate("blend"),
		SourceBottleID:   source.ID,
		InfinityBottleID: infinity.ID,
		AmountAddedMl:    100,
		DateAdded:        time.Now().UTC(),
	}
	err := s.TransferBlend(ctx, source, infinity, comp)
	if !domainerrors.Is(err, domainerrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	// The source keeps its volume; the failed transfer left no trace.
	got, err := s.GetBottle(ctx, source.ID)
	if err != nil {
		t.Fatalf("get source: %v", err)
	}
	if got.CurrentVolumeMl != domain.DefaultCapacityMl {
		t.Errorf("expected untouched source, got %vml", got.CurrentVolumeMl)
	}
}
