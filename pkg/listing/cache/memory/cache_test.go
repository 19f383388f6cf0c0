package memory

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/nionems/bachata-hub-sub002/pkg/listing"
)

type fakeClock struct {
	t time.Time
}

func (f *fakeClock) Now() time.Time { return f.t }

func (f *fakeClock) Advance(d time.Duration) { f.t = f.t.Add(d) }

func sample(kind listing.Kind, name string) *listing.Listing {
	return &listing.Listing{
		ID:      uuid.New(),
		Kind:    kind,
		Status:  listing.StatusApproved,
		Payload: map[string]any{"name": name},
	}
}

func TestGetMissAndHit(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{t: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	c := New(WithClock(clock.Now))

	if _, hit, err := c.Get(ctx, listing.KindEvent); err != nil || hit {
		t.Fatalf("expected miss on empty cache, hit=%v err=%v", hit, err)
	}

	items := []*listing.Listing{sample(listing.KindEvent, "Bachata Night")}
	if err := c.Set(ctx, listing.KindEvent, items); err != nil {
		t.Fatalf("Set: %v", err)
	}

	got, hit, err := c.Get(ctx, listing.KindEvent)
	if err != nil || !hit {
		t.Fatalf("expected hit, hit=%v err=%v", hit, err)
	}
	if len(got) != 1 || got[0].Payload["name"] != "Bachata Night" {
		t.Fatalf("unexpected cached data: %+v", got)
	}
}

func TestGetWithinTTL(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{t: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	c := New(WithClock(clock.Now))

	if err := c.Set(ctx, listing.KindEvent, []*listing.Listing{sample(listing.KindEvent, "A")}); err != nil {
		t.Fatalf("Set: %v", err)
	}

	clock.Advance(TTLEvents - time.Second)
	if _, hit, _ := c.Get(ctx, listing.KindEvent); !hit {
		t.Fatal("expected hit just inside the TTL")
	}
}

func TestGetAfterTTL(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{t: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	c := New(WithClock(clock.Now))

	if err := c.Set(ctx, listing.KindEvent, []*listing.Listing{sample(listing.KindEvent, "A")}); err != nil {
		t.Fatalf("Set: %v", err)
	}

	clock.Advance(TTLEvents)
	if _, hit, _ := c.Get(ctx, listing.KindEvent); hit {
		t.Fatal("expected miss once the TTL has lapsed")
	}
}

func TestPerKindTTL(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{t: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	c := New(WithClock(clock.Now))

	if err := c.Set(ctx, listing.KindEvent, nil); err != nil {
		t.Fatalf("Set events: %v", err)
	}
	if err := c.Set(ctx, listing.KindFestival, nil); err != nil {
		t.Fatalf("Set festivals: %v", err)
	}

	// Past the events TTL but inside the longer festival TTL.
	clock.Advance(TTLEvents + time.Minute)

	if _, hit, _ := c.Get(ctx, listing.KindEvent); hit {
		t.Fatal("events entry should be stale")
	}
	if _, hit, _ := c.Get(ctx, listing.KindFestival); !hit {
		t.Fatal("festival entry should still be fresh")
	}
}

func TestTTLOverride(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{t: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	c := New(WithClock(clock.Now), WithTTL(listing.KindShop, time.Second))

	if err := c.Set(ctx, listing.KindShop, nil); err != nil {
		t.Fatalf("Set: %v", err)
	}

	clock.Advance(2 * time.Second)
	if _, hit, _ := c.Get(ctx, listing.KindShop); hit {
		t.Fatal("overridden TTL should have expired the entry")
	}
}

func TestInvalidate(t *testing.T) {
	ctx := context.Background()
	c := New()

	if err := c.Set(ctx, listing.KindEvent, []*listing.Listing{sample(listing.KindEvent, "A")}); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := c.Invalidate(ctx, listing.KindEvent); err != nil {
		t.Fatalf("Invalidate: %v", err)
	}
	if _, hit, _ := c.Get(ctx, listing.KindEvent); hit {
		t.Fatal("expected miss after invalidation")
	}
}

func TestSetOverwritesWithinTTL(t *testing.T) {
	ctx := context.Background()
	c := New()

	if err := c.Set(ctx, listing.KindEvent, []*listing.Listing{sample(listing.KindEvent, "old")}); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := c.Set(ctx, listing.KindEvent, []*listing.Listing{sample(listing.KindEvent, "new")}); err != nil {
		t.Fatalf("Set: %v", err)
	}

	got, hit, _ := c.Get(ctx, listing.KindEvent)
	if !hit || len(got) != 1 || got[0].Payload["name"] != "new" {
		t.Fatalf("expected the overwritten entry, got %+v", got)
	}
}

func TestGetReturnsCopies(t *testing.T) {
	ctx := context.Background()
	c := New()

	if err := c.Set(ctx, listing.KindEvent, []*listing.Listing{sample(listing.KindEvent, "A")}); err != nil {
		t.Fatalf("Set: %v", err)
	}

	first, _, _ := c.Get(ctx, listing.KindEvent)
	first[0].Payload["name"] = "mutated"

	second, _, _ := c.Get(ctx, listing.KindEvent)
	if second[0].Payload["name"] != "A" {
		t.Fatal("cached entry was mutated through a returned copy")
	}
}
