package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/nionems/bachata-hub-sub002/pkg/listing"
)

func TestInsertAndGet(t *testing.T) {
	ctx := context.Background()
	s := New()

	l := &listing.Listing{
		Kind:    listing.KindEvent,
		Status:  listing.StatusPending,
		Payload: map[string]any{"name": "Social"},
	}

	id, err := s.Insert(ctx, "events", l)
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if id == uuid.Nil {
		t.Fatal("Insert did not assign an id")
	}

	got, err := s.GetByID(ctx, "events", id)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Payload["name"] != "Social" {
		t.Fatalf("unexpected payload: %+v", got.Payload)
	}
}

func TestInsertKeepsProvidedID(t *testing.T) {
	ctx := context.Background()
	s := New()

	want := uuid.New()
	id, err := s.Insert(ctx, "events", &listing.Listing{ID: want})
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if id != want {
		t.Fatalf("Insert replaced id %s with %s", want, id)
	}
}

func TestGetNotFound(t *testing.T) {
	ctx := context.Background()
	s := New()

	if _, err := s.GetByID(ctx, "events", uuid.New()); !errors.Is(err, listing.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCollectionsAreIsolated(t *testing.T) {
	ctx := context.Background()
	s := New()

	id, err := s.Insert(ctx, "events", &listing.Listing{Payload: map[string]any{"name": "A"}})
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}

	if _, err := s.GetByID(ctx, "festivals", id); !errors.Is(err, listing.ErrNotFound) {
		t.Fatalf("record leaked across collections: %v", err)
	}
}

func TestListSortsBySubmissionTime(t *testing.T) {
	ctx := context.Background()
	s := New()

	older := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	newer := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	if _, err := s.Insert(ctx, "events", &listing.Listing{CreatedAt: older, Payload: map[string]any{"name": "old"}}); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if _, err := s.Insert(ctx, "events", &listing.Listing{CreatedAt: newer, Payload: map[string]any{"name": "new"}}); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	got, err := s.List(ctx, "events")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 records, got %d", len(got))
	}
	if got[0].Payload["name"] != "new" || got[1].Payload["name"] != "old" {
		t.Fatalf("wrong order: %v, %v", got[0].Payload["name"], got[1].Payload["name"])
	}
}

func TestListEmptyCollection(t *testing.T) {
	ctx := context.Background()
	s := New()

	got, err := s.List(ctx, "events")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty list, got %d records", len(got))
	}
}

func TestQueryByField(t *testing.T) {
	ctx := context.Background()
	s := New()

	ref := uuid.New().String()
	if _, err := s.Insert(ctx, "shops", &listing.Listing{Payload: map[string]any{"name": "A", "promotedFrom": ref}}); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if _, err := s.Insert(ctx, "shops", &listing.Listing{Payload: map[string]any{"name": "B"}}); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	got, err := s.QueryByField(ctx, "shops", "promotedFrom", ref)
	if err != nil {
		t.Fatalf("QueryByField: %v", err)
	}
	if len(got) != 1 || got[0].Payload["name"] != "A" {
		t.Fatalf("unexpected result: %+v", got)
	}

	got, err = s.QueryByField(ctx, "shops", "promotedFrom", uuid.New().String())
	if err != nil {
		t.Fatalf("QueryByField: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no matches, got %d", len(got))
	}
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()
	s := New()

	id, err := s.Insert(ctx, "events", &listing.Listing{Status: listing.StatusPending, Payload: map[string]any{"name": "A"}})
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}

	got, err := s.GetByID(ctx, "events", id)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	got.Status = listing.StatusApproved
	if err := s.Update(ctx, "events", got); err != nil {
		t.Fatalf("Update: %v", err)
	}

	after, err := s.GetByID(ctx, "events", id)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if after.Status != listing.StatusApproved {
		t.Fatalf("update not persisted, status=%q", after.Status)
	}

	if err := s.Update(ctx, "events", &listing.Listing{ID: uuid.New()}); !errors.Is(err, listing.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown record, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	s := New()

	id, err := s.Insert(ctx, "events", &listing.Listing{Payload: map[string]any{"name": "A"}})
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}

	if err := s.Delete(ctx, "events", id); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.GetByID(ctx, "events", id); !errors.Is(err, listing.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if err := s.Delete(ctx, "events", id); !errors.Is(err, listing.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on double delete, got %v", err)
	}
}

func TestReadsReturnCopies(t *testing.T) {
	ctx := context.Background()
	s := New()

	id, err := s.Insert(ctx, "events", &listing.Listing{Payload: map[string]any{"name": "A"}})
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}

	got, err := s.GetByID(ctx, "events", id)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	got.Payload["name"] = "mutated"

	again, err := s.GetByID(ctx, "events", id)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if again.Payload["name"] != "A" {
		t.Fatal("stored record was mutated through a returned copy")
	}
}
