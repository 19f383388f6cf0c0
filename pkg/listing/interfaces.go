package listing

import (
	"context"

	"github.com/google/uuid"
)

// Store defines the record store adapter: collection-scoped CRUD over
// document-shaped listings. The storage engine itself is an external
// collaborator; implementations live under store/.
type Store interface {
	// GetByID returns the listing with the given id, or ErrNotFound.
	GetByID(ctx context.Context, collection string, id uuid.UUID) (*Listing, error)

	// List returns the full contents of a collection.
	List(ctx context.Context, collection string) ([]*Listing, error)

	// QueryByField returns listings whose payload field equals value.
	QueryByField(ctx context.Context, collection, field string, value any) ([]*Listing, error)

	// Insert stores a new listing and returns its assigned id.
	Insert(ctx context.Context, collection string, l *Listing) (uuid.UUID, error)

	// Update replaces the stored listing, or returns ErrNotFound.
	Update(ctx context.Context, collection string, l *Listing) error

	// Delete removes a listing outright, or returns ErrNotFound.
	Delete(ctx context.Context, collection string, id uuid.UUID) error
}

// Cache is the publication cache in front of approved-only public reads.
// Entries are discarded on invalidation, never edited in place; an entry
// older than its TTL behaves as a miss.
type Cache interface {
	// Get returns the cached sequence for kind and whether it was a hit.
	Get(ctx context.Context, kind Kind) ([]*Listing, bool, error)

	// Set stores the sequence for kind, starting its TTL clock.
	Set(ctx context.Context, kind Kind, items []*Listing) error

	// Invalidate discards the entry for kind; the next Get is a miss.
	Invalidate(ctx context.Context, kind Kind) error
}
