package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/nionems/bachata-hub-sub002/pkg/listing"
)

// Store implements listing.Store using in-memory collections. Intended for
// tests and local development.
type Store struct {
	mu          sync.RWMutex
	collections map[string]map[uuid.UUID]*listing.Listing
}

// New creates a new in-memory store
func New() *Store {
	return &Store{
		collections: make(map[string]map[uuid.UUID]*listing.Listing),
	}
}

var _ listing.Store = (*Store)(nil)

// collection lazily creates the named collection. Callers must hold the
// write lock.
func (s *Store) collection(name string) map[uuid.UUID]*listing.Listing {
	c, ok := s.collections[name]
	if !ok {
		c = make(map[uuid.UUID]*listing.Listing)
		s.collections[name] = c
	}
	return c
}

func (s *Store) GetByID(ctx context.Context, collection string, id uuid.UUID) (*listing.Listing, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	l, ok := s.collections[collection][id]
	if !ok {
		return nil, listing.ErrNotFound
	}
	// Return a copy to prevent external modifications
	return l.Clone(), nil
}

func (s *Store) List(ctx context.Context, collection string) ([]*listing.Listing, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*listing.Listing, 0, len(s.collections[collection]))
	for _, l := range s.collections[collection] {
		result = append(result, l.Clone())
	}

	// Sort by submission time descending
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].EffectiveSubmittedAt().After(result[j].EffectiveSubmittedAt())
	})

	return result, nil
}

func (s *Store) QueryByField(ctx context.Context, collection, field string, value any) ([]*listing.Listing, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*listing.Listing
	for _, l := range s.collections[collection] {
		if l.Payload == nil {
			continue
		}
		if v, ok := l.Payload[field]; ok && v == value {
			result = append(result, l.Clone())
		}
	}
	return result, nil
}

func (s *Store) Insert(ctx context.Context, collection string, l *listing.Listing) (uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := l.Clone()
	if cp.ID == uuid.Nil {
		cp.ID = uuid.New()
	}
	s.collection(collection)[cp.ID] = cp

	return cp.ID, nil
}

func (s *Store) Update(ctx context.Context, collection string, l *listing.Listing) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.collection(collection)[l.ID]; !ok {
		return listing.ErrNotFound
	}
	s.collection(collection)[l.ID] = l.Clone()

	return nil
}

func (s *Store) Delete(ctx context.Context, collection string, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.collection(collection)[id]; !ok {
		return listing.ErrNotFound
	}
	delete(s.collection(collection), id)

	return nil
}
