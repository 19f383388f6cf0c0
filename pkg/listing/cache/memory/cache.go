package memory

import (
	"context"
	"sync"
	"time"

	"github.com/nionems/bachata-hub-sub002/pkg/listing"
)

// Default TTLs per kind. Event listings churn faster than festivals, so
// they expire sooner. Tunables, not invariants.
const (
	TTLEvents   = 5 * time.Minute
	TTLFestival = 10 * time.Minute
	TTLDefault  = 5 * time.Minute
)

type entry struct {
	data      []*listing.Listing
	fetchedAt time.Time
}

// Cache is a process-local publication cache with per-kind TTLs. An entry
// older than its TTL is treated as absent. Each process instance holds an
// independent cache; a shared deployment should use the redis cache
// instead.
type Cache struct {
	mu         sync.RWMutex
	entries    map[listing.Kind]entry
	ttls       map[listing.Kind]time.Duration
	defaultTTL time.Duration
	now        func() time.Time
}

// Option configures the cache
type Option func(*Cache)

// WithTTL overrides the TTL for one kind
func WithTTL(kind listing.Kind, ttl time.Duration) Option {
	return func(c *Cache) {
		c.ttls[kind] = ttl
	}
}

// WithDefaultTTL overrides the TTL for kinds without a specific override
func WithDefaultTTL(ttl time.Duration) Option {
	return func(c *Cache) {
		c.defaultTTL = ttl
	}
}

// WithClock overrides the time source. Intended for tests.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) {
		c.now = now
	}
}

// New creates a new in-process publication cache
func New(opts ...Option) *Cache {
	c := &Cache{
		entries: make(map[listing.Kind]entry),
		ttls: map[listing.Kind]time.Duration{
			listing.KindEvent:    TTLEvents,
			listing.KindFestival: TTLFestival,
		},
		defaultTTL: TTLDefault,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var _ listing.Cache = (*Cache)(nil)

func (c *Cache) ttl(kind listing.Kind) time.Duration {
	if ttl, ok := c.ttls[kind]; ok {
		return ttl
	}
	return c.defaultTTL
}

func (c *Cache) Get(ctx context.Context, kind listing.Kind) ([]*listing.Listing, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[kind]
	if !ok {
		return nil, false, nil
	}
	if c.now().Sub(e.fetchedAt) >= c.ttl(kind) {
		// Stale entries behave as a miss; eviction happens on the next Set
		// or Invalidate.
		return nil, false, nil
	}

	// Hand out copies so callers can never mutate the cached sequence.
	out := make([]*listing.Listing, len(e.data))
	for i, l := range e.data {
		out[i] = l.Clone()
	}
	return out, true, nil
}

func (c *Cache) Set(ctx context.Context, kind listing.Kind, items []*listing.Listing) error {
	data := make([]*listing.Listing, len(items))
	for i, l := range items {
		data[i] = l.Clone()
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[kind] = entry{data: data, fetchedAt: c.now()}
	return nil
}

func (c *Cache) Invalidate(ctx context.Context, kind listing.Kind) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, kind)
	return nil
}
