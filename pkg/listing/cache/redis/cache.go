package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/nionems/bachata-hub-sub002/pkg/listing"
)

// Key prefix for published-listing entries.
const prefixPublished = "published:"

// Cache is a Redis-backed publication cache. Unlike the in-process cache it
// is shared across instances, so every instance observes the same entry and
// the same invalidation. TTL enforcement is server-side.
type Cache struct {
	client     *redis.Client
	ttls       map[listing.Kind]time.Duration
	defaultTTL time.Duration
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

// New creates a Redis-backed publication cache
func New(client *redis.Client, opts ...Option) *Cache {
	c := &Cache{
		client: client,
		ttls: map[listing.Kind]time.Duration{
			listing.KindEvent:    5 * time.Minute,
			listing.KindFestival: 10 * time.Minute,
		},
		defaultTTL: 5 * time.Minute,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var _ listing.Cache = (*Cache)(nil)

func key(kind listing.Kind) string {
	return prefixPublished + string(kind)
}

func (c *Cache) ttl(kind listing.Kind) time.Duration {
	if ttl, ok := c.ttls[kind]; ok {
		return ttl
	}
	return c.defaultTTL
}

func (c *Cache) Get(ctx context.Context, kind listing.Kind) ([]*listing.Listing, bool, error) {
	data, err := c.client.Get(ctx, key(kind)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}

	var items []*listing.Listing
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, false, err
	}
	return items, true, nil
}

func (c *Cache) Set(ctx context.Context, kind listing.Kind, items []*listing.Listing) error {
	data, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key(kind), data, c.ttl(kind)).Err()
}

func (c *Cache) Invalidate(ctx context.Context, kind listing.Kind) error {
	return c.client.Del(ctx, key(kind)).Err()
}
