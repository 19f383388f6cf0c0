package config

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"

	"github.com/nionems/bachata-hub-sub002/pkg/listing"
	cachememory "github.com/nionems/bachata-hub-sub002/pkg/listing/cache/memory"
	cacheredis "github.com/nionems/bachata-hub-sub002/pkg/listing/cache/redis"
	storememory "github.com/nionems/bachata-hub-sub002/pkg/listing/store/memory"
	storepg "github.com/nionems/bachata-hub-sub002/pkg/listing/store/postgres"
)

// Option applies configuration to a ServerConfig instance.
type Option func(*ServerConfig) error

// Load constructs a ServerConfig by applying the supplied options on top of
// library defaults.
func Load(opts ...Option) (*ServerConfig, error) {
	cfg := defaults()

	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func defaults() ServerConfig {
	return ServerConfig{
		Port:        "8080",
		Environment: "development",
		StoreType:   "memory",
		CacheType:   "memory",
		CacheTTLs: map[listing.Kind]time.Duration{
			listing.KindEvent:    cachememory.TTLEvents,
			listing.KindFestival: cachememory.TTLFestival,
		},
		DefaultCacheTTL: cachememory.TTLDefault,
	}
}

// ServerConfig represents server configuration for the directory service
type ServerConfig struct {
	Port        string
	Environment string // development, production, testing

	// Record store configuration
	DatabaseURL string
	StoreType   string // "memory", "postgres"

	// Publication cache configuration
	RedisURL  string
	CacheType string // "memory", "redis"

	CacheTTLs       map[listing.Kind]time.Duration
	DefaultCacheTTL time.Duration
}

// Validate validates the server configuration
func (c *ServerConfig) Validate() error {
	if c.Port == "" {
		return errors.New("port is required")
	}

	if c.StoreType != "memory" && c.StoreType != "postgres" {
		return errors.New("store_type must be 'memory' or 'postgres'")
	}
	if c.StoreType == "postgres" && c.DatabaseURL == "" {
		return errors.New("database_url is required when using postgres")
	}

	if c.CacheType != "memory" && c.CacheType != "redis" {
		return errors.New("cache_type must be 'memory' or 'redis'")
	}
	if c.CacheType == "redis" && c.RedisURL == "" {
		return errors.New("redis_url is required when using redis")
	}

	return nil
}

// BuildService creates a Service instance from the server configuration
func (c *ServerConfig) BuildService(ctx context.Context) (listing.Service, listing.Store, error) {
	store, err := c.buildStore(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build record store: %w", err)
	}

	cache, err := c.buildCache()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build publication cache: %w", err)
	}

	svc, err := listing.New(
		listing.WithStore(store),
		listing.WithCache(cache),
	)
	if err != nil {
		return nil, nil, err
	}

	return svc, store, nil
}

func (c *ServerConfig) buildStore(ctx context.Context) (listing.Store, error) {
	switch c.StoreType {
	case "postgres":
		pool, err := pgxpool.New(ctx, c.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to create postgres pool: %w", err)
		}
		return storepg.NewWithPool(pool), nil
	default:
		return storememory.New(), nil
	}
}

func (c *ServerConfig) buildCache() (listing.Cache, error) {
	switch c.CacheType {
	case "redis":
		redisOpts, err := goredis.ParseURL(c.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("invalid redis url: %w", err)
		}
		opts := []cacheredis.Option{cacheredis.WithDefaultTTL(c.DefaultCacheTTL)}
		for kind, ttl := range c.CacheTTLs {
			opts = append(opts, cacheredis.WithTTL(kind, ttl))
		}
		return cacheredis.New(goredis.NewClient(redisOpts), opts...), nil
	default:
		opts := []cachememory.Option{cachememory.WithDefaultTTL(c.DefaultCacheTTL)}
		for kind, ttl := range c.CacheTTLs {
			opts = append(opts, cachememory.WithTTL(kind, ttl))
		}
		return cachememory.New(opts...), nil
	}
}
