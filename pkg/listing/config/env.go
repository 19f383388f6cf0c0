package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/nionems/bachata-hub-sub002/pkg/listing"
)

// WithEnv applies environment variable overrides using the provided prefix.
//
// Environment variable mapping:
//
// Server:
//
//	PORT - Server port (default: "8080")
//	ENVIRONMENT - Runtime environment (default: "development")
//
// Record store:
//
//	DATABASE_URL - Connection string. "memory" or empty keeps the in-memory
//	               store; a postgres:// / postgresql:// URL selects postgres.
//
// Publication cache:
//
//	CACHE_URL - "memory" or empty keeps the in-process cache; a redis:// URL
//	            selects the shared Redis cache.
//	CACHE_TTL_DEFAULT - Go duration (e.g. "5m") for kinds without overrides.
//	CACHE_TTL_<KIND>  - per-kind override, e.g. CACHE_TTL_EVENT=5m,
//	                    CACHE_TTL_FESTIVAL=10m.
func WithEnv(prefix string) Option {
	return func(c *ServerConfig) error {
		if v, ok := lookupEnv(prefix, "PORT"); ok && v != "" {
			c.Port = v
		}
		if v, ok := lookupEnv(prefix, "ENVIRONMENT"); ok && v != "" {
			c.Environment = v
		}

		if err := applyDatabaseEnv(prefix, c); err != nil {
			return err
		}
		if err := applyCacheEnv(prefix, c); err != nil {
			return err
		}

		return nil
	}
}

// applyDatabaseEnv applies record store configuration from environment
func applyDatabaseEnv(prefix string, c *ServerConfig) error {
	dbURL, hasURL := lookupEnv(prefix, "DATABASE_URL")

	if !hasURL || dbURL == "" || dbURL == "memory" {
		c.StoreType = "memory"
		c.DatabaseURL = ""
		return nil
	}

	if strings.HasPrefix(dbURL, "postgresql://") || strings.HasPrefix(dbURL, "postgres://") {
		c.StoreType = "postgres"
		c.DatabaseURL = dbURL
		return nil
	}

	return fmt.Errorf("unsupported DATABASE_URL format: %s (use 'memory' or 'postgresql://...')", dbURL)
}

// applyCacheEnv applies publication cache configuration from environment
func applyCacheEnv(prefix string, c *ServerConfig) error {
	cacheURL, hasURL := lookupEnv(prefix, "CACHE_URL")

	switch {
	case !hasURL || cacheURL == "" || cacheURL == "memory":
		c.CacheType = "memory"
		c.RedisURL = ""
	case strings.HasPrefix(cacheURL, "redis://") || strings.HasPrefix(cacheURL, "rediss://"):
		c.CacheType = "redis"
		c.RedisURL = cacheURL
	default:
		return fmt.Errorf("unsupported CACHE_URL format: %s (use 'memory' or 'redis://...')", cacheURL)
	}

	if raw, ok := lookupEnv(prefix, "CACHE_TTL_DEFAULT"); ok && raw != "" {
		ttl, err := time.ParseDuration(raw)
		if err != nil {
			return fmt.Errorf("invalid duration for %sCACHE_TTL_DEFAULT: %w", prefix, err)
		}
		c.DefaultCacheTTL = ttl
	}

	for _, kind := range listing.Kinds() {
		key := "CACHE_TTL_" + strings.ToUpper(string(kind))
		raw, ok := lookupEnv(prefix, key)
		if !ok || raw == "" {
			continue
		}
		ttl, err := time.ParseDuration(raw)
		if err != nil {
			return fmt.Errorf("invalid duration for %s%s: %w", prefix, key, err)
		}
		if c.CacheTTLs == nil {
			c.CacheTTLs = make(map[listing.Kind]time.Duration)
		}
		c.CacheTTLs[kind] = ttl
	}

	return nil
}

func lookupEnv(prefix, key string) (string, bool) {
	return os.LookupEnv(prefix + key)
}
