// Package bylinecache is an optional Redis-backed cache for finished
// bylines. Caching is an HTTP-level concern of the server, not of the
// pipeline: only successful, non-empty pipeline results are stored, keyed by
// the canonical source URL. Failures and empty results are never cached.
package bylinecache

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/onnwee/byline-relay/telemetry"
)

// DefaultTTL bounds how long a byline is served without re-scraping.
const DefaultTTL = 30 * time.Minute

const keyPrefix = "byline:"

// Cache wraps a Redis client. A nil *Cache is valid and disables caching;
// every method is a no-op on it.
type Cache struct {
	rdb *redis.Client
	ttl time.Duration
}

// New connects to Redis at addr. Empty addr disables caching and returns
// nil. Non-positive ttl selects DefaultTTL.
func New(addr string, ttl time.Duration) *Cache {
	if addr == "" {
		return nil
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{
		rdb: redis.NewClient(&redis.Options{Addr: addr}),
		ttl: ttl,
	}
}

// Get returns the cached byline for the canonical URL, if present.
func (c *Cache) Get(ctx context.Context, canonicalURL string) (string, bool) {
	if c == nil {
		return "", false
	}
	val, err := c.rdb.Get(ctx, keyPrefix+canonicalURL).Result()
	if err == redis.Nil {
		return "", false
	}
	if err != nil {
		slog.Warn("byline cache get failed", slog.Any("err", err))
		return "", false
	}
	telemetry.BylineCacheHits.Inc()
	return val, true
}

// Set stores a non-empty byline under the canonical URL with the configured
// TTL. Empty bylines are not stored.
func (c *Cache) Set(ctx context.Context, canonicalURL, byline string) {
	if c == nil || byline == "" {
		return
	}
	if err := c.rdb.Set(ctx, keyPrefix+canonicalURL, byline, c.ttl).Err(); err != nil {
		slog.Warn("byline cache set failed", slog.Any("err", err))
	}
}

// Ping verifies connectivity; used by the readiness probe. Nil caches are
// always "ready".
func (c *Cache) Ping(ctx context.Context) error {
	if c == nil {
		return nil
	}
	return c.rdb.Ping(ctx).Err()
}

// Close releases the Redis connection.
func (c *Cache) Close() error {
	if c == nil {
		return nil
	}
	return c.rdb.Close()
}
