package dictionary

import (
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/zawlinnphyo/wordstake/internal/domain"
)

// CachedClient decorates a DictionaryClient with a Redis verdict cache.
// Only definitive verdicts are cached; lookup errors pass through uncached
// so a transient outage never poisons the cache. Cache failures themselves
// degrade to the inner client.
type CachedClient struct {
	inner domain.DictionaryClient
	rdb   *redis.Client
	ttl   time.Duration
}

// NewCached wraps inner with a Redis cache.
func NewCached(inner domain.DictionaryClient, rdb *redis.Client, ttl time.Duration) *CachedClient {
	return &CachedClient{inner: inner, rdb: rdb, ttl: ttl}
}

// Source delegates to the inner client.
func (c *CachedClient) Source() string { return c.inner.Source() }

// Lookup consults the cache, then the inner client.
func (c *CachedClient) Lookup(ctx domain.Context, word string) (bool, error) {
	key := "dict:" + c.inner.Source() + ":" + word
	if v, err := c.rdb.Get(ctx, key).Result(); err == nil {
		return v == "1", nil
	} else if err != redis.Nil {
		slog.Debug("dictionary cache read failed", slog.Any("error", err))
	}

	found, err := c.inner.Lookup(ctx, word)
	if err != nil {
		return false, err
	}

	v := "0"
	if found {
		v = "1"
	}
	if err := c.rdb.Set(ctx, key, v, c.ttl).Err(); err != nil {
		slog.Debug("dictionary cache write failed", slog.Any("error", err))
	}
	return found, nil
}
