// Package lookupcache provides a Redis-backed cache for phone lookup
// responses. Parsing is cheap but not free, and busy tenants tend to submit
// the same numbers repeatedly; the cache short-circuits those.
package lookupcache

import (
	"context"
	"errors"
	"time"

	"phonekit/platform/logger"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "phone:lookup:"

// Cache caches serialized lookup responses keyed by region and raw input.
// A nil *Cache is valid and disables caching.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
	log    *logger.Logger
}

// New creates a cache over the given Redis client.
func New(client *redis.Client, ttl time.Duration, log *logger.Logger) *Cache {
	return &Cache{client: client, ttl: ttl, log: log}
}

// Key builds the cache key for one lookup.
func Key(region, number string) string {
	return keyPrefix + region + ":" + number
}

// Get returns the cached payload for key, with found=false on a miss. Redis
// being down degrades to a miss rather than an error surfaced to callers.
func (c *Cache) Get(ctx context.Context, key string) ([]byte, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}
	payload, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) && c.log != nil {
			c.log.CacheEvent("get_error", key)
		}
		return nil, false
	}
	if c.log != nil {
		c.log.CacheEvent("hit", key)
	}
	return payload, true
}

// Set stores the payload for key with the configured TTL.
func (c *Cache) Set(ctx context.Context, key string, payload []byte) {
	if c == nil || c.client == nil {
		return
	}
	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil && c.log != nil {
		c.log.CacheEvent("set_error", key)
	}
}

// Flush drops every cached lookup. Called when the metadata document is
// reloaded, since cached results may no longer reflect the rules.
func (c *Cache) Flush(ctx context.Context) error {
	if c == nil || c.client == nil {
		return nil
	}
	iter := c.client.Scan(ctx, 0, keyPrefix+"*", 0).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}

// Ping reports whether the backing Redis is reachable. A disabled cache is
// always healthy.
func (c *Cache) Ping(ctx context.Context) error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Ping(ctx).Err()
}
