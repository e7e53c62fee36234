package lookupcache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"phonekit/platform/logger"
)

func newTestCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	return New(client, time.Hour, logger.New("development")), server
}

func TestCache_SetGet(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()
	key := Key("US", "650-253-0000")

	if _, ok := cache.Get(ctx, key); ok {
		t.Fatalf("expected miss before set")
	}
	cache.Set(ctx, key, []byte(`{"valid":true}`))
	payload, ok := cache.Get(ctx, key)
	if !ok {
		t.Fatalf("expected hit after set")
	}
	if string(payload) != `{"valid":true}` {
		t.Fatalf("unexpected payload %s", payload)
	}
}

func TestCache_TTL(t *testing.T) {
	cache, server := newTestCache(t)
	ctx := context.Background()
	key := Key("US", "650-253-0000")
	cache.Set(ctx, key, []byte("x"))

	server.FastForward(2 * time.Hour)
	if _, ok := cache.Get(ctx, key); ok {
		t.Fatalf("expected entry to expire")
	}
}

func TestCache_Flush(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()
	cache.Set(ctx, Key("US", "a"), []byte("1"))
	cache.Set(ctx, Key("GB", "b"), []byte("2"))

	if err := cache.Flush(ctx); err != nil {
		t.Fatalf("flush failed: %v", err)
	}
	if _, ok := cache.Get(ctx, Key("US", "a")); ok {
		t.Fatalf("expected flush to drop entries")
	}
}

func TestCache_DisabledIsSafe(t *testing.T) {
	var cache *Cache
	ctx := context.Background()
	if _, ok := cache.Get(ctx, "k"); ok {
		t.Fatalf("disabled cache should always miss")
	}
	cache.Set(ctx, "k", []byte("v"))
	if err := cache.Flush(ctx); err != nil {
		t.Fatalf("disabled flush should be a no-op, got %v", err)
	}
	if err := cache.Ping(ctx); err != nil {
		t.Fatalf("disabled cache is always healthy, got %v", err)
	}
}

func TestCache_DownRedisDegradesToMiss(t *testing.T) {
	cache, server := newTestCache(t)
	ctx := context.Background()
	cache.Set(ctx, Key("US", "a"), []byte("1"))
	server.Close()
	if _, ok := cache.Get(ctx, Key("US", "a")); ok {
		t.Fatalf("expected miss when redis is down")
	}
	if err := cache.Ping(ctx); err == nil {
		t.Fatalf("ping should fail when redis is down")
	}
}
