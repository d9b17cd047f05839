// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

// testValkeyClient returns a Redis client for tests.
// Skips if Valkey is unavailable.
func testValkeyClient(t *testing.T) *redis.Client {
	t.Helper()

	host := envOr("VALKEY_HOST", "localhost")
	port := envOr("VALKEY_PORT", "6379")
	password := os.Getenv("VALKEY_PASSWORD")

	client := redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: password,
		DB:       15, // Use DB 15 for tests.
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("skipping integration test: Valkey not reachable: %v", err)
	}

	t.Cleanup(func() {
		keys, _ := client.Keys(ctx, "payload:*").Result()
		if len(keys) > 0 {
			client.Del(ctx, keys...)
		}
		client.Close()
	})

	return client
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func TestConnectValkey(t *testing.T) {
	host := envOr("VALKEY_HOST", "localhost")
	port := envOr("VALKEY_PORT", "6379")

	client, err := ConnectValkey(host, port, "")
	if err != nil {
		t.Skipf("skipping: Valkey not available: %v", err)
	}
	defer client.Close()

	ctx := context.Background()
	pong, err := client.Ping(ctx).Result()
	if err != nil {
		t.Fatalf("Ping: %v", err)
	}
	if pong != "PONG" {
		t.Errorf("expected PONG, got %q", pong)
	}
}

func TestKey(t *testing.T) {
	got := Key("listings", "mk", "category=food", "page=2")
	want := "listings:mk:category=food:page=2"
	if got != want {
		t.Errorf("Key: got %q, want %q", got, want)
	}

	if Key("categories", "en") != "categories:en" {
		t.Errorf("Key without parts: got %q", Key("categories", "en"))
	}
}

func TestPayloadCacheSetAndGet(t *testing.T) {
	client := testValkeyClient(t)
	pc := NewPayloadCache(client, 1*time.Minute)

	ctx := context.Background()

	// Miss.
	data, ok := pc.Get(ctx, "listings:en")
	if ok {
		t.Error("expected cache miss")
	}
	if data != nil {
		t.Error("expected nil data on miss")
	}

	// Set.
	payload := []byte(`{"items":[],"total":0}`)
	pc.Set(ctx, "listings:en", payload)

	// Hit.
	data, ok = pc.Get(ctx, "listings:en")
	if !ok {
		t.Error("expected cache hit")
	}
	if string(data) != string(payload) {
		t.Errorf("data mismatch: got %q, want %q", data, payload)
	}
}

func TestPayloadCacheInvalidateEntity(t *testing.T) {
	client := testValkeyClient(t)
	pc := NewPayloadCache(client, 1*time.Minute)

	ctx := context.Background()

	pc.Set(ctx, Key("listings", "en"), []byte("a"))
	pc.Set(ctx, Key("listings", "mk", "featured=true"), []byte("b"))
	pc.Set(ctx, Key("events", "en"), []byte("c"))

	pc.InvalidateEntity(ctx, "listings")

	// Listing payloads in both languages are gone.
	if _, ok := pc.Get(ctx, Key("listings", "en")); ok {
		t.Error("expected miss for listings:en after invalidation")
	}
	if _, ok := pc.Get(ctx, Key("listings", "mk", "featured=true")); ok {
		t.Error("expected miss for listings:mk after invalidation")
	}

	// Other entities survive.
	if _, ok := pc.Get(ctx, Key("events", "en")); !ok {
		t.Error("expected events:en to survive listings invalidation")
	}
}

func TestPayloadCacheInvalidateAll(t *testing.T) {
	client := testValkeyClient(t)
	pc := NewPayloadCache(client, 1*time.Minute)

	ctx := context.Background()

	pc.Set(ctx, "a", []byte("a"))
	pc.Set(ctx, "b", []byte("b"))

	pc.InvalidateAll(ctx)

	for _, key := range []string{"a", "b"} {
		if _, ok := pc.Get(ctx, key); ok {
			t.Errorf("expected miss for %q after InvalidateAll", key)
		}
	}
}

func TestNewPayloadCacheDefaultTTL(t *testing.T) {
	client := testValkeyClient(t)

	// TTL = 0 should use default.
	pc := NewPayloadCache(client, 0)
	if pc.ttl != DefaultPayloadTTL {
		t.Errorf("expected DefaultPayloadTTL (%v), got %v", DefaultPayloadTTL, pc.ttl)
	}
}
