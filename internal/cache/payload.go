// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// payload.go provides a Valkey-backed cache for serialized API responses.
// Public list endpoints serve the same localized payload to every caller,
// so the encoded JSON is cached per endpoint, language, and filter set and
// invalidated whenever an admin write touches the underlying entity.
package cache

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// payloadKeyPrefix namespaces cached payloads in Valkey.
	payloadKeyPrefix = "payload:"

	// DefaultPayloadTTL is how long a cached response stays fresh without
	// an explicit invalidation.
	DefaultPayloadTTL = 5 * time.Minute
)

// PayloadCache manages serialized JSON response caching in Valkey.
type PayloadCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewPayloadCache creates a payload cache backed by the given Valkey client.
func NewPayloadCache(client *redis.Client, ttl time.Duration) *PayloadCache {
	if ttl == 0 {
		ttl = DefaultPayloadTTL
	}
	return &PayloadCache{client: client, ttl: ttl}
}

// Key builds a cache key from an entity namespace, request language, and
// the normalized filter/pagination parts of the request.
func Key(entity, lang string, parts ...string) string {
	elems := append([]string{entity, lang}, parts...)
	return strings.Join(elems, ":")
}

// Get retrieves a cached payload. Returns false on miss or error; cache
// failures must never fail a request.
func (pc *PayloadCache) Get(ctx context.Context, key string) ([]byte, bool) {
	val, err := pc.client.Get(ctx, payloadKeyPrefix+key).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		slog.Warn("payload cache get error", "key", key, "error", err)
		return nil, false
	}
	slog.Debug("payload cache hit", "key", key)
	return val, true
}

// Set stores an encoded payload with the configured TTL.
func (pc *PayloadCache) Set(ctx context.Context, key string, payload []byte) {
	if err := pc.client.Set(ctx, payloadKeyPrefix+key, payload, pc.ttl).Err(); err != nil {
		slog.Warn("payload cache set error", "key", key, "error", err)
	}
}

// InvalidateEntity removes every cached payload under an entity namespace.
// Admin writes call this so public reads never serve stale content longer
// than one in-flight request.
func (pc *PayloadCache) InvalidateEntity(ctx context.Context, entity string) {
	pc.invalidatePattern(ctx, payloadKeyPrefix+entity+":*")
}

// InvalidateAll removes every cached payload.
func (pc *PayloadCache) InvalidateAll(ctx context.Context) {
	pc.invalidatePattern(ctx, payloadKeyPrefix+"*")
}

// invalidatePattern deletes keys matching a pattern via SCAN so large
// keyspaces never block Valkey the way KEYS would.
func (pc *PayloadCache) invalidatePattern(ctx context.Context, pattern string) {
	var cursor uint64
	var deleted int
	for {
		keys, nextCursor, err := pc.client.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			slog.Warn("payload cache scan error", "error", err)
			return
		}
		if len(keys) > 0 {
			if err := pc.client.Del(ctx, keys...).Err(); err != nil {
				slog.Warn("payload cache bulk delete error", "error", err)
			}
			deleted += len(keys)
		}
		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}
	if deleted > 0 {
		slog.Debug("payload cache invalidated", "pattern", pattern, "deleted", deleted)
	}
}
