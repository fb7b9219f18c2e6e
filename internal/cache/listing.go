// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package cache

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	listingKeyPrefix = "listing:"

	// DefaultListingTTL is how long a rendered listing stays cached.
	DefaultListingTTL = 5 * time.Minute
)

// ListingCache stores rendered portfolio listings in Valkey. Cache errors
// are logged and treated as misses.
type ListingCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewListingCache creates a listing cache backed by the given Valkey client.
func NewListingCache(client *redis.Client, ttl time.Duration) *ListingCache {
	if ttl == 0 {
		ttl = DefaultListingTTL
	}
	return &ListingCache{client: client, ttl: ttl}
}

// Get returns the cached markup for key.
func (lc *ListingCache) Get(ctx context.Context, key string) ([]byte, bool) {
	val, err := lc.client.Get(ctx, listingKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false
	}
	if err != nil {
		slog.Warn("listing cache get error", "key", key, "error", err)
		return nil, false
	}
	slog.Debug("listing cache hit", "key", key)
	return val, true
}

// Set stores markup for key with the configured TTL.
func (lc *ListingCache) Set(ctx context.Context, key string, html []byte) {
	if err := lc.client.Set(ctx, listingKeyPrefix+key, html, lc.ttl).Err(); err != nil {
		slog.Warn("listing cache set error", "key", key, "error", err)
	}
}

// InvalidateAll removes every cached listing and returns how many were
// deleted. Used by the cache flush command and after seeding.
func (lc *ListingCache) InvalidateAll(ctx context.Context) int {
	var cursor uint64
	var deleted int
	for {
		keys, next, err := lc.client.Scan(ctx, cursor, listingKeyPrefix+"*", 100).Result()
		if err != nil {
			slog.Warn("listing cache scan error", "error", err)
			return deleted
		}
		if len(keys) > 0 {
			if err := lc.client.Del(ctx, keys...).Err(); err != nil {
				slog.Warn("listing cache bulk delete error", "error", err)
			}
			deleted += len(keys)
		}
		cursor = next
		if cursor == 0 {
			break
		}
	}
	if deleted > 0 {
		slog.Info("listing cache cleared", "deleted", deleted)
	}
	return deleted
}

// ListingKey identifies one rendered listing. Viewers that see the same
// archives get the same key, so the key is built from the visible archive
// set rather than the viewer.
func ListingKey(lang string, visibleArchives []int64, page int) string {
	ids := slices.Clone(visibleArchives)
	slices.Sort(ids)
	ids = slices.Compact(ids)

	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return lang + ":" + strings.Join(parts, ",") + ":" + strconv.Itoa(page)
}
