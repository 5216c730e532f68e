// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// page.go provides a Valkey-backed cache of rendered public profile
// pages. Once a username's page has been rendered, subsequent visits
// skip the profile/link queries and template execution entirely until
// the TTL expires or the owner edits something.
package cache

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// pageKeyPrefix namespaces cached profile pages in Valkey.
	pageKeyPrefix = "profile:"

	// DefaultPageTTL is how long a rendered profile page stays cached.
	DefaultPageTTL = 5 * time.Minute
)

// PageCache manages full-page HTML caching in Valkey, keyed by username.
type PageCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewPageCache creates a new page cache backed by the given Valkey client.
func NewPageCache(client *redis.Client, ttl time.Duration) *PageCache {
	if ttl == 0 {
		ttl = DefaultPageTTL
	}
	return &PageCache{client: client, ttl: ttl}
}

// Get retrieves the cached HTML for a username. Returns false on miss.
func (pc *PageCache) Get(ctx context.Context, username string) ([]byte, bool) {
	val, err := pc.client.Get(ctx, pageKeyPrefix+username).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		slog.Warn("page cache get error", "username", username, "error", err)
		return nil, false
	}
	slog.Debug("page cache hit", "username", username)
	return val, true
}

// Set stores rendered HTML for a username with the configured TTL.
func (pc *PageCache) Set(ctx context.Context, username string, html []byte) {
	if err := pc.client.Set(ctx, pageKeyPrefix+username, html, pc.ttl).Err(); err != nil {
		slog.Warn("page cache set error", "username", username, "error", err)
	}
}

// Invalidate removes a username's cached page. Called after any profile,
// theme, or link mutation by the owner so the public page never serves a
// stale theme longer than one request.
func (pc *PageCache) Invalidate(ctx context.Context, username string) {
	if err := pc.client.Del(ctx, pageKeyPrefix+username).Err(); err != nil {
		slog.Warn("page cache invalidate error", "username", username, "error", err)
	}
	slog.Debug("page cache invalidated", "username", username)
}
