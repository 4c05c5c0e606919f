// Package sessioncache fronts session-resolution lookups with a short-TTL
// Redis cache, so a bursty client hitting many endpoints in the same
// session doesn't round-trip Mongo on every request. It never replaces the
// database as the source of truth: on a cache miss or a Redis outage,
// callers fall back to the repository directly.
package sessioncache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/bondifuzz/api-gateway/internal/domain/user"
	"github.com/bondifuzz/api-gateway/pkg/mlog"
	"github.com/bondifuzz/api-gateway/pkg/mredis"
)

// Cache wraps a Redis connection with the session-id-keyed get/set/evict
// operations session-resolution middleware needs.
type Cache struct {
	conn   *mredis.Connection
	ttl    time.Duration
	logger mlog.Logger
}

// New builds a Cache over conn, caching resolved users for ttl.
func New(conn *mredis.Connection, ttl time.Duration, logger mlog.Logger) *Cache {
	return &Cache{conn: conn, ttl: ttl, logger: logger}
}

func key(sessionID string) string { return "session:" + sessionID }

// Get returns the cached user for sessionID, or ok=false on a miss or any
// Redis error (the caller is expected to fall back to the repository).
func (c *Cache) Get(ctx context.Context, sessionID string) (u *user.User, ok bool) {
	client, err := c.conn.GetClient(ctx)
	if err != nil {
		c.logger.Warnf("sessioncache: redis unavailable, falling back: %v", err)
		return nil, false
	}

	raw, err := client.Get(ctx, key(sessionID)).Bytes()
	if err != nil {
		return nil, false
	}

	var cached user.User
	if err := json.Unmarshal(raw, &cached); err != nil {
		c.logger.Warnf("sessioncache: corrupt entry for session %s: %v", sessionID, err)
		return nil, false
	}

	return &cached, true
}

// Set caches u under sessionID. Failures are logged, not propagated — the
// cache is an optimization, never a correctness dependency.
func (c *Cache) Set(ctx context.Context, sessionID string, u *user.User) {
	client, err := c.conn.GetClient(ctx)
	if err != nil {
		return
	}

	body, err := json.Marshal(u)
	if err != nil {
		c.logger.Warnf("sessioncache: marshal failed for session %s: %v", sessionID, err)
		return
	}

	if err := client.Set(ctx, key(sessionID), body, c.ttl).Err(); err != nil {
		c.logger.Warnf("sessioncache: set failed for session %s: %v", sessionID, err)
	}
}

// Invalidate evicts sessionID immediately, used on logout and account
// mutation (disable, confirm, deletion) so a short-lived stale entry never
// outlives the action that changed it.
func (c *Cache) Invalidate(ctx context.Context, sessionID string) {
	client, err := c.conn.GetClient(ctx)
	if err != nil {
		return
	}

	if err := client.Del(ctx, key(sessionID)).Err(); err != nil {
		c.logger.Warnf("sessioncache: invalidate failed for session %s: %v", sessionID, err)
	}
}
