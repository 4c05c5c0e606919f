// Package mredis wraps go-redis in a small connection helper, mirroring
// the shape of the gateway's mmongo/mrabbitmq/mobjectstorage wrappers. It
// backs the session-lookup cache only — the failed-login bruteforce
// counter stays in-memory per-replica (see internal/auth.FailedLoginCounter
// and DESIGN.md's reconciliation note).
package mredis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/bondifuzz/api-gateway/pkg/mlog"
)

// Connection is a singleton hub for the gateway's cache backend.
type Connection struct {
	Address  string
	Password string
	DB       int
	Logger   mlog.Logger

	client    *redis.Client
	connected bool
}

// Connect establishes the connection and pings it, failing fast on startup
// if the cache is unreachable.
func (c *Connection) Connect(ctx context.Context) error {
	c.Logger.Info("connecting to redis...")

	client := redis.NewClient(&redis.Options{
		Addr:     c.Address,
		Password: c.Password,
		DB:       c.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("mredis: ping: %w", err)
	}

	c.Logger.Info("connected to redis")

	c.client = client
	c.connected = true

	return nil
}

// GetClient returns the redis client, connecting lazily on first use.
func (c *Connection) GetClient(ctx context.Context) (*redis.Client, error) {
	if c.client == nil {
		if err := c.Connect(ctx); err != nil {
			return nil, err
		}
	}

	return c.client, nil
}

// HealthCheck reports whether the connection is live.
func (c *Connection) HealthCheck(ctx context.Context) bool {
	if c.client == nil {
		return false
	}

	return c.client.Ping(ctx).Err() == nil
}

// Disconnect tears down the connection during graceful shutdown.
func (c *Connection) Disconnect(ctx context.Context) error {
	if c.client == nil {
		return nil
	}

	return c.client.Close()
}
