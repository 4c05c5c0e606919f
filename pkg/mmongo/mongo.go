// Package mmongo wraps the mongo-driver client in a small connection
// helper, adapted from the teacher's own mongo connection wrapper.
package mmongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/bondifuzz/api-gateway/pkg/mlog"
)

// MongoConnection is a singleton hub for the gateway's document database.
type MongoConnection struct {
	ConnectionStringSource string
	Database               string
	Logger                 mlog.Logger

	client    *mongo.Client
	connected bool
}

// Connect establishes the connection and pings it, failing fast on startup
// if the database is unreachable.
func (mc *MongoConnection) Connect(ctx context.Context) error {
	mc.Logger.Info("connecting to mongodb...")

	opts := options.Client().ApplyURI(mc.ConnectionStringSource)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return fmt.Errorf("mmongo: connect: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return fmt.Errorf("mmongo: ping: %w", err)
	}

	mc.Logger.Info("connected to mongodb")

	mc.client = client
	mc.connected = true

	return nil
}

// GetDB returns the database handle, connecting lazily on first use.
func (mc *MongoConnection) GetDB(ctx context.Context) (*mongo.Database, error) {
	if mc.client == nil {
		if err := mc.Connect(ctx); err != nil {
			return nil, err
		}
	}

	return mc.client.Database(mc.Database), nil
}

// HealthCheck reports whether the connection is live.
func (mc *MongoConnection) HealthCheck(ctx context.Context) bool {
	if mc.client == nil {
		return false
	}

	return mc.client.Ping(ctx, nil) == nil
}

// Disconnect tears down the connection during graceful shutdown.
func (mc *MongoConnection) Disconnect(ctx context.Context) error {
	if mc.client == nil {
		return nil
	}

	return mc.client.Disconnect(ctx)
}

// WithTransaction runs fn inside a multi-document ACID transaction,
// required by set_active_revision (§4.3: four document updates across the
// fuzzers and revisions collections must commit atomically). fn receives a
// mongo.SessionContext, which satisfies context.Context and is accepted
// transparently by every Collection[T] method.
func (mc *MongoConnection) WithTransaction(ctx context.Context, fn func(sessCtx mongo.SessionContext) error) error {
	session, err := mc.client.StartSession()
	if err != nil {
		return fmt.Errorf("mmongo: start session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (interface{}, error) {
		return nil, fn(sessCtx)
	})

	return err
}
