// Package mrabbitmq wraps an amqp091-go connection in a small connection
// helper, adapted from the teacher's own rabbitmq connection wrapper
// (modernized onto the maintained amqp091-go fork).
package mrabbitmq

import (
	"context"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/bondifuzz/api-gateway/pkg/mlog"
)

// RabbitMQConnection is a singleton hub for the gateway's message broker.
type RabbitMQConnection struct {
	ConnectionStringSource string
	Logger                 mlog.Logger

	conn      *amqp.Connection
	connected bool
}

// Connect opens the broker connection.
func (rc *RabbitMQConnection) Connect(ctx context.Context) error {
	rc.Logger.Info("connecting to rabbitmq...")

	conn, err := amqp.Dial(rc.ConnectionStringSource)
	if err != nil {
		return fmt.Errorf("mrabbitmq: dial: %w", err)
	}

	rc.conn = conn
	rc.connected = true

	rc.Logger.Info("connected to rabbitmq")

	return nil
}

// GetChannel returns a fresh channel over the singleton connection,
// connecting lazily on first use. Channels are not safe for concurrent
// use by multiple goroutines and callers must open one per
// producer/consumer.
func (rc *RabbitMQConnection) GetChannel(ctx context.Context) (*amqp.Channel, error) {
	if rc.conn == nil || rc.conn.IsClosed() {
		if err := rc.Connect(ctx); err != nil {
			return nil, err
		}
	}

	ch, err := rc.conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("mrabbitmq: channel: %w", err)
	}

	return ch, nil
}

// HealthCheck reports whether the underlying connection is open.
func (rc *RabbitMQConnection) HealthCheck() bool {
	return rc.conn != nil && !rc.conn.IsClosed()
}

// Close tears down the connection during graceful shutdown.
func (rc *RabbitMQConnection) Close() error {
	if rc.conn == nil {
		return nil
	}

	return rc.conn.Close()
}
