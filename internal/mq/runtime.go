package mq

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/bondifuzz/api-gateway/pkg/mlog"
	"github.com/bondifuzz/api-gateway/pkg/mrabbitmq"
)

// ConsumeMessageError is raised by a consumer handler for any unrecoverable
// condition (§4.5): the message is nacked without requeue, landing on the
// dead-letter queue rather than being redelivered forever.
type ConsumeMessageError struct {
	Reason string
}

func (e *ConsumeMessageError) Error() string { return "mq: consume failed: " + e.Reason }

// Runtime is the gateway's one "own" queue plus the four outbound producer
// channels (§4.5), grounded on the teacher's producer/consumer connection
// wrapper shape adapted onto typed JSON payloads instead of raw bytes.
type Runtime struct {
	conn   *mrabbitmq.RabbitMQConnection
	Logger mlog.Logger

	SchedulerExchange       string
	JiraReporterExchange    string
	YoutrackReporterExchange string
	PoolManagerExchange     string

	OwnQueue string
	DLQName  string
}

// NewRuntime builds a Runtime over an already-connected broker connection.
func NewRuntime(conn *mrabbitmq.RabbitMQConnection, logger mlog.Logger) *Runtime {
	return &Runtime{conn: conn, Logger: logger}
}

// Publish JSON-encodes msg and publishes it as a persistent message to
// exchange/routingKey. A failed publish is the producer's caller's
// responsibility to record into the unsent-messages collection for operator
// visibility (SPEC_FULL.md supplement, §4.5).
func (r *Runtime) Publish(ctx context.Context, exchange, routingKey string, msg any) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("mq: marshal: %w", err)
	}

	ch, err := r.conn.GetChannel(ctx)
	if err != nil {
		return fmt.Errorf("mq: get channel: %w", err)
	}
	defer ch.Close()

	err = ch.PublishWithContext(ctx, exchange, routingKey, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("mq: publish %s/%s: %w", exchange, routingKey, err)
	}

	r.Logger.Infof("message published exchange=%s routing_key=%s", exchange, routingKey)

	return nil
}

// Handler processes one inbound delivery's JSON body. routingKey names
// which of the multiplexed message types arrived on the single "own" queue
// (§4.5: "A single 'own' queue receives messages"), since the delivery
// carries no other discriminator. Returning a *ConsumeMessageError sends
// the delivery to the DLQ; any other error is treated the same way (fail
// closed, never silently ack a handler panic).
type Handler func(ctx context.Context, routingKey string, body []byte) error

// Consume opens a dedicated channel on queue and dispatches every delivery
// to handler, acking on success and routing to the dead-letter queue
// (via Nack with requeue=false, relying on the queue's configured
// x-dead-letter-exchange) on failure. It blocks until ctx is cancelled.
func (r *Runtime) Consume(ctx context.Context, queue string, handler Handler) error {
	ch, err := r.conn.GetChannel(ctx)
	if err != nil {
		return fmt.Errorf("mq: get channel: %w", err)
	}
	defer ch.Close()

	deliveries, err := ch.Consume(queue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("mq: consume %s: %w", queue, err)
	}

	r.Logger.Infof("consumer started queue=%s", queue)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-deliveries:
			if !ok {
				return fmt.Errorf("mq: delivery channel closed for %s", queue)
			}

			if err := handler(ctx, d.RoutingKey, d.Body); err != nil {
				r.Logger.Errorf("consumer handler failed queue=%s routing_key=%s error=%s", queue, d.RoutingKey, err.Error())
				_ = d.Nack(false, false)

				continue
			}

			_ = d.Ack(false)
		}
	}
}
