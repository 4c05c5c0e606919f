package bootstrap

import (
	"context"

	"github.com/bondifuzz/api-gateway/internal/launcher"
	"github.com/bondifuzz/api-gateway/internal/mq"
)

// ConsumerApp drains the gateway's single own queue and dispatches every
// delivery to a consumer.UseCase, grounded on the teacher's Server/Service
// App shape but wrapping mq.Runtime.Consume instead of fiber.Listen.
type ConsumerApp struct {
	runtime *mq.Runtime
	queue   string
	handle  mq.Handler
}

// NewConsumerApp builds a ConsumerApp draining queue on rt, dispatching
// through handle.
func NewConsumerApp(rt *mq.Runtime, queue string, handle mq.Handler) *ConsumerApp {
	return &ConsumerApp{runtime: rt, queue: queue, handle: handle}
}

// Run consumes until l.Context is cancelled.
func (c *ConsumerApp) Run(l *launcher.Launcher) error {
	err := c.runtime.Consume(l.Context, c.queue, c.handle)
	if err == context.Canceled {
		return nil
	}

	return err
}
