package bootstrap

import "context"

// Close tears down every backend connection, best-effort, logging rather
// than failing on individual errors since this only ever runs during
// shutdown.
func (d *Dependencies) Close(ctx context.Context) {
	if err := d.Mongo.Disconnect(ctx); err != nil {
		d.Logger.Warnf("bootstrap: mongo disconnect: %v", err)
	}

	if err := d.Redis.Disconnect(ctx); err != nil {
		d.Logger.Warnf("bootstrap: redis disconnect: %v", err)
	}

	if err := d.RabbitMQ.Close(); err != nil {
		d.Logger.Warnf("bootstrap: rabbitmq close: %v", err)
	}
}
