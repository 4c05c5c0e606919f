package bootstrap

import (
	"context"
	"os/signal"
	"syscall"
)

// ShutdownContext returns a context cancelled on SIGINT/SIGTERM, the signal
// set every cmd/ binary shuts down on. The teacher's older service package
// predates this (its common.Launcher.Run blocks forever), so this is a
// straightforward idiomatic addition rather than an adaptation of a
// specific teacher file.
func ShutdownContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}
