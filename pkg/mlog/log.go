// Package mlog provides the structured logger used across the gateway and
// the consumer worker. It wraps zap behind a small interface so call sites
// never import zap directly.
package mlog

import "context"

// Logger is the structured logging contract implemented by zapLogger. A
// NoOpLogger implementation is also provided for tests that don't care about
// log output.
type Logger interface {
	Info(args ...any)
	Infof(format string, args ...any)
	Warn(args ...any)
	Warnf(format string, args ...any)
	Error(args ...any)
	Errorf(format string, args ...any)
	Debug(args ...any)
	Debugf(format string, args ...any)
	Fatal(args ...any)

	// WithFields returns a derived logger carrying the given key/value pairs
	// on every subsequent line. The receiver is left unchanged.
	WithFields(fields ...any) Logger

	// WithContext attaches trace/span identifiers found on ctx, if any.
	WithContext(ctx context.Context) Logger
}
