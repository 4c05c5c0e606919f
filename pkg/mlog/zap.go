package mlog

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// redactedKeys are never logged verbatim; their value is replaced with a
// fixed placeholder regardless of case.
var redactedKeys = map[string]struct{}{
	"password":      {},
	"password_hash": {},
	"token":         {},
	"access_token":  {},
	"session_id":    {},
	"csrf_token":    {},
	"device_cookie": {},
	"authorization": {},
	"secret":        {},
	"api_key":       {},
}

const redactedPlaceholder = "[REDACTED]"

// zapLogger is the production Logger implementation, backed by a
// zap.SugaredLogger. It is intentionally the only type in this package that
// imports zap.
type zapLogger struct {
	sugar *zap.SugaredLogger
}

// NewZapLogger builds a Logger writing JSON in production environments and
// console-formatted output otherwise.
func NewZapLogger(env string) Logger {
	var cfg zap.Config

	if env == "prod" || env == "production" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	cfg.OutputPaths = []string{"stdout"}

	logger, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		// Logging setup itself must never block startup.
		fallback, _ := zap.NewProduction()
		logger = fallback
	}

	return &zapLogger{sugar: logger.Sugar()}
}

func redact(args []any) []any {
	out := make([]any, len(args))

	for i, a := range args {
		if i%2 == 1 {
			if key, ok := toString(args[i-1]); ok {
				if _, sensitive := redactedKeys[strings.ToLower(key)]; sensitive {
					out[i] = redactedPlaceholder
					continue
				}
			}
		}
		out[i] = a
	}

	return out
}

func toString(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

func (l *zapLogger) Info(args ...any)                    { l.sugar.Info(args...) }
func (l *zapLogger) Infof(format string, args ...any)     { l.sugar.Infof(format, args...) }
func (l *zapLogger) Warn(args ...any)                     { l.sugar.Warn(args...) }
func (l *zapLogger) Warnf(format string, args ...any)     { l.sugar.Warnf(format, args...) }
func (l *zapLogger) Error(args ...any)                    { l.sugar.Error(args...) }
func (l *zapLogger) Errorf(format string, args ...any)    { l.sugar.Errorf(format, args...) }
func (l *zapLogger) Debug(args ...any)                    { l.sugar.Debug(args...) }
func (l *zapLogger) Debugf(format string, args ...any)    { l.sugar.Debugf(format, args...) }
func (l *zapLogger) Fatal(args ...any)                    { l.sugar.Fatal(args...) }

func (l *zapLogger) WithFields(fields ...any) Logger {
	return &zapLogger{sugar: l.sugar.With(redact(fields)...)}
}

func (l *zapLogger) WithContext(ctx context.Context) Logger {
	sc := trace.SpanContextFromContext(ctx)
	if !sc.IsValid() {
		return l
	}

	return &zapLogger{sugar: l.sugar.With("trace_id", sc.TraceID().String(), "span_id", sc.SpanID().String())}
}

// NoOpLogger discards everything; used in tests that pass a Logger through
// constructors without asserting on log content.
type NoOpLogger struct{}

func NewNoOpLogger() Logger                                { return NoOpLogger{} }
func (NoOpLogger) Info(args ...any)                         {}
func (NoOpLogger) Infof(format string, args ...any)         {}
func (NoOpLogger) Warn(args ...any)                         {}
func (NoOpLogger) Warnf(format string, args ...any)         {}
func (NoOpLogger) Error(args ...any)                         {}
func (NoOpLogger) Errorf(format string, args ...any)        {}
func (NoOpLogger) Debug(args ...any)                         {}
func (NoOpLogger) Debugf(format string, args ...any)        {}
func (NoOpLogger) Fatal(args ...any)                         {}
func (NoOpLogger) WithFields(fields ...any) Logger          { return NoOpLogger{} }
func (NoOpLogger) WithContext(ctx context.Context) Logger   { return NoOpLogger{} }
