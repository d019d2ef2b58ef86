// Package logtrace provides structured, correlation-aware logging for the
// PDP engine. All log entries flow through a single zap logger; callers pass
// a context so that a correlation ID attached at the operation boundary is
// carried through every log line of that proof round.
package logtrace

import (
	"context"
	"os"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type correlationIDKey struct{}

var (
	mu     sync.RWMutex
	logger = newLogger("pdp-engine", zapcore.InfoLevel)
)

func newLogger(service string, level zapcore.Level) *zap.Logger {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "ts"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderCfg),
		zapcore.Lock(os.Stdout),
		level,
	)
	return zap.New(core).With(zap.String("service", service))
}

// Setup replaces the process logger. Safe to call more than once; the last
// call wins. Intended for the CLI entrypoint and tests.
func Setup(service string, level zapcore.Level) {
	mu.Lock()
	defer mu.Unlock()
	logger = newLogger(service, level)
}

// CtxWithCorrelationID returns a context carrying the given correlation ID.
// An empty id generates a fresh UUID.
func CtxWithCorrelationID(ctx context.Context, id string) context.Context {
	if id == "" {
		id = uuid.NewString()
	}
	return context.WithValue(ctx, correlationIDKey{}, id)
}

func extractCorrelationID(ctx context.Context) string {
	if ctx == nil {
		return "unknown"
	}
	if id, ok := ctx.Value(correlationIDKey{}).(string); ok && id != "" {
		return id
	}
	return "unknown"
}

func zapFields(ctx context.Context, fields Fields) []zap.Field {
	out := make([]zap.Field, 0, len(fields)+1)
	if cid := extractCorrelationID(ctx); cid != "unknown" {
		out = append(out, zap.String(FieldCorrelationID, cid))
	}
	for key, value := range fields {
		out = append(out, zap.Any(key, value))
	}
	return out
}

func log(ctx context.Context, level zapcore.Level, msg string, fields Fields) {
	mu.RLock()
	l := logger
	mu.RUnlock()
	if ce := l.Check(level, msg); ce != nil {
		ce.Write(zapFields(ctx, fields)...)
	}
}

// Debug logs a message at debug level with structured fields.
func Debug(ctx context.Context, msg string, fields Fields) {
	log(ctx, zapcore.DebugLevel, msg, fields)
}

// Info logs a message at info level with structured fields.
func Info(ctx context.Context, msg string, fields Fields) {
	log(ctx, zapcore.InfoLevel, msg, fields)
}

// Warn logs a message at warn level with structured fields.
func Warn(ctx context.Context, msg string, fields Fields) {
	log(ctx, zapcore.WarnLevel, msg, fields)
}

// Error logs a message at error level with structured fields.
func Error(ctx context.Context, msg string, fields Fields) {
	log(ctx, zapcore.ErrorLevel, msg, fields)
}
