package logger

import (
	"context"

	"go.uber.org/zap"
)

type ctxKey struct{}

// ContextWithLogger stores a logger in the context.
func ContextWithLogger(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, logger)
}

// FromContext extracts a logger from the context.
// Returns zap.NewNop() if no logger is found.
func FromContext(ctx context.Context) *zap.Logger {
	return FromContextOr(ctx, zap.NewNop())
}

// FromContextOr extracts a logger from the context, falling back to fallback.
func FromContextOr(ctx context.Context, fallback *zap.Logger) *zap.Logger {
	if l, ok := ctx.Value(ctxKey{}).(*zap.Logger); ok {
		return l
	}
	return fallback
}

// WithSession tags a logger with a consultation session ID.
func WithSession(l *zap.Logger, sessionID string) *zap.Logger {
	return l.With(zap.String("session_id", sessionID))
}

// SessionContext tags the request logger in ctx (or fallback when there is none)
// with sessionID and stores it back. Entries logged below a turn then carry
// both request_id and session_id.
func SessionContext(ctx context.Context, fallback *zap.Logger, sessionID string) (context.Context, *zap.Logger) {
	l := WithSession(FromContextOr(ctx, fallback), sessionID)
	return ContextWithLogger(ctx, l), l
}
