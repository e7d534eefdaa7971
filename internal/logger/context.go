package logger

import (
	"context"

	"go.uber.org/zap"
)

type ctxKey int

const requestIDKey ctxKey = iota

// WithRequestID stores the request id that FromCtx tags log entries with.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// FromCtx returns the global logger, tagged with the request id when the
// request middleware has set one.
func FromCtx(ctx context.Context) *zap.Logger {
	if id, ok := ctx.Value(requestIDKey).(string); ok && id != "" {
		return L().With(zap.String("request_id", id))
	}
	return L()
}
