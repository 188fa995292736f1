package logger

import (
	"context"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

type contextKey string

const (
	loggerKey    contextKey = "logger"
	requestIDKey contextKey = "request_id"
	userKey      contextKey = "user"
)

// WithContext returns a new context carrying logger
func WithContext(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// FromContext returns the context logger, or a no-op logger
func FromContext(ctx context.Context) *zap.Logger {
	if logger, ok := ctx.Value(loggerKey).(*zap.Logger); ok {
		return logger
	}
	return zap.NewNop()
}

// WithRequestID stores the request id in ctx
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// GetRequestID returns the request id stored in ctx
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// WithUser stores the authenticated admin username in ctx
func WithUser(ctx context.Context, username string) context.Context {
	return context.WithValue(ctx, userKey, username)
}

// GetUser returns the authenticated admin username stored in ctx
func GetUser(ctx context.Context) string {
	user, _ := ctx.Value(userKey).(string)
	return user
}

// L returns the context logger enriched with the request id, user, trace id
// and span id found in ctx.
//
//	logger.L(ctx).Info("Record saved", zap.String("id", id))
func L(ctx context.Context) *zap.Logger {
	l := FromContext(ctx)
	if fields := contextFields(ctx); len(fields) > 0 {
		return l.With(fields...)
	}
	return l
}

// contextFields returns the correlation fields carried by ctx
func contextFields(ctx context.Context) []zap.Field {
	var fields []zap.Field
	if spanCtx := trace.SpanContextFromContext(ctx); spanCtx.IsValid() {
		fields = append(fields,
			zap.String("trace_id", spanCtx.TraceID().String()),
			zap.String("span_id", spanCtx.SpanID().String()),
		)
	}
	if id := GetRequestID(ctx); id != "" {
		fields = append(fields, zap.String("request_id", id))
	}
	if user := GetUser(ctx); user != "" {
		fields = append(fields, zap.String("user", user))
	}
	return fields
}
