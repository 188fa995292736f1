package middleware

import (
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"
	"github.com/portfolio/backend/internal/infrastructure/logger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// TracingConfig holds configuration for the tracing middleware.
type TracingConfig struct {
	// ServiceName is the name of the service for trace identification.
	ServiceName string
	// Enabled controls whether tracing is active.
	Enabled bool
	// SkipPaths are not traced, e.g. health probes.
	SkipPaths []string
	// TracerProvider overrides the global provider.
	TracerProvider trace.TracerProvider
}

// DefaultTracingConfig returns default tracing configuration.
func DefaultTracingConfig() TracingConfig {
	return TracingConfig{
		ServiceName: "portfolio-backend",
		Enabled:     true,
		SkipPaths:   []string{"/health", "/health/live"},
	}
}

// Tracing returns OpenTelemetry tracing middleware. It wraps otelgin, so
// spans are named after the route pattern, and tags each span with the
// request id and, for admin requests, the signed-in username. Responses of
// 500 and above mark the span as failed.
func Tracing(cfg TracingConfig) gin.HandlerFunc {
	if !cfg.Enabled {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	opts := []otelgin.Option{
		otelgin.WithFilter(func(r *http.Request) bool {
			return !slices.Contains(cfg.SkipPaths, r.URL.Path)
		}),
	}
	if cfg.TracerProvider != nil {
		opts = append(opts, otelgin.WithTracerProvider(cfg.TracerProvider))
	}
	base := otelgin.Middleware(cfg.ServiceName, opts...)

	return func(c *gin.Context) {
		base(c)

		span := trace.SpanFromContext(c.Request.Context())
		if !span.IsRecording() {
			return
		}
		enrichSpan(c, span)
		if status := c.Writer.Status(); status >= http.StatusInternalServerError {
			span.SetStatus(codes.Error, http.StatusText(status))
		}
	}
}

// TracingAttributeInjector tags the current span with the authenticated
// admin. Place it after the JWT middleware.
func TracingAttributeInjector() gin.HandlerFunc {
	return func(c *gin.Context) {
		span := trace.SpanFromContext(c.Request.Context())
		if span.IsRecording() {
			enrichSpan(c, span)
		}
		c.Next()
	}
}

func enrichSpan(c *gin.Context, span trace.Span) {
	if id := c.GetString(logger.RequestIDKey); id != "" {
		span.SetAttributes(attribute.String("request_id", id))
	}
	if user := GetJWTUsername(c); user != "" {
		span.SetAttributes(attribute.String("enduser.id", user))
	}
}
