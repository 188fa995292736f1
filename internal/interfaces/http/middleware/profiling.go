package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/portfolio/backend/internal/infrastructure/telemetry"
)

// ProfilingConfig holds configuration for the profiling middleware
type ProfilingConfig struct {
	Enabled   bool
	SkipPaths []string
}

// DefaultProfilingConfig skips the health check
func DefaultProfilingConfig() ProfilingConfig {
	return ProfilingConfig{
		Enabled:   true,
		SkipPaths: []string{"/health"},
	}
}

// Profiling attaches pyroscope labels (method, route and API surface) to
// the request so profiles can be sliced per endpoint
func Profiling(cfg ProfilingConfig) gin.HandlerFunc {
	if !cfg.Enabled {
		return func(c *gin.Context) { c.Next() }
	}
	skip := make(map[string]struct{}, len(cfg.SkipPaths))
	for _, p := range cfg.SkipPaths {
		skip[p] = struct{}{}
	}

	return func(c *gin.Context) {
		if _, ok := skip[c.Request.URL.Path]; ok {
			c.Next()
			return
		}
		route := c.FullPath()
		labels := map[string]string{
			telemetry.ProfilingLabelMethod:  c.Request.Method,
			telemetry.ProfilingLabelRoute:   route,
			telemetry.ProfilingLabelSurface: surfaceOf(route),
		}
		telemetry.WithProfilingLabels(c.Request.Context(), labels, func(ctx context.Context) {
			c.Request = c.Request.WithContext(ctx)
			c.Next()
		})
	}
}

// surfaceOf returns the first segment after the API version:
// "/api/v1/admin/projects/:id" -> "admin"
func surfaceOf(route string) string {
	for _, part := range strings.Split(route, "/") {
		if part == "" || part == "api" || isVersionSegment(part) {
			continue
		}
		return part
	}
	return ""
}

// isVersionSegment reports whether segment looks like v1, v2, ...
func isVersionSegment(segment string) bool {
	if len(segment) < 2 || (segment[0] != 'v' && segment[0] != 'V') {
		return false
	}
	for i := 1; i < len(segment); i++ {
		if segment[i] < '0' || segment[i] > '9' {
			return false
		}
	}
	return true
}
