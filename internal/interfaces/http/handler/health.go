package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/portfolio/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// Pinger reports whether a backing service is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler answers liveness and readiness probes
type HealthHandler struct {
	checks  map[string]Pinger
	timeout time.Duration
}

// NewHealthHandler creates a health handler over the named dependencies
func NewHealthHandler(checks map[string]Pinger) *HealthHandler {
	return &HealthHandler{checks: checks, timeout: 2 * time.Second}
}

// Live always answers 200 while the process serves requests
func (h *HealthHandler) Live(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Ready pings every dependency and answers 503 if any is down
func (h *HealthHandler) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	status := http.StatusOK
	results := make(map[string]string, len(h.checks))
	for name, p := range h.checks {
		if err := p.Ping(ctx); err != nil {
			logger.L(ctx).Warn("Readiness check failed", zap.String("dependency", name), zap.Error(err))
			results[name] = "down"
			status = http.StatusServiceUnavailable
			continue
		}
		results[name] = "up"
	}

	overall := "ok"
	if status != http.StatusOK {
		overall = "degraded"
	}
	c.JSON(status, gin.H{"status": overall, "checks": results})
}
