package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/portfolio/backend/internal/infrastructure/logger"
	"github.com/portfolio/backend/internal/interfaces/http/dto"
)

// RateLimiter is a fixed-window in-memory limiter keyed by client
type RateLimiter struct {
	mu      sync.Mutex
	clients map[string]*client
	limit   int
	window  time.Duration
	now     func() time.Time

	stopOnce sync.Once
	stopCh   chan struct{}
	doneCh   chan struct{}
}

type client struct {
	tokens    int
	lastReset time.Time
}

// NewRateLimiter creates a limiter allowing limit requests per window and
// starts its cleanup loop. Call Stop to end the loop.
func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		clients: make(map[string]*client),
		limit:   limit,
		window:  window,
		now:     time.Now,
		stopCh:  make(chan struct{}),
		doneCh:  make(chan struct{}),
	}
	go rl.cleanup(window * 2)
	return rl
}

// cleanup drops clients idle for two windows
func (rl *RateLimiter) cleanup(every time.Duration) {
	defer close(rl.doneCh)
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-rl.stopCh:
			return
		case <-ticker.C:
			rl.mu.Lock()
			now := rl.now()
			for key, c := range rl.clients {
				if now.Sub(c.lastReset) > rl.window*2 {
					delete(rl.clients, key)
				}
			}
			rl.mu.Unlock()
		}
	}
}

// Stop ends the cleanup loop. It is safe to call more than once.
func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stopCh) })
	<-rl.doneCh
}

// Allow checks if a request from the given key should be allowed
func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	c, exists := rl.clients[key]
	if !exists || now.Sub(c.lastReset) >= rl.window {
		rl.clients[key] = &client{tokens: rl.limit - 1, lastReset: now}
		return true
	}
	if c.tokens > 0 {
		c.tokens--
		return true
	}
	return false
}

// Remaining returns the number of remaining requests for the given key
func (rl *RateLimiter) Remaining(key string) int {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	c, exists := rl.clients[key]
	if !exists || rl.now().Sub(c.lastReset) >= rl.window {
		return rl.limit
	}
	return c.tokens
}

// Limit returns the requests allowed per window
func (rl *RateLimiter) Limit() int {
	return rl.limit
}

// RateLimit limits requests per client IP
func RateLimit(limiter *RateLimiter) gin.HandlerFunc {
	return RateLimitByKey(limiter, func(c *gin.Context) string { return c.ClientIP() })
}

// AuthRateLimit is the stricter per-IP limit placed in front of login and
// refresh
func AuthRateLimit(limiter *RateLimiter) gin.HandlerFunc {
	return rateLimit(limiter, func(c *gin.Context) string { return "auth:" + c.ClientIP() },
		"Too many authentication attempts. Please try again later.")
}

// RateLimitByKey returns a rate limiting middleware with custom key extractor
func RateLimitByKey(limiter *RateLimiter, keyFunc func(*gin.Context) string) gin.HandlerFunc {
	return rateLimit(limiter, keyFunc, "Too many requests. Please try again later.")
}

func rateLimit(limiter *RateLimiter, keyFunc func(*gin.Context) string, message string) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := keyFunc(c)
		c.Header("X-RateLimit-Limit", strconv.Itoa(limiter.Limit()))

		if !limiter.Allow(key) {
			c.Header("X-RateLimit-Remaining", "0")
			c.Header("Retry-After", strconv.Itoa(int(limiter.window.Seconds())))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.NewErrorResponseWithRequestID(
				dto.ErrCodeRateLimited, message, c.GetString(logger.RequestIDKey),
			))
			return
		}

		c.Header("X-RateLimit-Remaining", strconv.Itoa(limiter.Remaining(key)))
		c.Next()
	}
}
