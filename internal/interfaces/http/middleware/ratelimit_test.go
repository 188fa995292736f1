package middleware

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"
)

func newLimiter(t *testing.T, limit int, window time.Duration) *RateLimiter {
	t.Helper()
	limiter := NewRateLimiter(limit, window)
	t.Cleanup(limiter.Stop)
	return limiter
}

func TestRateLimiter(t *testing.T) {
	t.Run("blocks requests exceeding limit", func(t *testing.T) {
		limiter := newLimiter(t, 3, time.Minute)

		for i := 0; i < 3; i++ {
			assert.True(t, limiter.Allow("client"), "request %d should be allowed", i+1)
		}
		assert.False(t, limiter.Allow("client"))
		assert.Equal(t, 0, limiter.Remaining("client"))
	})

	t.Run("separate limits per client", func(t *testing.T) {
		limiter := newLimiter(t, 1, time.Minute)

		assert.True(t, limiter.Allow("clientA"))
		assert.False(t, limiter.Allow("clientA"))
		assert.True(t, limiter.Allow("clientB"))
	})

	t.Run("resets after window", func(t *testing.T) {
		limiter := newLimiter(t, 1, time.Minute)
		now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		limiter.now = func() time.Time { return now }

		assert.True(t, limiter.Allow("client"))
		assert.False(t, limiter.Allow("client"))

		now = now.Add(time.Minute)
		assert.True(t, limiter.Allow("client"))
	})

	t.Run("concurrent access", func(t *testing.T) {
		limiter := newLimiter(t, 100, time.Minute)
		var wg sync.WaitGroup
		for i := 0; i < 50; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				limiter.Allow("shared")
			}()
		}
		wg.Wait()
		assert.Equal(t, 50, limiter.Remaining("shared"))
	})
}

func TestRateLimiter_StopEndsCleanup(t *testing.T) {
	defer goleak.VerifyNone(t)

	limiter := NewRateLimiter(1, time.Millisecond)
	limiter.Stop()
	limiter.Stop()
}

func TestRateLimitMiddleware(t *testing.T) {
	router := newTestRouter(RateLimit(newLimiter(t, 2, time.Minute)))

	for i := 0; i < 2; i++ {
		w := serve(router, httptest.NewRequest(http.MethodGet, "/test", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	}

	w := serve(router, httptest.NewRequest(http.MethodGet, "/test", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), "ERR_RATE_LIMITED")
	assert.Equal(t, "2", w.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "60", w.Header().Get("Retry-After"))
}

func TestRateLimitByKey(t *testing.T) {
	limiter := newLimiter(t, 1, time.Minute)
	router := newTestRouter(RateLimitByKey(limiter, func(c *gin.Context) string {
		return c.GetHeader("X-Client")
	}))

	req := func(client string) int {
		r := httptest.NewRequest(http.MethodGet, "/test", nil)
		r.Header.Set("X-Client", client)
		return serve(router, r).Code
	}

	assert.Equal(t, http.StatusOK, req("a"))
	assert.Equal(t, http.StatusTooManyRequests, req("a"))
	assert.Equal(t, http.StatusOK, req("b"))
}

func TestAuthRateLimit(t *testing.T) {
	router := gin.New()
	router.Use(AuthRateLimit(newLimiter(t, 3, time.Minute)))
	router.POST("/login", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true})
	})

	login := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = "192.168.1.100:12345"
		return serve(router, req)
	}

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, login().Code)
	}

	w := login()
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), "Too many authentication attempts")
}
