package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func tracedRouter(recorder *tracetest.SpanRecorder) *gin.Engine {
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	cfg := DefaultTracingConfig()
	cfg.TracerProvider = tp

	router := gin.New()
	router.Use(RequestID(), Tracing(cfg))
	router.GET("/api/v1/public/projects/:id", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	router.GET("/boom", func(c *gin.Context) {
		c.Status(http.StatusInternalServerError)
	})
	router.GET("/health", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router
}

func spanAttr(span sdktrace.ReadOnlySpan, key attribute.Key) (attribute.Value, bool) {
	for _, kv := range span.Attributes() {
		if kv.Key == key {
			return kv.Value, true
		}
	}
	return attribute.Value{}, false
}

func TestTracing_NamesSpanAfterRoute(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	router := tracedRouter(recorder)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/public/projects/p1", nil)
	req.Header.Set(RequestIDHeader, "req-42")
	serve(router, req)

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Contains(t, spans[0].Name(), "/api/v1/public/projects/:id")
	v, ok := spanAttr(spans[0], "request_id")
	require.True(t, ok)
	assert.Equal(t, "req-42", v.AsString())
}

func TestTracing_MarksServerErrors(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	serve(tracedRouter(recorder), httptest.NewRequest(http.MethodGet, "/boom", nil))

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status().Code)
}

func TestTracing_SkipsHealth(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	serve(tracedRouter(recorder), httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Empty(t, recorder.Ended())
}

func TestTracing_Disabled(t *testing.T) {
	router := gin.New()
	router.Use(Tracing(TracingConfig{}))
	router.GET("/test", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := serve(router, httptest.NewRequest(http.MethodGet, "/test", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
