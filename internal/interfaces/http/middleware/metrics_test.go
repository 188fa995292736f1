package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/portfolio/backend/internal/infrastructure/telemetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.uber.org/zap"
)

func collectMetrics(t *testing.T, reader *sdkmetric.ManualReader) map[string]metricdata.Aggregation {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	out := map[string]metricdata.Aggregation{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			out[m.Name] = m.Data
		}
	}
	return out
}

func TestHTTPMetrics_Disabled(t *testing.T) {
	mw, err := HTTPMetrics(nil)
	require.NoError(t, err)

	w := serve(newTestRouter(mw), httptest.NewRequest(http.MethodGet, "/test", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHTTPMetrics_RecordsRequests(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := telemetry.NewMeterProviderWithReader(reader, zap.NewNop())
	defer mp.Shutdown(context.Background())

	mw, err := HTTPMetrics(mp)
	require.NoError(t, err)

	router := gin.New()
	router.Use(mw)
	router.GET("/projects/:id", func(c *gin.Context) { c.String(http.StatusOK, "project") })

	serve(router, httptest.NewRequest(http.MethodGet, "/projects/a", nil))
	serve(router, httptest.NewRequest(http.MethodGet, "/projects/b", nil))
	serve(router, httptest.NewRequest(http.MethodGet, "/missing", nil))

	data := collectMetrics(t, reader)

	total, ok := data["http_server_request_total"].(metricdata.Sum[int64])
	require.True(t, ok)
	counts := map[string]int64{}
	for _, dp := range total.DataPoints {
		route, _ := dp.Attributes.Value(telemetry.AttrHTTPRoute)
		counts[route.AsString()] += dp.Value
	}
	assert.Equal(t, map[string]int64{"/projects/:id": 2, "unknown": 1}, counts)

	okSet := attribute.NewSet(
		telemetry.AttrHTTPMethod.String(http.MethodGet),
		telemetry.AttrHTTPRoute.String("/projects/:id"),
		telemetry.AttrHTTPStatusCode.Int(http.StatusOK),
	)
	var found bool
	for _, dp := range total.DataPoints {
		if dp.Attributes.Equals(&okSet) {
			found = true
		}
	}
	assert.True(t, found)

	duration, ok := data["http_server_request_duration_seconds"].(metricdata.Histogram[float64])
	require.True(t, ok)
	assert.NotEmpty(t, duration.DataPoints)

	active, ok := data["http_server_active_requests"].(metricdata.Sum[int64])
	require.True(t, ok)
	for _, dp := range active.DataPoints {
		assert.Zero(t, dp.Value)
	}
}
