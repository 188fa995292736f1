package telemetry

import (
	"context"

	"go.opentelemetry.io/otel/metric"
)

// ContentCache is the cache surface instrumented by CacheMetrics
type ContentCache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, value any) error
	Invalidate(ctx context.Context, keys ...string) error
}

// CacheMetrics counts public cache lookups and admin invalidations
type CacheMetrics struct {
	lookups       *Counter
	invalidations *Counter
}

// NewCacheMetrics creates the cache instruments on meter
func NewCacheMetrics(meter metric.Meter) (*CacheMetrics, error) {
	if meter == nil {
		return nil, ErrMeterNil
	}
	lookups, err := NewCounter(meter,
		"portfolio_cache_lookups_total",
		"Public content cache lookups by result",
		"{lookup}",
	)
	if err != nil {
		return nil, err
	}
	invalidations, err := NewCounter(meter,
		"portfolio_cache_invalidations_total",
		"Cache invalidations triggered by admin writes",
		"{invalidation}",
	)
	if err != nil {
		return nil, err
	}
	return &CacheMetrics{lookups: lookups, invalidations: invalidations}, nil
}

// Wrap returns a cache that records metrics around inner
func (m *CacheMetrics) Wrap(inner ContentCache) ContentCache {
	return &instrumentedCache{inner: inner, metrics: m}
}

type instrumentedCache struct {
	inner   ContentCache
	metrics *CacheMetrics
}

func (c *instrumentedCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	hit, err := c.inner.Get(ctx, key, dst)
	result := "miss"
	switch {
	case err != nil:
		result = "error"
	case hit:
		result = "hit"
	}
	c.metrics.lookups.Inc(ctx, AttrCollection.String(key), AttrCacheResult.String(result))
	return hit, err
}

func (c *instrumentedCache) Set(ctx context.Context, key string, value any) error {
	return c.inner.Set(ctx, key, value)
}

func (c *instrumentedCache) Invalidate(ctx context.Context, keys ...string) error {
	for _, k := range keys {
		c.metrics.invalidations.Inc(ctx, AttrCollection.String(k))
	}
	return c.inner.Invalidate(ctx, keys...)
}
