package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

type section struct {
	Title string   `json:"title"`
	Tags  []string `json:"tags"`
}

func TestMemoryContentCache_GetSet(t *testing.T) {
	defer goleak.VerifyNone(t)

	c := NewMemoryContentCache()
	defer c.Close()
	ctx := context.Background()

	var got section
	hit, err := c.Get(ctx, "projects", &got)
	require.NoError(t, err)
	assert.False(t, hit)

	src := section{Title: "Site", Tags: []string{"go"}}
	require.NoError(t, c.Set(ctx, "projects", src))
	src.Tags[0] = "mutated"

	hit, err = c.Get(ctx, "projects", &got)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, section{Title: "Site", Tags: []string{"go"}}, got, "cached values are copies")

	hits, misses := c.Stats()
	assert.Equal(t, int64(1), hits)
	assert.Equal(t, int64(1), misses)
}

func TestMemoryContentCache_Expiry(t *testing.T) {
	defer goleak.VerifyNone(t)

	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c := NewMemoryContentCache(WithMemoryTTL(time.Minute))
	defer c.Close()
	c.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "experiences", section{Title: "Acme"}))
	now = now.Add(2 * time.Minute)

	var got section
	hit, err := c.Get(ctx, "experiences", &got)
	require.NoError(t, err)
	assert.False(t, hit)

	c.sweep()
	assert.Equal(t, 0, c.Len())
}

func TestMemoryContentCache_InvalidateNested(t *testing.T) {
	defer goleak.VerifyNone(t)

	c := NewMemoryContentCache()
	defer c.Close()
	ctx := context.Background()

	for _, k := range []string{"portfolio:hero", "portfolio:about", "portfolios", "projects"} {
		require.NoError(t, c.Set(ctx, k, section{Title: k}))
	}

	require.NoError(t, c.Invalidate(ctx, "portfolio"))

	var got section
	for k, want := range map[string]bool{"portfolio:hero": false, "portfolio:about": false, "portfolios": true, "projects": true} {
		hit, err := c.Get(ctx, k, &got)
		require.NoError(t, err)
		assert.Equal(t, want, hit, k)
	}
}

func TestMemoryContentCache_CloseStopsCleanup(t *testing.T) {
	defer goleak.VerifyNone(t)

	c := newMemoryContentCache(time.Millisecond)
	time.Sleep(5 * time.Millisecond)
	require.NoError(t, c.Close())
	require.NoError(t, c.Close(), "close is idempotent")
}
