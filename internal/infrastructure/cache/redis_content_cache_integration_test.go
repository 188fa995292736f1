//go:build integration

package cache

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func startRedis(t *testing.T) *redis.Client {
	t.Helper()
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(30 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	endpoint, err := container.Endpoint(ctx, "")
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{Addr: endpoint})
	t.Cleanup(func() { _ = client.Close() })
	require.NoError(t, client.Ping(ctx).Err())
	return client
}

func TestIntegration_RedisContentCache(t *testing.T) {
	client := startRedis(t)
	c := NewRedisContentCache(client, WithTTL(time.Minute))
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "portfolio:hero", section{Title: "hero"}))
	require.NoError(t, c.Set(ctx, "portfolio:about", section{Title: "about"}))
	require.NoError(t, c.Set(ctx, "projects", section{Title: "projects", Tags: []string{"go"}}))

	var got section
	hit, err := c.Get(ctx, "projects", &got)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, []string{"go"}, got.Tags)

	ttl, err := client.TTL(ctx, defaultKeyPrefix+"projects").Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))

	require.NoError(t, c.Invalidate(ctx, "portfolio"))

	hit, err = c.Get(ctx, "portfolio:hero", &got)
	require.NoError(t, err)
	assert.False(t, hit)
	hit, err = c.Get(ctx, "projects", &got)
	require.NoError(t, err)
	assert.True(t, hit)

	t.Run("corrupted entries are dropped", func(t *testing.T) {
		require.NoError(t, client.Set(ctx, defaultKeyPrefix+"skillCategories", "{not json", 0).Err())
		hit, err := c.Get(ctx, "skillCategories", &got)
		require.NoError(t, err)
		assert.False(t, hit)
		assert.Equal(t, int64(0), client.Exists(ctx, defaultKeyPrefix+"skillCategories").Val())
	})
}
