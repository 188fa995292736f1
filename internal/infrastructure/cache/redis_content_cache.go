// Package cache provides the read-through cache for public content and the
// Redis client shared with the token blacklist.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	contentapp "github.com/portfolio/backend/internal/application/content"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	defaultKeyPrefix     = "portfolio:cache:"
	defaultTTL           = 5 * time.Minute
	defaultScanBatchSize = 100
)

var _ contentapp.CacheInvalidator = (*RedisContentCache)(nil)

// RedisContentCache stores rendered public sections as JSON in Redis
type RedisContentCache struct {
	client    redis.UniversalClient
	keyPrefix string
	ttl       time.Duration
	logger    *zap.Logger
}

// RedisOption configures RedisContentCache
type RedisOption func(*RedisContentCache)

// WithTTL sets how long entries live; zero keeps the default
func WithTTL(ttl time.Duration) RedisOption {
	return func(c *RedisContentCache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithKeyPrefix sets the namespace for all cache keys
func WithKeyPrefix(prefix string) RedisOption {
	return func(c *RedisContentCache) {
		c.keyPrefix = prefix
	}
}

// WithLogger sets the cache logger
func WithLogger(logger *zap.Logger) RedisOption {
	return func(c *RedisContentCache) {
		c.logger = logger
	}
}

// NewRedisContentCache creates a cache on an existing client. The caller
// owns the client.
func NewRedisContentCache(client redis.UniversalClient, opts ...RedisOption) *RedisContentCache {
	c := &RedisContentCache{
		client:    client,
		keyPrefix: defaultKeyPrefix,
		ttl:       defaultTTL,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get decodes the entry for key into dst and reports whether it existed
func (c *RedisContentCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	cacheKey := c.keyPrefix + key

	data, err := c.client.Get(ctx, cacheKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read cache entry: %w", err)
	}

	if err := json.Unmarshal(data, dst); err != nil {
		c.logger.Warn("Dropping corrupted cache entry", zap.String("key", key), zap.Error(err))
		_ = c.client.Del(ctx, cacheKey)
		return false, nil
	}
	return true, nil
}

// Set stores value under key for the configured TTL
func (c *RedisContentCache) Set(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode cache entry: %w", err)
	}
	if err := c.client.Set(ctx, c.keyPrefix+key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write cache entry: %w", err)
	}
	return nil
}

// Invalidate deletes every key and all keys nested under "<key>:"
func (c *RedisContentCache) Invalidate(ctx context.Context, keys ...string) error {
	var deleted int64
	for _, key := range keys {
		n, err := c.client.Del(ctx, c.keyPrefix+key).Result()
		if err != nil {
			return fmt.Errorf("failed to delete cache key: %w", err)
		}
		deleted += n

		n, err = c.deletePattern(ctx, c.keyPrefix+key+":*")
		if err != nil {
			return err
		}
		deleted += n
	}

	c.logger.Debug("Invalidated content cache", zap.Strings("keys", keys), zap.Int64("deleted_count", deleted))
	return nil
}

// deletePattern uses SCAN so large keyspaces never block Redis
func (c *RedisContentCache) deletePattern(ctx context.Context, pattern string) (int64, error) {
	var cursor uint64
	var deleted int64
	for {
		keys, next, err := c.client.Scan(ctx, cursor, pattern, defaultScanBatchSize).Result()
		if err != nil {
			return deleted, fmt.Errorf("failed to scan cache keys: %w", err)
		}
		if len(keys) > 0 {
			n, err := c.client.Del(ctx, keys...).Result()
			if err != nil {
				return deleted, fmt.Errorf("failed to delete cache keys: %w", err)
			}
			deleted += n
		}
		cursor = next
		if cursor == 0 {
			return deleted, nil
		}
	}
}
