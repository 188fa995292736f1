package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/portfolio/backend/internal/infrastructure/config"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const pingTimeout = 5 * time.Second

// ContentCache is the read-through cache used by the public renderer plus
// the invalidation hook used by admin writes
type ContentCache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, value any) error
	Invalidate(ctx context.Context, keys ...string) error
}

// NewRedisClient connects to Redis and verifies the connection
func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return client, nil
}

// Factory builds the content cache from configuration. When Redis is
// disabled or unreachable it falls back to an in-memory cache, which is
// only correct for single-instance deployments.
type Factory struct {
	cfg    config.RedisConfig
	logger *zap.Logger
}

// NewFactory creates a cache factory
func NewFactory(cfg config.RedisConfig, logger *zap.Logger) *Factory {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Factory{cfg: cfg, logger: logger}
}

// Build returns the content cache and, when Redis is in use, its client so
// other components can share the connection. The returned close function
// releases whatever was created.
func (f *Factory) Build(ctx context.Context) (ContentCache, *redis.Client, func() error) {
	if f.cfg.Enabled {
		client, err := NewRedisClient(ctx, f.cfg)
		if err == nil {
			f.logger.Info("Using Redis content cache", zap.String("addr", f.cfg.RedisAddr()))
			c := NewRedisContentCache(client, WithTTL(f.cfg.TTL), WithLogger(f.logger))
			return c, client, client.Close
		}
		f.logger.Warn("Redis unavailable, falling back to in-memory content cache. "+
			"Caches are not shared across instances.", zap.Error(err))
	}

	mem := NewMemoryContentCache(WithMemoryTTL(f.cfg.TTL), WithMemoryLogger(f.logger))
	return mem, nil, mem.Close
}
