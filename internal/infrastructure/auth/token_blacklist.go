package auth

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// TokenBlacklist revokes tokens before they expire, e.g. on logout
type TokenBlacklist interface {
	// AddToBlacklist revokes the token with the given JWT ID. ttl should be
	// the token's remaining lifetime.
	AddToBlacklist(ctx context.Context, jti string, ttl time.Duration) error
	IsBlacklisted(ctx context.Context, jti string) (bool, error)
}

const blacklistKeyPrefix = "portfolio:token:revoked:"

// RedisTokenBlacklist implements TokenBlacklist using Redis
type RedisTokenBlacklist struct {
	client redis.UniversalClient
}

// NewRedisTokenBlacklist creates a token blacklist on an existing client
func NewRedisTokenBlacklist(client redis.UniversalClient) *RedisTokenBlacklist {
	return &RedisTokenBlacklist{client: client}
}

// AddToBlacklist adds a token's JTI to the blacklist
func (b *RedisTokenBlacklist) AddToBlacklist(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if err := b.client.Set(ctx, blacklistKeyPrefix+jti, "1", ttl).Err(); err != nil {
		return fmt.Errorf("failed to add token to blacklist: %w", err)
	}
	return nil
}

// IsBlacklisted checks if a token's JTI is in the blacklist
func (b *RedisTokenBlacklist) IsBlacklisted(ctx context.Context, jti string) (bool, error) {
	exists, err := b.client.Exists(ctx, blacklistKeyPrefix+jti).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check token blacklist: %w", err)
	}
	return exists > 0, nil
}

var _ TokenBlacklist = (*RedisTokenBlacklist)(nil)

// InMemoryTokenBlacklist keeps revoked tokens in process memory. Revocations
// are lost on restart and are not shared between instances.
type InMemoryTokenBlacklist struct {
	mu      sync.Mutex
	entries map[string]time.Time
	now     func() time.Time
}

// NewInMemoryTokenBlacklist creates a new in-memory token blacklist
func NewInMemoryTokenBlacklist() *InMemoryTokenBlacklist {
	return &InMemoryTokenBlacklist{
		entries: make(map[string]time.Time),
		now:     time.Now,
	}
}

// AddToBlacklist adds a token's JTI to the in-memory blacklist
func (b *InMemoryTokenBlacklist) AddToBlacklist(_ context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.entries[jti] = b.now().Add(ttl)
	return nil
}

// IsBlacklisted checks if a token's JTI is blacklisted and not yet expired
func (b *InMemoryTokenBlacklist) IsBlacklisted(_ context.Context, jti string) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	expiration, ok := b.entries[jti]
	if !ok {
		return false, nil
	}
	if b.now().After(expiration) {
		delete(b.entries, jti)
		return false, nil
	}
	return true, nil
}

var _ TokenBlacklist = (*InMemoryTokenBlacklist)(nil)
