package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	contentapp "github.com/portfolio/backend/internal/application/content"
	"go.uber.org/zap"
)

const defaultCleanupInterval = 30 * time.Second

var _ contentapp.CacheInvalidator = (*MemoryContentCache)(nil)

// MemoryContentCache is a single-instance content cache. Entries are stored
// as JSON so callers never share mutable values with the cache.
type MemoryContentCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	ttl     time.Duration
	logger  *zap.Logger
	now     func() time.Time

	stopCh  chan struct{}
	doneCh  chan struct{}
	stopped atomic.Bool

	hits   atomic.Int64
	misses atomic.Int64
}

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

// MemoryOption configures MemoryContentCache
type MemoryOption func(*MemoryContentCache)

// WithMemoryTTL sets how long entries live; zero keeps the default
func WithMemoryTTL(ttl time.Duration) MemoryOption {
	return func(c *MemoryContentCache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithMemoryLogger sets the cache logger
func WithMemoryLogger(logger *zap.Logger) MemoryOption {
	return func(c *MemoryContentCache) {
		c.logger = logger
	}
}

// NewMemoryContentCache creates the cache and starts its cleanup goroutine.
// Close stops it.
func NewMemoryContentCache(opts ...MemoryOption) *MemoryContentCache {
	return newMemoryContentCache(defaultCleanupInterval, opts...)
}

func newMemoryContentCache(cleanupInterval time.Duration, opts ...MemoryOption) *MemoryContentCache {
	c := &MemoryContentCache{
		entries: make(map[string]memoryEntry),
		ttl:     defaultTTL,
		logger:  zap.NewNop(),
		now:     time.Now,
		stopCh:  make(chan struct{}),
		doneCh:  make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	go c.cleanupExpired(cleanupInterval)
	return c
}

// Get decodes the entry for key into dst and reports whether it existed
func (c *MemoryContentCache) Get(_ context.Context, key string, dst any) (bool, error) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok || c.now().After(entry.expiresAt) {
		c.misses.Add(1)
		return false, nil
	}
	if err := json.Unmarshal(entry.data, dst); err != nil {
		return false, fmt.Errorf("failed to decode cache entry: %w", err)
	}
	c.hits.Add(1)
	return true, nil
}

// Set stores value under key for the configured TTL
func (c *MemoryContentCache) Set(_ context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode cache entry: %w", err)
	}
	c.mu.Lock()
	c.entries[key] = memoryEntry{data: data, expiresAt: c.now().Add(c.ttl)}
	c.mu.Unlock()
	return nil
}

// Invalidate deletes every key and all keys nested under "<key>:"
func (c *MemoryContentCache) Invalidate(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, key := range keys {
		delete(c.entries, key)
		prefix := key + ":"
		for k := range c.entries {
			if strings.HasPrefix(k, prefix) {
				delete(c.entries, k)
			}
		}
	}
	return nil
}

// Len returns the number of live and expired entries not yet swept
func (c *MemoryContentCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Stats returns hit and miss counters
func (c *MemoryContentCache) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}

// Close stops the cleanup goroutine and waits for it to exit
func (c *MemoryContentCache) Close() error {
	if c.stopped.CompareAndSwap(false, true) {
		close(c.stopCh)
	}
	<-c.doneCh
	return nil
}

func (c *MemoryContentCache) cleanupExpired(interval time.Duration) {
	defer close(c.doneCh)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stopCh:
			return
		case <-ticker.C:
			c.sweep()
		}
	}
}

func (c *MemoryContentCache) sweep() {
	now := c.now()
	removed := 0
	c.mu.Lock()
	for k, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, k)
			removed++
		}
	}
	c.mu.Unlock()
	if removed > 0 {
		c.logger.Debug("Swept expired cache entries", zap.Int("removed", removed))
	}
}
