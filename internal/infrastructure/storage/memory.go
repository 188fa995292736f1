package storage

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"sync"

	contentapp "github.com/portfolio/backend/internal/application/content"
)

var _ contentapp.AssetStorage = (*MemoryAssetStorage)(nil)

// MemoryAssetStorage keeps assets in memory. It is used when no bucket is
// configured, so uploads work in development but vanish on restart.
type MemoryAssetStorage struct {
	// BaseURL prefixes returned URLs, "http://localhost:8080/assets" by default
	BaseURL string

	mu      sync.RWMutex
	objects map[string]MemoryObject
}

// MemoryObject is one stored asset
type MemoryObject struct {
	ContentType string
	Data        []byte
}

// NewMemoryAssetStorage creates an empty in-memory storage
func NewMemoryAssetStorage(baseURL string) *MemoryAssetStorage {
	if baseURL == "" {
		baseURL = "http://localhost:8080/assets"
	}
	return &MemoryAssetStorage{
		BaseURL: strings.TrimRight(baseURL, "/"),
		objects: make(map[string]MemoryObject),
	}
}

// Upload stores data under key and returns its URL
func (s *MemoryAssetStorage) Upload(ctx context.Context, key string, data io.Reader, size int64, contentType string) (string, error) {
	if key == "" {
		return "", errors.New("storage key is required")
	}
	var buf bytes.Buffer
	if size > 0 {
		buf.Grow(int(size))
	}
	if _, err := io.Copy(&buf, data); err != nil {
		return "", err
	}

	s.mu.Lock()
	s.objects[key] = MemoryObject{ContentType: contentType, Data: buf.Bytes()}
	s.mu.Unlock()
	return s.BaseURL + "/" + key, nil
}

// DeleteByURL removes the object behind url. Unknown keys are not an error.
func (s *MemoryAssetStorage) DeleteByURL(ctx context.Context, url string) error {
	key, err := KeyFromURL(s.BaseURL, url)
	if err != nil {
		return err
	}
	s.mu.Lock()
	delete(s.objects, key)
	s.mu.Unlock()
	return nil
}

// Object returns the stored object for key
func (s *MemoryAssetStorage) Object(key string) (MemoryObject, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	obj, ok := s.objects[key]
	return obj, ok
}

// Len returns the number of stored objects
func (s *MemoryAssetStorage) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.objects)
}
