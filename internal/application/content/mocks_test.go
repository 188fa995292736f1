package content

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"
)

// MockRecordStore is a mock implementation of RecordStore
type MockRecordStore struct {
	mock.Mock
}

func (m *MockRecordStore) ListAll(ctx context.Context, collection string) ([]Document, error) {
	args := m.Called(ctx, collection)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Document), args.Error(1)
}

func (m *MockRecordStore) Get(ctx context.Context, collection, id string) (*Document, error) {
	args := m.Called(ctx, collection, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Document), args.Error(1)
}

func (m *MockRecordStore) Count(ctx context.Context, collection string) (int, error) {
	args := m.Called(ctx, collection)
	return args.Int(0), args.Error(1)
}

func (m *MockRecordStore) Upsert(ctx context.Context, collection string, doc Document) error {
	args := m.Called(ctx, collection, doc)
	return args.Error(0)
}

func (m *MockRecordStore) Delete(ctx context.Context, collection, id string) error {
	args := m.Called(ctx, collection, id)
	return args.Error(0)
}

func (m *MockRecordStore) Reorder(ctx context.Context, collection string, orderedIDs []string) error {
	args := m.Called(ctx, collection, orderedIDs)
	return args.Error(0)
}

// MockAssetStorage is a mock implementation of AssetStorage
type MockAssetStorage struct {
	mock.Mock
}

func (m *MockAssetStorage) Upload(ctx context.Context, key string, data io.Reader, size int64, contentType string) (string, error) {
	args := m.Called(ctx, key, data, size, contentType)
	return args.String(0), args.Error(1)
}

func (m *MockAssetStorage) DeleteByURL(ctx context.Context, url string) error {
	args := m.Called(ctx, url)
	return args.Error(0)
}

// MockCacheInvalidator is a mock implementation of CacheInvalidator
type MockCacheInvalidator struct {
	mock.Mock
}

func (m *MockCacheInvalidator) Invalidate(ctx context.Context, keys ...string) error {
	args := m.Called(ctx, keys)
	return args.Error(0)
}
