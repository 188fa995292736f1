// Package content implements the per-collection services that sit between
// the HTTP handlers and the record store.
package content

import (
	"context"
	"io"
)

// Document is the stored form of a record. Fields holds every type-specific
// attribute keyed by its JSON name; ID and Order are kept outside Fields so
// the store can index and rewrite them.
type Document struct {
	ID       string
	Order    int
	Category string
	Fields   map[string]any
}

// RecordStore is the persistence contract for ordered collections. A
// collection is addressed by its path, e.g. "projects" or
// "skillCategories/<id>/skills".
type RecordStore interface {
	// ListAll returns every document sorted ascending by order, ties by id.
	// Read failures are reported as shared.ErrBackendUnavailable.
	ListAll(ctx context.Context, collection string) ([]Document, error)

	// Get returns one document or shared.ErrNotFound
	Get(ctx context.Context, collection, id string) (*Document, error)

	// Count returns the number of documents in the collection
	Count(ctx context.Context, collection string) (int, error)

	// Upsert creates the document or merges its fields into the stored one.
	// Fields missing from doc are left untouched.
	Upsert(ctx context.Context, collection string, doc Document) error

	// Delete removes a document. Deleting a missing id is not an error.
	Delete(ctx context.Context, collection, id string) error

	// Reorder sets order = index for every listed id in one atomic batch.
	// Any failure is reported as shared.ErrReorderFailed and no order changes.
	Reorder(ctx context.Context, collection string, orderedIDs []string) error
}

// AssetStorage stores uploaded images and documents
type AssetStorage interface {
	// Upload stores data under key and returns its public URL
	Upload(ctx context.Context, key string, data io.Reader, size int64, contentType string) (string, error)

	// DeleteByURL removes the object a public URL points to
	DeleteByURL(ctx context.Context, url string) error
}

// CacheInvalidator drops cached public reads after a write
type CacheInvalidator interface {
	Invalidate(ctx context.Context, keys ...string) error
}

type noopInvalidator struct{}

func (noopInvalidator) Invalidate(context.Context, ...string) error { return nil }
