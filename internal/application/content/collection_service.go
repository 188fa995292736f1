package content

import (
	"context"
	"errors"
	"time"

	"github.com/portfolio/backend/internal/domain/content"
	"github.com/portfolio/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// CollectionService shapes and validates one content type on top of the
// record store
type CollectionService[T content.Record] struct {
	collection content.Collection[T]
	store      RecordStore
	assets     AssetStorage
	cache      CacheInvalidator
	logger     *zap.Logger
	now        func() time.Time
}

// CollectionOption configures a CollectionService
type CollectionOption func(*collectionOptions)

type collectionOptions struct {
	assets AssetStorage
	cache  CacheInvalidator
	logger *zap.Logger
	now    func() time.Time
}

// WithAssetStorage enables best-effort asset cleanup on delete
func WithAssetStorage(assets AssetStorage) CollectionOption {
	return func(o *collectionOptions) { o.assets = assets }
}

// WithCacheInvalidator drops public read caches after every write
func WithCacheInvalidator(cache CacheInvalidator) CollectionOption {
	return func(o *collectionOptions) { o.cache = cache }
}

// WithLogger sets the service logger
func WithLogger(logger *zap.Logger) CollectionOption {
	return func(o *collectionOptions) { o.logger = logger }
}

// WithClock overrides the time source used for timestamps
func WithClock(now func() time.Time) CollectionOption {
	return func(o *collectionOptions) { o.now = now }
}

func applyOptions(opts []CollectionOption) collectionOptions {
	o := collectionOptions{
		cache:  noopInvalidator{},
		logger: zap.NewNop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// NewCollectionService creates a service for one collection
func NewCollectionService[T content.Record](collection content.Collection[T], store RecordStore, opts ...CollectionOption) *CollectionService[T] {
	o := applyOptions(opts)
	return &CollectionService[T]{
		collection: collection,
		store:      store,
		assets:     o.assets,
		cache:      o.cache,
		logger:     o.logger.With(zap.String("collection", collection.Path)),
		now:        o.now,
	}
}

// Path returns the collection path
func (s *CollectionService[T]) Path() string {
	return s.collection.Path
}

// New returns an empty record placed after the given number of records
func (s *CollectionService[T]) New(count int) T {
	return s.collection.New(count)
}

// FetchAll returns every record in ascending order
func (s *CollectionService[T]) FetchAll(ctx context.Context) ([]T, error) {
	docs, err := s.store.ListAll(ctx, s.collection.Path)
	if err != nil {
		s.logger.Warn("Failed to list records", zap.Error(err))
		return nil, asDomainError(err, shared.ErrBackendUnavailable)
	}

	records := make([]T, 0, len(docs))
	for _, doc := range docs {
		rec := s.collection.New(doc.Order)
		if err := fromDocument(doc, rec); err != nil {
			s.logger.Warn("Skipping malformed record", zap.String("id", doc.ID), zap.Error(err))
			continue
		}
		records = append(records, rec)
	}
	content.SortByOrder(records)
	return records, nil
}

// Save validates and upserts a record. A record without an id is created:
// it receives a fresh id and is placed after the existing records.
func (s *CollectionService[T]) Save(ctx context.Context, rec T) (T, error) {
	if err := rec.Validate(); err != nil {
		return rec, err
	}

	creating := rec.RecordID() == ""
	if creating {
		count, err := s.store.Count(ctx, s.collection.Path)
		if err != nil {
			s.logger.Warn("Failed to count records", zap.Error(err))
			return rec, asDomainError(err, shared.ErrWriteFailed)
		}
		rec.SetRecordID(content.NewRecordID())
		rec.SetRecordOrder(count)
	} else if !content.ValidRecordID(rec.RecordID()) {
		return rec, shared.NewValidationError("id", "Identifier must not be blank or contain '/'")
	}

	if t, ok := any(rec).(interface{ Touch(time.Time) }); ok {
		t.Touch(s.now())
	}

	doc, err := toDocument(rec)
	if err != nil {
		return rec, shared.ErrWriteFailed.Wrap(err)
	}
	if err := s.store.Upsert(ctx, s.collection.Path, doc); err != nil {
		s.logger.Error("Failed to save record", zap.String("id", doc.ID), zap.Error(err))
		if creating {
			rec.SetRecordID("")
		}
		return rec, asDomainError(err, shared.ErrWriteFailed)
	}

	s.logger.Info("Record saved", zap.String("id", doc.ID), zap.Bool("created", creating))
	s.invalidate(ctx)
	return rec, nil
}

// Delete removes a record. If assetURL is set, the asset is deleted first on
// a best-effort basis: failures are logged and the record is still deleted.
func (s *CollectionService[T]) Delete(ctx context.Context, id, assetURL string) error {
	s.deleteAsset(ctx, id, assetURL)

	if err := s.store.Delete(ctx, s.collection.Path, id); err != nil {
		s.logger.Error("Failed to delete record", zap.String("id", id), zap.Error(err))
		return asDomainError(err, shared.ErrWriteFailed)
	}

	s.logger.Info("Record deleted", zap.String("id", id))
	s.invalidate(ctx)
	return nil
}

// DeleteAndRenumber deletes the record and renumbers the remaining records
// to 0..N-2 with a single reorder call. It returns the survivors.
func (s *CollectionService[T]) DeleteAndRenumber(ctx context.Context, records []T, id, assetURL string) ([]T, error) {
	if err := s.Delete(ctx, id, assetURL); err != nil {
		return records, err
	}
	survivors, _ := content.RemoveAndRenumber(records, id)
	if len(survivors) == 0 {
		return survivors, nil
	}
	if err := s.PersistOrder(ctx, survivors); err != nil {
		return survivors, err
	}
	return survivors, nil
}

// ReorderAfterMove swaps the record with its neighbour in dir, renumbers the
// list and persists the new order with a single reorder call. Boundary moves
// and unknown ids return the list unchanged without touching the store.
func (s *CollectionService[T]) ReorderAfterMove(ctx context.Context, records []T, id string, dir content.Direction) ([]T, error) {
	moved, ok := content.MoveAdjacent(records, id, dir)
	if !ok {
		return moved, nil
	}
	if err := s.PersistOrder(ctx, moved); err != nil {
		return moved, err
	}
	return moved, nil
}

// PersistOrder stores the slice order of records as their order values in a
// single reorder call
func (s *CollectionService[T]) PersistOrder(ctx context.Context, records []T) error {
	ids := content.IDs(records)
	if err := s.store.Reorder(ctx, s.collection.Path, ids); err != nil {
		s.logger.Error("Failed to reorder records", zap.Strings("ids", ids), zap.Error(err))
		return asDomainError(err, shared.ErrReorderFailed)
	}
	s.invalidate(ctx)
	return nil
}

func (s *CollectionService[T]) deleteAsset(ctx context.Context, id, assetURL string) {
	if assetURL == "" || s.assets == nil {
		return
	}
	if err := s.assets.DeleteByURL(ctx, assetURL); err != nil {
		s.logger.Warn("Failed to delete record asset",
			zap.String("id", id),
			zap.String("asset_url", assetURL),
			zap.Error(shared.ErrAssetDeleteFailed.Wrap(err)),
		)
	}
}

func (s *CollectionService[T]) invalidate(ctx context.Context) {
	if err := s.cache.Invalidate(ctx, s.collection.Path); err != nil {
		s.logger.Warn("Failed to invalidate cache", zap.Error(err))
	}
}

// asDomainError maps a store error onto the taxonomy: an error that already
// carries fallback's code is returned as-is, anything else is wrapped
func asDomainError(err error, fallback *shared.DomainError) error {
	if errors.Is(err, fallback) {
		return err
	}
	return fallback.Wrap(err)
}
