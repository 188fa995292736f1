package content

import (
	"context"
	"errors"

	"github.com/portfolio/backend/internal/domain/content"
	"github.com/portfolio/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ProfileService reads and updates the hero and about singletons
type ProfileService struct {
	store  RecordStore
	cache  CacheInvalidator
	logger *zap.Logger
}

// NewProfileService creates a profile service
func NewProfileService(store RecordStore, opts ...CollectionOption) *ProfileService {
	o := applyOptions(opts)
	return &ProfileService{
		store:  store,
		cache:  o.cache,
		logger: o.logger.With(zap.String("collection", content.CollectionPortfolio)),
	}
}

// Hero returns the stored hero. A missing document yields DefaultHero; a
// read failure is returned so callers can decide how to degrade.
func (s *ProfileService) Hero(ctx context.Context) (content.Hero, error) {
	hero := content.DefaultHero()
	if err := s.load(ctx, content.DocumentHero, &hero); err != nil {
		return content.DefaultHero(), err
	}
	return hero, nil
}

// About returns the stored about section, DefaultAbout when absent
func (s *ProfileService) About(ctx context.Context) (content.About, error) {
	about := content.DefaultAbout()
	if err := s.load(ctx, content.DocumentAbout, &about); err != nil {
		return content.DefaultAbout(), err
	}
	return about, nil
}

// UpdateHero merges the patch into the stored hero and returns the result
func (s *ProfileService) UpdateHero(ctx context.Context, patch content.HeroPatch) (content.Hero, error) {
	if err := patch.Validate(); err != nil {
		return content.Hero{}, err
	}
	if err := s.merge(ctx, content.DocumentHero, patch); err != nil {
		return content.Hero{}, err
	}
	return s.Hero(ctx)
}

// UpdateAbout merges the patch into the stored about section
func (s *ProfileService) UpdateAbout(ctx context.Context, patch content.AboutPatch) (content.About, error) {
	if err := patch.Validate(); err != nil {
		return content.About{}, err
	}
	if err := s.merge(ctx, content.DocumentAbout, patch); err != nil {
		return content.About{}, err
	}
	return s.About(ctx)
}

func (s *ProfileService) load(ctx context.Context, id string, dst any) error {
	doc, err := s.store.Get(ctx, content.CollectionPortfolio, id)
	if errors.Is(err, shared.ErrNotFound) {
		return nil
	}
	if err != nil {
		s.logger.Warn("Failed to read profile document", zap.String("id", id), zap.Error(err))
		return asDomainError(err, shared.ErrBackendUnavailable)
	}
	return fromDocument(*doc, dst)
}

// merge upserts only the fields present in patch, so untouched fields keep
// their stored values
func (s *ProfileService) merge(ctx context.Context, id string, patch any) error {
	fields, err := toFields(patch)
	if err != nil {
		return shared.ErrWriteFailed.Wrap(err)
	}
	if err := s.store.Upsert(ctx, content.CollectionPortfolio, Document{ID: id, Fields: fields}); err != nil {
		s.logger.Error("Failed to update profile document", zap.String("id", id), zap.Error(err))
		return asDomainError(err, shared.ErrWriteFailed)
	}
	s.logger.Info("Profile document updated", zap.String("id", id), zap.Int("fields", len(fields)))
	if err := s.cache.Invalidate(ctx, content.CollectionPortfolio); err != nil {
		s.logger.Warn("Failed to invalidate cache", zap.Error(err))
	}
	return nil
}
