package content

import (
	"context"
	"fmt"

	"github.com/portfolio/backend/internal/domain/content"
	"github.com/portfolio/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// SkillsService manages skill categories and their nested skill collections
type SkillsService struct {
	categories *CollectionService[*content.SkillCategory]
	store      RecordStore
	cache      CacheInvalidator
	logger     *zap.Logger
}

// NewSkillsService creates a skills service
func NewSkillsService(store RecordStore, opts ...CollectionOption) *SkillsService {
	o := applyOptions(opts)
	return &SkillsService{
		categories: NewCollectionService(content.SkillCategories, store, opts...),
		store:      store,
		cache:      o.cache,
		logger:     o.logger.With(zap.String("collection", content.CollectionSkillCategories)),
	}
}

// FetchAll returns every category in order, each with its skills in order
func (s *SkillsService) FetchAll(ctx context.Context) ([]*content.SkillCategory, error) {
	categories, err := s.categories.FetchAll(ctx)
	if err != nil {
		return nil, err
	}
	for _, cat := range categories {
		skills, err := s.fetchSkills(ctx, cat.ID)
		if err != nil {
			return nil, err
		}
		cat.Skills = skills
	}
	return categories, nil
}

func (s *SkillsService) fetchSkills(ctx context.Context, categoryID string) ([]*content.Skill, error) {
	svc := NewCollectionService(content.SkillsOf(categoryID), s.store, WithLogger(s.logger))
	skills, err := svc.FetchAll(ctx)
	if err != nil {
		return nil, err
	}
	for _, sk := range skills {
		sk.Category = categoryID
		sk.ApplyDefaults()
	}
	return skills, nil
}

// SaveTree persists the whole category tree. The slice order is
// authoritative: categories and skills are renumbered to their index, new
// entries get ids, and skills no longer present under a category are
// deleted from it. Categories missing from the tree are left alone; use
// DeleteCategory to remove one.
func (s *SkillsService) SaveTree(ctx context.Context, tree []*content.SkillCategory) ([]*content.SkillCategory, error) {
	tree = content.CloneTree(tree)
	if err := prepareTree(tree); err != nil {
		return nil, err
	}

	existing, err := s.FetchAll(ctx)
	if err != nil {
		return nil, shared.ErrWriteFailed.Wrap(err)
	}

	for _, cat := range tree {
		doc, err := toDocument(cat.Header())
		if err != nil {
			return nil, shared.ErrWriteFailed.Wrap(err)
		}
		if err := s.store.Upsert(ctx, content.CollectionSkillCategories, doc); err != nil {
			s.logger.Error("Failed to save skill category", zap.String("id", cat.ID), zap.Error(err))
			return nil, asDomainError(err, shared.ErrWriteFailed)
		}

		keep := make(map[string]struct{}, len(cat.Skills))
		path := content.SkillsPath(cat.ID)
		for _, sk := range cat.Skills {
			keep[sk.ID] = struct{}{}
			doc, err := toDocument(sk)
			if err != nil {
				return nil, shared.ErrWriteFailed.Wrap(err)
			}
			if err := s.store.Upsert(ctx, path, doc); err != nil {
				s.logger.Error("Failed to save skill", zap.String("id", sk.ID), zap.Error(err))
				return nil, asDomainError(err, shared.ErrWriteFailed)
			}
		}

		if prev := content.FindCategory(existing, cat.ID); prev != nil {
			for _, sk := range prev.Skills {
				if _, ok := keep[sk.ID]; ok {
					continue
				}
				if err := s.store.Delete(ctx, path, sk.ID); err != nil {
					s.logger.Error("Failed to delete removed skill", zap.String("id", sk.ID), zap.Error(err))
					return nil, asDomainError(err, shared.ErrWriteFailed)
				}
			}
		}
	}

	s.logger.Info("Skill tree saved", zap.Int("categories", len(tree)))
	s.invalidate(ctx)
	return tree, nil
}

// DeleteCategory deletes every skill of the category, then the category
func (s *SkillsService) DeleteCategory(ctx context.Context, id string) error {
	skills, err := s.fetchSkills(ctx, id)
	if err != nil {
		return shared.ErrWriteFailed.Wrap(err)
	}
	path := content.SkillsPath(id)
	for _, sk := range skills {
		if err := s.store.Delete(ctx, path, sk.ID); err != nil {
			s.logger.Error("Failed to delete skill", zap.String("id", sk.ID), zap.Error(err))
			return asDomainError(err, shared.ErrWriteFailed)
		}
	}
	return s.categories.Delete(ctx, id, "")
}

// MoveCategory swaps a category with its neighbour and persists the order
func (s *SkillsService) MoveCategory(ctx context.Context, categories []*content.SkillCategory, id string, dir content.Direction) ([]*content.SkillCategory, error) {
	return s.categories.ReorderAfterMove(ctx, categories, id, dir)
}

// DuplicateSkill copies a skill within its category and saves the tree
func (s *SkillsService) DuplicateSkill(ctx context.Context, categoryID, skillID string) (*content.Skill, error) {
	tree, err := s.FetchAll(ctx)
	if err != nil {
		return nil, err
	}
	tree, dup, err := content.DuplicateSkill(tree, categoryID, skillID)
	if err != nil {
		return nil, err
	}
	if _, err := s.SaveTree(ctx, tree); err != nil {
		return nil, err
	}
	return dup, nil
}

// MoveSkill moves a skill to another category and saves the tree
func (s *SkillsService) MoveSkill(ctx context.Context, skillID, targetCategoryID string) ([]*content.SkillCategory, error) {
	tree, err := s.FetchAll(ctx)
	if err != nil {
		return nil, err
	}
	tree, err = content.MoveSkill(tree, skillID, targetCategoryID)
	if err != nil {
		return nil, err
	}
	return s.SaveTree(ctx, tree)
}

func (s *SkillsService) invalidate(ctx context.Context) {
	if err := s.cache.Invalidate(ctx, content.CollectionSkillCategories); err != nil {
		s.logger.Warn("Failed to invalidate cache", zap.Error(err))
	}
}

// prepareTree validates the tree, assigns ids to new entries and renumbers
// everything to slice order
func prepareTree(tree []*content.SkillCategory) error {
	for i, cat := range tree {
		if cat.ID == "" {
			cat.ID = content.NewRecordID()
		} else if !content.ValidRecordID(cat.ID) {
			return shared.NewValidationError(fmt.Sprintf("categories[%d].id", i), "Identifier must not contain '/'")
		}
		if err := cat.Header().Validate(); err != nil {
			return prefixField(err, fmt.Sprintf("categories[%d].", i))
		}
		cat.Order = i

		for j, sk := range cat.Skills {
			if sk.ID == "" {
				sk.ID = content.NewRecordID()
			} else if !content.ValidRecordID(sk.ID) {
				return shared.NewValidationError(fmt.Sprintf("categories[%d].skills[%d].id", i, j), "Identifier must not contain '/'")
			}
			sk.ApplyDefaults()
			if err := sk.Validate(); err != nil {
				return prefixField(err, fmt.Sprintf("categories[%d].skills[%d].", i, j))
			}
			sk.Category = cat.ID
			sk.Order = j
		}
	}
	return nil
}

func prefixField(err error, prefix string) error {
	if verr, ok := err.(*shared.ValidationError); ok {
		return shared.NewValidationError(prefix+verr.Field, verr.Message)
	}
	return err
}
