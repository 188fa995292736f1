package content

import (
	"fmt"

	"github.com/portfolio/backend/internal/domain/shared"
)

// CloneTree deep-copies a category tree so it can be edited without touching
// the original
func CloneTree(categories []*SkillCategory) []*SkillCategory {
	out := make([]*SkillCategory, len(categories))
	for i, c := range categories {
		cc := *c
		cc.Skills = make([]*Skill, len(c.Skills))
		for j, s := range c.Skills {
			sc := *s
			cc.Skills[j] = &sc
		}
		out[i] = &cc
	}
	return out
}

// FindCategory returns the category with id, or nil
func FindCategory(categories []*SkillCategory, id string) *SkillCategory {
	for _, c := range categories {
		if c.ID == id {
			return c
		}
	}
	return nil
}

// DuplicateSkill returns a new tree in which a copy of the skill, named
// "<name> (Copy)" and carrying a fresh id, is appended to its category.
func DuplicateSkill(categories []*SkillCategory, categoryID, skillID string) ([]*SkillCategory, *Skill, error) {
	tree := CloneTree(categories)
	cat := FindCategory(tree, categoryID)
	if cat == nil {
		return nil, nil, shared.ErrNotFound
	}
	idx := IndexOf(cat.Skills, skillID)
	if idx < 0 {
		return nil, nil, shared.ErrNotFound
	}

	dup := *cat.Skills[idx]
	dup.ID = NewRecordID()
	dup.Name = fmt.Sprintf("%s (Copy)", dup.Name)
	dup.Category = cat.ID
	dup.Order = len(cat.Skills)
	cat.Skills = append(cat.Skills, &dup)
	return tree, &dup, nil
}

// MoveSkill returns a new tree in which the skill is moved to the end of the
// target category. The skill's category back-reference is rewritten and both
// categories are renumbered.
func MoveSkill(categories []*SkillCategory, skillID, targetCategoryID string) ([]*SkillCategory, error) {
	tree := CloneTree(categories)
	target := FindCategory(tree, targetCategoryID)
	if target == nil {
		return nil, shared.ErrNotFound
	}

	for _, cat := range tree {
		idx := IndexOf(cat.Skills, skillID)
		if idx < 0 {
			continue
		}
		if cat.ID == target.ID {
			return tree, nil
		}
		skill := cat.Skills[idx]
		cat.Skills, _ = RemoveAndRenumber(cat.Skills, skillID)
		skill.Category = target.ID
		target.Skills = append(target.Skills, skill)
		Renumber(target.Skills)
		return tree, nil
	}
	return nil, shared.ErrNotFound
}
