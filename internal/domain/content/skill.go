package content

import (
	"regexp"
	"strings"

	"github.com/portfolio/backend/internal/domain/shared"
)

// SkillLevel is the self-assessed proficiency of a skill
type SkillLevel string

const (
	SkillLevelBeginner     SkillLevel = "Beginner"
	SkillLevelIntermediate SkillLevel = "Intermediate"
	SkillLevelAdvanced     SkillLevel = "Advanced"
	SkillLevelExpert       SkillLevel = "Expert"
)

// IsValid reports whether the level is one of the known levels
func (l SkillLevel) IsValid() bool {
	switch l {
	case SkillLevelBeginner, SkillLevelIntermediate, SkillLevelAdvanced, SkillLevelExpert:
		return true
	}
	return false
}

const (
	DefaultSkillIcon  = "FaCode"
	DefaultSkillColor = "#6366f1"
	// MaxSkillNameLength is the exclusive upper bound on skill name length
	MaxSkillNameLength = 50
)

// ColorPresets are the swatches offered by the skill colour picker
var ColorPresets = []string{
	"#3b82f6", "#6366f1", "#8b5cf6", "#a855f7", "#ec4899", "#ef4444",
	"#f97316", "#f59e0b", "#16a34a", "#14b8a6", "#06b6d4", "#0ea5e9",
	"#0d9488", "#0891b2", "#4f46e5", "#7c3aed", "#2563eb", "#9333ea",
}

var hexColorPattern = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// Skill is one entry of a skill category. Category is a denormalized
// back-reference to the owning SkillCategory id.
type Skill struct {
	ID       string     `json:"id"`
	Name     string     `json:"name"`
	Level    SkillLevel `json:"level"`
	Category string     `json:"category"`
	Icon     string     `json:"icon"`
	Color    string     `json:"color"`
	Order    int        `json:"order"`
}

// NewSkill returns an empty skill owned by categoryID with default icon and colour
func NewSkill(categoryID string, order int) *Skill {
	return &Skill{
		Level:    SkillLevelBeginner,
		Category: categoryID,
		Icon:     DefaultSkillIcon,
		Color:    DefaultSkillColor,
		Order:    order,
	}
}

func (s *Skill) RecordID() string         { return s.ID }
func (s *Skill) SetRecordID(id string)    { s.ID = id }
func (s *Skill) RecordOrder() int         { return s.Order }
func (s *Skill) SetRecordOrder(order int) { s.Order = order }
func (s *Skill) RecordCategory() string   { return s.Category }

// SearchText matches name and level
func (s *Skill) SearchText() []string {
	return []string{s.Name, string(s.Level)}
}

// Validate checks name, level and colour
func (s *Skill) Validate() error {
	name := strings.TrimSpace(s.Name)
	if name == "" {
		return shared.NewValidationError("name", "Skill name is required")
	}
	if len([]rune(name)) >= MaxSkillNameLength {
		return shared.NewValidationError("name", "Skill name must be less than 50 characters")
	}
	if s.Level == "" {
		return shared.NewValidationError("level", "Skill level is required")
	}
	if !s.Level.IsValid() {
		return shared.NewValidationError("level", "Skill level must be Beginner, Intermediate, Advanced or Expert")
	}
	if s.Color != "" && !hexColorPattern.MatchString(s.Color) {
		return shared.NewValidationError("color", "Color must be a hex value such as #6366f1")
	}
	return nil
}

// ApplyDefaults fills an empty icon or colour
func (s *Skill) ApplyDefaults() {
	if s.Icon == "" {
		s.Icon = DefaultSkillIcon
	}
	if s.Color == "" {
		s.Color = DefaultSkillColor
	}
}

// SkillCategory groups skills. Skills are persisted in the category's
// nested skills collection, not in the category document itself.
type SkillCategory struct {
	ID     string   `json:"id"`
	Title  string   `json:"title"`
	Order  int      `json:"order"`
	Skills []*Skill `json:"skills,omitempty"`
}

// NewSkillCategory returns an empty category with no id, placed at order
func NewSkillCategory(order int) *SkillCategory {
	return &SkillCategory{Order: order, Skills: []*Skill{}}
}

func (c *SkillCategory) RecordID() string         { return c.ID }
func (c *SkillCategory) SetRecordID(id string)    { c.ID = id }
func (c *SkillCategory) RecordOrder() int         { return c.Order }
func (c *SkillCategory) SetRecordOrder(order int) { c.Order = order }
func (c *SkillCategory) RecordCategory() string   { return "" }

// SearchText matches the category title
func (c *SkillCategory) SearchText() []string {
	return []string{c.Title}
}

// Validate checks the category title and every skill it owns
func (c *SkillCategory) Validate() error {
	if strings.TrimSpace(c.Title) == "" {
		return shared.NewValidationError("title", "Category title is required")
	}
	for _, s := range c.Skills {
		if err := s.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Header returns a copy of the category without its skills, the shape stored
// in the category document
func (c *SkillCategory) Header() *SkillCategory {
	return &SkillCategory{ID: c.ID, Title: c.Title, Order: c.Order}
}

// SkillsPath is the nested collection path holding a category's skills
func SkillsPath(categoryID string) string {
	return CollectionSkillCategories + "/" + categoryID + "/skills"
}
