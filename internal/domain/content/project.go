package content

import (
	"strings"
	"time"

	"github.com/portfolio/backend/internal/domain/shared"
)

// MinProjectDescriptionLength is the exclusive lower bound on description length
const MinProjectDescriptionLength = 10

// Project is a portfolio project entry
type Project struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Technologies []string  `json:"technologies"`
	ImageURL     string    `json:"imageUrl"`
	GithubURL    string    `json:"githubUrl"`
	DemoURL      string    `json:"demoUrl"`
	Featured     bool      `json:"featured"`
	Category     string    `json:"category"`
	Order        int       `json:"order"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// NewProject returns an empty project with no id, placed at order
func NewProject(order int) *Project {
	return &Project{Technologies: []string{}, Order: order}
}

func (p *Project) RecordID() string         { return p.ID }
func (p *Project) SetRecordID(id string)    { p.ID = id }
func (p *Project) RecordOrder() int         { return p.Order }
func (p *Project) SetRecordOrder(order int) { p.Order = order }
func (p *Project) RecordCategory() string   { return p.Category }

// AssetURL returns the uploaded image
func (p *Project) AssetURL() string { return p.ImageURL }

// SearchText matches title, description and technologies
func (p *Project) SearchText() []string {
	fields := []string{p.Title, p.Description}
	return append(fields, p.Technologies...)
}

// Validate checks the fields required before a project can be saved
func (p *Project) Validate() error {
	if strings.TrimSpace(p.Title) == "" {
		return shared.NewValidationError("title", "Title is required")
	}
	if strings.TrimSpace(p.Description) == "" {
		return shared.NewValidationError("description", "Description is required")
	}
	if len([]rune(strings.TrimSpace(p.Description))) <= MinProjectDescriptionLength {
		return shared.NewValidationError("description", "Description must be longer than 10 characters")
	}
	return nil
}

// CreatedTime returns when the project was first saved
func (p *Project) CreatedTime() time.Time { return p.CreatedAt }

// SetCreatedTime sets the creation time
func (p *Project) SetCreatedTime(t time.Time) { p.CreatedAt = t }

// Touch stamps the project timestamps; CreatedAt is only set once
func (p *Project) Touch(now time.Time) {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now
}

// FeaturedProjects returns the featured subset, preserving order
func FeaturedProjects(projects []*Project) []*Project {
	featured := make([]*Project, 0, len(projects))
	for _, p := range projects {
		if p.Featured {
			featured = append(featured, p)
		}
	}
	return featured
}
