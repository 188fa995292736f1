package public

import (
	"time"

	"github.com/portfolio/backend/internal/domain/content"
)

// ListView is a rendered collection. Empty is set both for an empty
// collection and for one that could not be read.
type ListView[T any] struct {
	Items      []T      `json:"items"`
	Empty      bool     `json:"empty"`
	Categories []string `json:"categories,omitempty"`
}

func newListView[T content.Record](items []T) ListView[T] {
	return ListView[T]{
		Items:      items,
		Empty:      len(items) == 0,
		Categories: content.FilterOptions(items),
	}
}

func emptyView[T any]() ListView[T] {
	return ListView[T]{Items: []T{}, Empty: true}
}

// Filter returns the items for which keep is true. The category options of
// the full list are kept.
func (v ListView[T]) Filter(keep func(T) bool) ListView[T] {
	items := make([]T, 0, len(v.Items))
	for _, it := range v.Items {
		if keep(it) {
			items = append(items, it)
		}
	}
	return ListView[T]{Items: items, Empty: len(items) == 0, Categories: v.Categories}
}

// ByCategory narrows v to one category; "" and "all" return v unchanged
func ByCategory[T content.Record](v ListView[T], category string) ListView[T] {
	if category == "" || category == content.CategoryAll {
		return v
	}
	return v.Filter(func(it T) bool { return content.MatchesCategory(it, category) })
}

// ProjectCard is a project with its resized preview image
type ProjectCard struct {
	*content.Project
	ThumbnailURL string `json:"thumbnailUrl,omitempty"`
}

// CertificateCard is a certificate with its resized preview image
type CertificateCard struct {
	*content.Certificate
	ThumbnailURL string `json:"thumbnailUrl,omitempty"`
}

// ExperienceEntry is a position with its display period
type ExperienceEntry struct {
	Experience *content.Experience `json:"experience"`
	// Period reads "January 2020 - Present" or "January 2020 - March 2022"
	Period   string `json:"period"`
	Duration string `json:"duration"`
}

func newExperienceEntry(e *content.Experience, now time.Time) ExperienceEntry {
	end := "Present"
	if !e.IsCurrent() {
		end = content.FormatMonthYear(e.EndDate())
	}
	return ExperienceEntry{
		Experience: e,
		Period:     content.FormatMonthYear(e.StartDate) + " - " + end,
		Duration:   content.Duration(e.StartDate, e.Tenure, now),
	}
}

// Home is the landing page
type Home struct {
	Hero               content.Hero                     `json:"hero"`
	About              content.About                    `json:"about"`
	FeaturedProjects   ListView[ProjectCard]            `json:"featuredProjects"`
	LatestCertificates ListView[CertificateCard]        `json:"latestCertificates"`
	Experiences        ListView[ExperienceEntry]        `json:"experiences"`
	Skills             ListView[*content.SkillCategory] `json:"skills"`
}
