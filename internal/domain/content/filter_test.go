package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilter_Category(t *testing.T) {
	records := []*Project{
		{ID: "1", Title: "One", Category: "A"},
		{ID: "2", Title: "Two", Category: "A"},
		{ID: "3", Title: "Three", Category: "B"},
		{ID: "4", Title: "Four"},
	}

	assert.Equal(t, []string{"1", "2"}, IDs(Filter(records, "", "A")))
	assert.Len(t, Filter(records, "", CategoryAll), 4)
	assert.Equal(t, []string{"3"}, IDs(Filter(records, "", "B")))
}

func TestFilter_Search(t *testing.T) {
	t.Run("certificates match title, issuer and description", func(t *testing.T) {
		certs := []*Certificate{
			{ID: "1", Title: "Cloud Practitioner", Issuer: "AWS"},
			{ID: "2", Title: "Kubernetes", Issuer: "CNCF", Description: "Cluster ADMINISTRATION"},
			{ID: "3", Title: "Scrum", Issuer: "Scrum.org", Category: "aws"},
		}

		assert.Equal(t, []string{"1"}, IDs(Filter(certs, "aws", CategoryAll)))
		assert.Equal(t, []string{"2"}, IDs(Filter(certs, "administration", "")))
		assert.Equal(t, []string{"1"}, IDs(Filter(certs, "PRACT", "")))
	})

	t.Run("projects match technologies", func(t *testing.T) {
		projects := []*Project{
			{ID: "1", Title: "Site", Technologies: []string{"React", "Go"}},
			{ID: "2", Title: "CLI", Technologies: []string{"Rust"}},
		}
		assert.Equal(t, []string{"1"}, IDs(Filter(projects, "react", "")))
	})

	t.Run("search and category combine", func(t *testing.T) {
		projects := []*Project{
			{ID: "1", Title: "Web shop", Category: "web"},
			{ID: "2", Title: "Web scraper", Category: "tools"},
		}
		assert.Equal(t, []string{"2"}, IDs(Filter(projects, "web", "tools")))
	})

	t.Run("blank term matches everything", func(t *testing.T) {
		projects := []*Project{{ID: "1"}, {ID: "2"}}
		assert.Len(t, Filter(projects, "   ", ""), 2)
	})
}

func TestFilterOptions(t *testing.T) {
	records := []*Project{
		{ID: "1", Category: "web"},
		{ID: "2", Category: "mobile"},
		{ID: "3", Category: "web"},
		{ID: "4"},
	}
	assert.Equal(t, []string{CategoryAll, "mobile", "web"}, FilterOptions(records))
	assert.Equal(t, []string{CategoryAll}, FilterOptions([]*Project{}))
}
