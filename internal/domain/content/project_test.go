package content

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCarryCreatedTime(t *testing.T) {
	created := time.Date(2023, 5, 1, 9, 0, 0, 0, time.UTC)
	stored := &Project{ID: "p1", CreatedAt: created}

	t.Run("edit without a creation time keeps the stored one", func(t *testing.T) {
		edit := &Project{ID: "p1", Title: "Renamed"}
		CarryCreatedTime(edit, stored)
		assert.Equal(t, created, edit.CreatedAt)
	})

	t.Run("client supplied creation time is replaced", func(t *testing.T) {
		edit := &Project{ID: "p1", CreatedAt: created.Add(time.Hour)}
		CarryCreatedTime(edit, stored)
		assert.Equal(t, created, edit.CreatedAt)
	})

	t.Run("records without timestamps are left alone", func(t *testing.T) {
		cert := &Certificate{ID: "c1", Title: "CKA"}
		CarryCreatedTime(cert, &Certificate{ID: "c1"})
		assert.Equal(t, "CKA", cert.Title)
	})
}

func TestProject_Touch(t *testing.T) {
	first := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	p := NewProject(0)

	p.Touch(first)
	p.Touch(first.Add(24 * time.Hour))

	assert.Equal(t, first, p.CreatedAt)
	assert.Equal(t, first.Add(24*time.Hour), p.UpdatedAt)
}
