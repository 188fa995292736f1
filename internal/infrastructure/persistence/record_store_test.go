package persistence

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	contentapp "github.com/portfolio/backend/internal/application/content"
	"github.com/portfolio/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupRecordStore(t *testing.T) *GormRecordStore {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&RecordModel{}))
	return NewGormRecordStore(db)
}

func newMockRecordStore(t *testing.T) (*GormRecordStore, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	}), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)

	return NewGormRecordStore(gormDB), mock, mockDB
}

func seed(t *testing.T, s *GormRecordStore, collection string, ids ...string) {
	t.Helper()
	for i, id := range ids {
		require.NoError(t, s.Upsert(context.Background(), collection, contentapp.Document{
			ID:     id,
			Order:  i,
			Fields: map[string]any{"title": "Title " + id},
		}))
	}
}

func TestGormRecordStore_ListAll(t *testing.T) {
	s := setupRecordStore(t)
	ctx := context.Background()

	require.NoError(t, s.Upsert(ctx, "projects", contentapp.Document{ID: "b", Order: 1}))
	require.NoError(t, s.Upsert(ctx, "projects", contentapp.Document{ID: "c", Order: 0}))
	require.NoError(t, s.Upsert(ctx, "projects", contentapp.Document{ID: "a", Order: 1}))
	require.NoError(t, s.Upsert(ctx, "certificates", contentapp.Document{ID: "x", Order: 0}))

	docs, err := s.ListAll(ctx, "projects")
	require.NoError(t, err)

	ids := make([]string, len(docs))
	for i, d := range docs {
		ids[i] = d.ID
		assert.NotNil(t, d.Fields)
	}
	assert.Equal(t, []string{"c", "a", "b"}, ids, "ties are broken by id")

	empty, err := s.ListAll(ctx, "experiences")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestGormRecordStore_GetAndCount(t *testing.T) {
	s := setupRecordStore(t)
	ctx := context.Background()
	seed(t, s, "skillCategories/fe/skills", "react", "vue")

	doc, err := s.Get(ctx, "skillCategories/fe/skills", "vue")
	require.NoError(t, err)
	assert.Equal(t, 1, doc.Order)
	assert.Equal(t, "Title vue", doc.Fields["title"])

	_, err = s.Get(ctx, "skillCategories/be/skills", "vue")
	assert.ErrorIs(t, err, shared.ErrNotFound)

	n, err := s.Count(ctx, "skillCategories/fe/skills")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestGormRecordStore_UpsertMerges(t *testing.T) {
	s := setupRecordStore(t)
	ctx := context.Background()

	require.NoError(t, s.Upsert(ctx, "portfolio", contentapp.Document{
		ID: "hero",
		Fields: map[string]any{
			"name":        "Ada",
			"title":       "Engineer",
			"socialLinks": map[string]any{"github": "https://github.com/ada", "twitter": "@ada"},
		},
	}))
	require.NoError(t, s.Upsert(ctx, "portfolio", contentapp.Document{
		ID: "hero",
		Fields: map[string]any{
			"title":       "Staff Engineer",
			"socialLinks": map[string]any{"twitter": "@ada_l"},
		},
	}))

	doc, err := s.Get(ctx, "portfolio", "hero")
	require.NoError(t, err)
	assert.Equal(t, "Ada", doc.Fields["name"], "missing fields are untouched")
	assert.Equal(t, "Staff Engineer", doc.Fields["title"])
	assert.Equal(t, map[string]any{"github": "https://github.com/ada", "twitter": "@ada_l"}, doc.Fields["socialLinks"])
}

func TestGormRecordStore_Delete(t *testing.T) {
	s := setupRecordStore(t)
	ctx := context.Background()
	seed(t, s, "projects", "a", "b")

	require.NoError(t, s.Delete(ctx, "projects", "a"))
	require.NoError(t, s.Delete(ctx, "projects", "a"), "deleting twice is fine")

	n, err := s.Count(ctx, "projects")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestGormRecordStore_Reorder(t *testing.T) {
	ctx := context.Background()

	t.Run("rewrites positions", func(t *testing.T) {
		s := setupRecordStore(t)
		seed(t, s, "projects", "a", "b", "c")

		require.NoError(t, s.Reorder(ctx, "projects", []string{"c", "a", "b"}))

		docs, err := s.ListAll(ctx, "projects")
		require.NoError(t, err)
		for i, want := range []string{"c", "a", "b"} {
			assert.Equal(t, want, docs[i].ID)
			assert.Equal(t, i, docs[i].Order)
		}
	})

	t.Run("unknown id changes nothing", func(t *testing.T) {
		s := setupRecordStore(t)
		seed(t, s, "projects", "a", "b")

		err := s.Reorder(ctx, "projects", []string{"b", "ghost", "a"})
		assert.ErrorIs(t, err, shared.ErrReorderFailed)

		docs, err := s.ListAll(ctx, "projects")
		require.NoError(t, err)
		assert.Equal(t, "a", docs[0].ID)
		assert.Equal(t, 0, docs[0].Order)
		assert.Equal(t, 1, docs[1].Order)
	})
}

func TestGormRecordStore_Failures(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("connection reset by peer")

	t.Run("list maps to backend unavailable", func(t *testing.T) {
		s, mock, mockDB := newMockRecordStore(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "content_records" WHERE collection = \$1`).
			WithArgs("projects").
			WillReturnError(boom)

		_, err := s.ListAll(ctx, "projects")
		assert.ErrorIs(t, err, shared.ErrBackendUnavailable)
		assert.ErrorIs(t, err, boom)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("count maps to backend unavailable", func(t *testing.T) {
		s, mock, mockDB := newMockRecordStore(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT count\(\*\) FROM "content_records"`).WillReturnError(boom)

		_, err := s.Count(ctx, "projects")
		assert.ErrorIs(t, err, shared.ErrBackendUnavailable)
	})

	t.Run("reorder rolls back", func(t *testing.T) {
		s, mock, mockDB := newMockRecordStore(t)
		defer mockDB.Close()

		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE "content_records" SET`).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`UPDATE "content_records" SET`).WillReturnError(boom)
		mock.ExpectRollback()

		err := s.Reorder(ctx, "projects", []string{"a", "b"})
		assert.ErrorIs(t, err, shared.ErrReorderFailed)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("delete maps to write failed", func(t *testing.T) {
		s, mock, mockDB := newMockRecordStore(t)
		defer mockDB.Close()

		mock.ExpectExec(`DELETE FROM "content_records"`).WillReturnError(boom)

		err := s.Delete(ctx, "projects", "a")
		assert.ErrorIs(t, err, shared.ErrWriteFailed)
	})
}

func TestMergeFields(t *testing.T) {
	base := map[string]any{"a": 1, "nested": map[string]any{"x": 1, "y": 2}, "list": []any{1, 2}}
	patch := map[string]any{"nested": map[string]any{"y": 3}, "list": []any{9}, "b": "new"}

	got := mergeFields(base, patch)

	assert.Equal(t, map[string]any{
		"a":      1,
		"b":      "new",
		"nested": map[string]any{"x": 1, "y": 3},
		"list":   []any{9},
	}, got)
	assert.Equal(t, 2, base["nested"].(map[string]any)["y"], "base is not modified")
}
