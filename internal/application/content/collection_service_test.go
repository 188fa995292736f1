package content

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/portfolio/backend/internal/domain/content"
	"github.com/portfolio/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

var errBoom = errors.New("connection reset")

func TestCollectionService_FetchAll(t *testing.T) {
	ctx := context.Background()

	t.Run("decodes documents in ascending order", func(t *testing.T) {
		store := new(MockRecordStore)
		docs := []Document{
			{ID: "b", Order: 1, Fields: map[string]any{"title": "Second", "technologies": []any{"Go"}}},
			{ID: "a", Order: 0, Fields: map[string]any{"title": "First", "featured": true}},
		}
		store.On("ListAll", ctx, content.CollectionProjects).Return(docs, nil)

		svc := NewProjectService(store)
		projects, err := svc.FetchAll(ctx)

		require.NoError(t, err)
		require.Len(t, projects, 2)
		assert.Equal(t, "a", projects[0].ID)
		assert.Equal(t, "First", projects[0].Title)
		assert.True(t, projects[0].Featured)
		assert.Equal(t, []string{"Go"}, projects[1].Technologies)
		assert.Equal(t, 1, projects[1].Order)
		store.AssertExpectations(t)
	})

	t.Run("read failure becomes BackendUnavailable", func(t *testing.T) {
		store := new(MockRecordStore)
		store.On("ListAll", ctx, content.CollectionCertificates).Return(nil, errBoom)

		svc := NewCertificateService(store)
		_, err := svc.FetchAll(ctx)

		require.Error(t, err)
		assert.ErrorIs(t, err, shared.ErrBackendUnavailable)
		assert.ErrorIs(t, err, errBoom)
	})
}

func TestCollectionService_Save(t *testing.T) {
	ctx := context.Background()
	fixed := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	t.Run("creating a project assigns an id and order=count in one upsert", func(t *testing.T) {
		store := new(MockRecordStore)
		store.On("Count", ctx, content.CollectionProjects).Return(0, nil)
		store.On("Upsert", ctx, content.CollectionProjects, mock.MatchedBy(func(doc Document) bool {
			return doc.ID != "" && doc.Order == 0 && doc.Fields["title"] == "Portfolio Site"
		})).Return(nil).Once()

		svc := NewProjectService(store, WithClock(func() time.Time { return fixed }))
		p := svc.New(0)
		p.Title = "Portfolio Site"
		p.Description = "A personal portfolio website built with Go"

		saved, err := svc.Save(ctx, p)

		require.NoError(t, err)
		assert.NotEmpty(t, saved.ID)
		assert.Equal(t, 0, saved.Order)
		assert.Equal(t, fixed, saved.CreatedAt)
		store.AssertExpectations(t)
		store.AssertNumberOfCalls(t, "Upsert", 1)
	})

	t.Run("new record is placed after existing ones", func(t *testing.T) {
		store := new(MockRecordStore)
		store.On("Count", ctx, content.CollectionCertificates).Return(3, nil)
		store.On("Upsert", ctx, content.CollectionCertificates, mock.MatchedBy(func(doc Document) bool {
			return doc.Order == 3
		})).Return(nil)

		svc := NewCertificateService(store)
		saved, err := svc.Save(ctx, &content.Certificate{Title: "CKA", Issuer: "CNCF", IssueDate: "2023-05"})

		require.NoError(t, err)
		assert.Equal(t, 3, saved.Order)
	})

	t.Run("validation failure makes zero store calls", func(t *testing.T) {
		store := new(MockRecordStore)
		svc := NewCertificateService(store)

		_, err := svc.Save(ctx, &content.Certificate{Issuer: "CNCF", IssueDate: "2023-05"})

		var verr *shared.ValidationError
		require.True(t, errors.As(err, &verr))
		assert.Equal(t, "title", verr.Field)
		assert.Empty(t, store.Calls)
	})

	t.Run("updating keeps id and order without counting", func(t *testing.T) {
		store := new(MockRecordStore)
		store.On("Upsert", ctx, content.CollectionCertificates, mock.MatchedBy(func(doc Document) bool {
			return doc.ID == "c1" && doc.Order == 4
		})).Return(nil)

		svc := NewCertificateService(store)
		_, err := svc.Save(ctx, &content.Certificate{ID: "c1", Order: 4, Title: "CKA", Issuer: "CNCF", IssueDate: "2023-05"})

		require.NoError(t, err)
		store.AssertNotCalled(t, "Count", mock.Anything, mock.Anything)
	})

	t.Run("write failure becomes WriteFailed and keeps the form data", func(t *testing.T) {
		store := new(MockRecordStore)
		store.On("Count", ctx, content.CollectionProjects).Return(0, nil)
		store.On("Upsert", ctx, content.CollectionProjects, mock.Anything).Return(errBoom)

		svc := NewProjectService(store)
		p := &content.Project{Title: "Portfolio Site", Description: "A personal portfolio website"}
		saved, err := svc.Save(ctx, p)

		assert.ErrorIs(t, err, shared.ErrWriteFailed)
		assert.Equal(t, "", saved.ID)
		assert.Equal(t, "Portfolio Site", saved.Title)
	})

	t.Run("rejects ids containing a slash", func(t *testing.T) {
		store := new(MockRecordStore)
		svc := NewCertificateService(store)
		_, err := svc.Save(ctx, &content.Certificate{ID: "a/b", Title: "CKA", Issuer: "CNCF", IssueDate: "2023-05"})

		var verr *shared.ValidationError
		require.True(t, errors.As(err, &verr))
		assert.Equal(t, "id", verr.Field)
		assert.Empty(t, store.Calls)
	})

	t.Run("invalidates the public cache after a write", func(t *testing.T) {
		store := new(MockRecordStore)
		cache := new(MockCacheInvalidator)
		store.On("Upsert", ctx, content.CollectionExperiences, mock.Anything).Return(nil)
		cache.On("Invalidate", ctx, []string{content.CollectionExperiences}).Return(nil).Once()

		svc := NewExperienceService(store, WithCacheInvalidator(cache))
		e := content.NewExperience(0)
		e.ID = "e1"
		e.Company = "Acme"
		e.Position = "Engineer"
		e.StartDate = "2021-01"
		e.Tenure = content.Ongoing{}

		_, err := svc.Save(ctx, e)
		require.NoError(t, err)
		cache.AssertExpectations(t)
	})
}

func TestCollectionService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("asset failure is logged and the record is still deleted", func(t *testing.T) {
		core, logs := observer.New(zapcore.WarnLevel)
		store := new(MockRecordStore)
		assets := new(MockAssetStorage)
		assets.On("DeleteByURL", ctx, "https://cdn/img.png").Return(errBoom)
		store.On("Delete", ctx, content.CollectionProjects, "p1").Return(nil)

		svc := NewProjectService(store, WithAssetStorage(assets), WithLogger(zap.New(core)))
		err := svc.Delete(ctx, "p1", "https://cdn/img.png")

		require.NoError(t, err)
		store.AssertExpectations(t)
		assets.AssertExpectations(t)
		require.Equal(t, 1, logs.FilterMessage("Failed to delete record asset").Len())
	})

	t.Run("delete failure becomes WriteFailed", func(t *testing.T) {
		store := new(MockRecordStore)
		store.On("Delete", ctx, content.CollectionProjects, "p1").Return(errBoom)

		svc := NewProjectService(store)
		err := svc.Delete(ctx, "p1", "")
		assert.ErrorIs(t, err, shared.ErrWriteFailed)
	})

	t.Run("deleting the middle of three renumbers survivors in one reorder", func(t *testing.T) {
		store := new(MockRecordStore)
		store.On("Delete", ctx, content.CollectionCertificates, "c1").Return(nil).Once()
		store.On("Reorder", ctx, content.CollectionCertificates, []string{"c0", "c2"}).Return(nil).Once()

		certs := []*content.Certificate{
			{ID: "c0", Order: 0}, {ID: "c1", Order: 1}, {ID: "c2", Order: 2},
		}
		svc := NewCertificateService(store)
		survivors, err := svc.DeleteAndRenumber(ctx, certs, "c1", "")

		require.NoError(t, err)
		require.Len(t, survivors, 2)
		assert.Equal(t, 0, survivors[0].Order)
		assert.Equal(t, 1, survivors[1].Order)
		store.AssertNumberOfCalls(t, "Reorder", 1)
		store.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestCollectionService_ReorderAfterMove(t *testing.T) {
	ctx := context.Background()
	records := func() []*content.Certificate {
		return []*content.Certificate{{ID: "a", Order: 0}, {ID: "b", Order: 1}, {ID: "c", Order: 2}, {ID: "d", Order: 3}}
	}

	t.Run("persists the swapped order once", func(t *testing.T) {
		store := new(MockRecordStore)
		store.On("Reorder", ctx, content.CollectionCertificates, []string{"a", "c", "b", "d"}).Return(nil).Once()

		svc := NewCertificateService(store)
		out, err := svc.ReorderAfterMove(ctx, records(), "c", content.DirectionUp)

		require.NoError(t, err)
		assert.Equal(t, []string{"a", "c", "b", "d"}, content.IDs(out))
		store.AssertExpectations(t)
	})

	t.Run("boundary move does not call the store", func(t *testing.T) {
		store := new(MockRecordStore)
		svc := NewCertificateService(store)

		out, err := svc.ReorderAfterMove(ctx, records(), "d", content.DirectionDown)
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b", "c", "d"}, content.IDs(out))
		assert.Empty(t, store.Calls)
	})

	t.Run("store failure surfaces ReorderFailed", func(t *testing.T) {
		store := new(MockRecordStore)
		store.On("Reorder", ctx, content.CollectionCertificates, mock.Anything).Return(shared.ErrReorderFailed.Wrap(errBoom))

		svc := NewCertificateService(store)
		_, err := svc.ReorderAfterMove(ctx, records(), "b", content.DirectionDown)

		assert.ErrorIs(t, err, shared.ErrReorderFailed)
	})
}

func TestProjectService_Queries(t *testing.T) {
	ctx := context.Background()
	store := new(MockRecordStore)
	store.On("ListAll", ctx, content.CollectionProjects).Return([]Document{
		{ID: "1", Order: 0, Fields: map[string]any{"title": "A", "featured": true, "category": "web"}},
		{ID: "2", Order: 1, Fields: map[string]any{"title": "B", "category": "mobile"}},
		{ID: "3", Order: 2, Fields: map[string]any{"title": "C", "featured": true, "category": "web"}},
	}, nil)
	svc := NewProjectService(store)

	featured, err := svc.Featured(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "3"}, content.IDs(featured))

	web, err := svc.ByCategory(ctx, "web")
	require.NoError(t, err)
	assert.Len(t, web, 2)

	categories, err := svc.Categories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"mobile", "web"}, categories)
}

func TestCertificateService_Latest(t *testing.T) {
	ctx := context.Background()
	store := new(MockRecordStore)
	store.On("ListAll", ctx, content.CollectionCertificates).Return([]Document{
		{ID: "old", Order: 0, Fields: map[string]any{"issueDate": "2018-01"}},
		{ID: "new", Order: 1, Fields: map[string]any{"issueDate": "2024-01"}},
	}, nil)

	latest, err := NewCertificateService(store).Latest(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"new"}, content.IDs(latest))
}
