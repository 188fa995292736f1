package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	contentapp "github.com/portfolio/backend/internal/application/content"
	"github.com/portfolio/backend/internal/domain/shared"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RecordModel is one document of an ordered collection. Collection and ID
// form the key; type-specific attributes live in Fields.
type RecordModel struct {
	Collection string         `gorm:"type:varchar(255);primaryKey;index:idx_content_records_order,priority:1"`
	ID         string         `gorm:"type:varchar(255);primaryKey;index:idx_content_records_order,priority:3"`
	SortOrder  int            `gorm:"not null;default:0;index:idx_content_records_order,priority:2"`
	Category   string         `gorm:"type:varchar(100);not null;default:''"`
	Fields     map[string]any `gorm:"type:jsonb;serializer:json"`
	CreatedAt  time.Time      `gorm:"autoCreateTime"`
	UpdatedAt  time.Time      `gorm:"autoUpdateTime"`
}

// TableName returns the table name for the model
func (RecordModel) TableName() string {
	return "content_records"
}

func (m *RecordModel) toDocument() contentapp.Document {
	fields := m.Fields
	if fields == nil {
		fields = map[string]any{}
	}
	return contentapp.Document{
		ID:       m.ID,
		Order:    m.SortOrder,
		Category: m.Category,
		Fields:   fields,
	}
}

// GormRecordStore implements the content record store on GORM
type GormRecordStore struct {
	db *gorm.DB
}

// NewGormRecordStore creates a new GORM record store
func NewGormRecordStore(db *gorm.DB) *GormRecordStore {
	return &GormRecordStore{db: db}
}

var _ contentapp.RecordStore = (*GormRecordStore)(nil)

// ListAll returns the collection sorted by order, ties broken by id
func (s *GormRecordStore) ListAll(ctx context.Context, collection string) ([]contentapp.Document, error) {
	var models []RecordModel
	err := s.db.WithContext(ctx).
		Where("collection = ?", collection).
		Order("sort_order ASC, id ASC").
		Find(&models).Error
	if err != nil {
		return nil, shared.ErrBackendUnavailable.Wrap(err)
	}

	docs := make([]contentapp.Document, len(models))
	for i := range models {
		docs[i] = models[i].toDocument()
	}
	return docs, nil
}

// Get returns one document or shared.ErrNotFound
func (s *GormRecordStore) Get(ctx context.Context, collection, id string) (*contentapp.Document, error) {
	var model RecordModel
	err := s.db.WithContext(ctx).
		Where("collection = ? AND id = ?", collection, id).
		First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, shared.ErrNotFound
	}
	if err != nil {
		return nil, shared.ErrBackendUnavailable.Wrap(err)
	}
	doc := model.toDocument()
	return &doc, nil
}

// Count returns the number of documents in the collection
func (s *GormRecordStore) Count(ctx context.Context, collection string) (int, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&RecordModel{}).
		Where("collection = ?", collection).
		Count(&count).Error
	if err != nil {
		return 0, shared.ErrBackendUnavailable.Wrap(err)
	}
	return int(count), nil
}

// Upsert creates the document or merges doc.Fields into the stored fields.
// Nested objects are merged key by key; every other value is replaced.
// Order and category are always taken from doc.
func (s *GormRecordStore) Upsert(ctx context.Context, collection string, doc contentapp.Document) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing RecordModel
		err := s.lockForUpdate(tx).
			Where("collection = ? AND id = ?", collection, doc.ID).
			First(&existing).Error

		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return tx.Create(&RecordModel{
				Collection: collection,
				ID:         doc.ID,
				SortOrder:  doc.Order,
				Category:   doc.Category,
				Fields:     mergeFields(nil, doc.Fields),
			}).Error
		case err != nil:
			return err
		}

		existing.SortOrder = doc.Order
		existing.Category = doc.Category
		existing.Fields = mergeFields(existing.Fields, doc.Fields)
		return tx.Model(&existing).
			Where("collection = ? AND id = ?", collection, doc.ID).
			Select("sort_order", "category", "fields", "updated_at").
			Updates(&existing).Error
	})
	if err != nil {
		return shared.ErrWriteFailed.Wrap(err)
	}
	return nil
}

// Delete removes a document; a missing id is not an error
func (s *GormRecordStore) Delete(ctx context.Context, collection, id string) error {
	err := s.db.WithContext(ctx).
		Where("collection = ? AND id = ?", collection, id).
		Delete(&RecordModel{}).Error
	if err != nil {
		return shared.ErrWriteFailed.Wrap(err)
	}
	return nil
}

// Reorder sets sort_order = index for every listed id in one transaction. An
// id that does not exist aborts the batch and nothing changes.
func (s *GormRecordStore) Reorder(ctx context.Context, collection string, orderedIDs []string) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		for i, id := range orderedIDs {
			res := tx.Model(&RecordModel{}).
				Where("collection = ? AND id = ?", collection, id).
				Updates(map[string]any{"sort_order": i, "updated_at": now})
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return fmt.Errorf("record %s not found in %s", id, collection)
			}
		}
		return nil
	})
	if err != nil {
		return shared.ErrReorderFailed.Wrap(err)
	}
	return nil
}

// lockForUpdate adds FOR UPDATE where the dialect supports row locks
func (s *GormRecordStore) lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}

// mergeFields returns base with patch merged in. Neither input is modified.
func mergeFields(base, patch map[string]any) map[string]any {
	out := make(map[string]any, len(base)+len(patch))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range patch {
		if pm, ok := v.(map[string]any); ok {
			if bm, ok := out[k].(map[string]any); ok {
				out[k] = mergeFields(bm, pm)
				continue
			}
		}
		out[k] = v
	}
	return out
}
