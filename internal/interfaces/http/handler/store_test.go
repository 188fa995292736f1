package handler

import (
	"testing"

	"github.com/portfolio/backend/internal/infrastructure/persistence"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// newMemoryStore returns a record store over an in-memory sqlite database
func newMemoryStore(t *testing.T) *persistence.GormRecordStore {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&persistence.RecordModel{}))
	return persistence.NewGormRecordStore(db)
}
