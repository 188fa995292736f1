package telemetry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type tracedRecord struct {
	ID    string `gorm:"primaryKey"`
	Title string
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&tracedRecord{}))
	return db
}

func TestNewDBTracingPlugin_Defaults(t *testing.T) {
	p := NewDBTracingPlugin(DBTracingConfig{Enabled: true}, zap.NewNop())
	assert.Equal(t, 200*time.Millisecond, p.config.SlowQueryThresh)

	cfg := DefaultDBTracingConfig()
	assert.False(t, cfg.Enabled)
	assert.Equal(t, "postgresql", cfg.DBSystem)
}

func TestDBTracingPlugin_Disabled(t *testing.T) {
	db := setupTestDB(t)
	require.NoError(t, NewDBTracingPlugin(DefaultDBTracingConfig(), zap.NewNop()).Register(db))
	assert.Nil(t, db.Callback().Query().Get("otel_timing:after_query"))
}

func TestDBTracingPlugin_Register(t *testing.T) {
	db := setupTestDB(t)
	cfg := DefaultDBTracingConfig()
	cfg.Enabled = true
	cfg.DBSystem = "sqlite"
	require.NoError(t, NewDBTracingPlugin(cfg, zap.NewNop()).Register(db))

	for _, name := range []string{"otel_timing:before_create", "otel_timing:after_create"} {
		assert.NotNil(t, db.Callback().Create().Get(name), name)
	}
	assert.NotNil(t, db.Callback().Raw().Get("otel_timing:after_raw"))
}

func TestDBTracingPlugin_AfterQuery(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	defer tp.Shutdown(context.Background())

	db := setupTestDB(t)
	p := NewDBTracingPlugin(DBTracingConfig{Enabled: true, SlowQueryThresh: time.Millisecond}, zap.NewNop())

	ctx, span := tp.Tracer("test").Start(context.Background(), "query")
	ctx = context.WithValue(ctx, queryStartTimeKey, time.Now().Add(-time.Second))

	stmt := db.Session(&gorm.Session{NewDB: true}).WithContext(ctx)
	stmt.Statement.Table = "content_records"
	stmt.Statement.RowsAffected = 2
	stmt.Error = errors.New("constraint failed")
	p.afterQuery(stmt)
	span.End()

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	got := spans[0]
	assert.Equal(t, codes.Error, got.Status().Code)
	assert.Contains(t, got.Attributes(), attribute.Int64("db.rows_affected", 2))
	assert.Contains(t, got.Attributes(), attribute.String("db.sql.table", "content_records"))
	assert.Contains(t, got.Attributes(), attribute.Bool("db.slow_query", true))

	var names []string
	for _, e := range got.Events() {
		names = append(names, e.Name)
	}
	assert.Contains(t, names, "slow_query_warning")
}

func TestDBTracingPlugin_IgnoresRecordNotFound(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	defer tp.Shutdown(context.Background())

	db := setupTestDB(t)
	p := NewDBTracingPlugin(DBTracingConfig{Enabled: true}, zap.NewNop())

	ctx, span := tp.Tracer("test").Start(context.Background(), "query")
	stmt := db.Session(&gorm.Session{NewDB: true}).WithContext(ctx)
	stmt.Error = gorm.ErrRecordNotFound
	p.afterQuery(stmt)
	span.End()

	require.Len(t, recorder.Ended(), 1)
	assert.NotEqual(t, codes.Error, recorder.Ended()[0].Status().Code)
}
