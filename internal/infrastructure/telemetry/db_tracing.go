package telemetry

import (
	"context"
	"errors"
	"time"

	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DBTracingConfig holds configuration for database tracing.
type DBTracingConfig struct {
	Enabled         bool
	LogFullSQL      bool          // include bound variables; never in production
	SlowQueryThresh time.Duration // default 200ms
	DBSystem        string        // "postgresql" or "sqlite"
}

// DefaultDBTracingConfig returns the default database tracing settings.
func DefaultDBTracingConfig() DBTracingConfig {
	return DBTracingConfig{
		SlowQueryThresh: 200 * time.Millisecond,
		DBSystem:        "postgresql",
	}
}

// DBTracingPlugin registers otelgorm plus slow query and error marking.
type DBTracingPlugin struct {
	config DBTracingConfig
	logger *zap.Logger
}

// NewDBTracingPlugin creates a database tracing plugin.
func NewDBTracingPlugin(cfg DBTracingConfig, logger *zap.Logger) *DBTracingPlugin {
	if cfg.SlowQueryThresh <= 0 {
		cfg.SlowQueryThresh = DefaultDBTracingConfig().SlowQueryThresh
	}
	return &DBTracingPlugin{config: cfg, logger: logger}
}

// Register installs the plugin on db. It is a no-op when disabled.
func (p *DBTracingPlugin) Register(db *gorm.DB) error {
	if !p.config.Enabled {
		p.logger.Debug("Database tracing disabled")
		return nil
	}

	opts := []otelgorm.Option{otelgorm.WithDBName(p.config.DBSystem)}
	if !p.config.LogFullSQL {
		opts = append(opts, otelgorm.WithoutQueryVariables())
	}
	if err := db.Use(otelgorm.NewPlugin(opts...)); err != nil {
		return err
	}
	if err := p.registerCallbacks(db); err != nil {
		return err
	}

	p.logger.Info("Database tracing enabled",
		zap.Bool("log_full_sql", p.config.LogFullSQL),
		zap.Duration("slow_query_threshold", p.config.SlowQueryThresh),
	)
	return nil
}

// callbackRegistrar is satisfied by gorm's unexported callback type
type callbackRegistrar interface {
	Register(name string, fn func(*gorm.DB)) error
}

type operationCallbacks struct {
	op     string
	before func(name string) callbackRegistrar
	after  func(name string) callbackRegistrar
}

func (p *DBTracingPlugin) registerCallbacks(db *gorm.DB) error {
	cb := db.Callback()
	ops := []operationCallbacks{
		{"create", func(n string) callbackRegistrar { return cb.Create().Before(n) }, func(n string) callbackRegistrar { return cb.Create().After(n) }},
		{"query", func(n string) callbackRegistrar { return cb.Query().Before(n) }, func(n string) callbackRegistrar { return cb.Query().After(n) }},
		{"update", func(n string) callbackRegistrar { return cb.Update().Before(n) }, func(n string) callbackRegistrar { return cb.Update().After(n) }},
		{"delete", func(n string) callbackRegistrar { return cb.Delete().Before(n) }, func(n string) callbackRegistrar { return cb.Delete().After(n) }},
		{"row", func(n string) callbackRegistrar { return cb.Row().Before(n) }, func(n string) callbackRegistrar { return cb.Row().After(n) }},
		{"raw", func(n string) callbackRegistrar { return cb.Raw().Before(n) }, func(n string) callbackRegistrar { return cb.Raw().After(n) }},
	}
	for _, o := range ops {
		if err := o.before("gorm:"+o.op).Register("otel_timing:before_"+o.op, markQueryStart); err != nil {
			return err
		}
		if err := o.after("gorm:"+o.op).Register("otel_timing:after_"+o.op, p.afterQuery); err != nil {
			return err
		}
	}
	return nil
}

type contextKey string

const queryStartTimeKey contextKey = "otel_query_start_time"

func markQueryStart(db *gorm.DB) {
	if db.Statement.Context != nil {
		db.Statement.Context = context.WithValue(db.Statement.Context, queryStartTimeKey, time.Now())
	}
}

// afterQuery annotates the current span with row count, table, errors and
// the slow query flag.
func (p *DBTracingPlugin) afterQuery(db *gorm.DB) {
	ctx := db.Statement.Context
	if ctx == nil {
		return
	}
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}

	if db.Statement.RowsAffected >= 0 {
		span.SetAttributes(attribute.Int64("db.rows_affected", db.Statement.RowsAffected))
	}
	if db.Statement.Table != "" {
		span.SetAttributes(attribute.String("db.sql.table", db.Statement.Table))
	}
	if db.Error != nil && !errors.Is(db.Error, gorm.ErrRecordNotFound) {
		span.SetStatus(codes.Error, db.Error.Error())
		span.RecordError(db.Error)
	}

	start, ok := ctx.Value(queryStartTimeKey).(time.Time)
	if !ok {
		return
	}
	if elapsed := time.Since(start); elapsed > p.config.SlowQueryThresh {
		span.SetAttributes(
			attribute.Bool("db.slow_query", true),
			attribute.Int64("db.query_duration_ms", elapsed.Milliseconds()),
		)
		span.AddEvent("slow_query_warning", trace.WithAttributes(
			attribute.Int64("duration_ms", elapsed.Milliseconds()),
			attribute.Int64("threshold_ms", p.config.SlowQueryThresh.Milliseconds()),
		))
	}
}
