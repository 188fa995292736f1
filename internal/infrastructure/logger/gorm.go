package logger

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"
)

const defaultSlowQuery = 200 * time.Millisecond

// GormLogger routes GORM output to zap with the request's correlation
// fields. Statements are logged at Debug; failures at Error and slow
// queries at Warn. A missing row is never logged, the record store reports
// it as NotFound itself.
type GormLogger struct {
	logger        *zap.Logger
	level         gormlogger.LogLevel
	slowThreshold time.Duration
	fullSQL       bool
}

// GormLoggerOption configures a GormLogger
type GormLoggerOption func(*GormLogger)

// WithSlowThreshold sets the duration above which a query is reported as
// slow. Zero disables slow query reports.
func WithSlowThreshold(threshold time.Duration) GormLoggerOption {
	return func(l *GormLogger) { l.slowThreshold = threshold }
}

// WithFullSQL logs statement text with bound values. Without it only the
// statement verb is logged, since record payloads hold contact messages.
func WithFullSQL(enabled bool) GormLoggerOption {
	return func(l *GormLogger) { l.fullSQL = enabled }
}

// NewGormLogger creates a GORM logger backed by zap
func NewGormLogger(zapLogger *zap.Logger, level gormlogger.LogLevel, opts ...GormLoggerOption) *GormLogger {
	gl := &GormLogger{
		logger:        zapLogger.Named("gorm"),
		level:         level,
		slowThreshold: defaultSlowQuery,
	}
	for _, opt := range opts {
		opt(gl)
	}
	return gl
}

// LogMode implements gormlogger.Interface
func (l *GormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	clone := *l
	clone.level = level
	return &clone
}

// Info implements gormlogger.Interface
func (l *GormLogger) Info(ctx context.Context, msg string, data ...any) {
	l.message(ctx, gormlogger.Info, msg, data)
}

// Warn implements gormlogger.Interface
func (l *GormLogger) Warn(ctx context.Context, msg string, data ...any) {
	l.message(ctx, gormlogger.Warn, msg, data)
}

// Error implements gormlogger.Interface
func (l *GormLogger) Error(ctx context.Context, msg string, data ...any) {
	l.message(ctx, gormlogger.Error, msg, data)
}

func (l *GormLogger) message(ctx context.Context, level gormlogger.LogLevel, msg string, data []any) {
	if l.level < level {
		return
	}
	log := l.logger.With(contextFields(ctx)...)
	text := fmt.Sprintf(msg, data...)
	switch level {
	case gormlogger.Error:
		log.Error(text)
	case gormlogger.Warn:
		log.Warn(text)
	default:
		log.Info(text)
	}
}

// Trace implements gormlogger.Interface
func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (sql string, rowsAffected int64), err error) {
	if l.level <= gormlogger.Silent {
		return
	}
	if errors.Is(err, gormlogger.ErrRecordNotFound) {
		err = nil
	}

	elapsed := time.Since(begin)
	slow := l.slowThreshold > 0 && elapsed > l.slowThreshold
	switch {
	case err != nil && l.level >= gormlogger.Error:
	case slow && l.level >= gormlogger.Warn:
	case err == nil && l.level >= gormlogger.Info:
	default:
		return
	}

	sql, rows := fc()
	fields := append(contextFields(ctx),
		zap.Duration("elapsed", elapsed),
		zap.Int64("rows", rows),
	)
	if l.fullSQL {
		fields = append(fields, zap.String("sql", sql))
	} else {
		fields = append(fields, zap.String("statement", statementVerb(sql)))
	}

	switch {
	case err != nil:
		l.logger.Error("Query failed", append(fields, zap.Error(err))...)
	case slow:
		l.logger.Warn("Slow query", append(fields, zap.Duration("threshold", l.slowThreshold))...)
	default:
		l.logger.Debug("Query", fields...)
	}
}

// statementVerb returns the leading keyword of sql, e.g. SELECT
func statementVerb(sql string) string {
	verb, _, _ := strings.Cut(strings.TrimSpace(sql), " ")
	return strings.ToUpper(verb)
}

// MapGormLogLevel maps a log level name to the GORM level
func MapGormLogLevel(level string) gormlogger.LogLevel {
	switch level {
	case "silent":
		return gormlogger.Silent
	case "error":
		return gormlogger.Error
	case "warn":
		return gormlogger.Warn
	case "info", "debug":
		return gormlogger.Info
	default:
		return gormlogger.Warn
	}
}
