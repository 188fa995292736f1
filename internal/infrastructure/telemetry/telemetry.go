package telemetry

import (
	"context"
	"errors"

	"github.com/portfolio/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// Telemetry owns every provider started for the process.
type Telemetry struct {
	Tracer   *TracerProvider
	Meter    *MeterProvider
	Logs     *LoggerProvider
	Profiler *Profiler
}

// Setup starts the providers enabled in cfg. Tracing, metrics and logs all
// require cfg.Enabled; profiling is controlled on its own.
func Setup(ctx context.Context, cfg config.TelemetryConfig, logger *zap.Logger) (*Telemetry, error) {
	t := &Telemetry{}
	var err error

	t.Tracer, err = NewTracerProvider(ctx, Config{
		Enabled:           cfg.Enabled,
		CollectorEndpoint: cfg.CollectorEndpoint,
		SamplingRatio:     cfg.SamplingRatio,
		ServiceName:       cfg.ServiceName,
		Insecure:          cfg.Insecure,
	}, logger)
	if err != nil {
		return nil, err
	}

	t.Meter, err = NewMeterProvider(ctx, MetricsConfig{
		Enabled:           cfg.Enabled && cfg.MetricsEnabled,
		CollectorEndpoint: cfg.CollectorEndpoint,
		ExportInterval:    cfg.MetricsInterval,
		ServiceName:       cfg.ServiceName,
		Insecure:          cfg.Insecure,
	}, logger)
	if err != nil {
		return nil, errors.Join(err, t.Shutdown(ctx))
	}

	t.Logs, err = NewLoggerProvider(ctx, LogsConfig{
		Enabled:           cfg.Enabled && cfg.LogsEnabled,
		CollectorEndpoint: cfg.CollectorEndpoint,
		ServiceName:       cfg.ServiceName,
		Insecure:          cfg.Insecure,
	}, logger)
	if err != nil {
		return nil, errors.Join(err, t.Shutdown(ctx))
	}

	t.Profiler, err = NewProfiler(ProfilerConfig{
		Enabled:         cfg.ProfilingEnabled,
		ServerAddress:   cfg.ProfilingServer,
		ApplicationName: cfg.ServiceName,
	}, logger)
	if err != nil {
		return nil, errors.Join(err, t.Shutdown(ctx))
	}
	if t.Profiler.IsEnabled() {
		if err := t.Tracer.EnableSpanProfiles(); err != nil {
			logger.Warn("Failed to enable span profiles", zap.Error(err))
		}
	}
	return t, nil
}

// DBTracing returns the gorm tracing plugin configured from cfg.
func DBTracing(cfg config.TelemetryConfig, driver string, logger *zap.Logger) *DBTracingPlugin {
	system := "postgresql"
	if driver == "sqlite" {
		system = "sqlite"
	}
	return NewDBTracingPlugin(DBTracingConfig{
		Enabled:         cfg.Enabled && cfg.DBTraceEnabled,
		LogFullSQL:      cfg.DBLogFullSQL,
		SlowQueryThresh: cfg.DBSlowQueryThresh,
		DBSystem:        system,
	}, logger)
}

// Shutdown stops every started provider and joins their errors.
func (t *Telemetry) Shutdown(ctx context.Context) error {
	var errs []error
	if t.Profiler != nil {
		errs = append(errs, t.Profiler.Stop())
	}
	if t.Logs != nil {
		errs = append(errs, t.Logs.Shutdown(ctx))
	}
	if t.Meter != nil {
		errs = append(errs, t.Meter.Shutdown(ctx))
	}
	if t.Tracer != nil {
		errs = append(errs, t.Tracer.Shutdown(ctx))
	}
	return errors.Join(errs...)
}
