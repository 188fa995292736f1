package telemetry

import (
	"fmt"
	"os"
	"sync"

	"github.com/grafana/pyroscope-go"
	"go.uber.org/zap"
)

// ProfilerConfig holds Pyroscope continuous profiling configuration.
type ProfilerConfig struct {
	Enabled         bool
	ServerAddress   string // e.g. "http://pyroscope:4040"
	ApplicationName string
	// ProfileTypes defaults to DefaultProfileTypes when empty
	ProfileTypes []pyroscope.ProfileType
}

// DefaultProfileTypes are CPU, heap and goroutine profiles. Mutex and block
// profiles need runtime sampling rates and stay off.
var DefaultProfileTypes = []pyroscope.ProfileType{
	pyroscope.ProfileCPU,
	pyroscope.ProfileAllocObjects,
	pyroscope.ProfileAllocSpace,
	pyroscope.ProfileInuseObjects,
	pyroscope.ProfileInuseSpace,
	pyroscope.ProfileGoroutines,
}

// Profiler wraps the Pyroscope profiler with lifecycle management.
type Profiler struct {
	profiler *pyroscope.Profiler
	logger   *zap.Logger
	config   ProfilerConfig
	mu       sync.Mutex
	stopped  bool
}

// NewProfiler starts a Pyroscope profiler, or returns a no-op one when
// profiling is disabled.
func NewProfiler(cfg ProfilerConfig, logger *zap.Logger) (*Profiler, error) {
	p := &Profiler{logger: logger, config: cfg}
	if !cfg.Enabled {
		return p, nil
	}

	if cfg.ServerAddress == "" {
		return nil, fmt.Errorf("profiler server address is required when profiling is enabled")
	}
	if cfg.ApplicationName == "" {
		return nil, fmt.Errorf("profiler application name is required when profiling is enabled")
	}
	types := cfg.ProfileTypes
	if len(types) == 0 {
		types = DefaultProfileTypes
	}

	tags := map[string]string{}
	if hostname, err := os.Hostname(); err == nil {
		tags["hostname"] = hostname
	}

	profiler, err := pyroscope.Start(pyroscope.Config{
		ApplicationName: cfg.ApplicationName,
		ServerAddress:   cfg.ServerAddress,
		Logger:          logger.Named("pyroscope").Sugar(),
		Tags:            tags,
		ProfileTypes:    types,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start Pyroscope profiler: %w", err)
	}
	p.profiler = profiler

	logger.Info("Pyroscope profiler started",
		zap.String("server_address", cfg.ServerAddress),
		zap.Int("profile_types", len(types)),
	)
	return p, nil
}

// Stop flushes pending profiles. It is safe to call more than once.
func (p *Profiler) Stop() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.stopped || p.profiler == nil {
		p.stopped = true
		return nil
	}
	p.stopped = true

	if err := p.profiler.Stop(); err != nil {
		return fmt.Errorf("failed to stop profiler: %w", err)
	}
	return nil
}

// IsEnabled returns whether profiling is running.
func (p *Profiler) IsEnabled() bool {
	return p.config.Enabled && p.profiler != nil
}
