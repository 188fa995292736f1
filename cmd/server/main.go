package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/portfolio/backend/internal/application/admin"
	contentapp "github.com/portfolio/backend/internal/application/content"
	identityapp "github.com/portfolio/backend/internal/application/identity"
	"github.com/portfolio/backend/internal/application/public"
	"github.com/portfolio/backend/internal/domain/content"
	"github.com/portfolio/backend/internal/infrastructure/auth"
	"github.com/portfolio/backend/internal/infrastructure/cache"
	"github.com/portfolio/backend/internal/infrastructure/config"
	"github.com/portfolio/backend/internal/infrastructure/logger"
	"github.com/portfolio/backend/internal/infrastructure/persistence"
	"github.com/portfolio/backend/internal/infrastructure/storage"
	"github.com/portfolio/backend/internal/infrastructure/telemetry"
	"github.com/portfolio/backend/internal/interfaces/http/handler"
	"github.com/portfolio/backend/internal/interfaces/http/middleware"
	"github.com/portfolio/backend/internal/interfaces/http/router"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const shutdownTimeout = 30 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	logCfg := &logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	}
	log, err := logger.New(logCfg)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}

	ctx := context.Background()
	tel, err := telemetry.Setup(ctx, cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize telemetry", zap.Error(err))
	}
	if tel.Logs.IsEnabled() {
		// rebuild so every entry is also exported over OTLP
		if otelLog, err := logger.New(logCfg, tel.Logs.ZapCore(cfg.Telemetry.ServiceName, logger.ParseLevel(cfg.Log.Level))); err == nil {
			log = otelLog
		}
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting portfolio backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	if err := run(ctx, cfg, tel, log); err != nil {
		log.Error("Server stopped with error", zap.Error(err))
		shutdownTelemetry(tel, log)
		os.Exit(1)
	}
	shutdownTelemetry(tel, log)
	log.Info("Server exited gracefully")
}

func run(ctx context.Context, cfg *config.Config, tel *telemetry.Telemetry, log *zap.Logger) error {
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level),
		logger.WithFullSQL(cfg.Telemetry.DBLogFullSQL), logger.WithSlowThreshold(cfg.Telemetry.DBSlowQueryThresh))
	db, err := persistence.NewDatabase(&cfg.Database, persistence.WithLogger(gormLog))
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	if err := telemetry.DBTracing(cfg.Telemetry, cfg.Database.Driver, log).Register(db.DB); err != nil {
		log.Warn("Failed to register database tracing", zap.Error(err))
	}
	if cfg.Database.Driver == "sqlite" {
		// postgres schemas come from cmd/migrate
		if err := db.AutoMigrate(); err != nil {
			return err
		}
	}
	log.Info("Database connected", zap.String("driver", cfg.Database.Driver))

	contentCache, redisClient, closeCache := cache.NewFactory(cfg.Redis, log).Build(ctx)
	defer func() { _ = closeCache() }()
	var readCache telemetry.ContentCache = contentCache
	if tel.Meter.IsEnabled() {
		if m, err := telemetry.NewCacheMetrics(tel.Meter.Meter("portfolio.cache")); err == nil {
			readCache = m.Wrap(contentCache)
		} else {
			log.Warn("Failed to create cache metrics", zap.Error(err))
		}
	}

	assets, err := newAssetStorage(ctx, cfg, log)
	if err != nil {
		return err
	}

	store := persistence.NewGormRecordStore(db.DB)
	withCache := contentapp.WithCacheInvalidator(readCache)
	projects := contentapp.NewProjectService(store, withCache, contentapp.WithAssetStorage(assets),
		contentapp.WithLogger(log.Named("projects")))
	certificates := contentapp.NewCertificateService(store, withCache, contentapp.WithAssetStorage(assets),
		contentapp.WithLogger(log.Named("certificates")))
	experiences := contentapp.NewExperienceService(store, withCache, contentapp.WithLogger(log.Named("experiences")))
	skills := contentapp.NewSkillsService(store, withCache, contentapp.WithLogger(log.Named("skills")))
	profile := contentapp.NewProfileService(store, withCache, contentapp.WithLogger(log.Named("profile")))
	contact := contentapp.NewContactService(store, contentapp.WithLogger(log.Named("contact")))
	uploads := contentapp.NewAssetService(assets, contentapp.AssetServiceConfig{
		MaxUploadSize: cfg.Storage.MaxUploadSize,
		KeyPrefix:     cfg.Storage.KeyPrefix,
	}, log.Named("assets"))

	renderer := public.NewRenderer(public.Sources{
		Profile:      profile,
		Projects:     projects,
		Certificates: certificates,
		Experiences:  experiences,
		Skills:       skills,
	}, public.WithCache(readCache), public.WithLogger(log.Named("public")))

	authService := identityapp.NewAuthService(
		auth.NewJWTService(cfg.JWT),
		newTokenBlacklist(redisClient, log),
		auth.BcryptVerifier{},
		identityapp.DefaultAuthServiceConfig(cfg.Admin.Username, cfg.Admin.PasswordHash),
		log.Named("auth"),
	)
	if cfg.Admin.PasswordHash == "" {
		log.Warn("No admin password hash configured, admin login is disabled")
	}

	checks := map[string]handler.Pinger{"database": db}
	if redisClient != nil {
		checks["redis"] = redisPinger{redisClient}
	}

	tracing := middleware.DefaultTracingConfig()
	tracing.ServiceName = cfg.Telemetry.ServiceName
	tracing.Enabled = tel.Tracer.IsEnabled()
	profiling := middleware.DefaultProfilingConfig()
	profiling.Enabled = tel.Profiler.IsEnabled()

	engine, err := router.New(router.Config{
		HTTP:          cfg.HTTP,
		Tracing:       tracing,
		Profiling:     profiling,
		MeterProvider: tel.Meter,
		Logger:        log,
	}, router.Handlers{
		Health:        handler.NewHealthHandler(checks),
		Public:        handler.NewPublicHandler(renderer),
		Contact:       handler.NewContactHandler(contact),
		Auth:          handler.NewAuthHandler(authService),
		Authenticator: authService,
		Projects: handler.NewCollectionHandler(
			admin.NewListController[*content.Project](projects, log.Named("admin.projects")), content.NewProject),
		Certificates: handler.NewCollectionHandler(
			admin.NewListController[*content.Certificate](certificates, log.Named("admin.certificates")), content.NewCertificate),
		Experiences: handler.NewCollectionHandler(
			admin.NewListController[*content.Experience](experiences, log.Named("admin.experiences")), content.NewExperience),
		Skills:  handler.NewSkillsHandler(skills),
		Profile: handler.NewProfileHandler(profile),
		Assets:  handler.NewAssetHandler(uploads),
	})
	if err != nil {
		return err
	}
	defer engine.Close()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-serveErr:
		return err
	case <-quit:
	}
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// newAssetStorage returns the S3 bucket when storage is enabled and an
// in-process store otherwise
func newAssetStorage(ctx context.Context, cfg *config.Config, log *zap.Logger) (contentapp.AssetStorage, error) {
	if !cfg.Storage.Enabled {
		baseURL := cfg.Storage.PublicBaseURL
		if baseURL == "" {
			baseURL = "http://localhost:" + cfg.App.Port + "/assets"
		}
		log.Warn("Object storage disabled, uploads are kept in memory", zap.String("base_url", baseURL))
		return storage.NewMemoryAssetStorage(baseURL), nil
	}

	s3, err := storage.NewS3AssetStorage(&cfg.Storage, storage.WithLogger(log.Named("storage")))
	if err != nil {
		return nil, err
	}
	if err := s3.EnsureBucket(ctx); err != nil {
		return nil, err
	}
	log.Info("Using object storage", zap.String("bucket", s3.Bucket()))
	return s3, nil
}

// newTokenBlacklist shares the cache's Redis connection when there is one
func newTokenBlacklist(client *redis.Client, log *zap.Logger) auth.TokenBlacklist {
	if client == nil {
		log.Warn("Token revocation is kept in memory and is lost on restart")
		return auth.NewInMemoryTokenBlacklist()
	}
	return auth.NewRedisTokenBlacklist(client)
}

type redisPinger struct {
	client *redis.Client
}

func (p redisPinger) Ping(ctx context.Context) error {
	return p.client.Ping(ctx).Err()
}

func shutdownTelemetry(tel *telemetry.Telemetry, log *zap.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := tel.Shutdown(ctx); err != nil {
		log.Warn("Telemetry shutdown failed", zap.Error(err))
	}
}
