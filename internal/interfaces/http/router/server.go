package router

import (
	"slices"

	"github.com/gin-gonic/gin"
	"github.com/portfolio/backend/internal/infrastructure/config"
	"github.com/portfolio/backend/internal/infrastructure/logger"
	"github.com/portfolio/backend/internal/infrastructure/telemetry"
	"github.com/portfolio/backend/internal/interfaces/http/handler"
	"github.com/portfolio/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// Handlers are the HTTP handlers mounted by New
type Handlers struct {
	Health        *handler.HealthHandler
	Public        *handler.PublicHandler
	Contact       *handler.ContactHandler
	Auth          *handler.AuthHandler
	Authenticator middleware.Authenticator

	Projects     RouteRegistrar
	Certificates RouteRegistrar
	Experiences  RouteRegistrar
	Skills       RouteRegistrar
	Profile      RouteRegistrar
	Assets       RouteRegistrar
}

// Config controls the global middleware chain
type Config struct {
	HTTP          config.HTTPConfig
	Tracing       middleware.TracingConfig
	Profiling     middleware.ProfilingConfig
	MeterProvider *telemetry.MeterProvider
	Logger        *zap.Logger
}

// Engine is the configured gin engine. Close stops the rate limiter
// cleanup goroutines it started.
type Engine struct {
	*gin.Engine
	limiters []*middleware.RateLimiter
}

// Close releases the engine's background goroutines
func (e *Engine) Close() {
	for _, l := range e.limiters {
		l.Stop()
	}
}

// New builds the engine with every route of the portfolio API
func New(cfg Config, h Handlers) (*Engine, error) {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			return nil, err
		}
	} else if err := engine.SetTrustedProxies(nil); err != nil {
		return nil, err
	}
	e := &Engine{Engine: engine}

	metrics, err := middleware.HTTPMetrics(cfg.MeterProvider)
	if err != nil {
		return nil, err
	}

	cors := middleware.DefaultCORSConfig()
	cors.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		cors.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		cors.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}

	engine.Use(
		middleware.RequestID(),
		logger.GinMiddleware(log, "/health", "/health/live"),
		logger.Recovery(log),
		middleware.Secure(),
		middleware.CORSWithConfig(cors),
		middleware.Tracing(cfg.Tracing),
		metrics,
		middleware.Profiling(cfg.Profiling),
	)
	if cfg.HTTP.MaxBodySize > 0 {
		engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))
	}
	if cfg.HTTP.RateLimitEnabled && cfg.HTTP.RateLimitRequests > 0 {
		limiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		e.limiters = append(e.limiters, limiter)
		engine.Use(middleware.RateLimit(limiter))
	}

	if h.Health != nil {
		engine.GET("/health", h.Health.Ready)
		engine.GET("/health/live", h.Health.Live)
	}

	r := NewRouter(engine)
	if h.Public != nil {
		r.Register(publicRoutes(h.Public))
	}
	if h.Contact != nil {
		r.Register(NewDomainGroup("contact", "").POST("/contact", h.Contact.Submit))
	}
	if h.Auth != nil && h.Authenticator != nil {
		r.Register(e.authRoutes(cfg.HTTP, h.Auth, h.Authenticator, log))
	}
	if h.Authenticator != nil {
		r.Register(adminRoutes(h, log))
	}
	r.Setup()

	return e, nil
}

func publicRoutes(h *handler.PublicHandler) *DomainGroup {
	return NewDomainGroup("public", "/public").
		GET("/home", h.Home).
		GET("/hero", h.Hero).
		GET("/about", h.About).
		GET("/projects", h.Projects).
		GET("/projects/categories", h.ProjectCategories).
		GET("/certificates", h.Certificates).
		GET("/certificates/latest", h.LatestCertificates).
		GET("/experiences", h.Experiences).
		GET("/skills", h.Skills)
}

func (e *Engine) authRoutes(cfg config.HTTPConfig, h *handler.AuthHandler, authn middleware.Authenticator, log *zap.Logger) *DomainGroup {
	group := NewDomainGroup("auth", "/auth")

	var credentials []gin.HandlerFunc
	if cfg.RateLimitEnabled && cfg.AuthRateLimitRequests > 0 {
		limiter := middleware.NewRateLimiter(cfg.AuthRateLimitRequests, cfg.AuthRateLimitWindow)
		e.limiters = append(e.limiters, limiter)
		credentials = append(credentials, middleware.AuthRateLimit(limiter))
	}
	limited := func(next gin.HandlerFunc) []gin.HandlerFunc {
		return append(slices.Clone(credentials), next)
	}
	group.POST("/login", limited(h.Login)...)
	group.POST("/refresh", limited(h.RefreshToken)...)

	session := group.Group("session", "").Use(middleware.JWTAuthMiddleware(authn, log))
	session.GET("/me", h.Me)
	session.POST("/logout", h.Logout)
	return group
}

func adminRoutes(h Handlers, log *zap.Logger) *DomainGroup {
	return NewDomainGroup("admin", "/admin").
		Use(middleware.JWTAuthMiddleware(h.Authenticator, log), middleware.TracingAttributeInjector()).
		Mount("/projects", h.Projects).
		Mount("/certificates", h.Certificates).
		Mount("/experiences", h.Experiences).
		Mount("/skills", h.Skills).
		Mount("/profile", h.Profile).
		Mount("/assets", h.Assets)
}
