package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/portfolio/backend/internal/domain/shared"
	"github.com/portfolio/backend/internal/infrastructure/auth"
	"github.com/portfolio/backend/internal/infrastructure/logger"
	"github.com/portfolio/backend/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// JWT context keys
const (
	JWTClaimsKey   = "jwt_claims"
	JWTUsernameKey = "jwt_username"
	AuthHeaderKey  = "Authorization"
	BearerPrefix   = "Bearer "
)

// Authenticator validates an access token and returns its claims
type Authenticator interface {
	Authenticate(ctx context.Context, accessToken string) (*auth.Claims, error)
}

// JWTMiddlewareConfig holds configuration for JWT middleware
type JWTMiddlewareConfig struct {
	Authenticator Authenticator
	// SkipPaths are paths that don't require authentication
	SkipPaths []string
	Logger    *zap.Logger
}

// JWTAuthMiddleware rejects requests without a valid, unrevoked access token
func JWTAuthMiddleware(authenticator Authenticator, log *zap.Logger) gin.HandlerFunc {
	return JWTAuthMiddlewareWithConfig(JWTMiddlewareConfig{Authenticator: authenticator, Logger: log})
}

// JWTAuthMiddlewareWithConfig creates JWT authentication middleware with custom config
func JWTAuthMiddlewareWithConfig(cfg JWTMiddlewareConfig) gin.HandlerFunc {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	skip := make(map[string]struct{}, len(cfg.SkipPaths))
	for _, p := range cfg.SkipPaths {
		skip[p] = struct{}{}
	}

	return func(c *gin.Context) {
		if _, ok := skip[c.Request.URL.Path]; ok {
			c.Next()
			return
		}

		token, ok := BearerToken(c)
		if !ok {
			abortUnauthorized(c, dto.ErrCodeUnauthorized, "Authentication required")
			return
		}

		claims, err := cfg.Authenticator.Authenticate(c.Request.Context(), token)
		if err != nil {
			cfg.Logger.Warn("JWT authentication failed",
				zap.Error(err),
				zap.String("path", c.Request.URL.Path),
			)
			code, message := dto.ErrCodeTokenInvalid, "Invalid token"
			var de *shared.DomainError
			if errors.As(err, &de) {
				code, message = dto.NormalizeErrorCode(de.Code), de.Message
			}
			abortUnauthorized(c, code, message)
			return
		}

		c.Set(JWTClaimsKey, claims)
		c.Set(JWTUsernameKey, claims.Username())
		c.Request = c.Request.WithContext(logger.WithUser(c.Request.Context(), claims.Username()))
		c.Next()
	}
}

// BearerToken extracts the token from the Authorization header
func BearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader(AuthHeaderKey)
	if !strings.HasPrefix(header, BearerPrefix) {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, BearerPrefix))
	return token, token != ""
}

func abortUnauthorized(c *gin.Context, code, message string) {
	status := dto.GetHTTPStatus(code)
	if status < http.StatusBadRequest || status >= http.StatusInternalServerError {
		status = http.StatusUnauthorized
	}
	c.AbortWithStatusJSON(status, dto.NewErrorResponseWithRequestID(code, message, c.GetString(logger.RequestIDKey)))
}

// GetJWTClaims retrieves JWT claims from gin.Context
func GetJWTClaims(c *gin.Context) *auth.Claims {
	if claims, exists := c.Get(JWTClaimsKey); exists {
		if jwtClaims, ok := claims.(*auth.Claims); ok {
			return jwtClaims
		}
	}
	return nil
}

// GetJWTUsername retrieves the username from JWT claims in context
func GetJWTUsername(c *gin.Context) string {
	return c.GetString(JWTUsernameKey)
}
