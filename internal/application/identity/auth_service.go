// Package identity authenticates the single site admin configured in
// admin.username and admin.password_hash.
package identity

import (
	"context"
	"crypto/subtle"
	"errors"
	"sync"
	"time"

	"github.com/portfolio/backend/internal/domain/shared"
	"github.com/portfolio/backend/internal/infrastructure/auth"
	"go.uber.org/zap"
)

// Auth error codes
var (
	ErrInvalidCredentials = shared.NewDomainError("INVALID_CREDENTIALS", "Invalid username or password")
	ErrAccountLocked      = shared.NewDomainError("ACCOUNT_LOCKED", "Too many failed login attempts. Please try again later")
	ErrTokenExpired       = shared.NewDomainError("TOKEN_EXPIRED", "Token has expired")
	ErrTokenInvalid       = shared.NewDomainError("TOKEN_INVALID", "Invalid token")
	ErrTokenRevoked       = shared.NewDomainError("TOKEN_REVOKED", "Token has been revoked")
	ErrTokenMaxRefresh    = shared.NewDomainError("TOKEN_MAX_REFRESH", "Maximum token refresh count exceeded. Please log in again")
	ErrInternal           = shared.NewDomainError("INTERNAL_ERROR", "An internal error occurred")
)

// PasswordVerifier checks a password against a stored hash
type PasswordVerifier interface {
	Verify(hash, password string) error
}

// AuthServiceConfig contains configuration for the auth service
type AuthServiceConfig struct {
	Username         string
	PasswordHash     string
	MaxLoginAttempts int           // failed attempts before the login is locked
	LockDuration     time.Duration // how long the login stays locked
}

// DefaultAuthServiceConfig returns default lockout settings for username
func DefaultAuthServiceConfig(username, passwordHash string) AuthServiceConfig {
	return AuthServiceConfig{
		Username:         username,
		PasswordHash:     passwordHash,
		MaxLoginAttempts: 5,
		LockDuration:     15 * time.Minute,
	}
}

// AuthService handles admin authentication
type AuthService struct {
	jwtService *auth.JWTService
	blacklist  auth.TokenBlacklist
	verifier   PasswordVerifier
	config     AuthServiceConfig
	logger     *zap.Logger
	now        func() time.Time

	mu          sync.Mutex
	failures    int
	lockedUntil time.Time
}

// NewAuthService creates a new authentication service
func NewAuthService(
	jwtService *auth.JWTService,
	blacklist auth.TokenBlacklist,
	verifier PasswordVerifier,
	config AuthServiceConfig,
	logger *zap.Logger,
) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		jwtService: jwtService,
		blacklist:  blacklist,
		verifier:   verifier,
		config:     config,
		logger:     logger,
		now:        time.Now,
	}
}

// Login checks the admin credentials and issues a session
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*TokenResult, error) {
	log := s.logger.With(zap.String("username", input.Username), zap.String("ip", input.IP))

	if err := s.checkLock(); err != nil {
		log.Warn("Login attempt while locked")
		return nil, err
	}

	if !s.credentialsMatch(input) {
		if s.recordFailure() {
			log.Warn("Login locked after too many failed attempts", zap.Int("attempts", s.config.MaxLoginAttempts))
			return nil, ErrAccountLocked
		}
		log.Warn("Invalid login attempt")
		return nil, ErrInvalidCredentials
	}
	s.resetFailures()

	pair, err := s.jwtService.GenerateTokenPair(s.config.Username)
	if err != nil {
		log.Error("Failed to generate token pair", zap.Error(err))
		return nil, ErrInternal.Wrap(err)
	}

	log.Info("Admin logged in")
	return toTokenResult(pair), nil
}

// Refresh exchanges a refresh token for a new session. The old refresh
// token is revoked so it cannot be replayed.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*TokenResult, error) {
	old, err := s.jwtService.ValidateRefreshToken(refreshToken)
	if err != nil {
		s.logger.Warn("Refresh token validation failed", zap.Error(err))
		return nil, mapTokenError(err)
	}
	if err := s.checkRevoked(ctx, old); err != nil {
		return nil, err
	}

	pair, _, err := s.jwtService.RefreshTokenPair(refreshToken)
	if err != nil {
		s.logger.Warn("Token refresh failed", zap.Error(err))
		return nil, mapTokenError(err)
	}

	if err := s.blacklist.AddToBlacklist(ctx, old.ID, old.RemainingTTL()); err != nil {
		s.logger.Error("Failed to revoke used refresh token", zap.Error(err))
	}

	s.logger.Info("Token refreshed", zap.String("username", old.Username()))
	return toTokenResult(pair), nil
}

// Authenticate validates an access token and rejects revoked ones
func (s *AuthService) Authenticate(ctx context.Context, accessToken string) (*auth.Claims, error) {
	claims, err := s.jwtService.ValidateAccessToken(accessToken)
	if err != nil {
		return nil, mapTokenError(err)
	}
	if err := s.checkRevoked(ctx, claims); err != nil {
		return nil, err
	}
	return claims, nil
}

// Me returns the signed-in admin
func (s *AuthService) Me(claims *auth.Claims) CurrentUser {
	var expiresAt time.Time
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}
	return CurrentUser{Username: claims.Username(), ExpiresAt: expiresAt}
}

// Logout revokes the access token and, when given, the refresh token
func (s *AuthService) Logout(ctx context.Context, input LogoutInput) error {
	if err := s.blacklist.AddToBlacklist(ctx, input.AccessTokenID, input.AccessTokenTTL); err != nil {
		s.logger.Error("Failed to revoke access token", zap.Error(err))
		return ErrInternal.Wrap(err)
	}

	if input.RefreshToken != "" {
		refresh, err := s.jwtService.ValidateRefreshToken(input.RefreshToken)
		if err == nil {
			if err := s.blacklist.AddToBlacklist(ctx, refresh.ID, refresh.RemainingTTL()); err != nil {
				s.logger.Error("Failed to revoke refresh token", zap.Error(err))
				return ErrInternal.Wrap(err)
			}
		}
	}

	s.logger.Info("Admin logged out")
	return nil
}

func (s *AuthService) checkRevoked(ctx context.Context, claims *auth.Claims) error {
	revoked, err := s.blacklist.IsBlacklisted(ctx, claims.ID)
	if err != nil {
		s.logger.Error("Failed to check token blacklist", zap.Error(err))
		return ErrInternal.Wrap(err)
	}
	if revoked {
		return ErrTokenRevoked
	}
	return nil
}

// credentialsMatch always runs the hash comparison so a wrong username takes
// as long as a wrong password.
func (s *AuthService) credentialsMatch(input LoginInput) bool {
	if s.config.PasswordHash == "" {
		return false
	}
	userOK := subtle.ConstantTimeCompare([]byte(input.Username), []byte(s.config.Username)) == 1
	passOK := s.verifier.Verify(s.config.PasswordHash, input.Password) == nil
	return userOK && passOK
}

func (s *AuthService) checkLock() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.now().Before(s.lockedUntil) {
		return ErrAccountLocked
	}
	return nil
}

// recordFailure counts a failed login and reports whether it locked the login
func (s *AuthService) recordFailure() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures++
	if s.config.MaxLoginAttempts > 0 && s.failures >= s.config.MaxLoginAttempts {
		s.failures = 0
		s.lockedUntil = s.now().Add(s.config.LockDuration)
		return true
	}
	return false
}

func (s *AuthService) resetFailures() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures = 0
}

func toTokenResult(pair *auth.TokenPair) *TokenResult {
	return &TokenResult{
		AccessToken:           pair.AccessToken,
		RefreshToken:          pair.RefreshToken,
		AccessTokenExpiresAt:  pair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: pair.RefreshTokenExpiresAt,
		TokenType:             pair.TokenType,
	}
}

func mapTokenError(err error) error {
	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		return ErrTokenExpired
	case errors.Is(err, auth.ErrMaxRefreshExceeded):
		return ErrTokenMaxRefresh
	default:
		return ErrTokenInvalid.Wrap(err)
	}
}
