package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/portfolio/backend/internal/infrastructure/config"
)

// TokenType represents the type of JWT token
type TokenType string

const (
	TokenTypeAccess  TokenType = "access"
	TokenTypeRefresh TokenType = "refresh"
)

// Common errors
var (
	ErrInvalidToken       = errors.New("invalid token")
	ErrExpiredToken       = errors.New("token has expired")
	ErrInvalidTokenType   = errors.New("invalid token type")
	ErrInvalidClaims      = errors.New("invalid token claims")
	ErrTokenNotYetValid   = errors.New("token is not yet valid")
	ErrMissingSubject     = errors.New("missing subject in claims")
	ErrMaxRefreshExceeded = errors.New("maximum refresh count exceeded")
	ErrTokenRevoked       = errors.New("token has been revoked")
)

// Claims are the claims of a site admin session
type Claims struct {
	jwt.RegisteredClaims
	TokenType    TokenType `json:"token_type"`
	RefreshCount int       `json:"refresh_count,omitempty"`
}

// Username returns the admin the token was issued to
func (c *Claims) Username() string {
	return c.Subject
}

// RemainingTTL returns the time until the token expires, zero once expired
func (c *Claims) RemainingTTL() time.Duration {
	if c.ExpiresAt == nil {
		return 0
	}
	if remaining := time.Until(c.ExpiresAt.Time); remaining > 0 {
		return remaining
	}
	return 0
}

// TokenPair represents an access and refresh token pair
type TokenPair struct {
	AccessToken           string    `json:"accessToken"`
	RefreshToken          string    `json:"refreshToken"`
	AccessTokenExpiresAt  time.Time `json:"accessTokenExpiresAt"`
	RefreshTokenExpiresAt time.Time `json:"refreshTokenExpiresAt"`
	TokenType             string    `json:"tokenType"`
}

// JWTService issues and validates admin session tokens
type JWTService struct {
	accessSecret      []byte
	refreshSecret     []byte
	accessExpiration  time.Duration
	refreshExpiration time.Duration
	issuer            string
	maxRefreshCount   int
	now               func() time.Time
}

// NewJWTService creates a new JWT service
func NewJWTService(cfg config.JWTConfig) *JWTService {
	refreshSecret := []byte(cfg.RefreshSecret)
	if cfg.RefreshSecret == "" {
		refreshSecret = []byte(cfg.Secret)
	}

	return &JWTService{
		accessSecret:      []byte(cfg.Secret),
		refreshSecret:     refreshSecret,
		accessExpiration:  cfg.AccessTokenExpiration,
		refreshExpiration: cfg.RefreshTokenExpiration,
		issuer:            cfg.Issuer,
		maxRefreshCount:   cfg.MaxRefreshCount,
		now:               time.Now,
	}
}

// GenerateTokenPair issues a fresh session for username
func (s *JWTService) GenerateTokenPair(username string) (*TokenPair, error) {
	return s.issue(username, 0)
}

// RefreshTokenPair exchanges a valid refresh token for a new pair. The
// refresh count carries over so a session cannot be extended forever.
func (s *JWTService) RefreshTokenPair(refreshToken string) (*TokenPair, *Claims, error) {
	claims, err := s.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, nil, err
	}
	if s.maxRefreshCount > 0 && claims.RefreshCount >= s.maxRefreshCount {
		return nil, nil, ErrMaxRefreshExceeded
	}

	pair, err := s.issue(claims.Subject, claims.RefreshCount+1)
	if err != nil {
		return nil, nil, err
	}
	return pair, claims, nil
}

// ValidateAccessToken validates an access token and returns its claims
func (s *JWTService) ValidateAccessToken(tokenString string) (*Claims, error) {
	return s.validateToken(tokenString, s.accessSecret, TokenTypeAccess)
}

// ValidateRefreshToken validates a refresh token and returns its claims
func (s *JWTService) ValidateRefreshToken(tokenString string) (*Claims, error) {
	return s.validateToken(tokenString, s.refreshSecret, TokenTypeRefresh)
}

// AccessTokenExpiration returns the access token lifetime
func (s *JWTService) AccessTokenExpiration() time.Duration {
	return s.accessExpiration
}

func (s *JWTService) issue(username string, refreshCount int) (*TokenPair, error) {
	now := s.now()
	accessExpiresAt := now.Add(s.accessExpiration)
	refreshExpiresAt := now.Add(s.refreshExpiration)

	accessToken, err := s.sign(&Claims{
		RegisteredClaims: s.registered(username, now, accessExpiresAt),
		TokenType:        TokenTypeAccess,
	}, s.accessSecret)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.sign(&Claims{
		RegisteredClaims: s.registered(username, now, refreshExpiresAt),
		TokenType:        TokenTypeRefresh,
		RefreshCount:     refreshCount,
	}, s.refreshSecret)
	if err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:           accessToken,
		RefreshToken:          refreshToken,
		AccessTokenExpiresAt:  accessExpiresAt,
		RefreshTokenExpiresAt: refreshExpiresAt,
		TokenType:             "Bearer",
	}, nil
}

func (s *JWTService) registered(subject string, now, expiresAt time.Time) jwt.RegisteredClaims {
	return jwt.RegisteredClaims{
		ID:        uuid.New().String(),
		Issuer:    s.issuer,
		Subject:   subject,
		Audience:  jwt.ClaimStrings{s.issuer},
		ExpiresAt: jwt.NewNumericDate(expiresAt),
		NotBefore: jwt.NewNumericDate(now),
		IssuedAt:  jwt.NewNumericDate(now),
	}
}

func (s *JWTService) sign(claims *Claims, secret []byte) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

func (s *JWTService) validateToken(tokenString string, secret []byte, expectedType TokenType) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return secret, nil
	}, jwt.WithIssuer(s.issuer), jwt.WithTimeFunc(s.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		if errors.Is(err, jwt.ErrTokenNotValidYet) {
			return nil, ErrTokenNotYetValid
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidClaims
	}
	if claims.TokenType != expectedType {
		return nil, ErrInvalidTokenType
	}
	if claims.Subject == "" {
		return nil, ErrMissingSubject
	}
	return claims, nil
}
