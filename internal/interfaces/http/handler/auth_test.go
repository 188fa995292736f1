package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/portfolio/backend/internal/application/identity"
	"github.com/portfolio/backend/internal/infrastructure/auth"
	"github.com/portfolio/backend/internal/infrastructure/config"
	"github.com/portfolio/backend/internal/interfaces/http/dto"
	"github.com/portfolio/backend/internal/interfaces/http/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testPassword = "correct horse battery staple"

// testJWTConfig returns a default JWT config for tests
func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:                 "test-secret-key-32-characters-long",
		RefreshSecret:          "test-refresh-secret-32-characters",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 7 * 24 * time.Hour,
		Issuer:                 "test-issuer",
		MaxRefreshCount:        10,
	}
}

func newTestAuthService(t *testing.T) *identity.AuthService {
	t.Helper()
	hash, err := auth.HashPassword(testPassword)
	require.NoError(t, err)
	return identity.NewAuthService(
		auth.NewJWTService(testJWTConfig()),
		auth.NewInMemoryTokenBlacklist(),
		auth.BcryptVerifier{},
		identity.DefaultAuthServiceConfig("admin", hash),
		zap.NewNop(),
	)
}

func setupAuthRouter(svc *identity.AuthService) *gin.Engine {
	h := NewAuthHandler(svc)
	router := gin.New()
	router.POST("/auth/login", h.Login)
	router.POST("/auth/refresh", h.RefreshToken)
	protected := router.Group("/auth", middleware.JWTAuthMiddleware(svc, zap.NewNop()))
	protected.GET("/me", h.Me)
	protected.POST("/logout", h.Logout)
	return router
}

func jsonRequest(t *testing.T, method, path string, body any) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func serveHTTP(router http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func login(t *testing.T, router *gin.Engine) identity.TokenResult {
	t.Helper()
	w := serveHTTP(router, jsonRequest(t, http.MethodPost, "/auth/login", LoginRequest{Username: "admin", Password: testPassword}))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Data identity.TokenResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Data.AccessToken)
	return resp.Data
}

func TestAuthHandler_Login(t *testing.T) {
	router := setupAuthRouter(newTestAuthService(t))

	t.Run("success", func(t *testing.T) {
		tokens := login(t, router)
		assert.Equal(t, "Bearer", tokens.TokenType)
		assert.NotEmpty(t, tokens.RefreshToken)
	})

	t.Run("wrong password", func(t *testing.T) {
		w := serveHTTP(router, jsonRequest(t, http.MethodPost, "/auth/login", LoginRequest{Username: "admin", Password: "nope"}))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, dto.ErrCodeInvalidCredentials, decodeResponse(t, w).Error.Code)
	})

	t.Run("missing fields", func(t *testing.T) {
		w := serveHTTP(router, jsonRequest(t, http.MethodPost, "/auth/login", gin.H{"username": "admin"}))
		assert.Equal(t, http.StatusBadRequest, w.Code)
		resp := decodeResponse(t, w)
		assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)
		require.Len(t, resp.Error.Details, 1)
		assert.Equal(t, "password", resp.Error.Details[0].Field)
	})
}

func TestAuthHandler_RefreshAndMe(t *testing.T) {
	router := setupAuthRouter(newTestAuthService(t))
	tokens := login(t, router)

	w := serveHTTP(router, jsonRequest(t, http.MethodPost, "/auth/refresh", RefreshTokenRequest{RefreshToken: tokens.RefreshToken}))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+tokens.AccessToken)
	w = serveHTTP(router, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data identity.CurrentUser `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "admin", resp.Data.Username)
}

func TestAuthHandler_Logout(t *testing.T) {
	router := setupAuthRouter(newTestAuthService(t))
	tokens := login(t, router)

	req := jsonRequest(t, http.MethodPost, "/auth/logout", LogoutRequest{RefreshToken: tokens.RefreshToken})
	req.Header.Set("Authorization", "Bearer "+tokens.AccessToken)
	w := serveHTTP(router, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+tokens.AccessToken)
	assert.Equal(t, http.StatusUnauthorized, serveHTTP(router, req).Code, "revoked access token")

	w = serveHTTP(router, jsonRequest(t, http.MethodPost, "/auth/refresh", RefreshTokenRequest{RefreshToken: tokens.RefreshToken}))
	assert.Equal(t, http.StatusUnauthorized, w.Code, "revoked refresh token")
}

func TestAuthHandler_Logout_Unauthorized(t *testing.T) {
	h := NewAuthHandler(newTestAuthService(t))
	c, w := newTestContext(http.MethodPost, "/auth/logout")

	h.Logout(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
