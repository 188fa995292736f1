package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/portfolio/backend/internal/application/identity"
	"github.com/portfolio/backend/internal/infrastructure/auth"
	"github.com/portfolio/backend/internal/interfaces/http/middleware"
)

// AuthService is the session API the auth handler drives
type AuthService interface {
	Login(ctx context.Context, input identity.LoginInput) (*identity.TokenResult, error)
	Refresh(ctx context.Context, refreshToken string) (*identity.TokenResult, error)
	Me(claims *auth.Claims) identity.CurrentUser
	Logout(ctx context.Context, input identity.LogoutInput) error
}

// LoginRequest is the admin login body
type LoginRequest struct {
	Username string `json:"username" binding:"required,max=100"`
	Password string `json:"password" binding:"required,max=200"`
}

// RefreshTokenRequest carries the refresh token to rotate
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// LogoutRequest optionally names the refresh token to revoke with the session
type LogoutRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// AuthHandler handles admin session requests
type AuthHandler struct {
	BaseHandler
	authService AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login exchanges the admin credentials for a token pair
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.authService.Login(c.Request.Context(), identity.LoginInput{
		Username: req.Username,
		Password: req.Password,
		IP:       c.ClientIP(),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// RefreshToken rotates a refresh token into a new pair
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.authService.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Me returns the signed-in admin
func (h *AuthHandler) Me(c *gin.Context) {
	claims := middleware.GetJWTClaims(c)
	if claims == nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	h.Success(c, h.authService.Me(claims))
}

// Logout revokes the current access token and the refresh token if sent
func (h *AuthHandler) Logout(c *gin.Context) {
	claims := middleware.GetJWTClaims(c)
	if claims == nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req LogoutRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.BindError(c, err)
			return
		}
	}

	err := h.authService.Logout(c.Request.Context(), identity.LogoutInput{
		AccessTokenID:  claims.ID,
		AccessTokenTTL: claims.RemainingTTL(),
		RefreshToken:   req.RefreshToken,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"message": "Logged out successfully"})
}
