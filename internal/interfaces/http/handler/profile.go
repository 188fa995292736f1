package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/portfolio/backend/internal/domain/content"
)

// ProfileEditor reads and merges the hero and about singletons
type ProfileEditor interface {
	Hero(ctx context.Context) (content.Hero, error)
	About(ctx context.Context) (content.About, error)
	UpdateHero(ctx context.Context, patch content.HeroPatch) (content.Hero, error)
	UpdateAbout(ctx context.Context, patch content.AboutPatch) (content.About, error)
}

// ProfileHandler handles the admin profile editor
type ProfileHandler struct {
	BaseHandler
	profile ProfileEditor
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(profile ProfileEditor) *ProfileHandler {
	return &ProfileHandler{profile: profile}
}

// RegisterRoutes mounts the profile routes on rg
func (h *ProfileHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/hero", h.GetHero)
	rg.PUT("/hero", h.UpdateHero)
	rg.GET("/about", h.GetAbout)
	rg.PUT("/about", h.UpdateAbout)
}

// GetHero returns the stored hero. Unlike the public page it reports a
// backend failure instead of rendering defaults.
func (h *ProfileHandler) GetHero(c *gin.Context) {
	hero, err := h.profile.Hero(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, hero)
}

// UpdateHero merges the sent fields into the hero
func (h *ProfileHandler) UpdateHero(c *gin.Context) {
	var patch content.HeroPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		h.BindError(c, err)
		return
	}
	hero, err := h.profile.UpdateHero(c.Request.Context(), patch)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, hero)
}

// GetAbout returns the stored about section
func (h *ProfileHandler) GetAbout(c *gin.Context) {
	about, err := h.profile.About(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, about)
}

// UpdateAbout merges the sent fields into the about section
func (h *ProfileHandler) UpdateAbout(c *gin.Context) {
	var patch content.AboutPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		h.BindError(c, err)
		return
	}
	about, err := h.profile.UpdateAbout(c.Request.Context(), patch)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, about)
}
