package handler

import (
	"context"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/portfolio/backend/internal/application/public"
	"github.com/portfolio/backend/internal/domain/content"
)

// PublicRenderer builds the read-only views of the public site. Its methods
// never fail: unreachable content renders as defaults or empty lists.
type PublicRenderer interface {
	Hero(ctx context.Context) content.Hero
	About(ctx context.Context) content.About
	Projects(ctx context.Context) public.ListView[public.ProjectCard]
	Certificates(ctx context.Context) public.ListView[public.CertificateCard]
	LatestCertificates(ctx context.Context, limit int) public.ListView[public.CertificateCard]
	Experiences(ctx context.Context) public.ListView[public.ExperienceEntry]
	Skills(ctx context.Context) public.ListView[*content.SkillCategory]
	Home(ctx context.Context) public.Home
}

// PublicHandler serves the public portfolio pages
type PublicHandler struct {
	BaseHandler
	renderer PublicRenderer
}

// NewPublicHandler creates a new public handler
func NewPublicHandler(renderer PublicRenderer) *PublicHandler {
	return &PublicHandler{renderer: renderer}
}

// Home returns the landing page sections
func (h *PublicHandler) Home(c *gin.Context) {
	h.Success(c, h.renderer.Home(c.Request.Context()))
}

// Hero returns the hero section
func (h *PublicHandler) Hero(c *gin.Context) {
	h.Success(c, h.renderer.Hero(c.Request.Context()))
}

// About returns the about section
func (h *PublicHandler) About(c *gin.Context) {
	h.Success(c, h.renderer.About(c.Request.Context()))
}

// Projects lists projects, narrowed by ?category= and ?featured=true
func (h *PublicHandler) Projects(c *gin.Context) {
	view := public.ByCategory(h.renderer.Projects(c.Request.Context()), c.Query("category"))
	if featured, _ := strconv.ParseBool(c.Query("featured")); featured {
		view = view.Filter(func(p public.ProjectCard) bool { return p.Featured })
	}
	h.Success(c, view)
}

// ProjectCategories returns the project filter options, "all" first
func (h *PublicHandler) ProjectCategories(c *gin.Context) {
	view := h.renderer.Projects(c.Request.Context())
	categories := view.Categories
	if len(categories) == 0 {
		categories = []string{content.CategoryAll}
	}
	h.Success(c, categories)
}

// Certificates lists certificates, narrowed by ?category=
func (h *PublicHandler) Certificates(c *gin.Context) {
	h.Success(c, public.ByCategory(h.renderer.Certificates(c.Request.Context()), c.Query("category")))
}

// LatestCertificates returns the most recently issued certificates
func (h *PublicHandler) LatestCertificates(c *gin.Context) {
	limit := content.DefaultLatestCertificates
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 50 {
			h.BadRequest(c, "limit must be a number between 1 and 50")
			return
		}
		limit = n
	}
	h.Success(c, h.renderer.LatestCertificates(c.Request.Context(), limit))
}

// Experiences lists positions with their display periods
func (h *PublicHandler) Experiences(c *gin.Context) {
	h.Success(c, h.renderer.Experiences(c.Request.Context()))
}

// Skills lists skill categories with their skills
func (h *PublicHandler) Skills(c *gin.Context) {
	h.Success(c, h.renderer.Skills(c.Request.Context()))
}
