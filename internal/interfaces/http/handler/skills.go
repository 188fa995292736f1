package handler

import (
	"context"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	contentapp "github.com/portfolio/backend/internal/application/content"
	"github.com/portfolio/backend/internal/domain/content"
	"github.com/portfolio/backend/internal/domain/shared"
)

// SkillsEditor is the skills API behind the admin skills screen
type SkillsEditor interface {
	FetchAll(ctx context.Context) ([]*content.SkillCategory, error)
	SaveTree(ctx context.Context, tree []*content.SkillCategory) ([]*content.SkillCategory, error)
	DeleteCategory(ctx context.Context, id string) error
	MoveCategory(ctx context.Context, categories []*content.SkillCategory, id string, dir content.Direction) ([]*content.SkillCategory, error)
	DuplicateSkill(ctx context.Context, categoryID, skillID string) (*content.Skill, error)
	MoveSkill(ctx context.Context, skillID, targetCategoryID string) ([]*content.SkillCategory, error)
}

// MoveSkillRequest names the category a skill moves to
type MoveSkillRequest struct {
	TargetCategoryID string `json:"targetCategoryId" binding:"required"`
}

// SkillsHandler handles the admin skills screen
type SkillsHandler struct {
	BaseHandler
	skills SkillsEditor
	now    func() time.Time
}

// NewSkillsHandler creates a new skills handler
func NewSkillsHandler(skills SkillsEditor) *SkillsHandler {
	return &SkillsHandler{skills: skills, now: time.Now}
}

// RegisterRoutes mounts the skills routes on rg
func (h *SkillsHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.Tree)
	rg.PUT("", h.SaveTree)
	rg.GET("/export", h.Export)
	rg.POST("/import", h.Import)
	rg.DELETE("/categories/:id", h.DeleteCategory)
	rg.POST("/categories/:id/move", h.MoveCategory)
	rg.POST("/categories/:id/skills/:skillId/duplicate", h.DuplicateSkill)
	rg.POST("/skills/:skillId/move", h.MoveSkill)
}

// Tree returns every category with its skills
func (h *SkillsHandler) Tree(c *gin.Context) {
	tree, err := h.skills.FetchAll(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.List(c, orEmpty(tree), len(tree))
}

// SaveTree persists {categories} as sent; slice order is the display order
func (h *SkillsHandler) SaveTree(c *gin.Context) {
	var doc contentapp.SkillsDocument
	if err := c.ShouldBindJSON(&doc); err != nil {
		h.BindError(c, err)
		return
	}
	saved, err := h.skills.SaveTree(c.Request.Context(), doc.Categories)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.List(c, orEmpty(saved), len(saved))
}

// DeleteCategory removes a category and all of its skills. It requires
// ?confirm=true.
func (h *SkillsHandler) DeleteCategory(c *gin.Context) {
	if confirmed, _ := strconv.ParseBool(c.Query("confirm")); !confirmed {
		h.HandleError(c, shared.ErrConfirmationRequired)
		return
	}
	if err := h.skills.DeleteCategory(c.Request.Context(), c.Param("id")); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// MoveCategory swaps a category with its neighbour
func (h *SkillsHandler) MoveCategory(c *gin.Context) {
	var req MoveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	dir, err := content.ParseDirection(req.Direction)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	ctx := c.Request.Context()
	tree, err := h.skills.FetchAll(ctx)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if content.IndexOf(tree, c.Param("id")) < 0 {
		h.NotFound(c, "Skill category not found")
		return
	}
	moved, err := h.skills.MoveCategory(ctx, tree, c.Param("id"), dir)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.List(c, moved, len(moved))
}

// DuplicateSkill appends a copy of a skill to its category
func (h *SkillsHandler) DuplicateSkill(c *gin.Context) {
	dup, err := h.skills.DuplicateSkill(c.Request.Context(), c.Param("id"), c.Param("skillId"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, dup)
}

// MoveSkill moves a skill to the end of another category
func (h *SkillsHandler) MoveSkill(c *gin.Context) {
	var req MoveSkillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	tree, err := h.skills.MoveSkill(c.Request.Context(), c.Param("skillId"), req.TargetCategoryID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.List(c, tree, len(tree))
}

// Export downloads the tree as a dated JSON file
func (h *SkillsHandler) Export(c *gin.Context) {
	tree, err := h.skills.FetchAll(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	data, err := contentapp.ExportSkills(tree)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+contentapp.ExportFileName(h.now())+`"`)
	c.Data(http.StatusOK, "application/json", data)
}

// Import validates an uploaded skills file, sent as the multipart field
// "file" or as the raw body. The parsed tree is returned for review and
// only persisted with ?save=true.
func (h *SkillsHandler) Import(c *gin.Context) {
	var body io.Reader = c.Request.Body
	if fh, err := c.FormFile("file"); err == nil {
		if fh.Size > contentapp.MaxImportSize {
			h.HandleError(c, shared.NewValidationError("file", "File exceeds the 1 MiB import limit"))
			return
		}
		f, err := fh.Open()
		if err != nil {
			h.BadRequest(c, "Could not read uploaded file")
			return
		}
		defer f.Close()
		body = f
	}

	result, err := contentapp.ImportSkills(body)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	if save, _ := strconv.ParseBool(c.Query("save")); save {
		saved, err := h.skills.SaveTree(c.Request.Context(), result.Categories)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		result.Categories = saved
	}
	h.Success(c, result)
}

func orEmpty[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
