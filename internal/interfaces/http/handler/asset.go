package handler

import (
	"context"
	"mime"
	"path/filepath"

	"github.com/gin-gonic/gin"
	contentapp "github.com/portfolio/backend/internal/application/content"
	"github.com/portfolio/backend/internal/domain/shared"
)

// AssetUploader stores and removes uploaded files
type AssetUploader interface {
	Upload(ctx context.Context, in contentapp.UploadInput) (string, error)
	Delete(ctx context.Context, url string) error
}

// AssetHandler handles admin image and document uploads
type AssetHandler struct {
	BaseHandler
	assets AssetUploader
}

// NewAssetHandler creates a new asset handler
func NewAssetHandler(assets AssetUploader) *AssetHandler {
	return &AssetHandler{assets: assets}
}

// RegisterRoutes mounts the asset routes on rg
func (h *AssetHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("", h.Upload)
	rg.DELETE("", h.Delete)
}

// Upload stores the multipart field "file" and returns its public URL
func (h *AssetHandler) Upload(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		h.HandleError(c, shared.NewValidationError("file", "A file is required"))
		return
	}
	f, err := fh.Open()
	if err != nil {
		h.BadRequest(c, "Could not read uploaded file")
		return
	}
	defer f.Close()

	contentType := fh.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		if byExt := mime.TypeByExtension(filepath.Ext(fh.Filename)); byExt != "" {
			contentType = byExt
		}
	}

	url, err := h.assets.Upload(c.Request.Context(), contentapp.UploadInput{
		FileName:    fh.Filename,
		ContentType: contentType,
		Size:        fh.Size,
		Body:        f,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, gin.H{"url": url})
}

// Delete removes the asset at ?url=
func (h *AssetHandler) Delete(c *gin.Context) {
	if err := h.assets.Delete(c.Request.Context(), c.Query("url")); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
