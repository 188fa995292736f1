package content

import (
	"context"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/portfolio/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// AllowedAssetTypes is the upload whitelist. SVG is excluded because it can
// carry script.
var AllowedAssetTypes = map[string]string{
	"image/jpeg":      ".jpg",
	"image/png":       ".png",
	"image/gif":       ".gif",
	"image/webp":      ".webp",
	"application/pdf": ".pdf",
}

// AssetServiceConfig holds upload limits
type AssetServiceConfig struct {
	MaxUploadSize int64
	KeyPrefix     string
}

// DefaultAssetServiceConfig returns the default upload limits
func DefaultAssetServiceConfig() AssetServiceConfig {
	return AssetServiceConfig{
		MaxUploadSize: 10 << 20,
		KeyPrefix:     "portfolio",
	}
}

// UploadInput describes one uploaded file
type UploadInput struct {
	FileName    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// AssetService uploads and removes images and PDFs
type AssetService struct {
	storage AssetStorage
	config  AssetServiceConfig
	logger  *zap.Logger
	now     func() time.Time
}

// NewAssetService creates an asset service
func NewAssetService(storage AssetStorage, config AssetServiceConfig, logger *zap.Logger) *AssetService {
	if config.MaxUploadSize <= 0 {
		config.MaxUploadSize = DefaultAssetServiceConfig().MaxUploadSize
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AssetService{storage: storage, config: config, logger: logger, now: time.Now}
}

// Upload validates and stores a file, returning its public URL
func (s *AssetService) Upload(ctx context.Context, in UploadInput) (string, error) {
	contentType := strings.ToLower(strings.TrimSpace(strings.SplitN(in.ContentType, ";", 2)[0]))
	ext, ok := AllowedAssetTypes[contentType]
	if !ok {
		return "", shared.NewValidationError("file", fmt.Sprintf("Content type %q is not allowed; upload an image or PDF", in.ContentType))
	}
	if in.Size <= 0 {
		return "", shared.NewValidationError("file", "File is empty")
	}
	if in.Size > s.config.MaxUploadSize {
		return "", shared.NewValidationError("file", fmt.Sprintf("File exceeds the %d byte limit", s.config.MaxUploadSize))
	}

	key := s.objectKey(in.FileName, ext)
	url, err := s.storage.Upload(ctx, key, io.LimitReader(in.Body, in.Size), in.Size, contentType)
	if err != nil {
		s.logger.Error("Failed to upload asset", zap.String("key", key), zap.Error(err))
		return "", shared.ErrWriteFailed.Wrap(err)
	}

	s.logger.Info("Asset uploaded", zap.String("key", key), zap.Int64("size", in.Size))
	return url, nil
}

// Delete removes the asset behind url
func (s *AssetService) Delete(ctx context.Context, url string) error {
	if strings.TrimSpace(url) == "" {
		return shared.NewValidationError("url", "URL is required")
	}
	if err := s.storage.DeleteByURL(ctx, url); err != nil {
		s.logger.Warn("Failed to delete asset", zap.String("url", url), zap.Error(err))
		return shared.ErrAssetDeleteFailed.Wrap(err)
	}
	return nil
}

func (s *AssetService) objectKey(fileName, ext string) string {
	base := strings.TrimSuffix(filepath.Base(fileName), filepath.Ext(fileName))
	base = sanitizeKeySegment(base)
	if base == "" {
		base = "file"
	}
	now := s.now().UTC()
	return path.Join(s.config.KeyPrefix, now.Format("2006/01"), fmt.Sprintf("%s-%s%s", base, uuid.NewString()[:8], ext))
}

func sanitizeKeySegment(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		case r == ' ' || r == '.':
			b.WriteRune('-')
		}
	}
	out := b.String()
	if len(out) > 40 {
		out = out[:40]
	}
	return out
}

// ImageTransform are the resize options applied by TransformURL; zero
// values are omitted
type ImageTransform struct {
	Width   int
	Height  int
	Crop    string
	Quality int
}

// TransformURL inserts a w_,h_,c_,q_ transformation segment after the
// "/upload/" path element of an image delivery URL. URLs without exactly one
// such element, or an empty transform, are returned unchanged.
func TransformURL(url string, t ImageTransform) string {
	const marker = "/upload/"
	if strings.Count(url, marker) != 1 {
		return url
	}

	var parts []string
	if t.Width > 0 {
		parts = append(parts, fmt.Sprintf("w_%d", t.Width))
	}
	if t.Height > 0 {
		parts = append(parts, fmt.Sprintf("h_%d", t.Height))
	}
	if t.Crop != "" {
		parts = append(parts, "c_"+t.Crop)
	}
	if t.Quality > 0 {
		parts = append(parts, fmt.Sprintf("q_%d", t.Quality))
	}
	if len(parts) == 0 {
		return url
	}

	head, tail, _ := strings.Cut(url, marker)
	return head + marker + strings.Join(parts, ",") + "/" + tail
}
