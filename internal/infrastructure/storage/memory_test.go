package storage

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMemoryAssetStorage(t *testing.T) {
	assert.Equal(t, "http://localhost:8080/assets", NewMemoryAssetStorage("").BaseURL)
	assert.Equal(t, "https://cdn.example.com", NewMemoryAssetStorage("https://cdn.example.com/").BaseURL)
}

func TestMemoryAssetStorage_UploadAndDelete(t *testing.T) {
	s := NewMemoryAssetStorage("https://cdn.example.com")
	ctx := context.Background()

	url, err := s.Upload(ctx, "portfolio/2024/05/logo-1a2b3c4d.png", strings.NewReader("png"), 3, "image/png")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/portfolio/2024/05/logo-1a2b3c4d.png", url)

	obj, ok := s.Object("portfolio/2024/05/logo-1a2b3c4d.png")
	require.True(t, ok)
	assert.Equal(t, "image/png", obj.ContentType)
	assert.Equal(t, []byte("png"), obj.Data)

	require.NoError(t, s.DeleteByURL(ctx, url))
	assert.Equal(t, 0, s.Len())

	t.Run("deleting twice is fine", func(t *testing.T) {
		assert.NoError(t, s.DeleteByURL(ctx, url))
	})

	t.Run("foreign url", func(t *testing.T) {
		assert.ErrorIs(t, s.DeleteByURL(ctx, "https://other.example.com/x.png"), ErrForeignURL)
	})

	t.Run("empty key", func(t *testing.T) {
		_, err := s.Upload(ctx, "", strings.NewReader("x"), 1, "image/png")
		assert.Error(t, err)
	})
}
