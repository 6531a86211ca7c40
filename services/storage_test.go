package services

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"legal_cms_go/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorage(t *testing.T) {
	tempDir := t.TempDir()
	storage := NewLocalStorage(tempDir)
	ctx := context.Background()
	content := "hello storage"
	key := "cases/1/deed.pdf"

	assert.Equal(t, "local", storage.Name())

	t.Run("UploadReader creates file", func(t *testing.T) {
		result, err := storage.UploadReader(ctx, strings.NewReader(content), key, "application/pdf", int64(len(content)))
		require.NoError(t, err)
		assert.Equal(t, key, result.Key)
		assert.Equal(t, "deed.pdf", result.FileName)
		assert.Equal(t, int64(len(content)), result.FileSize)

		_, err = os.Stat(filepath.Join(tempDir, key))
		assert.NoError(t, err)
	})

	t.Run("Get retrieves file content", func(t *testing.T) {
		reader, contentType, err := storage.Get(ctx, key)
		require.NoError(t, err)
		defer reader.Close()

		got, _ := io.ReadAll(reader)
		assert.Equal(t, content, string(got))
		assert.Equal(t, "application/pdf", contentType)
	})

	t.Run("Keys cannot escape the base directory", func(t *testing.T) {
		_, err := storage.UploadReader(ctx, strings.NewReader("x"), "../../escape.txt", "text/plain", 1)
		require.NoError(t, err)
		_, err = os.Stat(filepath.Join(tempDir, "escape.txt"))
		assert.NoError(t, err)
	})

	t.Run("Delete is idempotent", func(t *testing.T) {
		require.NoError(t, storage.Delete(ctx, key))
		require.NoError(t, storage.Delete(ctx, key))

		_, _, err := storage.Get(ctx, key)
		assert.ErrorIs(t, err, ErrBlobNotFound)
	})

	t.Run("Upload multipart file", func(t *testing.T) {
		file := createMockFileHeader("photo.png", []byte("png-bytes"), "image/png")
		result, err := storage.Upload(ctx, file, "cases/2/photo.png")
		require.NoError(t, err)
		assert.Equal(t, "image/png", result.MimeType)
		assert.Equal(t, int64(len("png-bytes")), result.FileSize)
	})
}

func TestGenerateCaseDocumentKey(t *testing.T) {
	key := GenerateCaseDocumentKey(42, "Sale Deed.PDF")
	assert.True(t, strings.HasPrefix(key, "cases/42/"))
	assert.True(t, strings.HasSuffix(key, ".pdf"))
	assert.NotEqual(t, key, GenerateCaseDocumentKey(42, "Sale Deed.PDF"))
}

func TestInitializeStorageFallsBackToLocal(t *testing.T) {
	cfg := &config.Config{UploadDir: t.TempDir()}
	storage := InitializeStorage(cfg)
	assert.Equal(t, "local", storage.Name())
}
