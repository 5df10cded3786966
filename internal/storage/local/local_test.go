package local

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/immiform/immiform/internal/storage"
)

func TestNewLocalStorage_CreatesBaseDir(t *testing.T) {
	base := filepath.Join(t.TempDir(), "objects")
	_, err := NewLocalStorage(base)
	require.NoError(t, err)
	assert.DirExists(t, base)
}

func TestNewLocalStorage_EmptyDir(t *testing.T) {
	_, err := NewLocalStorage("")
	assert.Error(t, err)
}

func TestUploadAndGetURL(t *testing.T) {
	base := t.TempDir()
	store, err := NewLocalStorage(base)
	require.NoError(t, err)

	body := "rebuilt document bytes"
	out, err := store.Upload(t.Context(), storage.UploadInput{
		Key:         "abc123/translated_form.pdf",
		Body:        strings.NewReader(body),
		ContentType: "application/pdf",
		Size:        int64(len(body)),
	})
	require.NoError(t, err)
	require.NotNil(t, out)

	data, err := os.ReadFile(filepath.Join(base, "abc123", "translated_form.pdf"))
	require.NoError(t, err)
	assert.Equal(t, body, string(data))
	assert.FileExists(t, out.Location)

	url, err := store.GetURL(t.Context(), "abc123/translated_form.pdf")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "file://"))
	assert.Contains(t, url, "translated_form.pdf")
}

func TestUpload_MissingKey(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	_, err = store.Upload(t.Context(), storage.UploadInput{Body: strings.NewReader("x")})
	assert.Error(t, err)
}

func TestGetURL_MissingObject(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	_, err = store.GetURL(t.Context(), "does/not/exist.pdf")
	assert.Error(t, err)
}
