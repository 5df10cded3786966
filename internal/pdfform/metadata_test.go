package pdfform

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractMetadata_MissingFileKeepsDefaults(t *testing.T) {
	m := NewMetadataExtractor()
	meta, warnings := m.ExtractMetadata(filepath.Join(t.TempDir(), "nope.pdf"))

	assert.Equal(t, DefaultTitle, meta.Title)
	assert.Equal(t, "unknown", meta.FormType)
	assert.Zero(t, meta.TotalPages)
	assert.NotEmpty(t, warnings)
}

func TestExtractMetadata_UnreadableDocumentStillReportsFileSize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.pdf")
	require.NoError(t, os.WriteFile(path, []byte("not a real pdf body"), 0o644))

	m := NewMetadataExtractor()
	meta, warnings := m.ExtractMetadata(path)

	assert.Equal(t, int64(len("not a real pdf body")), meta.FileSize)
	assert.Equal(t, DefaultTitle, meta.Title)
	assert.NotEmpty(t, warnings)
}
