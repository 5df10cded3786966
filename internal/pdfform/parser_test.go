package pdfform

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParser_Validate_MissingFile(t *testing.T) {
	p := NewParser(nil)
	err := p.validate(filepath.Join(t.TempDir(), "nope.pdf"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInputValidation))
	assert.Contains(t, err.Error(), "file not found")
}

func TestParser_Validate_Directory(t *testing.T) {
	p := NewParser(nil)
	dir := filepath.Join(t.TempDir(), "folder.pdf")
	require.NoError(t, os.Mkdir(dir, 0o755))

	err := p.validate(dir)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInputValidation))
	assert.Contains(t, err.Error(), "directory")
}

func TestParser_Validate_NonPDFExtension(t *testing.T) {
	p := NewParser(nil)
	path := filepath.Join(t.TempDir(), "doc.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello"), 0o644))

	err := p.validate(path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInputValidation))
	assert.Contains(t, err.Error(), "must be a PDF")
}

func TestParser_Validate_EmptyFile(t *testing.T) {
	p := NewParser(nil)
	path := filepath.Join(t.TempDir(), "empty.pdf")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	err := p.validate(path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInputValidation))
	assert.Contains(t, err.Error(), "empty")
}

func TestParser_Validate_CorruptedPDF(t *testing.T) {
	p := NewParser(nil)
	path := filepath.Join(t.TempDir(), "garbage.pdf")
	require.NoError(t, os.WriteFile(path, []byte("this is not a pdf at all"), 0o644))

	err := p.validate(path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInputValidation))
}

func TestParseImmigrationForm_InvalidInputReturnsNoResult(t *testing.T) {
	p := NewParser(nil)
	result, err := p.ParseImmigrationForm(t.Context(), filepath.Join(t.TempDir(), "nope.pdf"))
	require.Error(t, err)
	assert.Nil(t, result)
}

func TestUniqueNames(t *testing.T) {
	tests := []struct {
		name     string
		in       []string
		expected []string
	}{
		{
			name:     "no collisions",
			in:       []string{"a", "b", "c"},
			expected: []string{"a", "b", "c"},
		},
		{
			name:     "single collision",
			in:       []string{"field", "field"},
			expected: []string{"field", "field_2"},
		},
		{
			name:     "triple collision",
			in:       []string{"field", "field", "field"},
			expected: []string{"field", "field_2", "field_3"},
		},
		{
			name:     "suffixed name already taken",
			in:       []string{"field_2", "field", "field"},
			expected: []string{"field_2", "field", "field_3"},
		},
		{
			name:     "suffixed name taken after the collision",
			in:       []string{"field", "field_2", "field"},
			expected: []string{"field", "field_2", "field_3"},
		},
		{
			name:     "empty",
			in:       nil,
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields := make([]FormField, len(tt.in))
			for i, n := range tt.in {
				fields[i] = FormField{Name: n}
			}

			out := uniqueNames(fields)
			got := make([]string, 0, len(out))
			for _, f := range out {
				got = append(got, f.Name)
			}
			if tt.expected == nil {
				assert.Empty(t, got)
			} else {
				assert.Equal(t, tt.expected, got)
			}
		})
	}
}
