package pdfform

import (
	"errors"
	"testing"

	"github.com/ledongthuc/pdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSafePageText_RecoversPanic(t *testing.T) {
	fn := func(pdf.Page) (string, error) {
		panic("malformed content stream")
	}

	text, err := safePageText(fn, pdf.Page{})
	require.Error(t, err)
	assert.Empty(t, text)
	assert.Contains(t, err.Error(), "malformed content stream")
}

func TestSafePageText_PassesThroughResult(t *testing.T) {
	fn := func(pdf.Page) (string, error) {
		return "page body", nil
	}

	text, err := safePageText(fn, pdf.Page{})
	require.NoError(t, err)
	assert.Equal(t, "page body", text)
}

func TestSafePageText_PassesThroughError(t *testing.T) {
	wantErr := errors.New("no rows")
	fn := func(pdf.Page) (string, error) {
		return "", wantErr
	}

	_, err := safePageText(fn, pdf.Page{})
	assert.ErrorIs(t, err, wantErr)
}

func TestAlternateMethods_Ordering(t *testing.T) {
	methods := alternateMethods()
	require.Len(t, methods, 3)
	assert.Equal(t, "text", methods[0].name)
	assert.Equal(t, "html", methods[1].name)
	assert.Equal(t, "words", methods[2].name)
}
