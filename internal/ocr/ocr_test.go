package ocr

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecognizeText_JSONResponse(t *testing.T) {
	var received []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var err error
		received, err = io.ReadAll(r.Body)
		require.NoError(t, err)
		assert.Equal(t, "application/octet-stream", r.Header.Get("Content-Type"))
		_ = json.NewEncoder(w).Encode(map[string]string{"text": "recognized content"})
	}))
	defer srv.Close()

	client := NewHTTPClient(srv.URL)
	text, err := client.RecognizeText(t.Context(), []byte{0x89, 0x50, 0x4e, 0x47})

	require.NoError(t, err)
	assert.Equal(t, "recognized content", text)
	assert.Equal(t, []byte{0x89, 0x50, 0x4e, 0x47}, received)
}

func TestRecognizeText_PlainTextResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("raw recognized text"))
	}))
	defer srv.Close()

	client := NewHTTPClient(srv.URL)
	text, err := client.RecognizeText(t.Context(), []byte("img"))

	require.NoError(t, err)
	assert.Equal(t, "raw recognized text", text)
}

func TestRecognizeText_ServiceError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "model unavailable", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := NewHTTPClient(srv.URL)
	_, err := client.RecognizeText(t.Context(), []byte("img"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}

func TestRecognizeText_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close()

	client := NewHTTPClient(srv.URL)
	_, err := client.RecognizeText(t.Context(), []byte("img"))
	assert.Error(t, err)
}
