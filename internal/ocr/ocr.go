// Package ocr defines the pluggable text source used for page images that
// carry no extractable text, plus an HTTP-backed implementation.
package ocr

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// TextSource recognizes text in a page image.
type TextSource interface {
	RecognizeText(ctx context.Context, image []byte) (string, error)
}

// HTTPClient posts page images to an OCR service and returns the recognized
// text.
type HTTPClient struct {
	endpoint string
	client   *http.Client
}

// NewHTTPClient creates an OCR client for the given endpoint.
func NewHTTPClient(endpoint string) *HTTPClient {
	return &HTTPClient{
		endpoint: endpoint,
		client:   &http.Client{Timeout: 120 * time.Second},
	}
}

type recognizeResponse struct {
	Text string `json:"text"`
}

// RecognizeText sends the image and returns the service's text.
func (c *HTTPClient) RecognizeText(ctx context.Context, image []byte) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(image))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/octet-stream")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling OCR service: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("OCR service error (status %d): %s", resp.StatusCode, string(body))
	}

	var parsed recognizeResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		// Plain-text services return the text directly.
		return string(body), nil
	}
	return parsed.Text, nil
}
