package translate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const systemMessage = "You are an expert immigration form translator. " +
	"Translate the following form content to the user's language while preserving " +
	"all page markers and field identifiers."

// LlamaClient implements Translator against a chat-completions style API.
type LlamaClient struct {
	endpoint string
	apiKey   string
	model    string
	client   *http.Client
}

// NewLlamaClient creates a translation client. Endpoint, key, and model are
// explicit; the client never consults the environment.
func NewLlamaClient(endpoint, apiKey, model string) *LlamaClient {
	return &LlamaClient{
		endpoint: endpoint,
		apiKey:   apiKey,
		model:    model,
		client:   &http.Client{Timeout: 300 * time.Second},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	CompletionMessage *struct {
		Content struct {
			Text string `json:"text"`
		} `json:"content"`
	} `json:"completion_message"`
}

// Translate sends the text to the model and returns its reply.
func (c *LlamaClient) Translate(ctx context.Context, text, sourceLanguage, targetLanguage string) (string, error) {
	reqBody := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemMessage},
			{Role: "user", Content: text},
		},
		Temperature: 0.1,
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling translation service: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("translation service error (status %d): %s", resp.StatusCode, string(respBody))
	}

	var parsed chatResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("decoding response: %w", err)
	}
	if parsed.CompletionMessage != nil && parsed.CompletionMessage.Content.Text != "" {
		return parsed.CompletionMessage.Content.Text, nil
	}
	if len(parsed.Choices) > 0 {
		return parsed.Choices[0].Message.Content, nil
	}
	return "", fmt.Errorf("translation service returned no content")
}
