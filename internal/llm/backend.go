// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package llm invokes a hosted chat-completion model through typed
// prompted steps.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/pdiddy/dataqa/pkg/types"
)

// Backend performs one round trip to a chat-completion model and returns
// the raw text of the model's reply. Implementations must surface every
// backend failure (transport, status, quota, empty reply) as an error.
type Backend interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// OpenAIBackend calls the OpenAI chat completions API.
type OpenAIBackend struct {
	APIKey  string
	Model   string
	BaseURL string
	Client  *http.Client
}

// NewOpenAIBackend builds a backend from configuration. A missing API key
// is not an error here; the API rejects the first call instead.
func NewOpenAIBackend(cfg types.AIConfig) *OpenAIBackend {
	return &OpenAIBackend{
		APIKey:  cfg.APIKey,
		Model:   cfg.Model,
		BaseURL: cfg.BaseURL,
		Client:  &http.Client{Timeout: cfg.Timeout},
	}
}

// chatRequest is the request body for the chat completions API.
type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

// chatMessage is a single message in the conversation.
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatResponse is the response body from the chat completions API.
type chatResponse struct {
	Choices []chatChoice `json:"choices"`
}

type chatChoice struct {
	Message chatMessage `json:"message"`
}

// Complete sends the prompt as a single user message and returns the first
// choice's content.
func (b *OpenAIBackend) Complete(ctx context.Context, prompt string) (string, error) {
	reqBody := chatRequest{
		Model: b.Model,
		Messages: []chatMessage{
			{Role: "user", Content: prompt},
		},
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	baseURL := b.BaseURL
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, baseURL+"/chat/completions", bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+b.APIKey)

	client := b.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling chat API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("chat API returned %d: %s", resp.StatusCode, string(body))
	}

	var cResp chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&cResp); err != nil {
		return "", fmt.Errorf("decoding chat response: %w", err)
	}

	if len(cResp.Choices) == 0 {
		return "", fmt.Errorf("chat API returned no choices")
	}
	return cResp.Choices[0].Message.Content, nil
}
