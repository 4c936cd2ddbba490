package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"chatforge-backend/internal/models"
)

// Fixed generation settings for every completion. Replies are capped short;
// the product is a terse assistant, not a long-form writer.
const (
	completionTemperature = 0.2
	completionMaxTokens   = 300
)

// OpenRouterClient talks to an OpenAI-compatible chat-completions endpoint.
// One request per completion: no retry, no streaming.
type OpenRouterClient struct {
	apiKey  string
	model   string
	baseURL string
	referer string
	client  *http.Client
}

func NewOpenRouterClient(apiKey, model, baseURL, referer string) *OpenRouterClient {
	return &OpenRouterClient{
		apiKey:  apiKey,
		model:   model,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		referer: referer,
		client:  &http.Client{Timeout: 60 * time.Second},
	}
}

type completionRequest struct {
	Model       string               `json:"model"`
	Messages    []models.ChatMessage `json:"messages"`
	Temperature float64              `json:"temperature"`
	MaxTokens   int                  `json:"max_tokens"`
}

type completionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Complete sends the system instruction plus ordered history and returns the
// generated text, trimmed.
func (c *OpenRouterClient) Complete(ctx context.Context, systemText string, history []models.ChatMessage) (string, error) {
	if c.apiKey == "" {
		return "", &ConfigError{Message: "OPENROUTER_API_KEY is not configured"}
	}

	msgs := make([]models.ChatMessage, 0, len(history)+1)
	if systemText != "" {
		msgs = append(msgs, models.ChatMessage{Role: "system", Content: systemText})
	}
	msgs = append(msgs, history...)

	reqBytes, err := json.Marshal(completionRequest{
		Model:       c.model,
		Messages:    msgs,
		Temperature: completionTemperature,
		MaxTokens:   completionMaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal completion request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(reqBytes))
	if err != nil {
		return "", fmt.Errorf("failed to create completion request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	// Recommended by OpenRouter (helps with rate limits / analytics)
	req.Header.Set("HTTP-Referer", c.referer)
	req.Header.Set("X-Title", "Chatbot Platform")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", &UpstreamError{Message: fmt.Sprintf("failed to call model endpoint: %v", err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &UpstreamError{Status: resp.StatusCode, Message: fmt.Sprintf("failed to read model response: %v", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &UpstreamError{
			Status:  resp.StatusCode,
			Message: fmt.Sprintf("model endpoint returned %d: %s", resp.StatusCode, string(body)),
		}
	}

	var parsed completionResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", &UpstreamError{Status: resp.StatusCode, Message: fmt.Sprintf("failed to decode model response: %v", err)}
	}

	if len(parsed.Choices) == 0 {
		return "", &UpstreamError{Status: resp.StatusCode, Message: "model response contained no choices"}
	}

	return strings.TrimSpace(parsed.Choices[0].Message.Content), nil
}
