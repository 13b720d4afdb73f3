package generator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hotseat-games/millionaire/internal/model"
)

// Config holds settings for the OpenAI-compatible chat client
type Config struct {
	// ChatURL is the chat completions endpoint
	ChatURL string

	// APIKey is sent as a bearer token, never echoed in errors
	APIKey string

	// Model names the completion model to use
	Model string

	// HTTPClient allows injecting a client for testing
	HTTPClient *http.Client
}

// DefaultConfig returns defaults pointing at the OpenAI API
func DefaultConfig() Config {
	return Config{
		ChatURL: "https://api.openai.com/v1/chat/completions",
		Model:   "gpt-4o-mini",
		HTTPClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// OpenAIClient is a Generator backed by an OpenAI-compatible chat API
type OpenAIClient struct {
	cfg Config
}

// Ensure OpenAIClient implements Generator
var _ Generator = (*OpenAIClient)(nil)

// NewOpenAIClient creates a client from the given config
func NewOpenAIClient(cfg Config) (*OpenAIClient, error) {
	if strings.TrimSpace(cfg.ChatURL) == "" {
		return nil, fmt.Errorf("chat url is required")
	}
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("api key is required")
	}
	if strings.TrimSpace(cfg.Model) == "" {
		return nil, fmt.Errorf("model is required")
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = DefaultConfig().HTTPClient
	}
	return &OpenAIClient{cfg: cfg}, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Generate sends the full conversation history and returns the assistant reply
func (c *OpenAIClient) Generate(ctx context.Context, messages []model.Message) (string, error) {
	payload := chatRequest{
		Model:    c.cfg.Model,
		Messages: make([]chatMessage, 0, len(messages)),
	}
	for _, m := range messages {
		payload.Messages = append(payload.Messages, chatMessage{Role: m.Role, Content: m.Content})
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.ChatURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	res, err := c.cfg.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("chat request failed: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		errBody, readErr := io.ReadAll(io.LimitReader(res.Body, 4096))
		if readErr != nil {
			return "", fmt.Errorf("read chat error body: %w", readErr)
		}
		return "", fmt.Errorf("chat request status %d: %s", res.StatusCode, strings.TrimSpace(string(errBody)))
	}

	var parsed chatResponse
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decode chat response: %w", err)
	}

	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("chat response has no choices")
	}
	content := strings.TrimSpace(parsed.Choices[0].Message.Content)
	if content == "" {
		return "", fmt.Errorf("chat response missing content")
	}
	return content, nil
}
