package voice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Messenger sends outbound text messages.
// Delivery is at-least-once on the provider side; callers treat sends as
// fire-and-forget.
type Messenger interface {
	SendText(ctx context.Context, to, from, body string) error
}

// MessengerConfig holds settings for the HTTP messaging transport
type MessengerConfig struct {
	// MessagesURL is the provider's message send endpoint
	MessagesURL string

	// APIKey and APISecret authenticate against the provider
	APIKey    string
	APISecret string

	// FromNumber is the default sender when a call site passes none
	FromNumber string

	// HTTPClient allows injecting a client for testing
	HTTPClient *http.Client
}

// DefaultMessengerConfig returns defaults for the messaging transport
func DefaultMessengerConfig() MessengerConfig {
	return MessengerConfig{
		MessagesURL: "https://api.nexmo.com/v1/messages",
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// HTTPMessenger sends SMS through a Vonage-style messages API
type HTTPMessenger struct {
	cfg MessengerConfig
}

// Ensure HTTPMessenger implements Messenger
var _ Messenger = (*HTTPMessenger)(nil)

// NewHTTPMessenger creates a messenger from the given config
func NewHTTPMessenger(cfg MessengerConfig) (*HTTPMessenger, error) {
	if strings.TrimSpace(cfg.MessagesURL) == "" {
		return nil, fmt.Errorf("messages url is required")
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = DefaultMessengerConfig().HTTPClient
	}
	return &HTTPMessenger{cfg: cfg}, nil
}

type sendTextRequest struct {
	From        string `json:"from"`
	To          string `json:"to"`
	Channel     string `json:"channel"`
	MessageType string `json:"message_type"`
	Text        string `json:"text"`
}

// SendText sends one SMS. An empty from falls back to the configured number.
func (m *HTTPMessenger) SendText(ctx context.Context, to, from, body string) error {
	if from == "" {
		from = m.cfg.FromNumber
	}

	payload, err := json.Marshal(sendTextRequest{
		From:        from,
		To:          to,
		Channel:     "sms",
		MessageType: "text",
		Text:        body,
	})
	if err != nil {
		return fmt.Errorf("marshal send request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.cfg.MessagesURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build send request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(m.cfg.APIKey, m.cfg.APISecret)

	res, err := m.cfg.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("send request failed: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		errBody, readErr := io.ReadAll(io.LimitReader(res.Body, 4096))
		if readErr != nil {
			return fmt.Errorf("read send error body: %w", readErr)
		}
		return fmt.Errorf("send request status %d: %s", res.StatusCode, strings.TrimSpace(string(errBody)))
	}

	return nil
}

// NopMessenger drops outbound messages. It stands in when no messaging
// provider is configured.
type NopMessenger struct{}

// Ensure NopMessenger implements Messenger
var _ Messenger = NopMessenger{}

// SendText discards the message
func (NopMessenger) SendText(context.Context, string, string, string) error {
	return nil
}
