package generator

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/hotseat-games/millionaire/internal/model"
)

type OpenAISuite struct {
	suite.Suite
	ctx context.Context
}

func TestOpenAISuite(t *testing.T) {
	suite.Run(t, new(OpenAISuite))
}

func (s *OpenAISuite) SetupTest() {
	s.ctx = context.Background()
}

func (s *OpenAISuite) newClient(serverURL string) *OpenAIClient {
	client, err := NewOpenAIClient(Config{
		ChatURL: serverURL,
		APIKey:  "test-key",
		Model:   "test-model",
	})
	s.Require().NoError(err)
	return client
}

func completionBody(content string) string {
	body, _ := json.Marshal(map[string]any{
		"choices": []map[string]any{
			{"message": map[string]string{"content": content}},
		},
	})
	return string(body)
}

func (s *OpenAISuite) TestNewRequiresChatURL() {
	_, err := NewOpenAIClient(Config{APIKey: "k", Model: "m"})
	s.Error(err)
}

func (s *OpenAISuite) TestNewRequiresAPIKey() {
	_, err := NewOpenAIClient(Config{ChatURL: "http://example.test", Model: "m"})
	s.Error(err)
}

func (s *OpenAISuite) TestNewRequiresModel() {
	_, err := NewOpenAIClient(Config{ChatURL: "http://example.test", APIKey: "k"})
	s.Error(err)
}

func (s *OpenAISuite) TestGenerateReturnsContent() {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(completionBody(`{"question": "q"}`)))
	}))
	defer server.Close()

	reply, err := s.newClient(server.URL).Generate(s.ctx, []model.Message{
		{Role: model.RoleSystem, Content: "prompt"},
	})

	s.Require().NoError(err)
	s.Equal(`{"question": "q"}`, reply)
}

func (s *OpenAISuite) TestGenerateSendsFullHistory() {
	var received struct {
		Model    string `json:"model"`
		Messages []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
	}
	var authHeader string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&received)
		_, _ = w.Write([]byte(completionBody("ok")))
	}))
	defer server.Close()

	_, err := s.newClient(server.URL).Generate(s.ctx, []model.Message{
		{Role: model.RoleSystem, Content: "prompt"},
		{Role: model.RoleUser, Content: "ask"},
		{Role: model.RoleAssistant, Content: "reply"},
	})

	s.Require().NoError(err)
	s.Equal("Bearer test-key", authHeader)
	s.Equal("test-model", received.Model)
	s.Require().Len(received.Messages, 3)
	s.Equal("system", received.Messages[0].Role)
	s.Equal("user", received.Messages[1].Role)
	s.Equal("assistant", received.Messages[2].Role)
}

func (s *OpenAISuite) TestGenerateTrimsContent() {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(completionBody("\n  reply  \n")))
	}))
	defer server.Close()

	reply, err := s.newClient(server.URL).Generate(s.ctx, nil)

	s.Require().NoError(err)
	s.Equal("reply", reply)
}

func (s *OpenAISuite) TestGenerateUpstreamError() {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte("rate limited"))
	}))
	defer server.Close()

	_, err := s.newClient(server.URL).Generate(s.ctx, nil)

	s.Require().Error(err)
	s.Contains(err.Error(), "429")
	s.Contains(err.Error(), "rate limited")
}

func (s *OpenAISuite) TestGenerateNoChoices() {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices": []}`))
	}))
	defer server.Close()

	_, err := s.newClient(server.URL).Generate(s.ctx, nil)

	s.Error(err)
}

func (s *OpenAISuite) TestGenerateEmptyContent() {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(completionBody("   ")))
	}))
	defer server.Close()

	_, err := s.newClient(server.URL).Generate(s.ctx, nil)

	s.Error(err)
}
