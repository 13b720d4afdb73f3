package mocks

import (
	"context"
	"errors"

	"github.com/hotseat-games/millionaire/internal/model"
	"github.com/hotseat-games/millionaire/internal/services/generator"
)

// MockGenerator is a mock implementation of Generator for testing
type MockGenerator struct {
	// Responses is a queue of completions to return from Generate
	Responses []string
	index     int

	// Err, when set, is returned instead of a queued response
	Err error

	// Calls records the message history passed to each Generate call
	Calls [][]model.Message
}

// Ensure MockGenerator implements Generator
var _ generator.Generator = (*MockGenerator)(nil)

// NewMockGenerator creates a new MockGenerator
func NewMockGenerator() *MockGenerator {
	return &MockGenerator{}
}

// Generate returns the next queued response
func (g *MockGenerator) Generate(_ context.Context, messages []model.Message) (string, error) {
	g.Calls = append(g.Calls, messages)
	if g.Err != nil {
		return "", g.Err
	}
	if g.index >= len(g.Responses) {
		return "", errors.New("mock generator: no responses queued")
	}
	result := g.Responses[g.index]
	g.index++
	return result, nil
}

// QueueResponse adds completions to the response queue
func (g *MockGenerator) QueueResponse(values ...string) {
	g.Responses = append(g.Responses, values...)
}

// Reset clears queued responses, the error, and recorded calls
func (g *MockGenerator) Reset() {
	g.Responses = nil
	g.index = 0
	g.Err = nil
	g.Calls = nil
}
