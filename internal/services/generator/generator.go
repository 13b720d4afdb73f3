package generator

import (
	"context"

	"github.com/hotseat-games/millionaire/internal/model"
)

// Generator produces raw question text from a conversation history.
// Implementations make a single attempt; retry policy belongs to callers.
type Generator interface {
	Generate(ctx context.Context, messages []model.Message) (string, error)
}
