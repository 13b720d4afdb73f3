package game

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/hotseat-games/millionaire/internal/model"
)

// generatedChoice mirrors one choice entry in the generator's JSON payload
type generatedChoice struct {
	Letter string `json:"letter"`
	Text   string `json:"text"`
}

// generatedQuestion mirrors the JSON schema the system prompt demands
type generatedQuestion struct {
	Question string            `json:"question"`
	Choices  []generatedChoice `json:"choices"`
	Correct  string            `json:"correct"`
}

// parseGeneratedQuestion decodes the generator's reply. Generators sometimes
// wrap the object in a single-element array; both shapes are accepted.
// Any other shape or missing field fails with ErrGenerationFormat.
func parseGeneratedQuestion(raw string) (*generatedQuestion, error) {
	raw = strings.TrimSpace(raw)

	var parsed generatedQuestion
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		var list []generatedQuestion
		if listErr := json.Unmarshal([]byte(raw), &list); listErr != nil || len(list) == 0 {
			return nil, fmt.Errorf("%w: %v", model.ErrGenerationFormat, err)
		}
		parsed = list[0]
	}

	if strings.TrimSpace(parsed.Question) == "" {
		return nil, fmt.Errorf("%w: missing question text", model.ErrGenerationFormat)
	}
	if len(parsed.Choices) == 0 {
		return nil, fmt.Errorf("%w: missing choices", model.ErrGenerationFormat)
	}
	if model.NormalizeLetter(parsed.Correct) == "" {
		return nil, fmt.Errorf("%w: missing correct letter", model.ErrGenerationFormat)
	}

	return &parsed, nil
}
