package audience

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/hotseat-games/millionaire/internal/model"
	"github.com/hotseat-games/millionaire/internal/services/voice"
	"github.com/hotseat-games/millionaire/internal/storage"
)

// Service tallies inbound audience texts into per-choice counters.
//
// It is the one concurrent path in the engine: inbound messages can arrive
// from many respondents at once, overlapping with reads of the game, so every
// counter mutation goes through the storage atomic-increment primitive
// rather than a read-modify-write of the whole game.
type Service struct {
	storage   storage.Storage
	messenger voice.Messenger
	logger    *slog.Logger

	// activeGame is the inbound channel binding set by text_the_audience
	mu         sync.RWMutex
	activeGame model.GameID
}

// New creates a new audience Service
func New(storage storage.Storage, messenger voice.Messenger, logger *slog.Logger) *Service {
	return &Service{
		storage:   storage,
		messenger: messenger,
		logger:    logger,
	}
}

// Bind routes subsequent inbound texts to the given game
func (s *Service) Bind(gameID model.GameID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activeGame = gameID
}

// ActiveGame returns the currently bound game id, if any
func (s *Service) ActiveGame() (model.GameID, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.activeGame, s.activeGame != ""
}

// RecordResponse processes one inbound text against the game's current
// question and returns the reply sent back to the respondent. Rejected
// responses are a designed user-facing reply, not an error; only missing
// questions and storage failures surface as errors.
func (s *Service) RecordResponse(ctx context.Context, game *model.Game, inboundText, respondent string) (string, error) {
	question := game.CurrentQuestion()
	if question == nil {
		return "", model.ErrNoQuestions
	}

	allowed := question.AllowedLetters()
	reply := s.processVote(ctx, game, question, allowed, inboundText, respondent)

	if err := s.messenger.SendText(ctx, respondent, "", reply); err != nil {
		// Reply delivery is best-effort; the vote outcome stands
		s.logger.Warn("audience reply failed",
			slog.String("game_id", string(game.ID)),
			slog.String("error", err.Error()),
		)
	}

	return reply, nil
}

func (s *Service) processVote(ctx context.Context, game *model.Game, question *model.Question, allowed []string, inboundText, respondent string) string {
	trimmed := strings.TrimSpace(inboundText)
	if len([]rune(trimmed)) != 1 {
		return fmt.Sprintf("I'm sorry, I didn't understand your message. Please respond with only %s.",
			strings.Join(allowed, ", "))
	}

	letter := model.NormalizeLetter(trimmed)

	choice, exists := question.Choices[letter]
	if exists && choice.Removed {
		return fmt.Sprintf("I'm sorry but choice '%s' has been eliminated. Please respond with only %s.",
			letter, strings.Join(allowed, ", "))
	}
	if !exists {
		return fmt.Sprintf("I'm sorry but '%s' is not a valid choice. Please respond with only %s.",
			letter, strings.Join(allowed, ", "))
	}

	counted, err := s.storage.RecordAudienceVote(ctx, game.ID, question.ID, letter, respondent)
	if err != nil {
		s.logger.Error("audience vote failed",
			slog.String("game_id", string(game.ID)),
			slog.String("question_id", string(question.ID)),
			slog.String("error", err.Error()),
		)
		return fmt.Sprintf("Sorry, something went wrong. Please try again with one of %s.",
			strings.Join(allowed, ", "))
	}

	if !counted {
		s.logger.Info("duplicate audience vote dropped",
			slog.String("game_id", string(game.ID)),
			slog.String("question_id", string(question.ID)),
		)
	}

	if name := game.PlayerName(); name != "" {
		return fmt.Sprintf("Thanks for helping %s", name)
	}
	return "Thanks for helping"
}
