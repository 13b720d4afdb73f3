package directory

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/hotseat-games/millionaire/internal/model"
	"github.com/hotseat-games/millionaire/internal/storage"
)

// Errors
var (
	ErrMissingName  = errors.New("participant name is required")
	ErrMissingPhone = errors.New("participant phone is required")
)

// Service is the participant signup directory for a game.
// Signups are append-only; participants are immutable once stored.
type Service struct {
	storage storage.Storage
	logger  *slog.Logger
}

// New creates a new directory Service
func New(storage storage.Storage, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		logger:  logger,
	}
}

// AddSignup records a new participant for a game
func (s *Service) AddSignup(ctx context.Context, gameID model.GameID, name, phone string) error {
	name = strings.TrimSpace(name)
	phone = strings.TrimSpace(phone)
	if name == "" {
		return ErrMissingName
	}
	if phone == "" {
		return ErrMissingPhone
	}

	participant := model.Participant{Name: name, Phone: phone}
	if err := s.storage.SaveSignup(ctx, gameID, participant); err != nil {
		return err
	}

	s.logger.Info("participant signed up",
		slog.String("game_id", string(gameID)),
		slog.String("name", name),
	)
	return nil
}

// ListSignups returns the participants signed up for a game, excluding the
// participant with the given phone (pass empty to exclude nobody)
func (s *Service) ListSignups(ctx context.Context, gameID model.GameID, excludePhone string) ([]model.Participant, error) {
	signups, err := s.storage.ListSignups(ctx, gameID)
	if err != nil {
		return nil, err
	}

	if excludePhone == "" {
		return signups, nil
	}

	filtered := make([]model.Participant, 0, len(signups))
	for _, p := range signups {
		if p.Phone == excludePhone {
			continue
		}
		filtered = append(filtered, p)
	}
	return filtered, nil
}
