package storage

import (
	"context"

	"github.com/hotseat-games/millionaire/internal/model"
)

// Storage defines the interface for data persistence.
//
// Audience vote counters are kept outside the game document so they can be
// incremented atomically while the game is concurrently read and written.
// GetGame merges the counters back into each question's choices.
type Storage interface {
	// Game operations
	SaveGame(ctx context.Context, game *model.Game) error
	GetGame(ctx context.Context, id model.GameID) (*model.Game, error)
	DeleteGame(ctx context.Context, id model.GameID) error
	ListGames(ctx context.Context) ([]*model.Game, error)

	// RecordAudienceVote atomically increments the counter for the given
	// choice letter. At most one vote per respondent per question is
	// counted; the return value reports whether this vote was counted or
	// dropped as a duplicate.
	RecordAudienceVote(ctx context.Context, gameID model.GameID, questionID model.QuestionID, letter, respondent string) (bool, error)

	// AudienceVoteCounts returns the per-letter vote counters for a question
	AudienceVoteCounts(ctx context.Context, gameID model.GameID, questionID model.QuestionID) (map[string]int, error)

	// Signup operations for the participant directory
	SaveSignup(ctx context.Context, gameID model.GameID, participant model.Participant) error
	ListSignups(ctx context.Context, gameID model.GameID) ([]model.Participant, error)
}
