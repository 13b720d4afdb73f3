package memory

import (
	"context"
	"sync"

	"github.com/hotseat-games/millionaire/internal/model"
	"github.com/hotseat-games/millionaire/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	games   map[model.GameID]*model.Game
	votes   map[voteKey]int
	voters  map[voterKey]struct{}
	signups map[model.GameID][]model.Participant
}

type voteKey struct {
	gameID     model.GameID
	questionID model.QuestionID
	letter     string
}

type voterKey struct {
	gameID     model.GameID
	questionID model.QuestionID
	respondent string
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		games:   make(map[model.GameID]*model.Game),
		votes:   make(map[voteKey]int),
		voters:  make(map[voterKey]struct{}),
		signups: make(map[model.GameID][]model.Participant),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Game operations

func (s *Storage) SaveGame(ctx context.Context, game *model.Game) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	// Store a snapshot so later mutations of the caller's game only become
	// visible through an explicit save. The voice credential stays out of
	// storage, matching the redis backend.
	clone := game.Clone()
	clone.VoiceCredential = ""
	s.games[game.ID] = clone
	return nil
}

func (s *Storage) GetGame(ctx context.Context, id model.GameID) (*model.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	game, ok := s.games[id]
	if !ok {
		return nil, model.ErrGameNotFound
	}
	clone := game.Clone()
	s.mergeVoteCounts(clone)
	return clone, nil
}

func (s *Storage) DeleteGame(ctx context.Context, id model.GameID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.games, id)
	return nil
}

func (s *Storage) ListGames(ctx context.Context) ([]*model.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	games := make([]*model.Game, 0, len(s.games))
	for _, game := range s.games {
		clone := game.Clone()
		s.mergeVoteCounts(clone)
		games = append(games, clone)
	}
	return games, nil
}

// mergeVoteCounts copies vote counters into the game's choices.
// Caller must hold at least the read lock and own the game.
func (s *Storage) mergeVoteCounts(game *model.Game) {
	for _, question := range game.Questions {
		for letter, choice := range question.Choices {
			choice.AudienceVoteCount = s.votes[voteKey{game.ID, question.ID, letter}]
		}
	}
}

// Audience vote operations

func (s *Storage) RecordAudienceVote(ctx context.Context, gameID model.GameID, questionID model.QuestionID, letter, respondent string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	vk := voterKey{gameID, questionID, respondent}
	if _, voted := s.voters[vk]; voted {
		return false, nil
	}
	s.voters[vk] = struct{}{}
	s.votes[voteKey{gameID, questionID, letter}]++
	return true, nil
}

func (s *Storage) AudienceVoteCounts(ctx context.Context, gameID model.GameID, questionID model.QuestionID) (map[string]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[string]int)
	for key, count := range s.votes {
		if key.gameID == gameID && key.questionID == questionID {
			counts[key.letter] = count
		}
	}
	return counts, nil
}

// Signup operations

func (s *Storage) SaveSignup(ctx context.Context, gameID model.GameID, participant model.Participant) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.signups[gameID] = append(s.signups[gameID], participant)
	return nil
}

func (s *Storage) ListSignups(ctx context.Context, gameID model.GameID) ([]model.Participant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	signups := make([]model.Participant, len(s.signups[gameID]))
	copy(signups, s.signups[gameID])
	return signups, nil
}
