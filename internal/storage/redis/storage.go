package redis

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/hotseat-games/millionaire/internal/model"
	"github.com/hotseat-games/millionaire/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Game operations

func (s *Storage) SaveGame(ctx context.Context, game *model.Game) error {
	data, err := json.Marshal(game)
	if err != nil {
		return err
	}

	// Use pipeline for atomic save + index update
	pipe := s.client.Pipeline()
	pipe.Set(ctx, gameKey(game.ID), data, s.cfg.GameTTL)
	pipe.SAdd(ctx, gamesIndexKey(), string(game.ID))
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetGame(ctx context.Context, id model.GameID) (*model.Game, error) {
	data, err := s.client.Get(ctx, gameKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrGameNotFound
		}
		return nil, err
	}

	var game model.Game
	if err := json.Unmarshal(data, &game); err != nil {
		return nil, err
	}

	if err := s.mergeVoteCounts(ctx, &game); err != nil {
		return nil, err
	}

	return &game, nil
}

func (s *Storage) DeleteGame(ctx context.Context, id model.GameID) error {
	pipe := s.client.Pipeline()
	pipe.Del(ctx, gameKey(id))
	pipe.SRem(ctx, gamesIndexKey(), string(id))
	_, err := pipe.Exec(ctx)
	return err
}

func (s *Storage) ListGames(ctx context.Context) ([]*model.Game, error) {
	ids, err := s.client.SMembers(ctx, gamesIndexKey()).Result()
	if err != nil {
		return nil, err
	}

	games := make([]*model.Game, 0, len(ids))
	for _, id := range ids {
		game, err := s.GetGame(ctx, model.GameID(id))
		if errors.Is(err, model.ErrGameNotFound) {
			continue // Game may have expired
		}
		if err != nil {
			return nil, err
		}
		games = append(games, game)
	}

	return games, nil
}

// mergeVoteCounts copies the counter hashes back into the game's choices
func (s *Storage) mergeVoteCounts(ctx context.Context, game *model.Game) error {
	for _, question := range game.Questions {
		counts, err := s.AudienceVoteCounts(ctx, game.ID, question.ID)
		if err != nil {
			return err
		}
		for letter, choice := range question.Choices {
			choice.AudienceVoteCount = counts[letter]
		}
	}
	return nil
}

// Audience vote operations

func (s *Storage) RecordAudienceVote(ctx context.Context, gameID model.GameID, questionID model.QuestionID, letter, respondent string) (bool, error) {
	// SAdd is the de-duplication gate: only the first delivery for a
	// respondent lands in the set, so only that delivery increments.
	added, err := s.client.SAdd(ctx, votersKey(gameID, questionID), respondent).Result()
	if err != nil {
		return false, err
	}
	if added == 0 {
		return false, nil
	}

	pipe := s.client.Pipeline()
	pipe.HIncrBy(ctx, votesKey(gameID, questionID), letter, 1)
	pipe.Expire(ctx, votesKey(gameID, questionID), s.cfg.GameTTL)
	pipe.Expire(ctx, votersKey(gameID, questionID), s.cfg.GameTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, err
	}

	return true, nil
}

func (s *Storage) AudienceVoteCounts(ctx context.Context, gameID model.GameID, questionID model.QuestionID) (map[string]int, error) {
	raw, err := s.client.HGetAll(ctx, votesKey(gameID, questionID)).Result()
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int, len(raw))
	for letter, value := range raw {
		count, err := strconv.Atoi(value)
		if err != nil {
			continue // Skip corrupt counter
		}
		counts[letter] = count
	}
	return counts, nil
}

// Signup operations

func (s *Storage) SaveSignup(ctx context.Context, gameID model.GameID, participant model.Participant) error {
	data, err := json.Marshal(participant)
	if err != nil {
		return err
	}

	pipe := s.client.Pipeline()
	pipe.RPush(ctx, signupsKey(gameID), data)
	pipe.Expire(ctx, signupsKey(gameID), s.cfg.GameTTL)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) ListSignups(ctx context.Context, gameID model.GameID) ([]model.Participant, error) {
	values, err := s.client.LRange(ctx, signupsKey(gameID), 0, -1).Result()
	if err != nil {
		return nil, err
	}

	signups := make([]model.Participant, 0, len(values))
	for _, value := range values {
		var participant model.Participant
		if err := json.Unmarshal([]byte(value), &participant); err != nil {
			continue // Skip invalid data
		}
		signups = append(signups, participant)
	}
	return signups, nil
}
