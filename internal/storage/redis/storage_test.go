package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/hotseat-games/millionaire/internal/model"
)

type StorageSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	cfg := DefaultConfig()
	cfg.GameTTL = time.Hour

	s.storage = NewWithClient(client, cfg)
	s.ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

func (s *StorageSuite) sampleGame(id model.GameID) *model.Game {
	return &model.Game{
		ID:         id,
		Title:      "Friday Night Trivia",
		Categories: []string{"space"},
		Questions: []*model.Question{
			{
				ID:   "1_abcdefgh",
				Text: "q",
				Choices: map[string]*model.Choice{
					"A": {Letter: "A", Text: "one"},
					"B": {Letter: "B", Text: "two"},
				},
				CorrectLetter: "B",
			},
		},
		Messages: []model.Message{
			{Role: model.RoleSystem, Content: "prompt"},
		},
		CreatedAt: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
		UpdatedAt: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
	}
}

// Game tests

func (s *StorageSuite) TestSaveAndGetGame() {
	game := s.sampleGame("game-1")

	err := s.storage.SaveGame(s.ctx, game)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetGame(s.ctx, "game-1")
	s.Require().NoError(err)
	s.Equal(game.ID, retrieved.ID)
	s.Equal(game.Title, retrieved.Title)
	s.Require().Len(retrieved.Questions, 1)
	s.Equal("B", retrieved.Questions[0].CorrectLetter)
	s.Len(retrieved.Messages, 1)
}

func (s *StorageSuite) TestGetGameNotFound() {
	_, err := s.storage.GetGame(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrGameNotFound)
}

func (s *StorageSuite) TestVoiceCredentialNotPersisted() {
	game := s.sampleGame("game-1")
	game.VoiceCredential = "ephemeral-token"

	err := s.storage.SaveGame(s.ctx, game)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetGame(s.ctx, "game-1")
	s.Require().NoError(err)
	s.Empty(retrieved.VoiceCredential)
}

func (s *StorageSuite) TestDeleteGame() {
	game := s.sampleGame("game-1")
	s.Require().NoError(s.storage.SaveGame(s.ctx, game))

	err := s.storage.DeleteGame(s.ctx, "game-1")
	s.Require().NoError(err)

	_, err = s.storage.GetGame(s.ctx, "game-1")
	s.ErrorIs(err, model.ErrGameNotFound)
}

func (s *StorageSuite) TestListGames() {
	s.Require().NoError(s.storage.SaveGame(s.ctx, s.sampleGame("game-1")))
	s.Require().NoError(s.storage.SaveGame(s.ctx, s.sampleGame("game-2")))

	games, err := s.storage.ListGames(s.ctx)
	s.Require().NoError(err)
	s.Len(games, 2)
}

func (s *StorageSuite) TestListGamesSkipsExpired() {
	s.Require().NoError(s.storage.SaveGame(s.ctx, s.sampleGame("game-1")))
	s.Require().NoError(s.storage.SaveGame(s.ctx, s.sampleGame("game-2")))

	// Expire one game blob but leave it in the index
	s.mini.FastForward(2 * time.Hour)
	s.Require().NoError(s.storage.SaveGame(s.ctx, s.sampleGame("game-2")))

	games, err := s.storage.ListGames(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(games, 1)
	s.Equal(model.GameID("game-2"), games[0].ID)
}

// Audience vote tests

func (s *StorageSuite) TestRecordAudienceVoteCounts() {
	counted, err := s.storage.RecordAudienceVote(s.ctx, "game-1", "1_abcdefgh", "B", "+15551111")
	s.Require().NoError(err)
	s.True(counted)

	counts, err := s.storage.AudienceVoteCounts(s.ctx, "game-1", "1_abcdefgh")
	s.Require().NoError(err)
	s.Equal(map[string]int{"B": 1}, counts)
}

func (s *StorageSuite) TestRecordAudienceVoteDeduplicates() {
	counted, err := s.storage.RecordAudienceVote(s.ctx, "game-1", "1_abcdefgh", "B", "+15551111")
	s.Require().NoError(err)
	s.True(counted)

	counted, err = s.storage.RecordAudienceVote(s.ctx, "game-1", "1_abcdefgh", "A", "+15551111")
	s.Require().NoError(err)
	s.False(counted)

	counts, err := s.storage.AudienceVoteCounts(s.ctx, "game-1", "1_abcdefgh")
	s.Require().NoError(err)
	s.Equal(map[string]int{"B": 1}, counts)
}

func (s *StorageSuite) TestRecordAudienceVoteScopedPerQuestion() {
	_, err := s.storage.RecordAudienceVote(s.ctx, "game-1", "1_abcdefgh", "B", "+15551111")
	s.Require().NoError(err)

	// Same respondent may vote again on a different question
	counted, err := s.storage.RecordAudienceVote(s.ctx, "game-1", "2_ijklmnop", "A", "+15551111")
	s.Require().NoError(err)
	s.True(counted)
}

func (s *StorageSuite) TestGetGameMergesVoteCounts() {
	game := s.sampleGame("game-1")
	s.Require().NoError(s.storage.SaveGame(s.ctx, game))

	_, err := s.storage.RecordAudienceVote(s.ctx, "game-1", "1_abcdefgh", "B", "+15551111")
	s.Require().NoError(err)
	_, err = s.storage.RecordAudienceVote(s.ctx, "game-1", "1_abcdefgh", "B", "+15552222")
	s.Require().NoError(err)
	_, err = s.storage.RecordAudienceVote(s.ctx, "game-1", "1_abcdefgh", "A", "+15553333")
	s.Require().NoError(err)

	retrieved, err := s.storage.GetGame(s.ctx, "game-1")
	s.Require().NoError(err)
	s.Equal(2, retrieved.Questions[0].Choices["B"].AudienceVoteCount)
	s.Equal(1, retrieved.Questions[0].Choices["A"].AudienceVoteCount)
}

func (s *StorageSuite) TestAudienceVoteCountsEmpty() {
	counts, err := s.storage.AudienceVoteCounts(s.ctx, "game-1", "1_abcdefgh")
	s.Require().NoError(err)
	s.Empty(counts)
}

// Signup tests

func (s *StorageSuite) TestSaveAndListSignups() {
	err := s.storage.SaveSignup(s.ctx, "game-1", model.Participant{Name: "Ada", Phone: "+15550001"})
	s.Require().NoError(err)
	err = s.storage.SaveSignup(s.ctx, "game-1", model.Participant{Name: "Grace", Phone: "+15550002"})
	s.Require().NoError(err)

	signups, err := s.storage.ListSignups(s.ctx, "game-1")
	s.Require().NoError(err)
	s.Require().Len(signups, 2)
	s.Equal("Ada", signups[0].Name)
	s.Equal("Grace", signups[1].Name)
}

func (s *StorageSuite) TestListSignupsEmpty() {
	signups, err := s.storage.ListSignups(s.ctx, "game-1")
	s.Require().NoError(err)
	s.Empty(signups)
}

func (s *StorageSuite) TestSignupsScopedPerGame() {
	s.Require().NoError(s.storage.SaveSignup(s.ctx, "game-1", model.Participant{Name: "Ada", Phone: "+15550001"}))

	signups, err := s.storage.ListSignups(s.ctx, "game-2")
	s.Require().NoError(err)
	s.Empty(signups)
}
