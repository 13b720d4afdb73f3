package audience

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/hotseat-games/millionaire/internal/model"
	"github.com/hotseat-games/millionaire/internal/storage/memory"
	"github.com/hotseat-games/millionaire/internal/testutil"
)

// recordingMessenger captures outbound replies
type recordingMessenger struct {
	sent []sentMessage
	err  error
}

type sentMessage struct {
	to   string
	body string
}

func (m *recordingMessenger) SendText(_ context.Context, to, _, body string) error {
	m.sent = append(m.sent, sentMessage{to: to, body: body})
	return m.err
}

type ServiceSuite struct {
	suite.Suite
	storage   *memory.Storage
	messenger *recordingMessenger
	service   *Service
	game      *model.Game
	ctx       context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	s.messenger = &recordingMessenger{}
	s.service = New(s.storage, s.messenger, testutil.NopLogger())
	s.ctx = context.Background()

	s.game = &model.Game{
		ID:     "game-1",
		Player: &model.Participant{Name: "Ada", Phone: "+15550001"},
		Questions: []*model.Question{
			{
				ID:   "1_abcdefgh",
				Text: "q",
				Choices: map[string]*model.Choice{
					"A": {Letter: "A", Text: "one"},
					"B": {Letter: "B", Text: "two"},
					"C": {Letter: "C", Text: "three", Removed: true},
					"D": {Letter: "D", Text: "four"},
				},
				CorrectLetter: "B",
			},
		},
	}
	s.Require().NoError(s.storage.SaveGame(s.ctx, s.game))
}

func (s *ServiceSuite) voteCounts() map[string]int {
	counts, err := s.storage.AudienceVoteCounts(s.ctx, s.game.ID, "1_abcdefgh")
	s.Require().NoError(err)
	return counts
}

// Binding

func (s *ServiceSuite) TestNoActiveGameByDefault() {
	_, bound := s.service.ActiveGame()

	s.False(bound)
}

func (s *ServiceSuite) TestBindSetsActiveGame() {
	s.service.Bind("game-1")

	id, bound := s.service.ActiveGame()
	s.True(bound)
	s.Equal(model.GameID("game-1"), id)
}

func (s *ServiceSuite) TestBindReplacesActiveGame() {
	s.service.Bind("game-1")
	s.service.Bind("game-2")

	id, _ := s.service.ActiveGame()
	s.Equal(model.GameID("game-2"), id)
}

// Vote recording

func (s *ServiceSuite) TestValidVoteCounts() {
	reply, err := s.service.RecordResponse(s.ctx, s.game, "B", "+15559999")

	s.Require().NoError(err)
	s.Equal("Thanks for helping Ada", reply)
	s.Equal(map[string]int{"B": 1}, s.voteCounts())
}

func (s *ServiceSuite) TestVoteNormalizesLetter() {
	_, err := s.service.RecordResponse(s.ctx, s.game, " b ", "+15559999")

	s.Require().NoError(err)
	s.Equal(map[string]int{"B": 1}, s.voteCounts())
}

func (s *ServiceSuite) TestDuplicateRespondentCountsOnce() {
	_, err := s.service.RecordResponse(s.ctx, s.game, "B", "+15559999")
	s.Require().NoError(err)

	reply, err := s.service.RecordResponse(s.ctx, s.game, "A", "+15559999")
	s.Require().NoError(err)

	// The duplicate is silently dropped but still acknowledged
	s.Equal("Thanks for helping Ada", reply)
	s.Equal(map[string]int{"B": 1}, s.voteCounts())
}

func (s *ServiceSuite) TestDistinctRespondentsEachCount() {
	_, err := s.service.RecordResponse(s.ctx, s.game, "B", "+15551111")
	s.Require().NoError(err)
	_, err = s.service.RecordResponse(s.ctx, s.game, "B", "+15552222")
	s.Require().NoError(err)
	_, err = s.service.RecordResponse(s.ctx, s.game, "D", "+15553333")
	s.Require().NoError(err)

	s.Equal(map[string]int{"B": 2, "D": 1}, s.voteCounts())
}

func (s *ServiceSuite) TestMultiCharacterMessageRejected() {
	reply, err := s.service.RecordResponse(s.ctx, s.game, "B is my answer", "+15559999")

	s.Require().NoError(err)
	s.Equal("I'm sorry, I didn't understand your message. Please respond with only A, B, D.", reply)
	s.Empty(s.voteCounts())
}

func (s *ServiceSuite) TestRemovedChoiceRejected() {
	reply, err := s.service.RecordResponse(s.ctx, s.game, "C", "+15559999")

	s.Require().NoError(err)
	s.Equal("I'm sorry but choice 'C' has been eliminated. Please respond with only A, B, D.", reply)
	s.Empty(s.voteCounts())
}

func (s *ServiceSuite) TestUnknownLetterRejected() {
	reply, err := s.service.RecordResponse(s.ctx, s.game, "E", "+15559999")

	s.Require().NoError(err)
	s.Equal("I'm sorry but 'E' is not a valid choice. Please respond with only A, B, D.", reply)
	s.Empty(s.voteCounts())
}

func (s *ServiceSuite) TestRejectedVoteDoesNotBurnRespondent() {
	_, err := s.service.RecordResponse(s.ctx, s.game, "E", "+15559999")
	s.Require().NoError(err)

	_, err = s.service.RecordResponse(s.ctx, s.game, "B", "+15559999")
	s.Require().NoError(err)

	s.Equal(map[string]int{"B": 1}, s.voteCounts())
}

func (s *ServiceSuite) TestNoQuestionFails() {
	game := &model.Game{ID: "game-2"}

	_, err := s.service.RecordResponse(s.ctx, game, "A", "+15559999")

	s.ErrorIs(err, model.ErrNoQuestions)
}

func (s *ServiceSuite) TestReplyWithoutPlayerName() {
	s.game.Player = nil

	reply, err := s.service.RecordResponse(s.ctx, s.game, "A", "+15559999")

	s.Require().NoError(err)
	s.Equal("Thanks for helping", reply)
}

// Reply delivery

func (s *ServiceSuite) TestReplySentToRespondent() {
	_, err := s.service.RecordResponse(s.ctx, s.game, "B", "+15559999")

	s.Require().NoError(err)
	s.Require().Len(s.messenger.sent, 1)
	s.Equal("+15559999", s.messenger.sent[0].to)
	s.Equal("Thanks for helping Ada", s.messenger.sent[0].body)
}

func (s *ServiceSuite) TestReplyFailureDoesNotUndoVote() {
	s.messenger.err = errors.New("provider down")

	_, err := s.service.RecordResponse(s.ctx, s.game, "B", "+15559999")

	s.Require().NoError(err)
	s.Equal(map[string]int{"B": 1}, s.voteCounts())
}
