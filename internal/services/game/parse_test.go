package game

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/hotseat-games/millionaire/internal/model"
)

type ParseSuite struct {
	suite.Suite
}

func TestParseSuite(t *testing.T) {
	suite.Run(t, new(ParseSuite))
}

const validReply = `{
	"question": "What does the G in JPEG stand for?",
	"choices": [
		{"letter": "A", "text": "Group"},
		{"letter": "B", "text": "Graphics"},
		{"letter": "C", "text": "Gradient"},
		{"letter": "D", "text": "Gamma"}
	],
	"correct": "A"
}`

func (s *ParseSuite) TestParseObject() {
	parsed, err := parseGeneratedQuestion(validReply)

	s.Require().NoError(err)
	s.Equal("What does the G in JPEG stand for?", parsed.Question)
	s.Len(parsed.Choices, 4)
	s.Equal("A", parsed.Correct)
}

func (s *ParseSuite) TestParseSingleElementArray() {
	parsed, err := parseGeneratedQuestion("[" + validReply + "]")

	s.Require().NoError(err)
	s.Equal("What does the G in JPEG stand for?", parsed.Question)
}

func (s *ParseSuite) TestParseSurroundingWhitespace() {
	parsed, err := parseGeneratedQuestion("\n  " + validReply + "\n")

	s.Require().NoError(err)
	s.NotNil(parsed)
}

func (s *ParseSuite) TestParseNotJSON() {
	_, err := parseGeneratedQuestion("Sure! Here is your question:")

	s.ErrorIs(err, model.ErrGenerationFormat)
}

func (s *ParseSuite) TestParseEmptyArray() {
	_, err := parseGeneratedQuestion("[]")

	s.ErrorIs(err, model.ErrGenerationFormat)
}

func (s *ParseSuite) TestParseMissingQuestionText() {
	_, err := parseGeneratedQuestion(`{"choices": [{"letter": "A", "text": "x"}], "correct": "A"}`)

	s.ErrorIs(err, model.ErrGenerationFormat)
}

func (s *ParseSuite) TestParseMissingChoices() {
	_, err := parseGeneratedQuestion(`{"question": "q", "correct": "A"}`)

	s.ErrorIs(err, model.ErrGenerationFormat)
}

func (s *ParseSuite) TestParseMissingCorrectLetter() {
	_, err := parseGeneratedQuestion(`{"question": "q", "choices": [{"letter": "A", "text": "x"}]}`)

	s.ErrorIs(err, model.ErrGenerationFormat)
}
