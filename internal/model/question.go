package model

import (
	"sort"
	"strings"
	"unicode"
)

// QuestionID uniquely identifies a question within a game
type QuestionID string

// Question is a single generated trivia question with its four choices.
// Answered/Passed are one-way flags; a question is never mutated again
// once it has been superseded by a newer one.
type Question struct {
	ID            QuestionID
	Text          string
	Choices       map[string]*Choice
	CorrectLetter string

	Answered          bool
	AnsweredCorrectly bool
	Passed            bool
}

// Choice is one of the four answer options for a question
type Choice struct {
	Letter string
	Text   string

	// Removed is set by the narrow-it-down lifeline and never reset
	Removed bool

	// AudienceVoteCount is incremented only by the audience vote
	// aggregator, never decremented
	AudienceVoteCount int
}

// Clone returns a deep copy of the question and its choices
func (q *Question) Clone() *Question {
	clone := *q
	clone.Choices = make(map[string]*Choice, len(q.Choices))
	for letter, choice := range q.Choices {
		copied := *choice
		clone.Choices[letter] = &copied
	}
	return &clone
}

// Resolved reports whether this question was settled one way or the other
func (q *Question) Resolved() bool {
	return q.Answered || q.Passed
}

// AllowedLetters returns the letters still open to the audience, sorted
func (q *Question) AllowedLetters() []string {
	letters := make([]string, 0, len(q.Choices))
	for letter, choice := range q.Choices {
		if !choice.Removed {
			letters = append(letters, letter)
		}
	}
	sort.Strings(letters)
	return letters
}

// RemovedLetters returns the letters eliminated by narrow-it-down, sorted
func (q *Question) RemovedLetters() []string {
	letters := make([]string, 0, len(q.Choices))
	for letter, choice := range q.Choices {
		if choice.Removed {
			letters = append(letters, letter)
		}
	}
	sort.Strings(letters)
	return letters
}

// NormalizeLetter reduces raw input to a single uppercase letter.
// Returns empty for empty input.
func NormalizeLetter(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	r := []rune(s)[0]
	return string(unicode.ToUpper(r))
}
