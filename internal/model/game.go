package model

import "time"

// GameID uniquely identifies a game session
type GameID string

// Lifelines tracks the three one-shot player aids.
// Each flag is set to true exactly once and never reset.
type Lifelines struct {
	NarrowItDown    bool
	TextTheAudience bool
	PhoneADev       bool
}

// Game is the aggregate root for a single trivia session
type Game struct {
	ID         GameID
	Title      string
	Categories []string

	// Questions in ask order; the last element is the current question
	Questions []*Question

	// Messages is the generation dialogue fed to the question generator.
	// Grows by one system message at creation and two messages per ask.
	Messages []Message

	// Score is derived from question history, never set directly
	Score int

	Lifelines Lifelines

	// Player is assigned at most once, never reassigned
	Player *Participant

	// Participants is the transient candidate list from the signup
	// directory, excluding whoever is already Player
	Participants []Participant

	// PhoneADevTarget is the participant picked by the phone-a-dev lifeline
	PhoneADevTarget *Participant

	// VoiceCredential is a short-lived token for voice session setup.
	// Regenerated on demand; never written to storage.
	VoiceCredential string `json:"-"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Clone returns a deep copy of the game, sharing no pointers with the
// original. Storage backends use it for snapshot isolation.
func (g *Game) Clone() *Game {
	if g == nil {
		return nil
	}
	clone := *g
	clone.Categories = append([]string(nil), g.Categories...)
	clone.Questions = make([]*Question, len(g.Questions))
	for i, question := range g.Questions {
		clone.Questions[i] = question.Clone()
	}
	clone.Messages = append([]Message(nil), g.Messages...)
	if g.Player != nil {
		player := *g.Player
		clone.Player = &player
	}
	clone.Participants = append([]Participant(nil), g.Participants...)
	if g.PhoneADevTarget != nil {
		target := *g.PhoneADevTarget
		clone.PhoneADevTarget = &target
	}
	return &clone
}

// CurrentQuestion returns the last asked question, or nil if none exist
func (g *Game) CurrentQuestion() *Question {
	if len(g.Questions) == 0 {
		return nil
	}
	return g.Questions[len(g.Questions)-1]
}

// HasPlayer reports whether a player has been assigned to this game
func (g *Game) HasPlayer() bool {
	return g.Player != nil
}

// PlayerName returns the assigned player's name, or empty if unassigned
func (g *Game) PlayerName() string {
	if g.Player == nil {
		return ""
	}
	return g.Player.Name
}
