package model

import "errors"

// Common errors used across the application
var (
	// Game errors
	ErrGameNotFound = errors.New("game not found")
	ErrNoQuestions  = errors.New("game has no questions yet")

	// Generation errors
	ErrGenerationFormat = errors.New("generator did not return well-formed question data")

	// Answer errors
	ErrQuestionAlreadyAnswered = errors.New("question has already been answered")

	// Lifeline errors
	ErrInvalidLifeline     = errors.New("invalid lifeline")
	ErrLifelineAlreadyUsed = errors.New("lifeline has already been used")

	// Player errors
	ErrPlayerAlreadyChosen = errors.New("player has already been chosen")
	ErrNoParticipants      = errors.New("no participants have signed up")
)
