package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/hotseat-games/millionaire/internal/model"
	"github.com/hotseat-games/millionaire/internal/services/directory"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest     = "INVALID_REQUEST"
	CodeGameNotFound       = "GAME_NOT_FOUND"
	CodeNoQuestions        = "NO_QUESTIONS"
	CodeGenerationFormat   = "GENERATION_FORMAT"
	CodeAlreadyAnswered    = "QUESTION_ALREADY_ANSWERED"
	CodeInvalidLifeline    = "INVALID_LIFELINE"
	CodeLifelineUsed       = "LIFELINE_ALREADY_USED"
	CodePlayerChosen       = "PLAYER_ALREADY_CHOSEN"
	CodeNoParticipants     = "NO_PARTICIPANTS"
	CodeInvalidParticipant = "INVALID_PARTICIPANT"
	CodeInternalError      = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	// Check for specific error types
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	// Map model errors
	switch {
	case errors.Is(err, model.ErrGameNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeGameNotFound, "Game not found"}}
	case errors.Is(err, model.ErrNoQuestions):
		return &httpError{http.StatusConflict, APIError{CodeNoQuestions, "No question has been asked yet"}}
	case errors.Is(err, model.ErrGenerationFormat):
		return &httpError{http.StatusBadGateway, APIError{CodeGenerationFormat, "Generator returned malformed question data; retry ask"}}
	case errors.Is(err, model.ErrQuestionAlreadyAnswered):
		return &httpError{http.StatusConflict, APIError{CodeAlreadyAnswered, "Question has already been answered; ask a new one first"}}
	case errors.Is(err, model.ErrInvalidLifeline):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidLifeline, "Unknown lifeline"}}
	case errors.Is(err, model.ErrLifelineAlreadyUsed):
		return &httpError{http.StatusConflict, APIError{CodeLifelineUsed, "Lifeline has already been used"}}
	case errors.Is(err, model.ErrPlayerAlreadyChosen):
		return &httpError{http.StatusConflict, APIError{CodePlayerChosen, "A player has already been chosen"}}
	case errors.Is(err, model.ErrNoParticipants):
		return &httpError{http.StatusConflict, APIError{CodeNoParticipants, "No participants have signed up"}}

	// Map directory errors
	case errors.Is(err, directory.ErrMissingName), errors.Is(err, directory.ErrMissingPhone):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidParticipant, err.Error()}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
