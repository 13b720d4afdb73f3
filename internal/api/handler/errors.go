package handler

import (
	"net/http"

	"github.com/hotseat-games/millionaire/internal/api/apierr"
)

// Re-export from apierr for convenience
type APIError = apierr.APIError
type ErrorResponse = apierr.ErrorResponse

// Re-export error codes
const (
	CodeInvalidRequest   = apierr.CodeInvalidRequest
	CodeGameNotFound     = apierr.CodeGameNotFound
	CodeNoQuestions      = apierr.CodeNoQuestions
	CodeGenerationFormat = apierr.CodeGenerationFormat
	CodeAlreadyAnswered  = apierr.CodeAlreadyAnswered
	CodeInvalidLifeline  = apierr.CodeInvalidLifeline
	CodeLifelineUsed     = apierr.CodeLifelineUsed
	CodePlayerChosen     = apierr.CodePlayerChosen
	CodeNoParticipants   = apierr.CodeNoParticipants
	CodeInternalError    = apierr.CodeInternalError
)

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	apierr.WriteError(w, err)
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return apierr.NewInvalidRequestError(message)
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return apierr.NewInternalError()
}
