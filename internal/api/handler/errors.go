package handler

import (
	"net/http"

	"github.com/jfraser/whosaid/internal/api/apierr"
)

// Re-export from apierr for convenience
type APIError = apierr.APIError
type ErrorResponse = apierr.ErrorResponse

// Re-export error codes
const (
	CodeInvalidRequest     = apierr.CodeInvalidRequest
	CodeInvalidNickname    = apierr.CodeInvalidNickname
	CodeInvalidCode        = apierr.CodeInvalidCode
	CodeEmptyResponse      = apierr.CodeEmptyResponse
	CodeWrongPhase         = apierr.CodeWrongPhase
	CodeAlreadySubmitted   = apierr.CodeAlreadySubmitted
	CodeSessionFull        = apierr.CodeSessionFull
	CodeSessionInProgress  = apierr.CodeSessionInProgress
	CodeNicknameTaken      = apierr.CodeNicknameTaken
	CodeIncompleteGuesses  = apierr.CodeIncompleteGuesses
	CodeUnknownResponseID  = apierr.CodeUnknownResponseID
	CodeUnknownPlayerID    = apierr.CodeUnknownPlayerID
	CodeNotHost            = apierr.CodeNotHost
	CodeSessionNotFound    = apierr.CodeSessionNotFound
	CodePlayerNotFound     = apierr.CodePlayerNotFound
	CodeCodesExhausted     = apierr.CodeCodesExhausted
	CodeStorageUnavailable = apierr.CodeStorageUnavailable
	CodeInternalError      = apierr.CodeInternalError
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
