package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/jfraser/whosaid/internal/model"
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
	CodeInvalidNickname    = "INVALID_NICKNAME"
	CodeInvalidCode        = "INVALID_CODE"
	CodeEmptyResponse      = "EMPTY_RESPONSE"
	CodeWrongPhase         = "WRONG_PHASE"
	CodeAlreadySubmitted   = "ALREADY_SUBMITTED"
	CodeSessionFull        = "SESSION_FULL"
	CodeSessionInProgress  = "SESSION_IN_PROGRESS"
	CodeNicknameTaken      = "NICKNAME_TAKEN"
	CodeIncompleteGuesses  = "INCOMPLETE_GUESSES"
	CodeUnknownResponseID  = "UNKNOWN_RESPONSE_ID"
	CodeUnknownPlayerID    = "UNKNOWN_PLAYER_ID"
	CodeNotHost            = "NOT_HOST"
	CodeSessionNotFound    = "SESSION_NOT_FOUND"
	CodePlayerNotFound     = "PLAYER_NOT_FOUND"
	CodeCodesExhausted     = "CODES_EXHAUSTED"
	CodeStorageUnavailable = "STORAGE_UNAVAILABLE"
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
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	switch {
	// Validation failures
	case errors.Is(err, model.ErrInvalidNickname):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidNickname, err.Error()}}
	case errors.Is(err, model.ErrInvalidCode):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidCode, "Session code must be 6 characters A-Z0-9"}}
	case errors.Is(err, model.ErrEmptyResponse):
		return &httpError{http.StatusBadRequest, APIError{CodeEmptyResponse, "Response text must not be empty"}}
	case errors.Is(err, model.ErrIncompleteGuesses):
		return &httpError{http.StatusBadRequest, APIError{CodeIncompleteGuesses, "Guesses must cover every response exactly once"}}
	case errors.Is(err, model.ErrUnknownResponseID):
		return &httpError{http.StatusBadRequest, APIError{CodeUnknownResponseID, "Guess references an unknown response"}}
	case errors.Is(err, model.ErrUnknownPlayerID):
		return &httpError{http.StatusBadRequest, APIError{CodeUnknownPlayerID, "Guess references a player not in this session"}}

	// State conflicts
	case errors.Is(err, model.ErrWrongPhase):
		return &httpError{http.StatusConflict, APIError{CodeWrongPhase, "Operation not allowed in the current phase"}}
	case errors.Is(err, model.ErrAlreadySubmitted):
		return &httpError{http.StatusConflict, APIError{CodeAlreadySubmitted, "Already submitted for this round"}}
	case errors.Is(err, model.ErrSessionFull):
		return &httpError{http.StatusConflict, APIError{CodeSessionFull, "Session is full"}}
	case errors.Is(err, model.ErrSessionInProgress):
		return &httpError{http.StatusConflict, APIError{CodeSessionInProgress, "Session has already started"}}
	case errors.Is(err, model.ErrNicknameTaken):
		return &httpError{http.StatusConflict, APIError{CodeNicknameTaken, "Nickname is already in use"}}

	// Authorization
	case errors.Is(err, model.ErrNotHost):
		return &httpError{http.StatusForbidden, APIError{CodeNotHost, "Only the host can perform this action"}}

	// Not found
	case errors.Is(err, model.ErrSessionNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeSessionNotFound, "Session not found"}}
	case errors.Is(err, model.ErrPlayerNotFound):
		return &httpError{http.StatusNotFound, APIError{CodePlayerNotFound, "Player not found in this session"}}

	// Infrastructure
	case errors.Is(err, model.ErrCodeGenerationExhausted):
		return &httpError{http.StatusServiceUnavailable, APIError{CodeCodesExhausted, "Could not allocate a session code"}}
	case errors.Is(err, model.ErrStorage):
		return &httpError{http.StatusBadGateway, APIError{CodeStorageUnavailable, "Session store unavailable"}}

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
