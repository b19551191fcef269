package model

import "errors"

// Common errors used across the application
var (
	// Validation errors (caller's fault, recoverable by re-prompting)
	ErrInvalidNickname = errors.New("invalid nickname")
	ErrEmptyResponse   = errors.New("response is empty")
	ErrInvalidCode     = errors.New("invalid session code")

	// State errors (race or stale client view)
	ErrWrongPhase        = errors.New("action not allowed in current phase")
	ErrAlreadySubmitted  = errors.New("player has already submitted this round")
	ErrSessionFull       = errors.New("session is full")
	ErrSessionInProgress = errors.New("session is already in progress")
	ErrNicknameTaken     = errors.New("nickname is already taken")
	ErrIncompleteGuesses = errors.New("guesses must cover every response")

	// Authorization errors
	ErrNotHost = errors.New("player is not the host")

	// Not-found errors
	ErrSessionNotFound   = errors.New("session not found")
	ErrSessionExists     = errors.New("session code already in use")
	ErrPlayerNotFound    = errors.New("player not found")
	ErrUnknownResponseID = errors.New("unknown response id")
	ErrUnknownPlayerID   = errors.New("unknown player id")

	// Infrastructure errors
	ErrCodeGenerationExhausted = errors.New("could not generate a unique session code")
	ErrStorage                 = errors.New("storage unavailable")
)
