package request

// CreateSessionRequest is the request body for creating a session
type CreateSessionRequest struct {
	Nickname string `json:"nickname"`
}

// JoinSessionRequest is the request body for joining a session
type JoinSessionRequest struct {
	Nickname string `json:"nickname"`
}

// StartRoundRequest is the request body for starting a round.
// Prompt is optional; when empty a prompt is drawn from the pool.
type StartRoundRequest struct {
	PlayerID string `json:"player_id"`
	Prompt   string `json:"prompt,omitempty"`
}

// SubmitResponseRequest is the request body for submitting a response
type SubmitResponseRequest struct {
	PlayerID string `json:"player_id"`
	Text     string `json:"text"`
}

// SubmitGuessesRequest is the request body for submitting guesses.
// Guesses maps response id to the guessed author's player id.
type SubmitGuessesRequest struct {
	PlayerID string            `json:"player_id"`
	Guesses  map[string]string `json:"guesses"`
}

// LeaveRequest is the request body for leaving a session
type LeaveRequest struct {
	PlayerID string `json:"player_id"`
}

// EndGameRequest is the request body for ending a session
type EndGameRequest struct {
	PlayerID string `json:"player_id"`
}
