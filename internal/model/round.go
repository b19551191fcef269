package model

import "time"

// ResponseID uniquely identifies a response within a session
type ResponseID string

// Round is one prompt-response-guess-reveal cycle within a session.
// Rounds are appended, never deleted; RoundNumber matches the round's
// index in Session.Rounds.
type Round struct {
	RoundNumber int
	Prompt      string
	Responses   map[ResponseID]*Response
	Guesses     map[PlayerID]*PlayerGuesses
	Results     *RoundResults // nil until the round is sealed at reveal
}

// NewRound creates an empty round with the given number and prompt
func NewRound(number int, prompt string) Round {
	return Round{
		RoundNumber: number,
		Prompt:      prompt,
		Responses:   make(map[ResponseID]*Response),
		Guesses:     make(map[PlayerID]*PlayerGuesses),
	}
}

// ResponseBy returns the response authored by the given player, or nil
func (r *Round) ResponseBy(playerID PlayerID) *Response {
	for _, resp := range r.Responses {
		if resp.PlayerID == playerID {
			return resp
		}
	}
	return nil
}

// HasGuessed reports whether the player has submitted guesses this round
func (r *Round) HasGuessed(playerID PlayerID) bool {
	_, ok := r.Guesses[playerID]
	return ok
}

// Response is a player's anonymous answer to a round's prompt.
// Authorship must stay hidden from every externally-exposed payload
// until the round reaches reveal.
type Response struct {
	ID          ResponseID
	PlayerID    PlayerID
	Text        string
	SubmittedAt time.Time
}

// PlayerGuesses holds one player's complete set of authorship guesses
// for a round; the guess map covers every response in the round
type PlayerGuesses struct {
	PlayerID    PlayerID
	Guesses     map[ResponseID]PlayerID
	SubmittedAt time.Time
}

// ResponseResult pairs a response with its true author and everyone's guesses
type ResponseResult struct {
	ResponseID   ResponseID
	Text         string
	ActualAuthor PlayerID
	GuessedBy    map[PlayerID]PlayerID // guesser -> guessed author
}

// RoundResults is computed once when a round is sealed and never recomputed.
// Penalties counts each player's wrong guesses for the round.
type RoundResults struct {
	Responses []ResponseResult
	Penalties map[PlayerID]int
}
