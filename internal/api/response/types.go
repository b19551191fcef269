package response

import (
	"sort"
	"time"

	"github.com/jfraser/whosaid/internal/model"
)

// Player represents a player in API responses
type Player struct {
	ID          string `json:"id"`
	Nickname    string `json:"nickname"`
	IsHost      bool   `json:"is_host"`
	IsConnected bool   `json:"is_connected"`
}

// PlayerFromModel converts a model.Player to a response Player
func PlayerFromModel(p *model.Player) Player {
	return Player{
		ID:          string(p.ID),
		Nickname:    p.Nickname,
		IsHost:      p.IsHost,
		IsConnected: p.IsConnected,
	}
}

// AnonymousResponse is a response with its authorship withheld
type AnonymousResponse struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// AnonymousResponsesFromModel converts a shuffled response list
func AnonymousResponsesFromModel(responses []model.AnonymousResponse) []AnonymousResponse {
	out := make([]AnonymousResponse, len(responses))
	for i, r := range responses {
		out[i] = AnonymousResponse{ID: string(r.ID), Text: r.Text}
	}
	return out
}

// ResponseResult is one revealed response with its attribution record
type ResponseResult struct {
	ResponseID string            `json:"response_id"`
	Text       string            `json:"text"`
	Author     string            `json:"author"`
	GuessedBy  map[string]string `json:"guessed_by"`
}

// RoundResults is the sealed outcome of a round
type RoundResults struct {
	Responses []ResponseResult `json:"responses"`
	Penalties map[string]int   `json:"penalties"`
}

// RoundResultsFromModel converts model.RoundResults
func RoundResultsFromModel(r *model.RoundResults) *RoundResults {
	if r == nil {
		return nil
	}

	responses := make([]ResponseResult, len(r.Responses))
	for i, rr := range r.Responses {
		guessedBy := make(map[string]string, len(rr.GuessedBy))
		for guesser, guessed := range rr.GuessedBy {
			guessedBy[string(guesser)] = string(guessed)
		}
		responses[i] = ResponseResult{
			ResponseID: string(rr.ResponseID),
			Text:       rr.Text,
			Author:     string(rr.ActualAuthor),
			GuessedBy:  guessedBy,
		}
	}

	penalties := make(map[string]int, len(r.Penalties))
	for pid, n := range r.Penalties {
		penalties[string(pid)] = n
	}

	return &RoundResults{Responses: responses, Penalties: penalties}
}

// Round represents the current round in API responses. Responses are only
// present once the round has reached the guessing phase, and are always
// anonymized; results are only present once the round is sealed.
type Round struct {
	RoundNumber int                 `json:"round_number"`
	Prompt      string              `json:"prompt"`
	Responded   []string            `json:"responded"`
	Guessed     []string            `json:"guessed"`
	Responses   []AnonymousResponse `json:"responses,omitempty"`
	Results     *RoundResults       `json:"results,omitempty"`
}

// RoundFromModel converts a model.Round, shaping visibility by phase
func RoundFromModel(r *model.Round, phase model.Phase) Round {
	responded := make([]string, 0, len(r.Responses))
	for _, resp := range r.Responses {
		responded = append(responded, string(resp.PlayerID))
	}
	sort.Strings(responded)

	guessed := make([]string, 0, len(r.Guesses))
	for pid := range r.Guesses {
		guessed = append(guessed, string(pid))
	}
	sort.Strings(guessed)

	round := Round{
		RoundNumber: r.RoundNumber,
		Prompt:      r.Prompt,
		Responded:   responded,
		Guessed:     guessed,
	}

	if phase == model.PhaseGuessing || phase == model.PhaseReveal {
		responses := make([]AnonymousResponse, 0, len(r.Responses))
		for id, resp := range r.Responses {
			responses = append(responses, AnonymousResponse{ID: string(id), Text: resp.Text})
		}
		sort.Slice(responses, func(i, j int) bool { return responses[i].ID < responses[j].ID })
		round.Responses = responses
	}

	if phase == model.PhaseReveal {
		round.Results = RoundResultsFromModel(r.Results)
	}

	return round
}

// Session represents a session in API responses
type Session struct {
	Code         string    `json:"code"`
	HostID       string    `json:"host_id"`
	Phase        string    `json:"phase"`
	CurrentRound int       `json:"current_round"`
	Players      []Player  `json:"players"`
	Round        *Round    `json:"round,omitempty"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// SessionFromModel converts model.Session
func SessionFromModel(s *model.Session) Session {
	players := make([]Player, len(s.Players))
	for i := range s.Players {
		players[i] = PlayerFromModel(&s.Players[i])
	}

	var round *Round
	if r := s.Round(); r != nil {
		converted := RoundFromModel(r, s.Phase)
		round = &converted
	}

	return Session{
		Code:         string(s.Code),
		HostID:       string(s.HostID),
		Phase:        string(s.Phase),
		CurrentRound: s.CurrentRound,
		Players:      players,
		Round:        round,
		ExpiresAt:    s.ExpiresAt,
	}
}

// JoinResponse is the response for joining a session
type JoinResponse struct {
	Session Session `json:"session"`
	Player  Player  `json:"player"`
}

// SubmitResponseResponse is the response after submitting a round response.
// Responses is set when this submission completed the responding phase.
type SubmitResponseResponse struct {
	Session      Session             `json:"session"`
	PhaseChanged bool                `json:"phase_changed"`
	Responses    []AnonymousResponse `json:"responses,omitempty"`
}

// SubmitGuessesResponse is the response after submitting guesses.
// Results is set when this submission sealed the round.
type SubmitGuessesResponse struct {
	Session      Session       `json:"session"`
	PhaseChanged bool          `json:"phase_changed"`
	Results      *RoundResults `json:"results,omitempty"`
}

// LeaveResponse is the response after a player leaves a session
type LeaveResponse struct {
	Session Session `json:"session"`
	NewHost *Player `json:"new_host,omitempty"`
}

// EndGameResponse is the final snapshot returned when a session is ended
type EndGameResponse struct {
	Code         string `json:"code"`
	RoundsPlayed int    `json:"rounds_played"`
}

// Event payloads broadcast over SSE

// PlayerJoinedEvent announces a new player
type PlayerJoinedEvent struct {
	PlayerID    string `json:"player_id"`
	Nickname    string `json:"nickname"`
	PlayerCount int    `json:"player_count"`
}

// PlayerDisconnectedEvent announces a departed player
type PlayerDisconnectedEvent struct {
	PlayerID string `json:"player_id"`
	Nickname string `json:"nickname"`
}

// HostChangedEvent announces a host failover
type HostChangedEvent struct {
	OldHostID string `json:"old_host_id"`
	NewHostID string `json:"new_host_id"`
}

// RoundStartedEvent announces a new round's prompt
type RoundStartedEvent struct {
	RoundNumber int    `json:"round_number"`
	Prompt      string `json:"prompt"`
}

// GuessingStartedEvent carries the shuffled, anonymized responses
type GuessingStartedEvent struct {
	RoundNumber int                 `json:"round_number"`
	Responses   []AnonymousResponse `json:"responses"`
}

// ResultsReadyEvent carries the sealed round results
type ResultsReadyEvent struct {
	RoundNumber int           `json:"round_number"`
	Results     *RoundResults `json:"results"`
}

// SessionEndedEvent is the final event before the stream closes
type SessionEndedEvent struct {
	RoundsPlayed int `json:"rounds_played"`
}
