package model

import (
	"strings"
	"time"
)

// SessionCode is the human-readable identifier players use to join a session
type SessionCode string

// Phase represents the current stage of a session's round progression
type Phase string

const (
	PhaseLobby      Phase = "lobby"      // Waiting for players, no round started
	PhaseResponding Phase = "responding" // Players are writing responses to the prompt
	PhaseGuessing   Phase = "guessing"   // Players are guessing who wrote what
	PhaseReveal     Phase = "reveal"     // Authors and penalties are revealed
)

// MaxPlayers is the hard cap on session size. Kept small to preserve game
// pacing and keep the guess grid workable.
const MaxPlayers = 8

// Session represents one complete play of the game, identified by a short code.
// Players and Rounds keep insertion order; a session is mutated only by the
// session controller and ends by being deleted from storage.
type Session struct {
	Code         SessionCode
	HostID       PlayerID
	Phase        Phase
	CurrentRound int
	Rounds       []Round
	Players      []Player // join order
	UsedPrompts  []string
	CreatedAt    time.Time
	ExpiresAt    time.Time
}

// GetPlayer returns the player with the given ID, or nil if not in the session
func (s *Session) GetPlayer(id PlayerID) *Player {
	for i := range s.Players {
		if s.Players[i].ID == id {
			return &s.Players[i]
		}
	}
	return nil
}

// HasNickname reports whether any player already uses the nickname,
// compared case-insensitively
func (s *Session) HasNickname(nickname string) bool {
	for i := range s.Players {
		if strings.EqualFold(s.Players[i].Nickname, nickname) {
			return true
		}
	}
	return false
}

// ConnectedPlayers returns the players currently marked connected, in join order
func (s *Session) ConnectedPlayers() []Player {
	var connected []Player
	for _, p := range s.Players {
		if p.IsConnected {
			connected = append(connected, p)
		}
	}
	return connected
}

// Round returns the current round, or nil if no round has started
func (s *Session) Round() *Round {
	if len(s.Rounds) == 0 || s.CurrentRound >= len(s.Rounds) {
		return nil
	}
	return &s.Rounds[s.CurrentRound]
}

// Expired reports whether the session has passed its expiry time
func (s *Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
