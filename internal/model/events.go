package model

import "time"

// EventType identifies the type of event
type EventType string

const (
	EventPlayerJoined       EventType = "player_joined"
	EventPlayerDisconnected EventType = "player_disconnected"
	EventHostChanged        EventType = "host_changed"
	EventRoundStarted       EventType = "round_started"
	EventGuessingStarted    EventType = "guessing_started"
	EventResultsReady       EventType = "results_ready"
	EventSessionEnded       EventType = "session_ended"
)

// Event is the base structure for all broadcast events. The session
// controller only produces these as plain data; delivery belongs to the
// notifier.
type Event struct {
	Type      EventType
	Timestamp time.Time
	Code      SessionCode
	Payload   any
}

// PlayerJoinedPayload contains data for player joined events
type PlayerJoinedPayload struct {
	PlayerID    PlayerID
	Nickname    string
	PlayerCount int
}

// PlayerDisconnectedPayload contains data for player disconnected events
type PlayerDisconnectedPayload struct {
	PlayerID PlayerID
	Nickname string
}

// HostChangedPayload contains data for host changed events
type HostChangedPayload struct {
	OldHostID PlayerID
	NewHostID PlayerID
}

// RoundStartedPayload contains data for round started events
type RoundStartedPayload struct {
	RoundNumber int
	Prompt      string
}

// AnonymousResponse is a response stripped of authorship for the guessing
// phase. It must never carry the author's player id.
type AnonymousResponse struct {
	ID   ResponseID
	Text string
}

// GuessingStartedPayload carries the shuffled, anonymized response list
type GuessingStartedPayload struct {
	RoundNumber int
	Responses   []AnonymousResponse
}

// ResultsReadyPayload carries the sealed round results
type ResultsReadyPayload struct {
	RoundNumber int
	Results     RoundResults
}

// SessionEndedPayload contains data for session ended events
type SessionEndedPayload struct {
	RoundsPlayed int
}
