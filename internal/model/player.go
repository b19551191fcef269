package model

import "time"

// PlayerID uniquely identifies a player within a session
type PlayerID string

// Player represents a participant in a game session
type Player struct {
	ID          PlayerID
	Nickname    string
	IsHost      bool
	IsConnected bool
	JoinedAt    time.Time
}
