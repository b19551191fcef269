package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedTime(min int) time.Time {
	return time.Date(2024, 6, 1, 18, min, 0, 0, time.UTC)
}

func sampleSession() *Session {
	round := NewRound(0, "Confess your most embarrassing purchase")
	round.Responses["resp-1"] = &Response{
		ID:          "resp-1",
		PlayerID:    "p1",
		Text:        "a singing fish",
		SubmittedAt: fixedTime(5),
	}
	round.Responses["resp-2"] = &Response{
		ID:          "resp-2",
		PlayerID:    "p2",
		Text:        "400 glow sticks",
		SubmittedAt: fixedTime(6),
	}
	round.Guesses["p1"] = &PlayerGuesses{
		PlayerID: "p1",
		Guesses: map[ResponseID]PlayerID{
			"resp-1": "p1",
			"resp-2": "p2",
		},
		SubmittedAt: fixedTime(7),
	}
	round.Results = &RoundResults{
		Responses: []ResponseResult{
			{
				ResponseID:   "resp-1",
				Text:         "a singing fish",
				ActualAuthor: "p1",
				GuessedBy:    map[PlayerID]PlayerID{"p1": "p1"},
			},
			{
				ResponseID:   "resp-2",
				Text:         "400 glow sticks",
				ActualAuthor: "p2",
				GuessedBy:    map[PlayerID]PlayerID{"p1": "p2"},
			},
		},
		Penalties: map[PlayerID]int{"p1": 0, "p2": 0},
	}

	return &Session{
		Code:         "AB12CD",
		HostID:       "p1",
		Phase:        PhaseReveal,
		CurrentRound: 0,
		Rounds:       []Round{round},
		Players: []Player{
			{ID: "p1", Nickname: "Maple", IsHost: true, IsConnected: true, JoinedAt: fixedTime(0)},
			{ID: "p2", Nickname: "Birch", IsConnected: true, JoinedAt: fixedTime(1)},
			{ID: "p3", Nickname: "Cedar", IsConnected: false, JoinedAt: fixedTime(2)},
		},
		UsedPrompts: []string{"Confess your most embarrassing purchase"},
		CreatedAt:   fixedTime(0),
		ExpiresAt:   fixedTime(0).Add(24 * time.Hour),
	}
}

func TestSessionJSONRoundTrip(t *testing.T) {
	original := sampleSession()

	data, err := json.Marshal(original)
	require.NoError(t, err)

	var decoded Session
	require.NoError(t, json.Unmarshal(data, &decoded))

	require.Equal(t, *original, decoded)
}

func TestSessionRoundTripPreservesOrder(t *testing.T) {
	original := sampleSession()

	data, err := json.Marshal(original)
	require.NoError(t, err)

	var decoded Session
	require.NoError(t, json.Unmarshal(data, &decoded))

	// Join order and round order are invariants of the serialized form
	require.Len(t, decoded.Players, 3)
	assert.Equal(t, PlayerID("p1"), decoded.Players[0].ID)
	assert.Equal(t, PlayerID("p2"), decoded.Players[1].ID)
	assert.Equal(t, PlayerID("p3"), decoded.Players[2].ID)
	require.Len(t, decoded.Rounds, 1)
	assert.Equal(t, 0, decoded.Rounds[0].RoundNumber)
}

func TestGetPlayer(t *testing.T) {
	s := sampleSession()

	p := s.GetPlayer("p2")
	require.NotNil(t, p)
	assert.Equal(t, "Birch", p.Nickname)

	assert.Nil(t, s.GetPlayer("missing"))
}

func TestHasNicknameIsCaseInsensitive(t *testing.T) {
	s := sampleSession()

	assert.True(t, s.HasNickname("maple"))
	assert.True(t, s.HasNickname("MAPLE"))
	assert.False(t, s.HasNickname("Willow"))
}

func TestConnectedPlayers(t *testing.T) {
	s := sampleSession()

	connected := s.ConnectedPlayers()
	require.Len(t, connected, 2)
	assert.Equal(t, PlayerID("p1"), connected[0].ID)
	assert.Equal(t, PlayerID("p2"), connected[1].ID)
}

func TestRoundAccessor(t *testing.T) {
	s := sampleSession()
	require.NotNil(t, s.Round())
	assert.Equal(t, 0, s.Round().RoundNumber)

	empty := &Session{Code: "XYZ123", Phase: PhaseLobby}
	assert.Nil(t, empty.Round())
}

func TestExpired(t *testing.T) {
	s := sampleSession()

	assert.False(t, s.Expired(s.CreatedAt.Add(time.Hour)))
	assert.True(t, s.Expired(s.ExpiresAt.Add(time.Minute)))
}

func TestResponseBy(t *testing.T) {
	s := sampleSession()
	round := s.Round()

	resp := round.ResponseBy("p2")
	require.NotNil(t, resp)
	assert.Equal(t, ResponseID("resp-2"), resp.ID)

	assert.Nil(t, round.ResponseBy("p3"))
}
