package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/jfraser/whosaid/internal/model"
)

type StorageSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	cfg := DefaultConfig()
	cfg.SessionTTL = time.Hour

	s.storage = NewWithClient(client, cfg)
	s.ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

func (s *StorageSuite) newSession(code string) *model.Session {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	return &model.Session{
		Code:   model.SessionCode(code),
		HostID: "host-1",
		Phase:  model.PhaseLobby,
		Players: []model.Player{
			{ID: "host-1", Nickname: "Maple", IsHost: true, IsConnected: true, JoinedAt: now},
		},
		CreatedAt: now,
		ExpiresAt: time.Now().Add(time.Hour),
	}
}

func (s *StorageSuite) TestCreateAndGetSession() {
	session := s.newSession("AAA111")

	s.Require().NoError(s.storage.CreateSession(s.ctx, session))

	retrieved, err := s.storage.GetSession(s.ctx, "AAA111")
	s.Require().NoError(err)
	s.Equal(session.Code, retrieved.Code)
	s.Equal(session.HostID, retrieved.HostID)
	s.Len(retrieved.Players, 1)
	s.Equal("Maple", retrieved.Players[0].Nickname)
}

func (s *StorageSuite) TestCreateDuplicateCodeFails() {
	s.Require().NoError(s.storage.CreateSession(s.ctx, s.newSession("AAA111")))

	err := s.storage.CreateSession(s.ctx, s.newSession("AAA111"))
	s.ErrorIs(err, model.ErrSessionExists)
}

func (s *StorageSuite) TestCreateSetsExpiry() {
	s.Require().NoError(s.storage.CreateSession(s.ctx, s.newSession("AAA111")))

	ttl := s.mini.TTL(sessionKey("AAA111"))
	s.Greater(ttl, time.Duration(0))
	s.LessOrEqual(ttl, time.Hour)
}

func (s *StorageSuite) TestGetSessionNotFound() {
	_, err := s.storage.GetSession(s.ctx, "ZZZ999")
	s.ErrorIs(err, model.ErrSessionNotFound)
}

func (s *StorageSuite) TestGetExpiredSessionNotFound() {
	s.Require().NoError(s.storage.CreateSession(s.ctx, s.newSession("AAA111")))

	s.mini.FastForward(2 * time.Hour)

	_, err := s.storage.GetSession(s.ctx, "AAA111")
	s.ErrorIs(err, model.ErrSessionNotFound)
}

func (s *StorageSuite) TestSaveSessionUpdates() {
	session := s.newSession("AAA111")
	s.Require().NoError(s.storage.CreateSession(s.ctx, session))

	session.Phase = model.PhaseResponding
	s.Require().NoError(s.storage.SaveSession(s.ctx, session))

	retrieved, err := s.storage.GetSession(s.ctx, "AAA111")
	s.Require().NoError(err)
	s.Equal(model.PhaseResponding, retrieved.Phase)
}

func (s *StorageSuite) TestSaveAbsentSessionFails() {
	err := s.storage.SaveSession(s.ctx, s.newSession("AAA111"))
	s.ErrorIs(err, model.ErrSessionNotFound)
}

func (s *StorageSuite) TestSavePreservesRemainingTTL() {
	session := s.newSession("AAA111")
	s.Require().NoError(s.storage.CreateSession(s.ctx, session))

	s.mini.FastForward(30 * time.Minute)

	session.Phase = model.PhaseResponding
	s.Require().NoError(s.storage.SaveSession(s.ctx, session))

	ttl := s.mini.TTL(sessionKey("AAA111"))
	s.Greater(ttl, time.Duration(0))
	s.LessOrEqual(ttl, 30*time.Minute)
}

func (s *StorageSuite) TestDeleteSession() {
	s.Require().NoError(s.storage.CreateSession(s.ctx, s.newSession("AAA111")))

	s.Require().NoError(s.storage.DeleteSession(s.ctx, "AAA111"))

	_, err := s.storage.GetSession(s.ctx, "AAA111")
	s.ErrorIs(err, model.ErrSessionNotFound)
}

func (s *StorageSuite) TestSessionExists() {
	exists, err := s.storage.SessionExists(s.ctx, "AAA111")
	s.Require().NoError(err)
	s.False(exists)

	s.Require().NoError(s.storage.CreateSession(s.ctx, s.newSession("AAA111")))

	exists, err = s.storage.SessionExists(s.ctx, "AAA111")
	s.Require().NoError(err)
	s.True(exists)
}

func (s *StorageSuite) TestSessionIsolation() {
	a := s.newSession("AAA111")
	b := s.newSession("BBB222")
	s.Require().NoError(s.storage.CreateSession(s.ctx, a))
	s.Require().NoError(s.storage.CreateSession(s.ctx, b))

	a.Phase = model.PhaseResponding
	s.Require().NoError(s.storage.SaveSession(s.ctx, a))

	other, err := s.storage.GetSession(s.ctx, "BBB222")
	s.Require().NoError(err)
	s.Equal(model.PhaseLobby, other.Phase)
}

func (s *StorageSuite) TestRoundTripNestedStructures() {
	session := s.newSession("AAA111")
	round := model.NewRound(0, "Describe your worst haircut")
	round.Responses["resp-1"] = &model.Response{
		ID:          "resp-1",
		PlayerID:    "host-1",
		Text:        "the bowl cut years",
		SubmittedAt: time.Date(2024, 6, 1, 12, 5, 0, 0, time.UTC),
	}
	round.Guesses["host-1"] = &model.PlayerGuesses{
		PlayerID:    "host-1",
		Guesses:     map[model.ResponseID]model.PlayerID{"resp-1": "host-1"},
		SubmittedAt: time.Date(2024, 6, 1, 12, 6, 0, 0, time.UTC),
	}
	session.Rounds = []model.Round{round}
	session.Phase = model.PhaseGuessing

	s.Require().NoError(s.storage.CreateSession(s.ctx, session))

	retrieved, err := s.storage.GetSession(s.ctx, "AAA111")
	s.Require().NoError(err)
	s.Require().Len(retrieved.Rounds, 1)
	s.Equal("Describe your worst haircut", retrieved.Rounds[0].Prompt)
	s.Require().Contains(retrieved.Rounds[0].Responses, model.ResponseID("resp-1"))
	s.Equal("the bowl cut years", retrieved.Rounds[0].Responses["resp-1"].Text)
	s.Require().Contains(retrieved.Rounds[0].Guesses, model.PlayerID("host-1"))
	s.Equal(model.PlayerID("host-1"), retrieved.Rounds[0].Guesses["host-1"].Guesses["resp-1"])
}
