package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/jfraser/whosaid/internal/dependencies/mocks"
	"github.com/jfraser/whosaid/internal/model"
)

type StorageSuite struct {
	suite.Suite
	storage *Storage
	clock   *mocks.MockClock
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.clock = mocks.NewMockClock(time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC))
	s.storage = New(s.clock)
	s.ctx = context.Background()
}

func (s *StorageSuite) newSession(code string) *model.Session {
	now := s.clock.Now()
	return &model.Session{
		Code:   model.SessionCode(code),
		HostID: "host-1",
		Phase:  model.PhaseLobby,
		Players: []model.Player{
			{ID: "host-1", Nickname: "Maple", IsHost: true, IsConnected: true, JoinedAt: now},
		},
		CreatedAt: now,
		ExpiresAt: now.Add(24 * time.Hour),
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
}

func (s *StorageSuite) TestCreateDuplicateCodeFails() {
	s.Require().NoError(s.storage.CreateSession(s.ctx, s.newSession("AAA111")))

	err := s.storage.CreateSession(s.ctx, s.newSession("AAA111"))
	s.ErrorIs(err, model.ErrSessionExists)
}

func (s *StorageSuite) TestGetSessionNotFound() {
	_, err := s.storage.GetSession(s.ctx, "ZZZ999")
	s.ErrorIs(err, model.ErrSessionNotFound)
}

func (s *StorageSuite) TestGetExpiredSessionNotFound() {
	s.Require().NoError(s.storage.CreateSession(s.ctx, s.newSession("AAA111")))

	s.clock.Advance(25 * time.Hour)

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

func (s *StorageSuite) TestSavePreservesExpiry() {
	session := s.newSession("AAA111")
	s.Require().NoError(s.storage.CreateSession(s.ctx, session))
	originalExpiry := session.ExpiresAt

	// An update must not push the expiry out
	update := s.newSession("AAA111")
	update.ExpiresAt = originalExpiry.Add(48 * time.Hour)
	s.Require().NoError(s.storage.SaveSession(s.ctx, update))

	retrieved, err := s.storage.GetSession(s.ctx, "AAA111")
	s.Require().NoError(err)
	s.Equal(originalExpiry, retrieved.ExpiresAt)
}

func (s *StorageSuite) TestGetReturnsCopy() {
	session := s.newSession("AAA111")
	s.Require().NoError(s.storage.CreateSession(s.ctx, session))

	first, err := s.storage.GetSession(s.ctx, "AAA111")
	s.Require().NoError(err)
	first.Players[0].Nickname = "Tampered"

	second, err := s.storage.GetSession(s.ctx, "AAA111")
	s.Require().NoError(err)
	s.Equal("Maple", second.Players[0].Nickname)
}

func (s *StorageSuite) TestDeleteSession() {
	s.Require().NoError(s.storage.CreateSession(s.ctx, s.newSession("AAA111")))

	s.Require().NoError(s.storage.DeleteSession(s.ctx, "AAA111"))

	_, err := s.storage.GetSession(s.ctx, "AAA111")
	s.ErrorIs(err, model.ErrSessionNotFound)
}

func (s *StorageSuite) TestDeleteAbsentSessionIsNoop() {
	s.NoError(s.storage.DeleteSession(s.ctx, "ZZZ999"))
}

func (s *StorageSuite) TestSessionExists() {
	s.Require().NoError(s.storage.CreateSession(s.ctx, s.newSession("AAA111")))

	exists, err := s.storage.SessionExists(s.ctx, "AAA111")
	s.Require().NoError(err)
	s.True(exists)

	exists, err = s.storage.SessionExists(s.ctx, "BBB222")
	s.Require().NoError(err)
	s.False(exists)

	s.clock.Advance(25 * time.Hour)
	exists, err = s.storage.SessionExists(s.ctx, "AAA111")
	s.Require().NoError(err)
	s.False(exists)
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
