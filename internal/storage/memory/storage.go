package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/jfraser/whosaid/internal/dependencies/clock"
	"github.com/jfraser/whosaid/internal/model"
	"github.com/jfraser/whosaid/internal/storage"
)

// Storage is an in-memory implementation of the storage interface.
// Sessions are deep-copied in and out so callers never alias the stored
// record, matching the serialize/deserialize behavior of the redis backend.
type Storage struct {
	mu       sync.RWMutex
	sessions map[model.SessionCode]*model.Session
	clock    clock.Clock
}

// New creates a new in-memory storage instance
func New(clk clock.Clock) *Storage {
	return &Storage{
		sessions: make(map[model.SessionCode]*model.Session),
		clock:    clk,
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func (s *Storage) CreateSession(ctx context.Context, session *model.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.sessions[session.Code]; ok && !existing.Expired(s.clock.Now()) {
		return model.ErrSessionExists
	}

	stored, err := cloneSession(session)
	if err != nil {
		return err
	}
	s.sessions[session.Code] = stored
	return nil
}

func (s *Storage) GetSession(ctx context.Context, code model.SessionCode) (*model.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[code]
	if !ok || session.Expired(s.clock.Now()) {
		return nil, model.ErrSessionNotFound
	}
	return cloneSession(session)
}

func (s *Storage) SaveSession(ctx context.Context, session *model.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.sessions[session.Code]
	if !ok || existing.Expired(s.clock.Now()) {
		return model.ErrSessionNotFound
	}

	stored, err := cloneSession(session)
	if err != nil {
		return err
	}
	// Remaining expiry is a property of the record, not the update
	stored.ExpiresAt = existing.ExpiresAt
	s.sessions[session.Code] = stored
	return nil
}

func (s *Storage) DeleteSession(ctx context.Context, code model.SessionCode) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, code)
	return nil
}

func (s *Storage) SessionExists(ctx context.Context, code model.SessionCode) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[code]
	return ok && !session.Expired(s.clock.Now()), nil
}

// cloneSession deep-copies a session via its serialized form
func cloneSession(session *model.Session) (*model.Session, error) {
	data, err := json.Marshal(session)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrStorage, err)
	}
	var out model.Session
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrStorage, err)
	}
	return &out, nil
}
