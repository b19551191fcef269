package storage

import (
	"context"

	"github.com/jfraser/whosaid/internal/model"
)

// Storage defines the interface for session persistence. One record per
// session code; records carry a TTL and an expired record is
// indistinguishable from an absent one.
type Storage interface {
	// CreateSession stores a new session, failing with ErrSessionExists
	// if the code is already in use.
	CreateSession(ctx context.Context, session *model.Session) error

	// GetSession retrieves a session by code. Expired or missing sessions
	// both yield ErrSessionNotFound.
	GetSession(ctx context.Context, code model.SessionCode) (*model.Session, error)

	// SaveSession updates an existing session, preserving its remaining
	// expiry. Fails with ErrSessionNotFound if the record is gone.
	SaveSession(ctx context.Context, session *model.Session) error

	// DeleteSession removes a session. Deleting an absent session is not
	// an error.
	DeleteSession(ctx context.Context, code model.SessionCode) error

	// SessionExists reports whether a live session uses the code
	SessionExists(ctx context.Context, code model.SessionCode) (bool, error)
}
