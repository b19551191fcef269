package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jfraser/whosaid/internal/model"
	"github.com/jfraser/whosaid/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface.
// Sessions are stored as JSON values whose key expires at the session's
// ExpiresAt; updates keep the remaining TTL.
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrStorage, err)
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func (s *Storage) CreateSession(ctx context.Context, session *model.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("%w: %v", model.ErrStorage, err)
	}

	expiresAt := session.ExpiresAt
	if expiresAt.IsZero() {
		expiresAt = time.Now().Add(s.cfg.SessionTTL)
	}

	// NX so two concurrent creates cannot claim the same code
	err = s.client.SetArgs(ctx, sessionKey(session.Code), data, redis.SetArgs{
		Mode:     "NX",
		ExpireAt: expiresAt,
	}).Err()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return model.ErrSessionExists
		}
		return fmt.Errorf("%w: %v", model.ErrStorage, err)
	}
	return nil
}

func (s *Storage) GetSession(ctx context.Context, code model.SessionCode) (*model.Session, error) {
	data, err := s.client.Get(ctx, sessionKey(code)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrSessionNotFound
		}
		return nil, fmt.Errorf("%w: %v", model.ErrStorage, err)
	}

	var session model.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrStorage, err)
	}
	return &session, nil
}

func (s *Storage) SaveSession(ctx context.Context, session *model.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("%w: %v", model.ErrStorage, err)
	}

	// XX rejects updates to records that expired or were deleted;
	// KEEPTTL preserves the remaining expiry
	err = s.client.SetArgs(ctx, sessionKey(session.Code), data, redis.SetArgs{
		Mode:    "XX",
		KeepTTL: true,
	}).Err()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return model.ErrSessionNotFound
		}
		return fmt.Errorf("%w: %v", model.ErrStorage, err)
	}
	return nil
}

func (s *Storage) DeleteSession(ctx context.Context, code model.SessionCode) error {
	if err := s.client.Del(ctx, sessionKey(code)).Err(); err != nil {
		return fmt.Errorf("%w: %v", model.ErrStorage, err)
	}
	return nil
}

func (s *Storage) SessionExists(ctx context.Context, code model.SessionCode) (bool, error) {
	n, err := s.client.Exists(ctx, sessionKey(code)).Result()
	if err != nil {
		return false, fmt.Errorf("%w: %v", model.ErrStorage, err)
	}
	return n > 0, nil
}
