package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrSessionNotFound is returned when a handle does not resolve to a
// live session, either because it never existed or because it expired
// or was invalidated.
var ErrSessionNotFound = errors.New("session not found")

const sessionKeyPrefix = "session:"

// Store binds authenticated user IDs to opaque session handles backed
// by Redis. Handles are the only session payload visible to clients;
// the bound user is always re-fetched from the primary store on use.
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStore creates a session store with the given time-to-live for
// session handles.
func NewStore(client *redis.Client, ttl time.Duration) *Store {
	return &Store{
		client: client,
		ttl:    ttl,
	}
}

// Bind creates a new session for the user and returns its opaque handle.
func (s *Store) Bind(ctx context.Context, userID string) (string, error) {
	handle := uuid.NewString()

	if err := s.client.Set(ctx, sessionKeyPrefix+handle, userID, s.ttl).Err(); err != nil {
		return "", err
	}

	return handle, nil
}

// Resolve returns the user ID bound to the handle. Resolving a live
// session extends its expiry, so sessions stay alive while in use.
func (s *Store) Resolve(ctx context.Context, handle string) (string, error) {
	userID, err := s.client.Get(ctx, sessionKeyPrefix+handle).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrSessionNotFound
		}
		return "", err
	}

	if err := s.client.Expire(ctx, sessionKeyPrefix+handle, s.ttl).Err(); err != nil {
		return "", err
	}

	return userID, nil
}

// Invalidate removes the session bound to the handle. Invalidating an
// unknown handle is not an error.
func (s *Store) Invalidate(ctx context.Context, handle string) error {
	return s.client.Del(ctx, sessionKeyPrefix+handle).Err()
}
