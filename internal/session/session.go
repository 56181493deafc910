// Package session stores opaque browser sessions in Redis. The cookie only
// carries a random session id; the owning user id lives server-side.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"investmate/internal/uuid"
)

const keyPrefix = "session:"

// ErrNotFound is returned when a session id is unknown or expired.
var ErrNotFound = errors.New("session not found")

// Store creates, resolves and destroys sessions.
type Store interface {
	Create(ctx context.Context, userID string) (string, error)
	UserID(ctx context.Context, sessionID string) (string, error)
	Destroy(ctx context.Context, sessionID string) error
}

// Compile-time check to ensure RedisStore implements Store
var _ Store = (*RedisStore)(nil)

// RedisStore keeps session -> user id mappings with a sliding TTL.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore creates a session store. Sessions expire after ttl of inactivity.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

// Create starts a session for userID and returns its id.
func (s *RedisStore) Create(ctx context.Context, userID string) (string, error) {
	id := uuid.NewToken()
	if err := s.client.Set(ctx, keyPrefix+id, userID, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("storing session: %w", err)
	}
	return id, nil
}

// UserID resolves a session id and refreshes its expiry.
func (s *RedisStore) UserID(ctx context.Context, sessionID string) (string, error) {
	if sessionID == "" {
		return "", ErrNotFound
	}

	userID, err := s.client.GetEx(ctx, keyPrefix+sessionID, s.ttl).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("loading session: %w", err)
	}
	return userID, nil
}

// Destroy removes a session. Unknown ids are not an error.
func (s *RedisStore) Destroy(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	if err := s.client.Del(ctx, keyPrefix+sessionID).Err(); err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	return nil
}
