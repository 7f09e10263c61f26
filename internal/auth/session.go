package auth

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const sessionKeyPrefix = "session:"

// SessionStore tracks live sessions so logout actually terminates one.
// Entries expire together with the token they back.
type SessionStore interface {
	Put(ctx context.Context, sessionID, subject string, ttl time.Duration) error
	Exists(ctx context.Context, sessionID string) (bool, error)
	Delete(ctx context.Context, sessionID string) error
}

type redisSessionStore struct {
	client *redis.Client
}

// NewRedisSessionStore returns a Redis-backed session store.
func NewRedisSessionStore(client *redis.Client) SessionStore {
	return &redisSessionStore{client: client}
}

func (s *redisSessionStore) Put(ctx context.Context, sessionID, subject string, ttl time.Duration) error {
	return s.client.Set(ctx, sessionKeyPrefix+sessionID, subject, ttl).Err()
}

func (s *redisSessionStore) Exists(ctx context.Context, sessionID string) (bool, error) {
	n, err := s.client.Exists(ctx, sessionKeyPrefix+sessionID).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *redisSessionStore) Delete(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, sessionKeyPrefix+sessionID).Err()
}
