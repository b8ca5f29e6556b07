package authentication

import (
	"context"
	"time"

	// manuell eingetragen (unterhalt der version ohne /v8)
	"github.com/go-redis/redis/v8"
)

// TokenStore is the registry of issued access tokens (token uuid -> user id)
type TokenStore interface {
	Register(ctx context.Context, tokenUUID string, userID string, ttl time.Duration) error
	Lookup(ctx context.Context, tokenUUID string) (string, error)
}

// RedisStore keeps the registry in a dedicated redis DB (JWT_DB)
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore wraps a pooled connection
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// Register stores the token until it expires
func (s *RedisStore) Register(ctx context.Context, tokenUUID string, userID string, ttl time.Duration) error {
	return s.client.Set(ctx, tokenUUID, userID, ttl).Err()
}

// Lookup returns the user of a registered token; unknown/expired tokens are rejected
func (s *RedisStore) Lookup(ctx context.Context, tokenUUID string) (string, error) {
	userID, err := s.client.Get(ctx, tokenUUID).Result()
	if err == redis.Nil {
		return "", ErrUnauthorized
	}
	if err != nil {
		return "", err
	}
	return userID, nil
}
