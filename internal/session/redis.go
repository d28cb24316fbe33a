package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	redis "github.com/redis/go-redis/v9"

	"teledetect-platform/internal/model"
)

// RedisStore keeps session entries in Redis with a per-entry TTL, so expiry
// needs no purging job of our own.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore connects to Redis at redisURL and verifies the connection
// with a ping before returning.
func NewRedisStore(ctx context.Context, redisURL string) (*RedisStore, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return &RedisStore{client: client}, nil
}

func (s *RedisStore) Put(ctx context.Context, userID string, token string, ttl time.Duration) error {
	if err := s.client.Set(ctx, Key(userID), token, ttl).Err(); err != nil {
		return fmt.Errorf("store session: %w", err)
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, userID string) (string, error) {
	value, err := s.client.Get(ctx, Key(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", model.ErrNoSession
	}
	if err != nil {
		return "", fmt.Errorf("fetch session: %w", err)
	}
	return value, nil
}

func (s *RedisStore) Delete(ctx context.Context, userID string) error {
	// DEL of a missing key is a no-op in Redis, which matches the
	// idempotency contract.
	if err := s.client.Del(ctx, Key(userID)).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
