package booking

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
)

// SessionStore is the minimal key-value surface booking sessions need. Redis
// backs it in production; tests substitute an in-memory map.
type SessionStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Del(ctx context.Context, key string) error
}

// RedisSessionStore implements SessionStore on a Redis client.
type RedisSessionStore struct {
	Client *redis.Client
}

func (s *RedisSessionStore) Get(ctx context.Context, key string) (string, error) {
	return s.Client.Get(ctx, key).Result()
}

func (s *RedisSessionStore) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return s.Client.Set(ctx, key, value, ttl).Err()
}

func (s *RedisSessionStore) Del(ctx context.Context, key string) error {
	return s.Client.Del(ctx, key).Err()
}
