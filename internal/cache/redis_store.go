package cache

import (
	"context"
	"dialectgame/internal/persist"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultTTL is how long an untouched room snapshot survives in Redis
const DefaultTTL = 24 * time.Hour

// RedisStore is a persist.Store backed by Redis strings. Room snapshots
// expire after ttl of inactivity; other keys never expire.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore creates a Redis backed store
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisStore{
		client: client,
		ttl:    ttl,
	}
}

func (s *RedisStore) expiry(key string) time.Duration {
	if persist.IsRoomKey(key) {
		return s.ttl
	}
	return 0
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, persist.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (s *RedisStore) Set(ctx context.Context, key string, value []byte) error {
	return s.client.Set(ctx, key, value, s.expiry(key)).Err()
}

func (s *RedisStore) Delete(ctx context.Context, key string) error {
	return s.client.Del(ctx, key).Err()
}
