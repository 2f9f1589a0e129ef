package ratelimit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultRedisKey = "contact:rate_limit"

// RedisStore keeps the rate-limit mapping in a single Redis key, for
// deployments where several instances share the limit.
type RedisStore struct {
	rdb *redis.Client
	key string
	ttl time.Duration
}

type RedisStoreOption func(*RedisStore)

func WithKey(key string) RedisStoreOption {
	return func(s *RedisStore) { s.key = key }
}

func WithTTL(d time.Duration) RedisStoreOption {
	return func(s *RedisStore) { s.ttl = d }
}

// NewRedisStore creates a Redis-backed store. The key expires two windows
// after the last save so an idle deployment leaves nothing behind.
func NewRedisStore(rdb *redis.Client, opts ...RedisStoreOption) *RedisStore {
	s := &RedisStore{
		rdb: rdb,
		key: defaultRedisKey,
		ttl: 2 * time.Hour,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load reads the mapping from Redis. A missing key yields an empty mapping.
func (s *RedisStore) Load(ctx context.Context) (map[string]int64, error) {
	data, err := s.rdb.Get(ctx, s.key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return map[string]int64{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", s.key, err)
	}

	entries := map[string]int64{}
	if err := json.Unmarshal(data, &entries); err != nil {
		return map[string]int64{}, nil
	}
	return entries, nil
}

// Save rewrites the mapping key
func (s *RedisStore) Save(ctx context.Context, entries map[string]int64) error {
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("failed to encode rate limit entries: %w", err)
	}

	if err := s.rdb.Set(ctx, s.key, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write %s: %w", s.key, err)
	}
	return nil
}
