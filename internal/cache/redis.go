package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStash keeps payloads in Redis with a sliding TTL so abandoned
// sessions eventually expire on their own.
type RedisStash struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStash(client *redis.Client, ttl time.Duration) *RedisStash {
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}
	return &RedisStash{client: client, ttl: ttl}
}

func (r *RedisStash) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrMiss
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}
	return data, nil
}

func (r *RedisStash) Set(ctx context.Context, key string, value []byte) error {
	if err := r.client.Set(ctx, key, value, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (r *RedisStash) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}
