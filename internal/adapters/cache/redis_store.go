package cache

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"sfc-bus-schedule/internal/platform/obs"
	"sfc-bus-schedule/internal/ports"
)

// RedisStore is a ports.KeyValueStore on a Redis server. Records are stored
// without expiry.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (r *RedisStore) Get(ctx context.Context, key string) (_ []byte, err error) {
	defer obs.Time(ctx, "kv.redis.Get")(&err)

	data, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ports.ErrKeyNotFound
	} else if err != nil {
		return nil, fmt.Errorf("redis get %q: %w", key, err)
	}

	return data, nil
}

func (r *RedisStore) Set(ctx context.Context, key string, value []byte) (err error) {
	defer obs.Time(ctx, "kv.redis.Set")(&err)

	if err := r.client.Set(ctx, key, value, 0).Err(); err != nil {
		return fmt.Errorf("redis set %q: %w", key, err)
	}
	return nil
}

func (r *RedisStore) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis del %q: %w", key, err)
	}
	return nil
}
