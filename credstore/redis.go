package credstore

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

// RedisKV keeps the envelope in Redis, namespaced per installation. It exists
// for server-side embeddings of the manager (companion services that mirror a
// device session); the mobile build uses FileKV or SQLiteKV.
type RedisKV struct {
	client redis.UniversalClient
	prefix string
}

// NewRedisKV returns a backend writing under "<prefix>:<key>".
func NewRedisKV(client redis.UniversalClient, prefix string) *RedisKV {
	if prefix == "" {
		prefix = "sk"
	}
	return &RedisKV{client: client, prefix: prefix}
}

func (r *RedisKV) key(key string) string {
	return r.prefix + ":" + key
}

// Get implements [KV].
func (r *RedisKV) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := r.client.Get(ctx, r.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

// Set implements [KV].
func (r *RedisKV) Set(ctx context.Context, key, value string) error {
	return r.client.Set(ctx, r.key(key), value, 0).Err()
}

// Delete implements [KV].
func (r *RedisKV) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, r.key(key)).Err()
}
