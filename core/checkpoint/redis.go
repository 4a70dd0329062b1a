package checkpoint

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisClient is the subset of the go-redis API used by RedisBackend.
type RedisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// RedisBackend keeps checkpoints as redis string keys.
type RedisBackend struct {
	client RedisClient
	prefix string
}

// NewRedisBackend returns a backend storing keys as "<prefix>:<namespace>".
func NewRedisBackend(client RedisClient, prefix string) *RedisBackend {
	return &RedisBackend{client: client, prefix: prefix}
}

func (b *RedisBackend) key(namespace string) string {
	if b.prefix == "" {
		return namespace
	}
	return b.prefix + ":" + namespace
}

func (b *RedisBackend) Read(ctx context.Context, namespace string) ([]byte, error) {
	data, err := b.client.Get(ctx, b.key(namespace)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	return data, err
}

func (b *RedisBackend) Write(ctx context.Context, namespace string, data []byte) error {
	return b.client.Set(ctx, b.key(namespace), data, 0).Err()
}

func (b *RedisBackend) Delete(ctx context.Context, namespace string) error {
	n, err := b.client.Del(ctx, b.key(namespace)).Result()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
