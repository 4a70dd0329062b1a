package checkpoint

import (
	"context"
	"fmt"

	"card-tracker/core/storage"

	"github.com/redis/go-redis/v9"
)

const (
	BackendFile  = "file"
	BackendS3    = "s3"
	BackendRedis = "redis"
)

// NewBackend builds the backend selected by cfg.Backend.
// The returned close function releases any connection the backend holds.
func NewBackend(ctx context.Context, cfg Config, storageCfg storage.Config) (Backend, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Backend {
	case BackendFile, "":
		b, err := NewFileBackend(cfg.Dir)
		if err != nil {
			return nil, nil, err
		}
		return b, noop, nil

	case BackendS3:
		client, err := storage.NewClient(storageCfg)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to storage: %w", err)
		}
		if err := storage.EnsureBucket(ctx, client, storageCfg.Bucket, storageCfg.Region); err != nil {
			return nil, nil, err
		}
		return NewObjectBackend(client, storageCfg.Bucket, cfg.Prefix), noop, nil

	case BackendRedis:
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			_ = rdb.Close()
			return nil, nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.RedisAddr, err)
		}
		return NewRedisBackend(rdb, cfg.Prefix), rdb.Close, nil
	}

	return nil, nil, fmt.Errorf("unsupported checkpoint backend %q", cfg.Backend)
}
