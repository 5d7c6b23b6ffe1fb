package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Redis is a Cache backed by a Redis server. Every key is namespaced with
// the configured prefix.
type Redis struct {
	client *redis.Client
	prefix string
	logger *zap.Logger
}

// NewRedis parses url, connects and pings the server.
func NewRedis(ctx context.Context, url, prefix string, logger *zap.Logger) (*Redis, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	logger.Info("redis cache connected", zap.String("addr", opts.Addr), zap.Int("db", opts.DB))
	return &Redis{client: client, prefix: prefix, logger: logger}, nil
}

func (r *Redis) Get(ctx context.Context, key string) ([]byte, bool, error) {
	val, err := r.client.Get(ctx, r.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		r.logger.Warn("cache get failed", zap.String("key", key), zap.Error(err))
		return nil, false, err
	}
	return val, true, nil
}

func (r *Redis) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := r.client.Set(ctx, r.prefix+key, value, ttl).Err(); err != nil {
		r.logger.Warn("cache set failed", zap.String("key", key), zap.Error(err))
		return err
	}
	return nil
}

// Generation reads the counter stored beside the prefix's keys.
func (r *Redis) Generation(ctx context.Context, prefix string) (uint64, error) {
	gen, err := r.client.Get(ctx, r.genKey(prefix)).Uint64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		r.logger.Warn("cache generation read failed", zap.String("prefix", prefix), zap.Error(err))
		return 0, err
	}
	return gen, nil
}

// Invalidate bumps the generation first; readers holding the old generation
// can then only write keys nobody reads.
func (r *Redis) Invalidate(ctx context.Context, prefix string) error {
	if err := r.client.Incr(ctx, r.genKey(prefix)).Err(); err != nil {
		r.logger.Warn("cache generation bump failed", zap.String("prefix", prefix), zap.Error(err))
		return err
	}
	return r.deletePrefix(ctx, prefix)
}

func (r *Redis) genKey(prefix string) string {
	return r.prefix + "gen:" + prefix
}

func (r *Redis) deletePrefix(ctx context.Context, prefix string) error {
	var keys []string
	iter := r.client.Scan(ctx, 0, r.prefix+prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		r.logger.Warn("cache scan failed", zap.String("prefix", prefix), zap.Error(err))
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		r.logger.Warn("cache invalidate failed", zap.String("prefix", prefix), zap.Error(err))
		return err
	}
	return nil
}

func (r *Redis) Close() error {
	return r.client.Close()
}
