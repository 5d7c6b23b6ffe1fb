// Package cache is a small byte cache used to serve public list reads.
// Entries are invalidated by key prefix after every mutation.
package cache

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"go.uber.org/zap"
)

// Cache stores opaque values under string keys. Keys are grouped by
// prefix; each prefix carries a generation that Invalidate advances.
type Cache interface {
	// Get reports whether key was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Generation returns the current generation of prefix, zero until the
	// first Invalidate.
	Generation(ctx context.Context, prefix string) (uint64, error)
	// Invalidate advances the generation of prefix and drops its keys.
	Invalidate(ctx context.Context, prefix string) error
}

// Nop never stores anything.
type Nop struct{}

func (Nop) Get(context.Context, string) ([]byte, bool, error)        { return nil, false, nil }
func (Nop) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (Nop) Generation(context.Context, string) (uint64, error)       { return 0, nil }
func (Nop) Invalidate(context.Context, string) error                 { return nil }

// Remember returns the cached value for key under prefix, or calls load and
// caches its result. Values are stored under the generation observed before
// load, and only while that generation is still current, so a load that
// overlaps an Invalidate never becomes visible. Cache failures fall through
// to load; only load errors are returned.
func Remember[T any](ctx context.Context, c Cache, prefix, key string, ttl time.Duration, load func(context.Context) (T, error)) (T, error) {
	gen, err := c.Generation(ctx, prefix)
	if err != nil {
		return load(ctx)
	}
	full := versionedKey(prefix, gen, key)
	if raw, ok, err := c.Get(ctx, full); err == nil && ok {
		var v T
		if json.Unmarshal(raw, &v) == nil {
			return v, nil
		}
	}
	v, err := load(ctx)
	if err != nil {
		return v, err
	}
	if cur, err := c.Generation(ctx, prefix); err != nil || cur != gen {
		return v, nil
	}
	if raw, err := json.Marshal(v); err == nil {
		_ = c.Set(ctx, full, raw, ttl)
	}
	return v, nil
}

func versionedKey(prefix string, gen uint64, key string) string {
	return prefix + strconv.FormatUint(gen, 10) + ":" + key
}

// Open returns a Redis cache when url is set, otherwise a process-local one.
// The returned close function releases the Redis connection.
func Open(ctx context.Context, url, prefix string, logger *zap.Logger) (Cache, func() error, error) {
	if url == "" {
		return NewMemory(), func() error { return nil }, nil
	}
	r, err := NewRedis(ctx, url, prefix, logger)
	if err != nil {
		return nil, nil, err
	}
	return r, r.Close, nil
}
