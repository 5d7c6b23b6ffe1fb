package cache

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory_Expiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	m := NewMemory()
	m.now = func() time.Time { return now }

	require.NoError(t, m.Set(ctx, "k", []byte("v"), time.Minute))
	v, ok, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v", string(v))

	now = now.Add(time.Minute)
	_, ok, _ = m.Get(ctx, "k")
	assert.False(t, ok)
}

func TestMemory_Invalidate(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	_ = m.Set(ctx, "blogs:all", []byte("1"), 0)
	_ = m.Set(ctx, "blogs:published", []byte("2"), 0)
	_ = m.Set(ctx, "hero:all", []byte("3"), 0)

	require.NoError(t, m.Invalidate(ctx, "blogs:"))
	_, ok, _ := m.Get(ctx, "blogs:all")
	assert.False(t, ok)
	_, ok, _ = m.Get(ctx, "hero:all")
	assert.True(t, ok)

	gen, err := m.Generation(ctx, "blogs:")
	require.NoError(t, err)
	assert.Equal(t, uint64(1), gen)
	gen, _ = m.Generation(ctx, "hero:")
	assert.Equal(t, uint64(0), gen)
}

func TestRemember_LoadsOnce(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	calls := 0
	load := func(context.Context) ([]string, error) {
		calls++
		return []string{"a", "b"}, nil
	}

	for i := 0; i < 3; i++ {
		v, err := Remember(ctx, m, "blogs:", "list", time.Minute, load)
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b"}, v)
	}
	assert.Equal(t, 1, calls)
}

func TestRemember_DoesNotCacheErrors(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	boom := errors.New("boom")
	_, err := Remember(ctx, m, "blogs:", "list", time.Minute, func(context.Context) (int, error) { return 0, boom })
	assert.ErrorIs(t, err, boom)
	_, ok, _ := m.Get(ctx, versionedKey("blogs:", 0, "list"))
	assert.False(t, ok)
}

func TestRemember_LoadOverlappingInvalidateIsNotCached(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	rows := []string{"old"}

	v, err := Remember(ctx, m, "blogs:", "list", time.Minute, func(ctx context.Context) ([]string, error) {
		snapshot := append([]string(nil), rows...)
		rows = append(rows, "new")
		require.NoError(t, m.Invalidate(ctx, "blogs:"))
		return snapshot, nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"old"}, v)

	v, err = Remember(ctx, m, "blogs:", "list", time.Minute, func(context.Context) ([]string, error) {
		return append([]string(nil), rows...), nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"old", "new"}, v)
}

func TestRedis_RoundTrip(t *testing.T) {
	url := os.Getenv("TEST_REDIS_URL")
	if url == "" {
		t.Skip("TEST_REDIS_URL not set")
	}
	ctx := context.Background()
	r, err := NewRedis(ctx, url, "clinic-test:", nil)
	require.NoError(t, err)
	defer r.Close()

	require.NoError(t, r.Set(ctx, "blogs:all", []byte("x"), time.Minute))
	v, ok, err := r.Get(ctx, "blogs:all")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "x", string(v))

	before, err := r.Generation(ctx, "blogs:")
	require.NoError(t, err)
	require.NoError(t, r.Invalidate(ctx, "blogs:"))
	_, ok, err = r.Get(ctx, "blogs:all")
	require.NoError(t, err)
	assert.False(t, ok)
	after, err := r.Generation(ctx, "blogs:")
	require.NoError(t, err)
	assert.Equal(t, before+1, after)
}

func TestOpen_MemoryWithoutURL(t *testing.T) {
	c, closeFn, err := Open(context.Background(), "", "p:", nil)
	require.NoError(t, err)
	_, ok := c.(*Memory)
	assert.True(t, ok)
	assert.NoError(t, closeFn())

	_, _, err = Open(context.Background(), "not a url", "p:", nil)
	assert.Error(t, err)
}
