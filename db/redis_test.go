package db

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dev-mohitbeniwal/fabdash/config"
	"github.com/dev-mohitbeniwal/fabdash/selection"
)

var _ selection.Store = (*SelectionStore)(nil)

func newTestRedis(t *testing.T) (*Redis, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	r := NewRedisWithClient(client, time.Hour)
	t.Cleanup(r.Close)
	return r, mr
}

func TestSelectionStore(t *testing.T) {
	ctx := context.Background()
	r, mr := newTestRedis(t)
	store := r.SelectionStore("abc")

	_, ok, err := store.Get(ctx, selection.KeyFacility)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Set(ctx, selection.KeyFacility, "M16"))
	require.NoError(t, store.Set(ctx, selection.KeyTool, "HV-SEM"))

	value, ok, err := store.Get(ctx, selection.KeyFacility)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "M16", value)

	raw, err := mr.Get("selection:abc:selectedTool")
	require.NoError(t, err)
	assert.Equal(t, "HV-SEM", raw)
	assert.Equal(t, time.Hour, mr.TTL("selection:abc:selectedFab"))

	other := r.SelectionStore("xyz")
	_, ok, err = other.Get(ctx, selection.KeyFacility)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Delete(ctx, selection.KeyFacility, selection.KeyTool))
	assert.False(t, mr.Exists("selection:abc:selectedFab"))
	assert.False(t, mr.Exists("selection:abc:selectedTool"))
}

func TestSelectionStore_Expiry(t *testing.T) {
	ctx := context.Background()
	r, mr := newTestRedis(t)
	store := r.SelectionStore("abc")

	require.NoError(t, store.Set(ctx, selection.KeyFacility, "R3"))
	mr.FastForward(2 * time.Hour)

	_, ok, err := store.Get(ctx, selection.KeyFacility)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSelectionStore_Unavailable(t *testing.T) {
	ctx := context.Background()
	r, mr := newTestRedis(t)
	store := r.SelectionStore("abc")
	mr.Close()

	_, _, err := store.Get(ctx, selection.KeyFacility)
	assert.Error(t, err)
	assert.Error(t, store.Set(ctx, selection.KeyFacility, "R3"))
}

func TestRateLimit(t *testing.T) {
	ctx := context.Background()
	r, _ := newTestRedis(t)

	for i := 0; i < 3; i++ {
		allowed, err := r.RateLimit(ctx, "10.0.0.1", 3, time.Minute)
		require.NoError(t, err)
		assert.True(t, allowed)
	}
	allowed, err := r.RateLimit(ctx, "10.0.0.1", 3, time.Minute)
	require.NoError(t, err)
	assert.False(t, allowed)

	allowed, err = r.RateLimit(ctx, "10.0.0.2", 3, time.Minute)
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestNewRedis(t *testing.T) {
	mr := miniredis.RunT(t)

	r, err := NewRedis(config.RedisConfiguration{Addr: mr.Addr(), SelectionTTL: time.Minute})
	require.NoError(t, err)
	defer r.Close()
	assert.NoError(t, r.Ping(context.Background()))

	addr := mr.Addr()
	mr.Close()
	_, err = NewRedis(config.RedisConfiguration{Addr: addr, DialTimeout: 100 * time.Millisecond})
	assert.Error(t, err)
}
