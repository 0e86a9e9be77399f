package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) (*Redis, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	r, err := New("redis://" + mr.Addr() + "/0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = r.Close() })
	return r, mr
}

type item struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestGetSetDel(t *testing.T) {
	r, mr := newTestRedis(t)
	ctx := context.Background()
	require.NoError(t, r.Ping(ctx))

	key := Key("item", "1")
	assert.Equal(t, "m3ugroups:item:1", key)

	_, err := Get[item](ctx, r, key)
	assert.True(t, IsMiss(err))

	require.NoError(t, Set(ctx, r, key, item{Name: "News", Count: 2}, time.Minute))
	got, err := Get[item](ctx, r, key)
	require.NoError(t, err)
	assert.Equal(t, item{Name: "News", Count: 2}, got)
	assert.Equal(t, time.Minute, mr.TTL(key))

	n, err := Del(ctx, r, key)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	n, err = Del(ctx, r)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestGetBadJSON(t *testing.T) {
	r, mr := newTestRedis(t)
	require.NoError(t, mr.Set(Key("bad"), "{not json"))

	_, err := Get[item](context.Background(), r, Key("bad"))
	require.Error(t, err)
	assert.False(t, IsMiss(err))
}

func TestTryLock(t *testing.T) {
	r, mr := newTestRedis(t)
	ctx := context.Background()
	key := Key("lock", "a")

	unlock, err := TryLock(ctx, r, key, time.Second)
	require.NoError(t, err)

	_, err = TryLock(ctx, r, key, time.Second)
	assert.ErrorIs(t, err, ErrLocked)

	unlock()
	assert.False(t, mr.Exists(key))

	unlock2, err := LockWithRetry(ctx, r, key, time.Second, 100*time.Millisecond)
	require.NoError(t, err)
	defer unlock2()

	_, err = LockWithRetry(ctx, r, key, time.Second, 50*time.Millisecond)
	assert.ErrorIs(t, err, ErrLocked)
}
