package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	redisAdapter "github.com/waylinehq/wayline/pkg/adapters/redis"
)

func newTestLocker(t *testing.T) (*miniredis.Miniredis, *redisAdapter.Locker) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, redisAdapter.NewLocker(client, "wayline:journey:")
}

func TestLocker_AcquireAndRelease(t *testing.T) {
	_, locker := newTestLocker(t)
	ctx := context.Background()

	unlock, err := locker.Lock(ctx, "j1", 30*time.Second)
	require.NoError(t, err)
	require.NoError(t, unlock(ctx))

	// Released, so it can be taken again right away.
	unlock, err = locker.Lock(ctx, "j1", 30*time.Second)
	require.NoError(t, err)
	require.NoError(t, unlock(ctx))
}

func TestLocker_MutualExclusion(t *testing.T) {
	_, locker := newTestLocker(t)

	unlock, err := locker.Lock(context.Background(), "j1", 30*time.Second)
	require.NoError(t, err)

	// A second holder polls until the context gives up.
	ctx, cancel := context.WithTimeout(context.Background(), 400*time.Millisecond)
	defer cancel()
	_, err = locker.Lock(ctx, "j1", 30*time.Second)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	require.NoError(t, unlock(context.Background()))

	ctx2, cancel2 := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel2()
	unlock2, err := locker.Lock(ctx2, "j1", 30*time.Second)
	require.NoError(t, err)
	require.NoError(t, unlock2(context.Background()))
}

func TestLocker_DistinctKeysDoNotContend(t *testing.T) {
	_, locker := newTestLocker(t)
	ctx := context.Background()

	unlock1, err := locker.Lock(ctx, "j1", 30*time.Second)
	require.NoError(t, err)
	defer func() { _ = unlock1(ctx) }()

	unlock2, err := locker.Lock(ctx, "j2", 30*time.Second)
	require.NoError(t, err)
	require.NoError(t, unlock2(ctx))
}

func TestLocker_ReleaseAfterExpiryIsSafe(t *testing.T) {
	mr, locker := newTestLocker(t)
	ctx := context.Background()

	unlock1, err := locker.Lock(ctx, "j1", time.Second)
	require.NoError(t, err)

	// First holder's lease expires; a second holder takes over.
	mr.FastForward(2 * time.Second)
	unlock2, err := locker.Lock(ctx, "j1", 30*time.Second)
	require.NoError(t, err)

	// The stale release must not delete the new holder's lock.
	require.NoError(t, unlock1(ctx))
	assert.True(t, mr.Exists("wayline:journey:lock:j1"))

	require.NoError(t, unlock2(ctx))
	assert.False(t, mr.Exists("wayline:journey:lock:j1"))
}
