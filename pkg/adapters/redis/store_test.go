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
	"github.com/waylinehq/wayline/pkg/domain"
	"github.com/waylinehq/wayline/pkg/ports"
)

func newTestStore(t *testing.T, opts ...redisAdapter.Option) (*miniredis.Miniredis, *redisAdapter.Store) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	store := redisAdapter.NewFromClient(client, opts...)
	t.Cleanup(func() { _ = store.Close() })
	return mr, store
}

func TestStore_Contract(t *testing.T) {
	_, store := newTestStore(t)
	ports.RunContextStoreContract(t, store)
}

func TestStore_TTL(t *testing.T) {
	mr, store := newTestStore(t, redisAdapter.WithTTL(time.Minute))
	ctx := context.Background()

	jctx := domain.NewJourneyContext()
	jctx.SetData("start", map[string]any{"age": "20"})
	require.NoError(t, store.Save(ctx, "expiring", jctx))

	_, err := store.Load(ctx, "expiring")
	require.NoError(t, err)

	mr.FastForward(2 * time.Minute)

	_, err = store.Load(ctx, "expiring")
	assert.ErrorIs(t, err, domain.ErrJourneyNotFound)
}

func TestStore_CustomPrefix(t *testing.T) {
	mr, store := newTestStore(t, redisAdapter.WithPrefix("custom:"))
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "j1", domain.NewJourneyContext()))
	assert.True(t, mr.Exists("custom:j1"))
	assert.True(t, mr.Exists("custom:index"))
}

func TestStore_LoadCorruptBlob(t *testing.T) {
	mr, store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, mr.Set("wayline:journey:bad", "not json"))

	_, err := store.Load(ctx, "bad")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrJourneyNotFound)
}
