package cache_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/realtysync/provider-sync/internal/adapter"
	"github.com/realtysync/provider-sync/internal/cache"
	"github.com/realtysync/provider-sync/internal/mocks"
	"github.com/realtysync/provider-sync/internal/store/schema"
)

type counter struct {
	Count   int            `json:"count"`
	Reasons map[string]int `json:"reasons"`
}

// runCacheContract exercises the behavior every backend shares; advance moves time forward
func runCacheContract(t *testing.T, c cache.Cache, advance func(time.Duration)) {
	ctx := context.Background()

	_, ok, err := c.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, "k", "v1", time.Minute))
	require.NoError(t, c.Set(ctx, "k", "v2", time.Minute))
	value, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v2", value)

	require.NoError(t, c.Set(ctx, "forever", "x", 0))

	advance(2 * time.Minute)

	_, ok, err = c.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok, "entry must expire after its ttl")

	value, ok, err = c.Get(ctx, "forever")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "x", value)

	require.NoError(t, c.Delete(ctx, "forever"))
	require.NoError(t, c.Delete(ctx, "forever"))
	_, ok, err = c.Get(ctx, "forever")
	require.NoError(t, err)
	assert.False(t, ok)

	// JSON helpers
	require.NoError(t, cache.SetJSON(ctx, c, "counter", counter{Count: 2, Reasons: map[string]int{"failed_runs": 2}}, time.Hour))
	got, err := cache.GetJSON[counter](ctx, c, "counter")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 2, got.Count)
	assert.Equal(t, 2, got.Reasons["failed_runs"])

	none, err := cache.GetJSON[counter](ctx, c, "nothing")
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestRedisCache(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := adapter.NewRedisClientFromURL("redis://" + mr.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	c := cache.NewRedis(client, "test:")
	runCacheContract(t, c, mr.FastForward)

	require.NoError(t, c.Set(context.Background(), "ns", "1", 0))
	assert.True(t, mr.Exists("test:ns"))
}

func TestMemoryCache(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	clock := mocks.NewMockClock(ctrl)
	clock.EXPECT().Now().DoAndReturn(func() time.Time { return now }).AnyTimes()

	runCacheContract(t, cache.NewMemory(clock), func(d time.Duration) { now = now.Add(d) })
}

func TestStoreCache(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	clock := mocks.NewMockClock(ctrl)
	clock.EXPECT().Now().Return(now).AnyTimes()
	store := mocks.NewMockStore(ctrl)

	c := cache.NewStore(store, clock)

	t.Run("set computes expiry from ttl", func(t *testing.T) {
		expected := now.Add(time.Minute)
		store.EXPECT().SetKeyValue(ctx, "k", "v", &expected).Return(nil)
		require.NoError(t, c.Set(ctx, "k", "v", time.Minute))

		store.EXPECT().SetKeyValue(ctx, "k", "v", nil).Return(nil)
		require.NoError(t, c.Set(ctx, "k", "v", 0))
	})

	t.Run("get returns live entries", func(t *testing.T) {
		expiresAt := now.Add(time.Second)
		store.EXPECT().GetKeyValue(ctx, "k").Return(&schema.KeyValueStore{Key: "k", Value: "v", ExpiresAt: &expiresAt}, nil)

		value, ok, err := c.Get(ctx, "k")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "v", value)
	})

	t.Run("get drops expired entries", func(t *testing.T) {
		expiresAt := now.Add(-time.Second)
		store.EXPECT().GetKeyValue(ctx, "k").Return(&schema.KeyValueStore{Key: "k", Value: "v", ExpiresAt: &expiresAt}, nil)
		store.EXPECT().DeleteKeyValue(ctx, "k").Return(nil)

		_, ok, err := c.Get(ctx, "k")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("get propagates store errors", func(t *testing.T) {
		store.EXPECT().GetKeyValue(ctx, "k").Return(nil, errors.New("db down"))

		_, _, err := c.Get(ctx, "k")
		require.Error(t, err)
	})

	t.Run("delete", func(t *testing.T) {
		store.EXPECT().DeleteKeyValue(ctx, "k").Return(nil)
		require.NoError(t, c.Delete(ctx, "k"))
	})
}
