package session

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cempagamez/internal/catalog"
	"cempagamez/internal/storefront"
)

func setupTestRedis(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisStore(client, 2*time.Hour), mr
}

func TestRedisStore_SaveAndGet(t *testing.T) {
	store, mr := setupTestRedis(t)
	ctx := context.Background()

	s := storefront.Reduce(storefront.NewState(), catalog.Defaults(), storefront.AddToCart{ID: "1"})
	require.NoError(t, store.Save(ctx, "abc", s))

	assert.True(t, mr.Exists("session:abc"))
	assert.Equal(t, 2*time.Hour, mr.TTL("session:abc"))

	got, err := store.Get(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, []string{"1"}, got.Cart.IDs())
	assert.True(t, got.DarkMode)
}

func TestRedisStore_GetMissing(t *testing.T) {
	store, _ := setupTestRedis(t)
	_, err := store.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisStore_GetCorrupt(t *testing.T) {
	store, mr := setupTestRedis(t)
	require.NoError(t, mr.Set("session:bad", "{not json"))
	_, err := store.Get(context.Background(), "bad")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestRedisStore_SessionExpires(t *testing.T) {
	store, mr := setupTestRedis(t)
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, "abc", storefront.NewState()))

	mr.FastForward(3 * time.Hour)

	_, err := store.Get(ctx, "abc")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisStore_UpdateCreatesAndApplies(t *testing.T) {
	store, _ := setupTestRedis(t)
	ctx := context.Background()
	games := catalog.Defaults()

	s, err := store.Update(ctx, "new", func(s storefront.AppState) storefront.AppState {
		return storefront.Reduce(s, games, storefront.ToggleTheme{})
	})
	require.NoError(t, err)
	assert.False(t, s.DarkMode)
	assert.Len(t, s.Chat, 1, "fresh sessions start with the greeting")

	got, err := store.Get(ctx, "new")
	require.NoError(t, err)
	assert.False(t, got.DarkMode)
}

func TestRedisStore_ConcurrentUpdatesAreNotLost(t *testing.T) {
	store, _ := setupTestRedis(t)
	ctx := context.Background()
	games := catalog.Defaults()[:3]

	var wg sync.WaitGroup
	for _, g := range games {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			for {
				_, err := store.Update(ctx, "sid", func(s storefront.AppState) storefront.AppState {
					return storefront.Reduce(s, games, storefront.AddToCart{ID: id})
				})
				if err != ErrConflict {
					assert.NoError(t, err)
					return
				}
			}
		}(g.ID)
	}
	wg.Wait()

	got, err := store.Get(ctx, "sid")
	require.NoError(t, err)
	assert.Equal(t, 3, got.Cart.Count())
}
