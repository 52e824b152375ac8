package session

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"living_pages/story"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testStores(t *testing.T) map[string]Store {
	t.Helper()

	sqliteStore, err := OpenSQLite(filepath.Join(t.TempDir(), "sessions.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqliteStore.Close() })

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	redisStore := NewRedisStore(client, time.Hour, zap.NewNop())
	t.Cleanup(func() { _ = redisStore.Close() })

	return map[string]Store{
		"memory": NewMemoryStore(),
		"sqlite": sqliteStore,
		"redis":  redisStore,
	}
}

func TestStores_RoundTrip(t *testing.T) {
	ctx := context.Background()
	for name, store := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			_, err := store.Load(ctx, "missing")
			assert.ErrorIs(t, err, ErrNotFound)

			s := story.NewSession()
			s.Roster().ApplyDelta("Captain Rourke", -8)
			require.NoError(t, store.Save(ctx, "abc", s.State()))

			st, err := store.Load(ctx, "abc")
			require.NoError(t, err)
			restored := story.Restore(st)
			c, ok := restored.Roster().Get("Captain Rourke")
			require.True(t, ok)
			assert.Equal(t, -9, c.Affinity())
			assert.Equal(t, story.Hostile, c.Standing())
			assert.Equal(t, s.Transcript(), restored.Transcript())

			s.Roster().ApplyDelta("Captain Rourke", 10)
			require.NoError(t, store.Save(ctx, "abc", s.State()))
			st, err = store.Load(ctx, "abc")
			require.NoError(t, err)
			assert.Equal(t, 1, st.Characters[1].Affinity)

			require.NoError(t, store.Delete(ctx, "abc"))
			_, err = store.Load(ctx, "abc")
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestRedisStore_SetsTTL(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := NewRedisStore(client, 10*time.Minute, zap.NewNop())
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "s1", story.NewSession().State()))
	assert.Equal(t, 10*time.Minute, mr.TTL(redisKey("s1")))

	mr.FastForward(11 * time.Minute)
	_, err := store.Load(ctx, "s1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestOpenSQLite_RequiresPath(t *testing.T) {
	_, err := OpenSQLite("  ")
	assert.Error(t, err)
}

func TestOpenStore(t *testing.T) {
	ctx := context.Background()

	store, err := OpenStore(ctx, StoreConfig{Kind: "memory"}, zap.NewNop())
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, store)

	mr := miniredis.RunT(t)
	store, err = OpenStore(ctx, StoreConfig{Kind: "redis", RedisAddr: mr.Addr(), TTL: time.Hour}, zap.NewNop())
	require.NoError(t, err)
	assert.IsType(t, &RedisStore{}, store)
	require.NoError(t, store.Close())

	_, err = OpenStore(ctx, StoreConfig{Kind: "floppy"}, zap.NewNop())
	assert.Error(t, err)
}
