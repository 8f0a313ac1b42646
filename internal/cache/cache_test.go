package cache_test

import (
	"context"
	"dialectgame/internal/cache"
	"dialectgame/internal/model"
	"dialectgame/internal/persist"
	"flag"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
	"github.com/testcontainers/testcontainers-go/wait"
)

var client *redis.Client

func TestMain(m *testing.M) {
	flag.Parse()
	if testing.Short() {
		os.Exit(m.Run())
	}

	ctx := context.Background()
	container, err := tcredis.Run(ctx, "redis:7-alpine",
		testcontainers.WithWaitStrategy(wait.ForLog("Ready to accept connections").WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "redis container unavailable, skipping: %v\n", err)
		os.Exit(m.Run())
	}

	uri, err := container.ConnectionString(ctx)
	if err != nil {
		panic(err)
	}
	opts, err := redis.ParseURL(uri)
	if err != nil {
		panic(err)
	}
	client = redis.NewClient(opts)

	code := m.Run()

	// Cleanup
	client.Close()
	testcontainers.TerminateContainer(container)
	os.Exit(code)
}

func requireRedis(t *testing.T) {
	t.Helper()
	if client == nil {
		t.Skip("redis not available")
	}
}

func TestRedisStore(t *testing.T) {
	requireRedis(t)
	ctx := context.Background()
	store := cache.NewRedisStore(client, time.Hour)

	t.Run("Missing", func(t *testing.T) {
		_, err := store.Get(ctx, "nope")
		assert.ErrorIs(t, err, persist.ErrNotFound)
	})

	t.Run("RoomKeyExpires", func(t *testing.T) {
		key := persist.RoomKey("ROOMTTL")
		require.NoError(t, store.Set(ctx, key, []byte(`{"id":"ROOMTTL"}`)))

		got, err := store.Get(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, `{"id":"ROOMTTL"}`, string(got))

		ttl, err := client.TTL(ctx, key).Result()
		require.NoError(t, err)
		assert.Greater(t, ttl, 59*time.Minute)
	})

	t.Run("HistoryKeyPersists", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, persist.HistoryKey, []byte("[]")))
		ttl, err := client.TTL(ctx, persist.HistoryKey).Result()
		require.NoError(t, err)
		assert.Equal(t, time.Duration(-1), ttl)
	})

	t.Run("Delete", func(t *testing.T) {
		key := persist.RoomKey("GONE")
		require.NoError(t, store.Set(ctx, key, []byte("x")))
		require.NoError(t, store.Delete(ctx, key))
		_, err := store.Get(ctx, key)
		assert.ErrorIs(t, err, persist.ErrNotFound)
	})

	t.Run("ThroughAdapter", func(t *testing.T) {
		a := persist.NewAdapter(store, 2)
		require.NoError(t, a.ClearHistory(ctx))
		for _, id := range []string{"a", "b", "c"} {
			require.NoError(t, a.AppendHistory(ctx, modelResults(id)))
		}
		history, err := a.LoadHistory(ctx)
		require.NoError(t, err)
		require.Len(t, history, 2)
		assert.Equal(t, "b", history[0].GameID)
	})
}

func TestLeaderboardCache(t *testing.T) {
	requireRedis(t)
	ctx := context.Background()
	lb := cache.NewLeaderboardCache(client, time.Hour)
	require.NoError(t, lb.Clear(ctx, "LB1"))

	require.NoError(t, lb.UpdateScore(ctx, "LB1", "p1", 120))
	require.NoError(t, lb.UpdateScore(ctx, "LB1", "p2", 300))
	require.NoError(t, lb.UpdateScore(ctx, "LB1", "p3", 50))

	top, err := lb.GetTop(ctx, "LB1", 2)
	require.NoError(t, err)
	assert.Equal(t, []cache.LeaderboardEntry{
		{PlayerID: "p2", Points: 300, Rank: 1},
		{PlayerID: "p1", Points: 120, Rank: 2},
	}, top)

	all, err := lb.GetTop(ctx, "LB1", 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	rank, err := lb.GetRank(ctx, "LB1", "p3")
	require.NoError(t, err)
	assert.Equal(t, int64(3), rank)

	require.NoError(t, lb.Remove(ctx, "LB1", "p3"))
	rank, err = lb.GetRank(ctx, "LB1", "p3")
	require.NoError(t, err)
	assert.Equal(t, int64(-1), rank)

	require.NoError(t, lb.Clear(ctx, "LB1"))
	all, err = lb.GetTop(ctx, "LB1", 0)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func modelResults(id string) model.GameResults {
	return model.GameResults{GameID: id}
}
