package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/mazewalk/pkg/adapters/redis"
	"github.com/aretw0/mazewalk/pkg/domain"
	"github.com/aretw0/mazewalk/pkg/maze"
	"github.com/aretw0/mazewalk/pkg/ports"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (*miniredis.Miniredis, *backend.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := backend.NewClient(&backend.Options{
		Addr: mr.Addr(),
	})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestRedisStore_Contract(t *testing.T) {
	_, client := setup(t)

	store := redis.NewFromClient(client)
	ports.RunSnapshotStoreContract(t, store)
}

func TestRedisStore_TTL_Expiration(t *testing.T) {
	mr, client := setup(t)

	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	store := redis.NewFromClient(client,
		redis.WithTTL(1*time.Second),
		redis.WithClock(func() time.Time { return now }),
	)
	ctx := context.Background()
	sessionID := "session-ttl"

	err := store.Save(ctx, sessionID, domain.Snapshot{MazeID: "m1", Ticks: 1})
	require.NoError(t, err)

	sessions, err := store.List(ctx)
	require.NoError(t, err)
	assert.Contains(t, sessions, sessionID)

	// Key expiry in miniredis and the index clock both move forward.
	mr.FastForward(2 * time.Second)
	now = now.Add(2 * time.Second)

	_, err = store.Load(ctx, sessionID)
	assert.ErrorIs(t, err, domain.ErrSnapshotNotFound)

	sessions, err = store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, sessions)
}

func TestRedisStore_Prefix(t *testing.T) {
	mr, client := setup(t)

	store := redis.NewFromClient(client, redis.WithPrefix("custom:app:"))
	ctx := context.Background()
	sessionID := "my-session"

	g, err := maze.FromEdges(2, 1, 0, 1, [][2]domain.CellKey{{0, 1}})
	require.NoError(t, err)

	err = store.Save(ctx, sessionID, domain.Snapshot{MazeID: "abc", Graph: g})
	require.NoError(t, err)

	assert.True(t, mr.Exists("custom:app:my-session"), "Expected key with custom prefix to exist")
	assert.True(t, mr.Exists("custom:app:index"), "Expected index with custom prefix to exist")
	assert.True(t, mr.Exists("custom:app:maze:abc"), "Expected graph key with custom prefix to exist")

	list, err := store.List(ctx)
	require.NoError(t, err)
	assert.Contains(t, list, sessionID)
}

func TestRedisStore_GraphWrittenOncePerMaze(t *testing.T) {
	mr, client := setup(t)
	store := redis.NewFromClient(client, redis.WithTTL(time.Minute))
	ctx := context.Background()

	g, err := maze.FromEdges(3, 1, 0, 2, [][2]domain.CellKey{{0, 1}, {1, 2}})
	require.NoError(t, err)

	require.NoError(t, store.Save(ctx, "s", domain.Snapshot{MazeID: "m1", Ticks: 1, Graph: g}))
	first, err := mr.Get("mazewalk:maze:m1")
	require.NoError(t, err)

	// Overwrite the stored graph: a second save of the same maze must not rewrite it.
	mr.Set("mazewalk:maze:m1", first+" ")
	require.NoError(t, store.Save(ctx, "s", domain.Snapshot{MazeID: "m1", Ticks: 2, Graph: g}))
	second, err := mr.Get("mazewalk:maze:m1")
	require.NoError(t, err)
	assert.Equal(t, first+" ", second)
	assert.Equal(t, time.Minute, mr.TTL("mazewalk:maze:m1"))

	// A new maze is written under its own key.
	require.NoError(t, store.Save(ctx, "s", domain.Snapshot{MazeID: "m2", Ticks: 3, Graph: g}))
	assert.True(t, mr.Exists("mazewalk:maze:m2"))

	loaded, err := store.Load(ctx, "s")
	require.NoError(t, err)
	assert.Equal(t, "m2", loaded.MazeID)
	require.NotNil(t, loaded.Graph)
	assert.Equal(t, g.Cells, loaded.Graph.Cells)
}

func TestRedisStore_GraphRewrittenAfterExpiry(t *testing.T) {
	mr, client := setup(t)
	store := redis.NewFromClient(client, redis.WithTTL(time.Minute))
	ctx := context.Background()

	g, err := maze.FromEdges(2, 1, 0, 1, [][2]domain.CellKey{{0, 1}})
	require.NoError(t, err)
	snap := domain.Snapshot{MazeID: "m1", Graph: g}

	require.NoError(t, store.Save(ctx, "s", snap))
	mr.Del("mazewalk:maze:m1")

	// The refresh notices the missing graph, the next save restores it.
	require.NoError(t, store.Save(ctx, "s", snap))
	require.NoError(t, store.Save(ctx, "s", snap))
	assert.True(t, mr.Exists("mazewalk:maze:m1"))
}

func TestRedisStore_LoadWithoutGraph(t *testing.T) {
	_, client := setup(t)
	store := redis.NewFromClient(client)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "s", domain.Snapshot{MazeID: "gone", Ticks: 9}))

	loaded, err := store.Load(ctx, "s")
	require.NoError(t, err)
	assert.Nil(t, loaded.Graph)
	assert.Equal(t, uint64(9), loaded.Ticks)

	_, err = store.LoadGraph(ctx, "gone")
	assert.ErrorIs(t, err, domain.ErrSnapshotNotFound)
}

func TestRedisStore_PreviousGraphRemoved(t *testing.T) {
	mr, client := setup(t)
	store := redis.NewFromClient(client, redis.WithTTL(0))
	ctx := context.Background()

	g, err := maze.FromEdges(2, 1, 0, 1, [][2]domain.CellKey{{0, 1}})
	require.NoError(t, err)

	for i, id := range []string{"m1", "m2", "m3"} {
		require.NoError(t, store.Save(ctx, "s", domain.Snapshot{MazeID: id, Ticks: uint64(i), Graph: g}))
	}

	assert.False(t, mr.Exists("mazewalk:maze:m1"))
	assert.False(t, mr.Exists("mazewalk:maze:m2"))
	assert.True(t, mr.Exists("mazewalk:maze:m3"))
	assert.Equal(t, time.Duration(0), mr.TTL("mazewalk:maze:m3"))

	require.NoError(t, store.Delete(ctx, "s"))
	assert.False(t, mr.Exists("mazewalk:s"))
	assert.False(t, mr.Exists("mazewalk:maze:m3"))
}
