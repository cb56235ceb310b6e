package runner_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/mazewalk/pkg/adapters/redis"
	"github.com/aretw0/mazewalk/pkg/ports"
	"github.com/aretw0/mazewalk/pkg/runner"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func redisStore(t *testing.T) (*miniredis.Miniredis, *redis.Store) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, redis.NewFromClient(client)
}

func TestRun_TakesOverLockOfDeadRunner(t *testing.T) {
	mr, store := redisStore(t)
	const lockKey = "mazewalk:lock:lobby"

	// A runner that crashed while holding the session.
	mr.Set(lockKey, "dead-runner")
	mr.SetTTL(lockKey, 2*time.Second)

	eng := &fakeEngine{}
	r := runner.NewRunner(
		runner.WithStore(store),
		runner.WithSessionID("lobby"),
		runner.WithLocker(store.Locker()),
		runner.WithInterval(time.Millisecond),
		runner.WithLockTTL(time.Second),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- r.Run(ctx, eng) }()

	time.Sleep(200 * time.Millisecond)
	assert.Zero(t, eng.ticks(), "engine ticked while the session was locked")

	mr.FastForward(3 * time.Second)
	require.Eventually(t, func() bool { return eng.ticks() > 0 }, 2*time.Second, 10*time.Millisecond)

	owner, err := mr.Get(lockKey)
	require.NoError(t, err)
	assert.NotEqual(t, "dead-runner", owner)
	assert.Positive(t, mr.TTL(lockKey))

	cancel()
	require.NoError(t, <-done)
	assert.False(t, mr.Exists(lockKey))
}

func TestRun_StopsWhenLockIsLost(t *testing.T) {
	mr, store := redisStore(t)
	const lockKey = "mazewalk:lock:lobby"

	eng := &fakeEngine{}
	r := runner.NewRunner(
		runner.WithStore(store),
		runner.WithSessionID("lobby"),
		runner.WithLocker(store.Locker()),
		runner.WithInterval(time.Millisecond),
		runner.WithLockTTL(150*time.Millisecond),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- r.Run(ctx, eng) }()

	require.Eventually(t, func() bool { return eng.ticks() > 0 }, 2*time.Second, 10*time.Millisecond)
	mr.Set(lockKey, "another-runner")

	select {
	case err := <-done:
		assert.ErrorIs(t, err, ports.ErrLockLost)
	case <-time.After(2 * time.Second):
		t.Fatal("runner kept running without its lock")
	}

	owner, err := mr.Get(lockKey)
	require.NoError(t, err)
	assert.Equal(t, "another-runner", owner)
}
