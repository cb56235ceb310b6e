package cli

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/aretw0/mazewalk/internal/config"
	"github.com/aretw0/mazewalk/internal/logging"
	"github.com/aretw0/mazewalk/pkg/adapters/memory"
	"github.com/aretw0/mazewalk/pkg/domain"
	"github.com/aretw0/mazewalk/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type collectSink struct {
	mu     sync.Mutex
	frames []domain.Snapshot
}

func (c *collectSink) Present(_ context.Context, snap domain.Snapshot) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.frames = append(c.frames, snap)
	return nil
}

func (c *collectSink) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.frames)
}

var _ ports.FrameSink = (*collectSink)(nil)

func TestFollow(t *testing.T) {
	store := memory.NewStore()
	sink := &collectSink{}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- follow(ctx, store, "s1", time.Millisecond, sink, logging.NewNop())
	}()

	require.NoError(t, store.Save(ctx, "s1", domain.Snapshot{MazeID: "m1", Ticks: 1}))
	assert.Eventually(t, func() bool { return sink.count() == 1 }, time.Second, time.Millisecond)

	// An unchanged frame is not presented twice.
	time.Sleep(10 * time.Millisecond)
	assert.Equal(t, 1, sink.count())

	require.NoError(t, store.Save(ctx, "s1", domain.Snapshot{MazeID: "m1", Ticks: 2}))
	assert.Eventually(t, func() bool { return sink.count() == 2 }, time.Second, time.Millisecond)

	cancel()
	assert.NoError(t, <-done)
}

func TestWatch_NeedsRedis(t *testing.T) {
	err := Watch(context.Background(), RunOptions{Config: config.Default()})
	assert.ErrorIs(t, err, ErrWatchNeedsRedis)
}
