package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/mazewalk/internal/presentation/tui"
	"github.com/aretw0/mazewalk/pkg/domain"
	"github.com/aretw0/mazewalk/pkg/ports"
)

// ErrWatchNeedsRedis is returned when watch has no shared store to follow.
var ErrWatchNeedsRedis = errors.New("watch follows a shared store: set redis.addr")

// defaultWatchPoll is used when the publish period is zero.
const defaultWatchPoll = 100 * time.Millisecond

// Watch draws the frames another process publishes for the configured session.
func Watch(ctx context.Context, opts RunOptions) error {
	cfg := opts.config()
	logger := createLogger(cfg, opts.Debug)

	if cfg.Redis.Addr == "" {
		return ErrWatchNeedsRedis
	}

	stores, err := setupStore(ctx, cfg.Redis, logger)
	if err != nil {
		return err
	}
	defer stores.Close()

	poll := cfg.Runner.PublishEvery
	if poll <= 0 {
		poll = defaultWatchPoll
	}

	frame := tui.NewFrame(opts.out())
	frame.Clear()
	defer frame.Restore()

	return follow(ctx, stores.Store, cfg.Runner.SessionID, poll, frame, logger)
}

// follow polls the store and presents every new frame until ctx is cancelled.
func follow(ctx context.Context, store ports.SnapshotStore, sessionID string, poll time.Duration, sink ports.FrameSink, logger *slog.Logger) error {
	ticker := time.NewTicker(poll)
	defer ticker.Stop()

	var lastTicks uint64
	var lastMaze string
	waiting := false

	for {
		snap, err := store.Load(ctx, sessionID)
		switch {
		case errors.Is(err, domain.ErrSnapshotNotFound):
			if !waiting {
				logger.Info("Waiting for session", "session_id", sessionID)
				waiting = true
			}
		case err != nil:
			if ctx.Err() != nil {
				return nil
			}
			logger.Warn("Snapshot load failed", "session_id", sessionID, "error", err)
		case snap.Ticks != lastTicks || snap.MazeID != lastMaze:
			waiting = false
			lastTicks, lastMaze = snap.Ticks, snap.MazeID
			if err := sink.Present(ctx, snap); err != nil {
				return fmt.Errorf("failed to present frame: %w", err)
			}
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}
