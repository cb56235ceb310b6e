package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aretw0/mazewalk"
	"github.com/aretw0/mazewalk/internal/presentation/tui"
	"github.com/aretw0/mazewalk/pkg/observability"
	"github.com/aretw0/mazewalk/pkg/runner"
)

// Run drives the engine in the terminal until ctx is cancelled or
// opts.Duration elapses. Frames are drawn to opts.Out unless headless, and
// published to the configured store either way.
func Run(ctx context.Context, opts RunOptions) error {
	cfg := opts.config()
	logger := createLogger(cfg, opts.Debug)
	out := opts.out()

	if !opts.Headless {
		tui.FprintBanner(out, mazewalk.Version)
	}

	stores, err := setupStore(ctx, cfg.Redis, logger)
	if err != nil {
		return err
	}
	defer stores.Close()

	engine, err := createEngine(cfg, logger, observability.NoopRecorder{})
	if err != nil {
		return err
	}

	rOpts := createRunnerOptions(cfg.Runner.SessionID, stores, logger, observability.NoopRecorder{})
	rOpts = append(rOpts, runner.WithInterval(cfg.FrameInterval()), runner.WithPublishEvery(cfg.Runner.PublishEvery))

	if !opts.Headless {
		frame := tui.NewFrame(out)
		frame.Clear()
		defer frame.Restore()
		rOpts = append(rOpts, runner.WithSink(frame))
	}

	if opts.Duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Duration)
		defer cancel()
	}

	logger.Info("Engine started", "width", cfg.Maze.Width, "height", cfg.Maze.Height, "session_id", cfg.Runner.SessionID)
	if err := runner.NewRunner(rOpts...).Run(ctx, engine); err != nil {
		return fmt.Errorf("run failed: %w", err)
	}

	snap := engine.Snapshot()
	logger.Info("Engine stopped", "cycle", snap.Cycle, "ticks", snap.Ticks, "maze_id", snap.MazeID)
	return nil
}

// createRunnerOptions prepares the functional options for the Runner.
func createRunnerOptions(sessionID string, stores *storeSet, logger *slog.Logger, rec observability.Recorder) []runner.Option {
	opts := []runner.Option{
		runner.WithLogger(logger),
		runner.WithRecorder(rec),
		runner.WithSessionID(sessionID),
		runner.WithStore(stores.Store),
	}
	if stores.Locker != nil {
		opts = append(opts, runner.WithLocker(stores.Locker))
	}
	return opts
}
