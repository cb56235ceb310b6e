package runner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/mazewalk/pkg/observability"
	"github.com/aretw0/mazewalk/pkg/ports"
)

// ErrMissingSessionID is returned when a store is configured without a session.
var ErrMissingSessionID = errors.New("session id is required when a store is configured")

// Runner drives an engine at a fixed frame rate.
type Runner struct {
	// Interval is the frame period. Defaults to DefaultInterval.
	Interval time.Duration

	// PublishEvery throttles writes to Store.
	PublishEvery time.Duration

	// Store receives snapshots for concurrent readers.
	// If nil, frames are not published.
	Store     ports.SnapshotStore
	SessionID string

	// Sink is called with every frame. Optional.
	Sink ports.FrameSink

	// Locker keeps a single writer per session. Optional.
	Locker ports.DistributedLocker
	// LockTTL bounds how long a session stays locked after its runner dies.
	// The lock is refreshed every LockTTL/3 while the runner is alive.
	LockTTL time.Duration

	// Recorder receives tick and publish metrics.
	// If nil, a no-op recorder is used.
	Recorder observability.Recorder

	// Logger is used for internal debug logging.
	// If nil, a no-op logger is used.
	Logger *slog.Logger

	now         func() time.Time
	lastPublish time.Time
	published   bool
}

// NewRunner creates a Runner with defaults applied.
func NewRunner(opts ...Option) *Runner {
	r := &Runner{
		Interval:     DefaultInterval,
		PublishEvery: DefaultPublishEvery,
		LockTTL:      DefaultLockTTL,
		Recorder:     observability.NoopRecorder{},
		Logger:       slog.New(slog.DiscardHandler),
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Runner) init() error {
	if r.Store != nil && r.SessionID == "" {
		return ErrMissingSessionID
	}
	if r.Interval <= 0 {
		r.Interval = DefaultInterval
	}
	if r.LockTTL <= 0 {
		r.LockTTL = DefaultLockTTL
	}
	if r.Recorder == nil {
		r.Recorder = observability.NoopRecorder{}
	}
	if r.Logger == nil {
		r.Logger = slog.New(slog.DiscardHandler)
	}
	if r.now == nil {
		r.now = time.Now
	}
	return nil
}

// Run ticks the engine every Interval until ctx is cancelled.
// Cancellation is a normal stop and returns nil; an engine or sink failure is
// returned as is. With a Locker, Run first waits for the session lock and
// stops with ports.ErrLockLost if another runner takes it over.
func (r *Runner) Run(ctx context.Context, engine ports.Engine) error {
	if err := r.init(); err != nil {
		return err
	}

	var refresh <-chan time.Time
	var lease ports.Lease
	if r.Locker != nil && r.SessionID != "" {
		var err error
		lease, err = r.Locker.Lock(ctx, r.SessionID, r.LockTTL)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("failed to lock session %s: %w", r.SessionID, err)
		}
		defer func() {
			if err := lease.Unlock(context.Background()); err != nil {
				r.Logger.Warn("failed to release session lock", "session_id", r.SessionID, "error", err)
			}
		}()

		refreshTicker := time.NewTicker(max(r.LockTTL/3, time.Millisecond))
		defer refreshTicker.Stop()
		refresh = refreshTicker.C
	}

	ticker := time.NewTicker(r.Interval)
	defer ticker.Stop()

	r.Logger.Debug("runner started", "session_id", r.SessionID, "interval", r.Interval)
	last := r.now()
	for {
		select {
		case <-ctx.Done():
			r.Logger.Debug("runner stopped", "session_id", r.SessionID, "reason", ctx.Err())
			return nil
		case <-refresh:
			if err := lease.Refresh(ctx, r.LockTTL); err != nil {
				if errors.Is(err, ports.ErrLockLost) {
					return fmt.Errorf("session %s: %w", r.SessionID, err)
				}
				// The lease outlives a few missed refreshes.
				r.Logger.Warn("failed to refresh session lock", "session_id", r.SessionID, "error", err)
			}
		case <-ticker.C:
			now := r.now()
			elapsed := now.Sub(last).Seconds()
			last = now

			if err := r.Step(ctx, engine, elapsed); err != nil {
				return err
			}
		}
	}
}

// Step runs one frame: tick, publish, present.
func (r *Runner) Step(ctx context.Context, engine ports.Engine, elapsed float64) error {
	if err := r.init(); err != nil {
		return err
	}

	start := time.Now()
	err := engine.Tick(ctx, elapsed)
	r.Recorder.ObserveTickDuration(time.Since(start))
	if err != nil {
		return fmt.Errorf("engine tick failed: %w", err)
	}

	snap := engine.Snapshot()
	r.Recorder.SetRevealAmount(snap.RevealAmount)

	if r.Store != nil && r.due() {
		start := time.Now()
		err := r.Store.Save(ctx, r.SessionID, snap)
		r.Recorder.ObservePublish(time.Since(start), err == nil)
		if err != nil {
			// Readers see a stale frame; the loop keeps going.
			r.Logger.Warn("failed to publish snapshot", "session_id", r.SessionID, "error", err)
		} else {
			r.lastPublish = r.now()
			r.published = true
		}
	}

	if r.Sink != nil {
		if err := r.Sink.Present(ctx, snap); err != nil {
			return fmt.Errorf("failed to present frame: %w", err)
		}
	}
	return nil
}

func (r *Runner) due() bool {
	if !r.published || r.PublishEvery <= 0 {
		return true
	}
	return r.now().Sub(r.lastPublish) >= r.PublishEvery
}
