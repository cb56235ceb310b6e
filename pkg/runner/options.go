package runner

import (
	"log/slog"
	"time"

	"github.com/aretw0/mazewalk/pkg/observability"
	"github.com/aretw0/mazewalk/pkg/ports"
)

const (
	// DefaultInterval is the frame period of the loop.
	DefaultInterval = time.Second / 60
	// DefaultPublishEvery throttles store writes.
	DefaultPublishEvery = 100 * time.Millisecond
	// DefaultLockTTL is the expiry of the session lock between refreshes.
	DefaultLockTTL = 5 * time.Second
)

// Option defines a functional option for configuring the Runner.
type Option func(*Runner)

// WithStore configures the SnapshotStore frames are published to.
func WithStore(store ports.SnapshotStore) Option {
	return func(r *Runner) {
		r.Store = store
	}
}

// WithSessionID sets the key snapshots are published under.
// This is required if WithStore is used.
func WithSessionID(id string) Option {
	return func(r *Runner) {
		r.SessionID = id
	}
}

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		r.Logger = logger
	}
}

// WithInterval sets the frame period.
func WithInterval(d time.Duration) Option {
	return func(r *Runner) {
		r.Interval = d
	}
}

// WithPublishEvery sets the minimum time between two store writes.
// Zero publishes every frame.
func WithPublishEvery(d time.Duration) Option {
	return func(r *Runner) {
		r.PublishEvery = d
	}
}

// WithSink configures where frames are presented.
func WithSink(sink ports.FrameSink) Option {
	return func(r *Runner) {
		r.Sink = sink
	}
}

// WithLocker makes the runner hold a distributed lock on its session while it runs.
func WithLocker(locker ports.DistributedLocker) Option {
	return func(r *Runner) {
		r.Locker = locker
	}
}

// WithLockTTL sets how long the session lock survives without a refresh.
func WithLockTTL(d time.Duration) Option {
	return func(r *Runner) {
		r.LockTTL = d
	}
}

// WithRecorder configures the metrics recorder.
func WithRecorder(rec observability.Recorder) Option {
	return func(r *Runner) {
		r.Recorder = rec
	}
}

// WithClock replaces the wall clock.
func WithClock(now func() time.Time) Option {
	return func(r *Runner) {
		r.now = now
	}
}
