package mazewalk

import (
	"context"
	"log/slog"
	"math/rand/v2"

	"github.com/aretw0/mazewalk/internal/logging"
	"github.com/aretw0/mazewalk/internal/runtime"
	"github.com/aretw0/mazewalk/pkg/domain"
)

const (
	// DefaultWidth is the default number of maze columns.
	DefaultWidth = 40
	// DefaultHeight is the default number of maze rows.
	DefaultHeight = 40
)

// HidePredicate decides when a traversal ends and the maze starts hiding.
type HidePredicate = runtime.HidePredicate

// Progress is the traversal state handed to a HidePredicate.
type Progress = runtime.Progress

// Predefined hide predicates.
var (
	NeverHide        HidePredicate = runtime.NeverHide
	HideOnEndReached HidePredicate = runtime.HideOnEndReached
)

// HideAfter hides the maze after the given traversal time in seconds.
func HideAfter(seconds float64) HidePredicate { return runtime.HideAfter(seconds) }

// AnyOf hides as soon as one of the predicates does.
func AnyOf(predicates ...HidePredicate) HidePredicate { return runtime.AnyOf(predicates...) }

// Engine is the high-level entry point of the library.
// It wraps the internal lifecycle machine and exposes a read model per frame.
//
// An Engine is not safe for concurrent use: a single goroutine owns Tick.
// Share snapshots through a ports.SnapshotStore instead.
type Engine struct {
	machine *runtime.Machine

	width, height int
	rng           *rand.Rand
	hooks         domain.LifecycleHooks
	logger        *slog.Logger
	machineOpts   []runtime.MachineOption
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithDimensions sets the maze size in cells.
func WithDimensions(width, height int) Option {
	return func(e *Engine) {
		e.width = width
		e.height = height
	}
}

// WithSeed makes every generated maze reproducible.
func WithSeed(seed uint64) Option {
	return func(e *Engine) {
		e.rng = rand.New(rand.NewPCG(seed, 0))
	}
}

// WithRand injects the random source used for generation.
func WithRand(rng *rand.Rand) Option {
	return func(e *Engine) {
		e.rng = rng
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithHidePredicate sets the condition that ends a traversal.
// The default never hides.
func WithHidePredicate(p HidePredicate) Option {
	return func(e *Engine) {
		e.machineOpts = append(e.machineOpts, runtime.WithHidePredicate(p))
	}
}

// WithMotion sets the camera speeds in cells per second and radians per second.
func WithMotion(moveSpeed, rotateSpeed float64) Option {
	return func(e *Engine) {
		e.machineOpts = append(e.machineOpts, runtime.WithMotion(moveSpeed, rotateSpeed))
	}
}

// WithRevealRate sets the reveal and hide speed per second.
func WithRevealRate(rate float64) Option {
	return func(e *Engine) {
		e.machineOpts = append(e.machineOpts, runtime.WithRevealRate(rate))
	}
}

// WithMaxTick sets the longest tick, in seconds, that is still applied.
func WithMaxTick(seconds float64) Option {
	return func(e *Engine) {
		e.machineOpts = append(e.machineOpts, runtime.WithMaxTick(seconds))
	}
}

// WithDetailCells sets how many detail cells each maze highlights.
func WithDetailCells(n int) Option {
	return func(e *Engine) {
		e.machineOpts = append(e.machineOpts, runtime.WithDetailCells(n))
	}
}

// WithIDGenerator replaces the maze ID generator (UUIDs by default).
func WithIDGenerator(fn func() string) Option {
	return func(e *Engine) {
		e.machineOpts = append(e.machineOpts, runtime.WithIDGenerator(fn))
	}
}

// New generates the first maze and returns an engine in PhaseRevealing.
func New(opts ...Option) (*Engine, error) {
	eng := &Engine{width: DefaultWidth, height: DefaultHeight}
	for _, opt := range opts {
		opt(eng)
	}

	// Ensure logger is initialized so the runtime never sees nil.
	if eng.logger == nil {
		eng.logger = logging.NewNop()
	}

	machineOpts := []runtime.MachineOption{
		runtime.WithLogger(eng.logger),
		runtime.WithLifecycleHooks(eng.hooks),
		runtime.WithRand(eng.rng),
	}
	machineOpts = append(machineOpts, eng.machineOpts...)

	m, err := runtime.NewMachine(eng.width, eng.height, machineOpts...)
	if err != nil {
		return nil, err
	}
	eng.machine = m
	return eng, nil
}

// Tick advances the engine by elapsed seconds of wall time.
func (e *Engine) Tick(ctx context.Context, elapsed float64) error {
	return e.machine.Tick(ctx, elapsed)
}

// Snapshot returns the read model for the current frame.
// The graph it carries is shared and must not be mutated.
func (e *Engine) Snapshot() domain.Snapshot {
	return e.machine.Snapshot()
}

// Graph returns the maze currently installed.
func (e *Engine) Graph() *domain.Graph {
	return e.machine.Graph()
}

// Phase returns the current lifecycle phase.
func (e *Engine) Phase() domain.Phase {
	return e.machine.Phase()
}
