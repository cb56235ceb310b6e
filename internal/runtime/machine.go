package runtime

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"math/rand/v2"
	"time"

	"github.com/aretw0/mazewalk/internal/logging"
	"github.com/aretw0/mazewalk/pkg/domain"
	"github.com/aretw0/mazewalk/pkg/maze"
	"github.com/google/uuid"
)

const (
	// DefaultRevealRate is the speed of the reveal and hide envelope, per second.
	DefaultRevealRate = 0.5
	// DefaultMaxTick is the longest tick the machine applies, in seconds.
	// Longer ticks usually follow a stall and are discarded.
	DefaultMaxTick = 0.1
)

// MachineOption configures a Machine.
type MachineOption func(*Machine)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) MachineOption {
	return func(m *Machine) {
		m.logger = logger
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) MachineOption {
	return func(m *Machine) {
		m.hooks = hooks
	}
}

// WithRand sets the random source used for every generated maze.
func WithRand(rng *rand.Rand) MachineOption {
	return func(m *Machine) {
		m.rng = rng
	}
}

// WithMotion sets the navigator speeds.
func WithMotion(moveSpeed, rotateSpeed float64) MachineOption {
	return func(m *Machine) {
		m.moveSpeed = moveSpeed
		m.rotateSpeed = rotateSpeed
	}
}

// WithRevealRate sets the reveal and hide envelope speed.
func WithRevealRate(rate float64) MachineOption {
	return func(m *Machine) {
		m.revealRate = rate
	}
}

// WithMaxTick sets the threshold above which ticks are skipped.
func WithMaxTick(seconds float64) MachineOption {
	return func(m *Machine) {
		m.maxTick = seconds
	}
}

// WithHidePredicate sets the condition that ends a traversal.
func WithHidePredicate(p HidePredicate) MachineOption {
	return func(m *Machine) {
		m.hide = p
	}
}

// WithDetailCells sets how many detail cells each maze highlights.
func WithDetailCells(n int) MachineOption {
	return func(m *Machine) {
		m.genOpts = append(m.genOpts, maze.WithDetailCells(n))
	}
}

// WithIDGenerator replaces the maze ID generator.
func WithIDGenerator(fn func() string) MachineOption {
	return func(m *Machine) {
		m.newID = fn
	}
}

// world bundles a maze with the navigator walking it.
// They are always replaced together.
type world struct {
	id    string
	graph *domain.Graph
	nav   *Navigator
}

// Machine loops a maze through reveal, traversal, hide and regeneration.
// It is driven by a single goroutine calling Tick and holds no locks.
type Machine struct {
	width, height int
	genOpts       []maze.Option

	moveSpeed   float64
	rotateSpeed float64
	revealRate  float64
	maxTick     float64

	rng    *rand.Rand
	hide   HidePredicate
	newID  func() string
	hooks  domain.LifecycleHooks
	logger *slog.Logger

	started bool
	phase   domain.Phase
	reveal  float64
	world   *world
	cycle   int
	ticks   uint64

	traversal  float64
	waypoints  int
	endReached bool
}

// NewMachine generates the first maze and leaves the machine in
// PhaseRevealing with nothing revealed.
func NewMachine(width, height int, opts ...MachineOption) (*Machine, error) {
	m := &Machine{
		width:       width,
		height:      height,
		moveSpeed:   DefaultMoveSpeed,
		rotateSpeed: DefaultRotateSpeed,
		revealRate:  DefaultRevealRate,
		maxTick:     DefaultMaxTick,
		hide:        NeverHide,
		newID:       uuid.NewString,
		logger:      logging.NewNop(),
		phase:       domain.PhaseRevealing,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.rng == nil {
		m.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if m.hide == nil {
		m.hide = NeverHide
	}

	if err := m.validate(); err != nil {
		return nil, err
	}

	w, err := m.build()
	if err != nil {
		return nil, err
	}
	m.world = w
	return m, nil
}

func (m *Machine) validate() error {
	if !(m.moveSpeed > 0) || math.IsInf(m.moveSpeed, 0) {
		return fmt.Errorf("%w: move speed must be positive, got %v", domain.ErrInvalidConfig, m.moveSpeed)
	}
	if math.IsNaN(m.rotateSpeed) || m.rotateSpeed < 0 {
		return fmt.Errorf("%w: rotate speed must not be negative, got %v", domain.ErrInvalidConfig, m.rotateSpeed)
	}
	if math.IsNaN(m.revealRate) || math.IsInf(m.revealRate, 0) {
		return fmt.Errorf("%w: reveal rate must be finite, got %v", domain.ErrInvalidConfig, m.revealRate)
	}
	if !(m.maxTick > 0) {
		return fmt.Errorf("%w: max tick must be positive, got %v", domain.ErrInvalidConfig, m.maxTick)
	}
	return nil
}

// build generates a maze and a navigator for it.
func (m *Machine) build() (*world, error) {
	g, err := maze.Generate(m.width, m.height, m.rng, m.genOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to generate maze: %w", err)
	}
	nav, err := NewNavigator(g, m.moveSpeed, m.rotateSpeed)
	if err != nil {
		return nil, fmt.Errorf("failed to place navigator: %w", err)
	}
	return &world{id: m.newID(), graph: g, nav: nav}, nil
}

// Tick advances the machine by elapsed seconds.
// Negative ticks and ticks longer than the configured maximum are dropped
// without touching any state.
func (m *Machine) Tick(ctx context.Context, elapsed float64) error {
	if !m.started {
		m.started = true
		m.emitMazeInstalled(ctx)
		m.emitPhase(ctx, domain.EventPhaseEnter, m.hooks.OnPhaseEnter)
	}

	if math.IsNaN(elapsed) || elapsed < 0 || elapsed > m.maxTick {
		m.logger.Debug("tick skipped", "elapsed", elapsed, "max_tick", m.maxTick)
		if m.hooks.OnTickSkipped != nil {
			m.hooks.OnTickSkipped(ctx, &domain.TickEvent{EventBase: m.base(domain.EventTickSkipped), Elapsed: elapsed})
		}
		return nil
	}
	m.ticks++

	switch m.phase {
	case domain.PhaseRevealing:
		m.reveal = clamp01(m.reveal + m.revealRate*elapsed)
		if m.reveal >= 1 {
			m.transition(ctx, domain.PhaseTraversing, nil)
		}

	case domain.PhaseTraversing:
		m.reveal = 1
		m.traversal += elapsed
		arrived, err := m.world.nav.Step(elapsed)
		if err != nil {
			return fmt.Errorf("navigating maze %s: %w", m.world.id, err)
		}
		if arrived {
			m.onWaypoint(ctx)
		}
		if m.hide(m.progress()) {
			m.transition(ctx, domain.PhaseHiding, nil)
		}

	case domain.PhaseHiding:
		m.reveal = clamp01(m.reveal - m.revealRate*elapsed)
		if m.reveal <= 0 {
			next, err := m.build()
			if err != nil {
				return err
			}
			m.transition(ctx, domain.PhaseRevealing, next)
		}
	}

	return nil
}

// transition moves to another phase. A non-nil world is installed between
// the leave and enter events.
func (m *Machine) transition(ctx context.Context, to domain.Phase, next *world) {
	m.emitPhase(ctx, domain.EventPhaseLeave, m.hooks.OnPhaseLeave)
	from := m.phase

	if next != nil {
		m.world = next
		m.cycle++
		m.traversal = 0
		m.waypoints = 0
		m.endReached = false
		m.emitMazeInstalled(ctx)
	}

	m.phase = to
	m.logger.Info("phase changed", "from", from, "to", to, "maze_id", m.world.id, "cycle", m.cycle)
	m.emitPhase(ctx, domain.EventPhaseEnter, m.hooks.OnPhaseEnter)
}

func (m *Machine) onWaypoint(ctx context.Context) {
	cursor := m.world.nav.Cursor()
	m.waypoints++
	if cursor.Previous == m.world.graph.End {
		m.endReached = true
	}

	m.logger.Debug("waypoint reached", "cell", cursor.Previous, "target", cursor.Target, "maze_id", m.world.id)
	if m.hooks.OnWaypoint != nil {
		m.hooks.OnWaypoint(ctx, &domain.WaypointEvent{
			EventBase: m.base(domain.EventWaypoint),
			Cell:      cursor.Previous,
			Cursor:    cursor,
		})
	}
}

func (m *Machine) emitPhase(ctx context.Context, typ domain.EventType, hook func(context.Context, *domain.PhaseEvent)) {
	if hook == nil {
		return
	}
	hook(ctx, &domain.PhaseEvent{EventBase: m.base(typ), Phase: m.phase, RevealAmount: m.reveal})
}

func (m *Machine) emitMazeInstalled(ctx context.Context) {
	g := m.world.graph
	m.logger.Info("maze installed", "maze_id", m.world.id, "cycle", m.cycle,
		"width", g.Width, "height", g.Height, "start", g.Start, "end", g.End)
	if m.hooks.OnMazeInstalled == nil {
		return
	}
	m.hooks.OnMazeInstalled(ctx, &domain.MazeEvent{
		EventBase: m.base(domain.EventMazeInstalled),
		Cycle:     m.cycle,
		Width:     g.Width,
		Height:    g.Height,
		Start:     g.Start,
		End:       g.End,
	})
}

func (m *Machine) base(typ domain.EventType) domain.EventBase {
	return domain.EventBase{Timestamp: time.Now(), Type: typ, MazeID: m.world.id}
}

func (m *Machine) progress() Progress {
	return Progress{
		Graph:      m.world.graph,
		Cursor:     m.world.nav.Cursor(),
		Seconds:    m.traversal,
		Waypoints:  m.waypoints,
		EndReached: m.endReached,
	}
}

// Snapshot returns the read model for the current frame.
func (m *Machine) Snapshot() domain.Snapshot {
	return domain.Snapshot{
		MazeID:           m.world.id,
		Cycle:            m.cycle,
		Phase:            m.phase,
		RevealAmount:     m.reveal,
		Pose:             m.world.nav.Pose(),
		Cursor:           m.world.nav.Cursor(),
		Ticks:            m.ticks,
		TraversalSeconds: m.traversal,
		Waypoints:        m.waypoints,
		Graph:            m.world.graph,
	}
}

// Phase returns the current lifecycle phase.
func (m *Machine) Phase() domain.Phase { return m.phase }

// Graph returns the installed maze.
func (m *Machine) Graph() *domain.Graph { return m.world.graph }

// Navigator returns the navigator walking the installed maze.
func (m *Machine) Navigator() *Navigator { return m.world.nav }

func clamp01(v float64) float64 {
	return max(0, min(1, v))
}
