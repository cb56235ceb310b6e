package cli

import (
	"fmt"
	"log/slog"

	"github.com/aretw0/mazewalk"
	"github.com/aretw0/mazewalk/internal/config"
	"github.com/aretw0/mazewalk/pkg/observability"
)

// createEngine initializes a mazewalk engine from the configuration.
// Lifecycle events are logged and counted on rec.
func createEngine(cfg *config.Config, logger *slog.Logger, rec observability.Recorder) (*mazewalk.Engine, error) {
	engineOpts := []mazewalk.Option{
		mazewalk.WithLogger(logger),
		mazewalk.WithLifecycleHooks(observability.Hooks(logger, rec)),
		mazewalk.WithDimensions(cfg.Maze.Width, cfg.Maze.Height),
		mazewalk.WithDetailCells(cfg.Maze.DetailCells),
		mazewalk.WithMotion(cfg.Motion.MoveSpeed, cfg.Motion.RotateSpeed),
		mazewalk.WithRevealRate(cfg.Lifecycle.RevealRate),
		mazewalk.WithMaxTick(cfg.Lifecycle.MaxTick),
		mazewalk.WithHidePredicate(hidePredicate(cfg.Lifecycle)),
	}

	// Zero keeps the random default.
	if cfg.Maze.Seed != 0 {
		engineOpts = append(engineOpts, mazewalk.WithSeed(cfg.Maze.Seed))
	}

	engine, err := mazewalk.New(engineOpts...)
	if err != nil {
		return nil, fmt.Errorf("error initializing engine: %w", err)
	}

	return engine, nil
}

// hidePredicate maps the lifecycle settings onto a hide rule.
func hidePredicate(l config.LifecycleConfig) mazewalk.HidePredicate {
	var rules []mazewalk.HidePredicate
	if l.HideAfter > 0 {
		rules = append(rules, mazewalk.HideAfter(l.HideAfter))
	}
	if l.HideOnEnd {
		rules = append(rules, mazewalk.HideOnEndReached)
	}

	switch len(rules) {
	case 0:
		return mazewalk.NeverHide
	case 1:
		return rules[0]
	default:
		return mazewalk.AnyOf(rules...)
	}
}
