// Package config loads the mazewalk configuration from defaults, a YAML file,
// a .env file and MAZEWALK_* environment variables, in that order.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"os"
	"strings"
	"time"

	"github.com/aretw0/mazewalk/pkg/domain"
	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "MAZEWALK_"

// Config is the complete application configuration.
type Config struct {
	Maze      MazeConfig      `yaml:"maze" mapstructure:"maze"`
	Motion    MotionConfig    `yaml:"motion" mapstructure:"motion"`
	Lifecycle LifecycleConfig `yaml:"lifecycle" mapstructure:"lifecycle"`
	Runner    RunnerConfig    `yaml:"runner" mapstructure:"runner"`
	HTTP      HTTPConfig      `yaml:"http" mapstructure:"http"`
	Redis     RedisConfig     `yaml:"redis" mapstructure:"redis"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
}

type MazeConfig struct {
	Width  int `yaml:"width" mapstructure:"width"`
	Height int `yaml:"height" mapstructure:"height"`
	// Seed makes generation reproducible. Zero picks a random seed.
	Seed        uint64 `yaml:"seed" mapstructure:"seed"`
	DetailCells int    `yaml:"detail_cells" mapstructure:"detail_cells"`
}

type MotionConfig struct {
	MoveSpeed   float64 `yaml:"move_speed" mapstructure:"move_speed"`
	RotateSpeed float64 `yaml:"rotate_speed" mapstructure:"rotate_speed"`
}

type LifecycleConfig struct {
	RevealRate float64 `yaml:"reveal_rate" mapstructure:"reveal_rate"`
	MaxTick    float64 `yaml:"max_tick" mapstructure:"max_tick"`
	// HideAfter ends a traversal after this many seconds. Zero never hides on time.
	HideAfter float64 `yaml:"hide_after" mapstructure:"hide_after"`
	HideOnEnd bool    `yaml:"hide_on_end" mapstructure:"hide_on_end"`
}

type RunnerConfig struct {
	FPS          int           `yaml:"fps" mapstructure:"fps"`
	PublishEvery time.Duration `yaml:"publish_every" mapstructure:"publish_every"`
	SessionID    string        `yaml:"session_id" mapstructure:"session_id"`
}

type HTTPConfig struct {
	Addr        string   `yaml:"addr" mapstructure:"addr"`
	CORSOrigins []string `yaml:"cors_origins" mapstructure:"cors_origins"`
}

// RedisConfig selects the Redis snapshot store. An empty Addr keeps snapshots in memory.
type RedisConfig struct {
	Addr     string        `yaml:"addr" mapstructure:"addr"`
	Password string        `yaml:"password" mapstructure:"password"`
	DB       int           `yaml:"db" mapstructure:"db"`
	Prefix   string        `yaml:"prefix" mapstructure:"prefix"`
	TTL      time.Duration `yaml:"ttl" mapstructure:"ttl"`
}

type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Maze: MazeConfig{
			Width:       40,
			Height:      40,
			DetailCells: 1,
		},
		Motion: MotionConfig{
			MoveSpeed:   1.6,
			RotateSpeed: 0.9 * math.Pi,
		},
		Lifecycle: LifecycleConfig{
			RevealRate: 0.5,
			MaxTick:    0.1,
		},
		Runner: RunnerConfig{
			FPS:          60,
			PublishEvery: 100 * time.Millisecond,
			SessionID:    "default",
		},
		HTTP: HTTPConfig{
			Addr:        ":8080",
			CORSOrigins: []string{"*"},
		},
		Redis: RedisConfig{
			Prefix: "mazewalk:",
			TTL:    10 * time.Minute,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Sources lists where Load reads from. Empty fields are skipped.
type Sources struct {
	// File is a YAML configuration file. It must exist when set.
	File string
	// DotEnv is a .env file. A missing file is ignored.
	DotEnv string
	// Environ returns the process environment as KEY=VALUE pairs.
	Environ func() []string
}

// Load reads the configuration from path (optional), ./.env and the process environment.
func Load(path string) (*Config, error) {
	return LoadFrom(Sources{File: path, DotEnv: ".env", Environ: os.Environ})
}

// LoadFrom applies every source on top of Default and validates the result.
// Real environment variables take precedence over the .env file.
func LoadFrom(src Sources) (*Config, error) {
	cfg := Default()

	if src.File != "" {
		if err := cfg.loadFile(src.File); err != nil {
			return nil, err
		}
	}

	env := map[string]string{}
	if src.DotEnv != "" {
		dotenv, err := godotenv.Read(src.DotEnv)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read %s: %w", src.DotEnv, err)
		}
		for k, v := range dotenv {
			env[k] = v
		}
	}
	if src.Environ != nil {
		for _, kv := range src.Environ() {
			if k, v, ok := strings.Cut(kv, "="); ok {
				env[k] = v
			}
		}
	}

	if err := cfg.applyEnv(env); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open config: %w", err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: %s: %w", domain.ErrInvalidConfig, path, err)
	}
	return nil
}

// applyEnv decodes MAZEWALK_<SECTION>_<FIELD> variables onto the config.
// MAZEWALK_MOTION_MOVE_SPEED=2 sets Motion.MoveSpeed.
func (c *Config) applyEnv(env map[string]string) error {
	tree := map[string]any{}
	for key, value := range env {
		if !strings.HasPrefix(key, EnvPrefix) {
			continue
		}
		section, field, ok := strings.Cut(strings.ToLower(strings.TrimPrefix(key, EnvPrefix)), "_")
		if !ok || field == "" {
			continue
		}
		fields, _ := tree[section].(map[string]any)
		if fields == nil {
			fields = map[string]any{}
			tree[section] = fields
		}
		fields[field] = value
	}
	if len(tree) == 0 {
		return nil
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           c,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(tree); err != nil {
		return fmt.Errorf("%w: environment: %w", domain.ErrInvalidConfig, err)
	}
	return nil
}

// Validate rejects configurations the engine or the host cannot run with.
func (c *Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	m := c.Maze
	check(m.Width > 0 && m.Width <= 1024, "maze.width must be in [1, 1024], got %d", m.Width)
	check(m.Height > 0 && m.Height <= 1024, "maze.height must be in [1, 1024], got %d", m.Height)
	check(m.Width*m.Height >= 2, "maze must hold at least two cells, got %dx%d", m.Width, m.Height)
	check(m.DetailCells >= 0, "maze.detail_cells must not be negative, got %d", m.DetailCells)

	check(c.Motion.MoveSpeed > 0, "motion.move_speed must be positive, got %v", c.Motion.MoveSpeed)
	check(c.Motion.RotateSpeed > 0, "motion.rotate_speed must be positive, got %v", c.Motion.RotateSpeed)

	l := c.Lifecycle
	check(l.RevealRate > 0, "lifecycle.reveal_rate must be positive, got %v", l.RevealRate)
	check(l.MaxTick > 0, "lifecycle.max_tick must be positive, got %v", l.MaxTick)
	check(l.HideAfter >= 0, "lifecycle.hide_after must not be negative, got %v", l.HideAfter)

	check(c.Runner.FPS > 0 && c.Runner.FPS <= 240, "runner.fps must be in [1, 240], got %d", c.Runner.FPS)
	check(c.Runner.PublishEvery >= 0, "runner.publish_every must not be negative, got %s", c.Runner.PublishEvery)
	check(c.Runner.SessionID != "", "runner.session_id must not be empty")

	check(c.Redis.TTL >= 0, "redis.ttl must not be negative, got %s", c.Redis.TTL)
	check(c.Log.Format == "text" || c.Log.Format == "json", "log.format must be text or json, got %q", c.Log.Format)

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", domain.ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}

// FrameInterval returns the runner frame period.
func (c *Config) FrameInterval() time.Duration {
	return time.Second / time.Duration(c.Runner.FPS)
}
