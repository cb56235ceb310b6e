package cli

import (
	"io"
	"os"
	"time"

	"github.com/aretw0/mazewalk/internal/config"
)

// RunOptions contains all the configuration shared by the commands.
type RunOptions struct {
	Config *config.Config
	Debug  bool

	// Headless disables the terminal frame and banner.
	Headless bool

	// Duration stops the run after this long. Zero runs until interrupted.
	Duration time.Duration

	// Out receives frames and command output. Defaults to os.Stdout.
	Out io.Writer
}

func (o RunOptions) out() io.Writer {
	if o.Out == nil {
		return os.Stdout
	}
	return o.Out
}

func (o RunOptions) config() *config.Config {
	if o.Config == nil {
		return config.Default()
	}
	return o.Config
}
