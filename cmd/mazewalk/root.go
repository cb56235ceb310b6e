package main

import (
	"fmt"
	"os"

	"github.com/aretw0/mazewalk/internal/cli"
	"github.com/aretw0/mazewalk/internal/config"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "mazewalk",
	Short: "Mazewalk generates mazes and walks a camera through them",
	Long: `Mazewalk generates perfect mazes, reveals them, walks a camera through every
corridor by following the wall, then hides the maze and starts over.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().StringP("config", "c", "", "Path to a YAML configuration file")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().Int("width", 0, "Maze width in cells (overrides config)")
	rootCmd.PersistentFlags().Int("height", 0, "Maze height in cells (overrides config)")
	rootCmd.PersistentFlags().Uint64("seed", 0, "Random seed; 0 picks one (overrides config)")
	rootCmd.PersistentFlags().String("session", "", "Session ID used to publish frames (overrides config)")
}

// loadRunOptions loads the configuration and applies the persistent flags on top.
func loadRunOptions(cmd *cobra.Command) (cli.RunOptions, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return cli.RunOptions{}, err
	}

	flags := cmd.Flags()
	if flags.Changed("width") {
		cfg.Maze.Width, _ = flags.GetInt("width")
	}
	if flags.Changed("height") {
		cfg.Maze.Height, _ = flags.GetInt("height")
	}
	if flags.Changed("seed") {
		cfg.Maze.Seed, _ = flags.GetUint64("seed")
	}
	if flags.Changed("session") {
		cfg.Runner.SessionID, _ = flags.GetString("session")
	}
	if err := cfg.Validate(); err != nil {
		return cli.RunOptions{}, err
	}

	debug, _ := flags.GetBool("debug")
	return cli.RunOptions{Config: cfg, Debug: debug, Out: cmd.OutOrStdout()}, nil
}

// exitOnError prints err and exits with status 1.
func exitOnError(err error) {
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}
