package main

import (
	"context"

	"github.com/aretw0/mazewalk/internal/cli"
	"github.com/spf13/cobra"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the maze lifecycle in the terminal",
	Long: `Starts the engine and draws every frame in the terminal. Frames are also
published to the configured store so that other processes can follow them.`,
	Run: func(cmd *cobra.Command, args []string) {
		opts, err := loadRunOptions(cmd)
		exitOnError(err)

		opts.Headless, _ = cmd.Flags().GetBool("headless")
		opts.Duration, _ = cmd.Flags().GetDuration("duration")

		sigCtx := cli.NewSignalContext(context.Background())
		defer sigCtx.Cancel()

		exitOnError(cli.Run(sigCtx, opts))
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().Bool("headless", false, "Do not draw frames, only publish them")
	runCmd.Flags().Duration("duration", 0, "Stop after this long (0 runs until interrupted)")

	// Make 'run' the default if no command is provided.
	rootCmd.Run = runCmd.Run
	rootCmd.Flags().AddFlagSet(runCmd.Flags())
}
