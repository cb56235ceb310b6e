package main

import (
	"context"

	"github.com/aretw0/mazewalk/internal/cli"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Draw the frames another process publishes",
	Long:  `Follows a session in the Redis store and draws its frames in the terminal.`,
	Run: func(cmd *cobra.Command, args []string) {
		opts, err := loadRunOptions(cmd)
		exitOnError(err)

		sigCtx := cli.NewSignalContext(context.Background())
		defer sigCtx.Cancel()

		exitOnError(cli.Watch(sigCtx, opts))
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
