package main

import (
	"context"

	"github.com/aretw0/mazewalk/internal/cli"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the engine headless and serve its frames over HTTP",
	Long: `Starts the engine without a terminal frame and exposes the published frames,
the maze graph and Prometheus metrics over HTTP.`,
	Run: func(cmd *cobra.Command, args []string) {
		opts, err := loadRunOptions(cmd)
		exitOnError(err)

		if cmd.Flags().Changed("addr") {
			opts.Config.HTTP.Addr, _ = cmd.Flags().GetString("addr")
		}

		sigCtx := cli.NewSignalContext(context.Background())
		defer sigCtx.Cancel()

		exitOnError(cli.Serve(sigCtx, opts))
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("addr", "a", ":8080", "Address to listen on")
}
