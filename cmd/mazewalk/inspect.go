package main

import (
	"os"

	"github.com/aretw0/mazewalk/internal/cli"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Print a report of a generated maze",
	Long:  `Generates one maze and prints its statistics and solved layout as Markdown.`,
	Run: func(cmd *cobra.Command, args []string) {
		opts, err := loadRunOptions(cmd)
		exitOnError(err)

		plain, _ := cmd.Flags().GetBool("plain")
		render := !plain && term.IsTerminal(int(os.Stdout.Fd()))
		exitOnError(cli.Inspect(cmd.OutOrStdout(), opts.Config, render))
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().Bool("plain", false, "Print raw Markdown even on a terminal")
}
