package main

import (
	"fmt"

	"github.com/aretw0/mazewalk"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of mazewalk",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "mazewalk version %s\n", mazewalk.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
