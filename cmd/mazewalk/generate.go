package main

import (
	"github.com/aretw0/mazewalk/internal/cli"
	"github.com/spf13/cobra"
)

// generateCmd represents the generate command
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a single maze and print it",
	Long:  `Generates one maze and prints it as ASCII art, a Mermaid diagram (graph TD) or JSON.`,
	Run: func(cmd *cobra.Command, args []string) {
		opts, err := loadRunOptions(cmd)
		exitOnError(err)

		format, _ := cmd.Flags().GetString("format")
		solve, _ := cmd.Flags().GetBool("solve")
		exitOnError(cli.Generate(cmd.OutOrStdout(), opts.Config, format, solve))
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)
	generateCmd.Flags().StringP("format", "f", cli.FormatASCII, "Output format: ascii, mermaid or json")
	generateCmd.Flags().Bool("solve", false, "Mark the path from start to end")
}
