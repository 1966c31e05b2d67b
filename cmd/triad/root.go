package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "triad",
	Short: "Task dispatch for dev-assistance workflows",
	Long: `Triad routes code review, documentation, and test-generation tasks
to prompt-construction agents backed by the Anthropic API.

Each workflow builds a batch of tasks over the files you name, dispatches
them in priority order with rate pacing, and aggregates every outcome into
a single JSON report. Agent failures never abort a batch: each task ends
in exactly one result record, completed or error.

Core commands:
  triad init                    Seed .triad/context.yaml for a repository
  triad run review <files...>   Review code for security, performance, quality
  triad run docs <files...>     Generate documentation
  triad run test <files...>     Generate a test suite
  triad history                 Inspect recorded runs`,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}
