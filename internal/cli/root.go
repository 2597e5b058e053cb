// Package cli implements the Momentum command-line interface using Cobra.
// Each subcommand maps to a gamification or sync operation.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "momentum",
	Short: "Momentum — gamified task tracking, offline-first",
	Long: `Momentum turns task completion into XP, levels, streaks, and
achievements, all stored locally. Mutations made while offline are queued
and replayed when connectivity returns.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command. Called from main.go.
func Execute(version string) {
	rootCmd.Version = version

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
