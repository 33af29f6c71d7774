// Package cmd implements the gamenight CLI.
package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "gamenight",
	Short: "casual game suggestions for your group",
	Long: `gamenight - casual game suggestions for your group
  - tracks your game library and play history
  - suggests what to play based on party size and what's fresh`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}
