// Package cmd provides the command-line interface for tiersim.
package cmd

import (
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "tiersim",
	Short: "tiersim simulates a three-tier memory hierarchy.",
	Long: `tiersim replays the address streams of processes against a ` +
		`cache, a page tier and a disk, one process at a time in arrival ` +
		`order, and reports where every address was found.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false,
		"Log every access and every relocation between tiers.")
	rootCmd.PersistentFlags().Bool("log-events", false,
		"Log every event handled by the engine.")
}

// Execute adds all child commands to the root command and sets flags
// appropriately. Registered exit handlers run before the process exits.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		atexit.Exit(1)
	}

	atexit.Exit(0)
}
