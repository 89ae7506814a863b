package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "eqinv",
	Short: "EverQuest trade-log inventory tracker",
	Long: `Eqinv scans the logs of your mule characters for trade offers and keeps
running inventory counts without double-counting anything.

It provides tools for:
  - Scanning log files for new trades since the last run
  - Routing counted items to the items or words (research) table
  - Keeping a durable, queryable journal of every recorded trade
  - Generating and validating configuration files

Run it from a scheduler after each play session; each pass only processes
log lines newer than the saved checkpoint.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}
