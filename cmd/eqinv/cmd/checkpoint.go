package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/eqinv/checkpoint"
)

var checkpointCmd = &cobra.Command{
	Use:   "checkpoint",
	Short: "Inspect the scan checkpoint",
	Long: `Show where the scanner believes it left off and the most recent
recorded actions.

Example:
  eqinv checkpoint show --file history.json`,
}

var checkpointShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the checkpoint cutoff and recent history",
	Args:  cobra.NoArgs,
	RunE:  runCheckpointShow,
}

var (
	checkpointPath string
	checkpointTail int
)

func init() {
	rootCmd.AddCommand(checkpointCmd)
	checkpointCmd.AddCommand(checkpointShowCmd)

	checkpointCmd.PersistentFlags().StringVarP(&checkpointPath, "file", "f", "./history.json", "path to checkpoint file")
	checkpointShowCmd.Flags().IntVarP(&checkpointTail, "tail", "n", 10, "number of recent entries to show")
}

func runCheckpointShow(cmd *cobra.Command, args []string) error {
	s, err := checkpoint.Load(checkpointPath)
	if err != nil {
		return err
	}

	entries := s.Entries()
	fmt.Printf("Cutoff: %s (%d entries)\n", s.LastProcessed().Format("Mon Jan 02 15:04:05 2006"), len(entries))

	start := len(entries) - checkpointTail
	if start < 0 {
		start = 0
	}
	for _, e := range entries[start:] {
		if e.Action == "" {
			continue // sentinel
		}
		fmt.Printf("  %s  %s\n", e.Time.Format("2006-01-02 15:04:05"), e.Action)
	}
	return nil
}
