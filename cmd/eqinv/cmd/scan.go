package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/eqinv/config"
	"github.com/rustyeddy/eqinv/journal"
	"github.com/rustyeddy/eqinv/logging"
	"github.com/rustyeddy/eqinv/scan"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan configured logs for new trades and update the inventories",
	Long: `Scan every configured character log for trade offers newer than the
saved checkpoint, then fold the new counts into the items and words tables.

Example:
  eqinv scan --config eqinv.yaml`,
	RunE: runScan,
}

var scanConfigPath string

func init() {
	rootCmd.AddCommand(scanCmd)
	scanCmd.Flags().StringVarP(&scanConfigPath, "config", "c", "eqinv.yaml", "path to config file")
}

func runScan(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadFromFile(scanConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := logging.New(logging.Options{
		Level:      cfg.Logging.Level,
		File:       cfg.Logging.File,
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
		MaxAgeDays: cfg.Logging.MaxAgeDays,
		Compress:   cfg.Logging.Compress,
	})
	if err != nil {
		return err
	}

	var jnl journal.Journal
	if cfg.Journal.DBPath != "" {
		j, err := journal.NewSQLite(cfg.Journal.DBPath)
		if err != nil {
			return fmt.Errorf("open journal: %w", err)
		}
		defer j.Close()
		jnl = j
	}

	sum, err := scan.New(cfg, logger, jnl).Run()
	if err != nil {
		return err
	}

	for _, s := range sum.Sources {
		if s.Skipped {
			fmt.Printf("  %-12s (no log file)\n", s.Source)
			continue
		}
		fmt.Printf("  %-12s %d new trades\n", s.Source, s.Trades)
	}
	fmt.Printf("✓ %d total new trades since %s\n", sum.Trades, sum.Cutoff.Format("Mon Jan 02 15:04:05 2006"))
	return nil
}
