package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/eqinv/journal"
)

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Query recorded trades",
	Long: `Query and display trade records from the SQLite journal.

Subcommands:
  today  - List trades recorded with today's log timestamp
  day    - List trades from a specific day
  item   - List every trade of one item

Examples:
  eqinv journal today
  eqinv journal day 2010-11-03
  eqinv journal item Jade_Mace`,
}

var journalTodayCmd = &cobra.Command{
	Use:   "today",
	Short: "List today's trades",
	Args:  cobra.NoArgs,
	RunE:  runJournalToday,
}

var journalDayCmd = &cobra.Command{
	Use:   "day <YYYY-MM-DD>",
	Short: "List trades from a specific day",
	Args:  cobra.ExactArgs(1),
	RunE:  runJournalDay,
}

var journalItemCmd = &cobra.Command{
	Use:   "item <name>",
	Short: "List every trade of one item",
	Args:  cobra.ExactArgs(1),
	RunE:  runJournalItem,
}

var journalDBPath string

func init() {
	rootCmd.AddCommand(journalCmd)
	journalCmd.AddCommand(journalTodayCmd)
	journalCmd.AddCommand(journalDayCmd)
	journalCmd.AddCommand(journalItemCmd)

	journalCmd.PersistentFlags().StringVarP(&journalDBPath, "db", "d", "./trades.sqlite", "path to SQLite journal DB")
}

func runJournalToday(cmd *cobra.Command, args []string) error {
	loc := time.Local
	return listDay(time.Now().In(loc).Format("2006-01-02"), loc)
}

func runJournalDay(cmd *cobra.Command, args []string) error {
	return listDay(args[0], time.Local)
}

func listDay(day string, loc *time.Location) error {
	j, err := journal.NewSQLite(journalDBPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer j.Close()

	start, end, err := dayBounds(loc, day)
	if err != nil {
		return fmt.Errorf("date: %w", err)
	}

	recs, err := j.ListTradesBetween(start, end)
	if err != nil {
		return fmt.Errorf("query trades: %w", err)
	}

	fmt.Println(journal.FormatTradesOrg(recs))
	return nil
}

func runJournalItem(cmd *cobra.Command, args []string) error {
	j, err := journal.NewSQLite(journalDBPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer j.Close()

	recs, err := j.ListTradesByItem(args[0])
	if err != nil {
		return fmt.Errorf("query trades: %w", err)
	}

	fmt.Println(journal.FormatTradesOrg(recs))
	return nil
}

func dayBounds(loc *time.Location, day string) (time.Time, time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02", day, loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
	end := start.Add(24 * time.Hour)
	return start, end, nil
}
