package cli

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/neilberkman/rinselog/internal/core/dates"
	"github.com/neilberkman/rinselog/internal/core/export"
	"github.com/neilberkman/rinselog/internal/core/i18n"
)

var (
	listLimit int
	listSince string
	listUntil string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved session logs",
	Long: `List saved session logs, newest first.

--since and --until accept dates like 2025-03-01, "yesterday" or "last week"
and bound the save time.

Examples:
  rinselog list
  rinselog list --limit 5
  rinselog list --since "last week"`,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().IntVar(&listLimit, "limit", 20, "Maximum number of logs to display")
	listCmd.Flags().StringVar(&listSince, "since", "", "Only logs saved on or after this date")
	listCmd.Flags().StringVar(&listUntil, "until", "", "Only logs saved on or before this date")
}

// dateBounds turns the --since/--until flags into an inclusive day range.
func dateBounds(since, until string, now time.Time) (after, before time.Time, err error) {
	if since != "" {
		t, ok := dates.Parse(since, now)
		if !ok {
			return after, before, fmt.Errorf("could not understand date %q", since)
		}
		after = dates.StartOfDay(t)
	}
	if until != "" {
		t, ok := dates.Parse(until, now)
		if !ok {
			return after, before, fmt.Errorf("could not understand date %q", until)
		}
		before = dates.EndOfDay(t)
	}
	return after, before, nil
}

func runList(cmd *cobra.Command, args []string) error {
	s, err := loadSettings()
	if err != nil {
		return err
	}
	database, store, err := openStore()
	if err != nil {
		return err
	}
	defer func() {
		_ = database.Close()
	}()

	now := time.Now()
	after, before, err := dateBounds(listSince, listUntil, now)
	if err != nil {
		return err
	}

	store.LoadAll()
	entries := store.Filter(after, before)
	total := len(entries)
	if listLimit > 0 && len(entries) > listLimit {
		entries = entries[:listLimit]
	}

	loc := s.loc()
	if len(entries) == 0 {
		fmt.Println(loc.T(i18n.HistoryNoHistory))
		fmt.Println(loc.T(i18n.HistoryNoHistorySub))
		return nil
	}

	fmt.Printf("Showing %d of %d log(s)\n\n", len(entries), total)
	for _, e := range entries {
		fmt.Printf("[%d] %s  (saved %s)\n", e.ID, e.Data.Date, humanize.RelTime(e.SavedAt(), now, "ago", "from now"))
		fmt.Printf("    %s\n\n", export.Summary(e.Data, loc))
	}
	return nil
}
