package cli

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/neilberkman/rinselog/internal/core/history"
	"github.com/neilberkman/rinselog/internal/core/models"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show history statistics",
	Long: `Display statistics about the saved session logs.

Shows log and round counts, average duration, the spread of overall feel and
round types, and storage info.`,
	RunE: runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
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

	store.LoadAll()
	stats := store.Stats()
	loc := s.loc()

	fmt.Println("History Statistics")
	fmt.Println("==================")
	fmt.Println()

	fmt.Printf("Total Logs:        %d\n", stats.TotalLogs)
	fmt.Printf("Total Rounds:      %d\n", stats.TotalRounds)
	if stats.TotalLogs > 0 {
		fmt.Printf("Avg Rounds/Log:    %.1f\n", stats.AvgRounds)
	}
	if stats.TimedLogs > 0 {
		fmt.Printf("Avg Total Time:    %.1f min (%d timed)\n", stats.AvgTotalTimeMin, stats.TimedLogs)
	}
	fmt.Println()

	if stats.TotalLogs > 0 {
		fmt.Printf("Oldest Save:       %s\n", stats.OldestSave.Format("Jan 2, 2006 3:04 PM"))
		fmt.Printf("Newest Save:       %s\n", stats.NewestSave.Format("Jan 2, 2006 3:04 PM"))
		fmt.Println()

		fmt.Println("Round Types:")
		for _, v := range models.Options(models.GroupRoundTypes) {
			if n := stats.RoundTypes[models.RoundType(v)]; n > 0 {
				fmt.Printf("  %-16s %d\n", loc.Option(string(models.GroupRoundTypes), v), n)
			}
		}
		fmt.Println()

		if len(stats.OverallFeels) > 0 {
			fmt.Println("Overall Feel:")
			for _, v := range models.Options(models.GroupOverallFeels) {
				if n := stats.OverallFeels[models.OverallFeel(v)]; n > 0 {
					fmt.Printf("  %-16s %d\n", loc.Option(string(models.GroupOverallFeels), v), n)
				}
			}
			fmt.Println()
		}
	}

	// Database file size
	fileInfo, err := os.Stat(dbPath)
	if err != nil {
		return fmt.Errorf("failed to stat database file: %w", err)
	}

	if at, ok, err := database.UpdatedAt(history.SlotKey); err == nil && ok {
		fmt.Printf("Last Write:        %s\n", at.Local().Format("Jan 2, 2006 3:04 PM"))
	}
	fmt.Printf("Database Location: %s\n", dbPath)
	fmt.Printf("Database Size:     %s\n", humanize.Bytes(uint64(fileInfo.Size())))

	return nil
}
