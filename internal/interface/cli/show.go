package cli

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/neilberkman/rinselog/internal/core/export"
	"github.com/neilberkman/rinselog/internal/core/history"
	"github.com/neilberkman/rinselog/internal/core/models"
)

var showJSON bool

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print a saved session log",
	Long: `Print a saved session log as the same card that export produces,
or as the stored JSON with --json.

Examples:
  rinselog show 1741986000000
  rinselog show 1741986000000 --json`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
	showCmd.Flags().BoolVar(&showJSON, "json", false, "Print the stored JSON")
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid log id %q", arg)
	}
	return id, nil
}

// lookupEntry opens the store and fetches one entry by its command-line id.
func lookupEntry(arg string) (models.HistoryEntry, *history.Store, func(), error) {
	id, err := parseID(arg)
	if err != nil {
		return models.HistoryEntry{}, nil, nil, err
	}
	database, store, err := openStore()
	if err != nil {
		return models.HistoryEntry{}, nil, nil, err
	}
	closeDB := func() { _ = database.Close() }

	store.LoadAll()
	entry, err := store.Get(id)
	if err != nil {
		closeDB()
		return models.HistoryEntry{}, nil, nil, err
	}
	return entry, store, closeDB, nil
}

func runShow(cmd *cobra.Command, args []string) error {
	s, err := loadSettings()
	if err != nil {
		return err
	}
	entry, _, closeDB, err := lookupEntry(args[0])
	if err != nil {
		return err
	}
	defer closeDB()

	if showJSON {
		data, err := json.MarshalIndent(entry, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode log: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	text, err := export.RenderText(entry.Data, s.loc(), s.cfg.PrintTemplate)
	if err != nil {
		return err
	}
	fmt.Print(text)
	return nil
}
