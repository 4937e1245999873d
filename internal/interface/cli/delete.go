package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/neilberkman/rinselog/internal/core/i18n"
)

var deleteYes bool

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a saved session log",
	Long: `Delete a saved session log. Asks for confirmation unless --yes is given.

Examples:
  rinselog delete 1741986000000
  rinselog delete 1741986000000 --yes`,
	Args: cobra.ExactArgs(1),
	RunE: runDelete,
}

func init() {
	rootCmd.AddCommand(deleteCmd)
	deleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "Skip the confirmation prompt")
}

func runDelete(cmd *cobra.Command, args []string) error {
	s, err := loadSettings()
	if err != nil {
		return err
	}
	entry, store, closeDB, err := lookupEntry(args[0])
	if err != nil {
		return err
	}
	defer closeDB()

	if !deleteYes {
		fmt.Printf("%s\n[%d] %s\n[y/N] ", s.loc().T(i18n.HistoryDeleteConfirm), entry.ID, entry.Data.Date)
		if !confirmed(bufio.NewReader(os.Stdin)) {
			fmt.Println("Cancelled")
			return nil
		}
	}

	if err := store.Remove(entry.ID); err != nil {
		return fmt.Errorf("failed to delete log: %w", err)
	}
	fmt.Printf("Deleted %d\n", entry.ID)
	return nil
}

// confirmed reads one answer line; only y or yes counts.
func confirmed(r *bufio.Reader) bool {
	line, _ := r.ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}
