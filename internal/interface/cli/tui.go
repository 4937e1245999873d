package cli

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/neilberkman/rinselog/internal/core/config"
	"github.com/neilberkman/rinselog/internal/core/export"
	"github.com/neilberkman/rinselog/internal/interface/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive companion",
	Long:  "Launch the terminal UI with the checklist, the session log form and the saved history",
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	// Anything logged while the alt screen is up goes to a file
	if dir := config.Dir(); dir != "" {
		f, err := openLogFile(dir)
		if err != nil {
			return err
		}
		defer func() { _ = f.Close() }()
	}

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

	exporter, err := export.New(s.cfg.Export, s.cfg.PrintTemplate)
	if err != nil {
		// The log form still works; export reports the failure when used
		log.Printf("[export] disabled: %v", err)
		exporter = nil
	}

	model := tui.New(tui.Options{
		Store:    store,
		Exporter: exporter,
		Resolver: s.resolver,
		Lang:     s.lang,
	})
	p := tea.NewProgram(model, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}
	return nil
}

// openLogFile points the standard logger at dir/rinselog.log, creating dir
// on a first run.
func openLogFile(dir string) (*os.File, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}
	f, err := tea.LogToFile(filepath.Join(dir, "rinselog.log"), "rinselog")
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return f, nil
}
