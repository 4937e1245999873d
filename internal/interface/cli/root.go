package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/neilberkman/rinselog/internal/core/config"
	"github.com/neilberkman/rinselog/internal/core/db"
	"github.com/neilberkman/rinselog/internal/core/history"
	"github.com/neilberkman/rinselog/internal/core/i18n"
)

var (
	dbPath      string
	langFlag    string
	versionInfo string
)

// SetVersion sets the version information from build-time ldflags
func SetVersion(version, commit, date string) {
	versionInfo = fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date)
	rootCmd.Version = versionInfo
}

// Execute runs the CLI
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "rinselog",
	Short: "Deep rinse companion: checklist, session log and history",
	Long: `rinselog - a bilingual companion for the deep rinse procedure

Walk through the preparation checklist, log each round with a built-in
stopwatch, keep a local history of saved sessions and export them as PDF.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default to TUI if no subcommand specified
		return tuiCmd.RunE(cmd, args)
	},
}

func init() {
	// Global flags
	home, err := os.UserHomeDir()
	if err != nil {
		home = "~"
	}
	defaultDB := filepath.Join(home, ".config", "rinselog", "rinselog.db")

	rootCmd.PersistentFlags().StringVar(&dbPath, "db", defaultDB, "Database path")
	rootCmd.PersistentFlags().StringVar(&langFlag, "lang", "", "Display language (en|zh), overrides config")
}

// settings is what every command needs besides the database.
type settings struct {
	cfg      *config.Config
	resolver *i18n.Resolver
	lang     i18n.Lang
}

func loadSettings() (*settings, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	fallback, ok := i18n.ParseLang(cfg.FallbackLanguage)
	if !ok {
		fallback = i18n.English
	}
	resolver, err := i18n.New(fallback)
	if err != nil {
		return nil, fmt.Errorf("failed to load translations: %w", err)
	}

	lang, ok := i18n.ParseLang(cfg.Language)
	if !ok {
		lang = i18n.Chinese
	}
	if langFlag != "" {
		l, ok := i18n.ParseLang(langFlag)
		if !ok {
			return nil, fmt.Errorf("unsupported language %q (use en or zh)", langFlag)
		}
		lang = l
	}

	return &settings{cfg: cfg, resolver: resolver, lang: lang}, nil
}

func (s *settings) loc() i18n.Localizer {
	return s.resolver.For(s.lang)
}

// openStore opens the database and the history collection on top of it.
func openStore() (*db.DB, *history.Store, error) {
	database, err := db.New(dbPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}
	return database, history.NewStore(database), nil
}
