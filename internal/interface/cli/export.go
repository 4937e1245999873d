package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/neilberkman/rinselog/internal/core/export"
)

var (
	exportOutput string
	exportFormat string
)

var exportCmd = &cobra.Command{
	Use:   "export <id>",
	Short: "Export a saved session log as PDF or markdown",
	Long: `Export a saved session log.

By default writes rinse-log_<date>.pdf into the configured export directory.
Use --output to specify a custom path and --format md for the plain text card.

Examples:
  rinselog export 1741986000000
  rinselog export 1741986000000 --format md
  rinselog export 1741986000000 -o ~/Desktop/rinse.pdf`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file path (default: rinse-log_<date>.<ext> in the export directory)")
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "pdf", "Output format (pdf|md)")
}

func runExport(cmd *cobra.Command, args []string) error {
	format, err := export.ParseFormat(exportFormat)
	if err != nil {
		return err
	}
	s, err := loadSettings()
	if err != nil {
		return err
	}
	entry, _, closeDB, err := lookupEntry(args[0])
	if err != nil {
		return err
	}
	defer closeDB()

	outputPath := exportOutput
	if outputPath != "" && !filepath.IsAbs(outputPath) {
		// Make relative paths absolute to current directory
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get current directory: %w", err)
		}
		outputPath = filepath.Join(cwd, outputPath)
	}

	exporter, err := export.New(s.cfg.Export, s.cfg.PrintTemplate)
	if err != nil {
		return fmt.Errorf("failed to prepare export: %w", err)
	}
	path, err := exporter.ExportAs(context.Background(), entry.Data, s.loc(), format, outputPath)
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	fmt.Printf("Exported to %s\n", path)
	return nil
}
