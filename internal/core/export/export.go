// Package export turns a session log into a printable document: the log is
// rendered to text through a template, drawn onto one tall bitmap and laid
// out across fixed-size PDF pages.
package export

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/neilberkman/rinselog/internal/core/config"
	"github.com/neilberkman/rinselog/internal/core/i18n"
	"github.com/neilberkman/rinselog/internal/core/models"
)

// ErrExportInProgress is returned when Export is called while another
// export is still running.
var ErrExportInProgress = errors.New("export already in progress")

// Format selects the output document type.
type Format string

const (
	FormatPDF      Format = "pdf"
	FormatMarkdown Format = "md"
)

// ParseFormat accepts "pdf", "md" and "markdown".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "pdf":
		return FormatPDF, nil
	case "md", "markdown":
		return FormatMarkdown, nil
	}
	return "", fmt.Errorf("unknown export format %q (want pdf or md)", s)
}

// FileName returns rinse-log_<date>.<ext>. Path separators in the date are
// replaced so the name stays inside the export directory.
func FileName(date string, format Format) string {
	date = strings.TrimSpace(date)
	if date == "" {
		date = "undated"
	}
	date = strings.NewReplacer("/", "-", "\\", "-", string(os.PathSeparator), "-").Replace(date)
	return fmt.Sprintf("rinse-log_%s.%s", date, format)
}

// Exporter writes documents for one configuration. Only one export runs
// at a time per Exporter.
type Exporter struct {
	cfg      config.Export
	template string
	raster   *Rasterizer
	busy     atomic.Bool

	// afterRender runs between rendering and writing; tests use it to hold
	// an export open.
	afterRender func()
}

// New prepares an exporter. The font is loaded eagerly so a bad font_path
// is reported at startup rather than on the first export.
func New(cfg config.Export, template string) (*Exporter, error) {
	if template == "" {
		template = config.DefaultPrintTemplate
	}
	r, err := NewRasterizer(cfg.WidthPx, cfg.Scale, cfg.FontPath)
	if err != nil {
		return nil, err
	}
	return &Exporter{cfg: cfg, template: template, raster: r}, nil
}

// Busy reports whether an export is running.
func (e *Exporter) Busy() bool {
	return e.busy.Load()
}

// Export writes session as a PDF into the configured directory and returns
// the file path.
func (e *Exporter) Export(ctx context.Context, session models.SessionLog, loc i18n.Localizer) (string, error) {
	return e.ExportAs(ctx, session, loc, FormatPDF, "")
}

// ExportAs writes session in format to path, or to the configured
// directory when path is empty. Any failure ends the attempt; the flag is
// always released.
func (e *Exporter) ExportAs(ctx context.Context, session models.SessionLog, loc i18n.Localizer, format Format, path string) (out string, err error) {
	if !e.busy.CompareAndSwap(false, true) {
		return "", ErrExportInProgress
	}
	defer e.busy.Store(false)

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("export panicked: %v", r)
		}
		if err != nil {
			log.Printf("[export] %s: %v", FileName(session.Date, format), err)
		}
	}()

	if path == "" {
		path = filepath.Join(e.cfg.Dir, FileName(session.Date, format))
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("create export directory: %w", err)
	}

	text, err := RenderText(session, loc, e.template)
	if err != nil {
		return "", err
	}
	if e.afterRender != nil {
		e.afterRender()
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	switch format {
	case FormatMarkdown:
		if err := os.WriteFile(path, []byte(text), 0644); err != nil {
			return "", fmt.Errorf("write %s: %w", path, err)
		}
	default:
		img, err := e.raster.Rasterize(text)
		if err != nil {
			return "", fmt.Errorf("rasterize: %w", err)
		}
		if err := ctx.Err(); err != nil {
			return "", err
		}
		if err := WritePDF(img, path, e.cfg.PageFormat, e.cfg.MarginPt); err != nil {
			return "", err
		}
	}

	return path, nil
}
