package config

import (
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// DefaultPrintTemplate lays out the export document. Lines starting with
// "# ", "## " or "### " are rendered as headings.
const DefaultPrintTemplate = `# {{{title}}}
{{{subtitle}}}

{{#fields}}
{{{label}}}: {{{value}}}
{{/fields}}

## {{{roundsTitle}}}
{{#rounds}}

### {{{heading}}}
{{#fields}}
{{{label}}}: {{{value}}}
{{/fields}}
{{/rounds}}

## {{{outcomeTitle}}}
{{#outcome}}
{{{label}}}: {{{value}}}
{{/outcome}}

## {{{notesLabel}}}
{{{notes}}}
`

// Export holds document export settings.
type Export struct {
	Dir        string  `toml:"dir"`
	PageFormat string  `toml:"page_format"`
	MarginPt   float64 `toml:"margin_pt"`
	WidthPx    int     `toml:"width_px"`
	Scale      int     `toml:"scale"`
	FontPath   string  `toml:"font_path"`
}

type Config struct {
	Language         string
	FallbackLanguage string
	Export           Export
	PrintTemplate    string
}

type tomlConfig struct {
	Language         string `toml:"language"`
	FallbackLanguage string `toml:"fallback_language"`
	ExportDir        string `toml:"export_dir"`
	Export           Export `toml:"export"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Language:         "zh",
		FallbackLanguage: "en",
		Export: Export{
			Dir:        ".",
			PageFormat: "A4",
			MarginPt:   20,
			WidthPx:    800,
			Scale:      2,
		},
		PrintTemplate: DefaultPrintTemplate,
	}
}

// Dir returns ~/.config/rinselog, or "" when there is no home directory.
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "rinselog")
}

// Load reads config from ~/.config/rinselog/
func Load() (*Config, error) {
	dir := Dir()
	if dir == "" {
		return Default(), nil // Use defaults
	}
	return LoadFrom(dir)
}

// LoadFrom reads config.toml and print_template.txt from dir. Missing or
// broken files leave the defaults in place.
func LoadFrom(dir string) (*Config, error) {
	cfg := Default()

	tomlPath := filepath.Join(dir, "config.toml")
	templatePath := filepath.Join(dir, "print_template.txt")

	// Load TOML config if it exists
	if _, err := os.Stat(tomlPath); err == nil {
		var tc tomlConfig
		if _, err := toml.DecodeFile(tomlPath, &tc); err != nil {
			log.Printf("[config] ignoring %s: %v", tomlPath, err)
		} else {
			cfg.merge(tc)
		}
	}

	// If custom template exists, use it
	if data, err := os.ReadFile(templatePath); err == nil && strings.TrimSpace(string(data)) != "" {
		cfg.PrintTemplate = string(data)
	}

	return cfg, nil
}

func (c *Config) merge(tc tomlConfig) {
	if tc.Language != "" {
		c.Language = tc.Language
	}
	if tc.FallbackLanguage != "" {
		c.FallbackLanguage = tc.FallbackLanguage
	}
	if tc.ExportDir != "" {
		c.Export.Dir = tc.ExportDir
	}
	if tc.Export.Dir != "" {
		c.Export.Dir = tc.Export.Dir
	}
	if tc.Export.PageFormat != "" {
		c.Export.PageFormat = tc.Export.PageFormat
	}
	if tc.Export.MarginPt > 0 {
		c.Export.MarginPt = tc.Export.MarginPt
	}
	if tc.Export.WidthPx > 0 {
		c.Export.WidthPx = tc.Export.WidthPx
	}
	if tc.Export.Scale > 0 {
		c.Export.Scale = tc.Export.Scale
	}
	if tc.Export.FontPath != "" {
		c.Export.FontPath = expandHome(tc.Export.FontPath)
	}
	c.Export.Dir = expandHome(c.Export.Dir)
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}
