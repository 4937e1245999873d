package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFrom_Defaults(t *testing.T) {
	cfg, err := LoadFrom(t.TempDir())
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if cfg.Language != "zh" || cfg.FallbackLanguage != "en" {
		t.Errorf("languages = %q/%q", cfg.Language, cfg.FallbackLanguage)
	}
	if cfg.Export.PageFormat != "A4" || cfg.Export.MarginPt != 20 || cfg.Export.WidthPx != 800 || cfg.Export.Scale != 2 {
		t.Errorf("export defaults = %+v", cfg.Export)
	}
	if cfg.PrintTemplate != DefaultPrintTemplate {
		t.Error("expected default print template")
	}
}

func TestLoadFrom_Overrides(t *testing.T) {
	dir := t.TempDir()
	toml := `language = "en"
export_dir = "/tmp/rinse"

[export]
margin_pt = 36
scale = 3
font_path = "/fonts/NotoSansTC.otf"
`
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte(toml), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "print_template.txt"), []byte("{{{title}}}\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(dir)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if cfg.Language != "en" || cfg.FallbackLanguage != "en" {
		t.Errorf("languages = %q/%q", cfg.Language, cfg.FallbackLanguage)
	}
	if cfg.Export.Dir != "/tmp/rinse" || cfg.Export.MarginPt != 36 || cfg.Export.Scale != 3 {
		t.Errorf("export = %+v", cfg.Export)
	}
	if cfg.Export.WidthPx != 800 {
		t.Error("unset keys should keep their defaults")
	}
	if cfg.Export.FontPath != "/fonts/NotoSansTC.otf" {
		t.Errorf("FontPath = %q", cfg.Export.FontPath)
	}
	if cfg.PrintTemplate != "{{{title}}}\n" {
		t.Errorf("PrintTemplate = %q", cfg.PrintTemplate)
	}
}

func TestLoadFrom_BrokenTOML(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte("language = [unterminated"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadFrom(dir)
	if err != nil {
		t.Fatalf("broken config should not fail, got %v", err)
	}
	if cfg.Language != "zh" {
		t.Errorf("Language = %q, want default", cfg.Language)
	}
}
