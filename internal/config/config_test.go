package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/DevDeepakBhattarai/file-forge/pkg/formats"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "config.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Version != 1 {
		t.Fatalf("version = %d, want 1", cfg.Version)
	}
	if cfg.Convert.Destination != "save" {
		t.Fatalf("destination = %q, want save", cfg.Convert.Destination)
	}
	if cfg.Convert.Overwrite {
		t.Fatal("overwrite should default to false")
	}
}

func TestLoadReadsFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	contents := `version: 1
tools:
  image: /opt/homebrew/bin/magick
convert:
  destination: clipboard
  overwrite: true
preferred_outputs:
  image: [webp, png]
`
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Tools.Image != "/opt/homebrew/bin/magick" {
		t.Fatalf("tools.image = %q", cfg.Tools.Image)
	}
	if cfg.Convert.Destination != "clipboard" {
		t.Fatalf("destination = %q, want clipboard", cfg.Convert.Destination)
	}
	if !cfg.Convert.Overwrite {
		t.Fatal("overwrite not read")
	}
	if got := cfg.PreferredOutputs["image"]; len(got) != 2 || got[0] != "webp" {
		t.Fatalf("preferred_outputs.image = %v", got)
	}
}

func TestLoadPartialConfigKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("convert:\n  overwrite: true\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Convert.Destination != "save" {
		t.Fatalf("destination = %q, want the save default", cfg.Convert.Destination)
	}
	if cfg.Version != 1 {
		t.Fatalf("version = %d, want 1", cfg.Version)
	}
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("convert: [oops\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected an error for malformed yaml")
	}
}

func TestRankings(t *testing.T) {
	cfg := Config{PreferredOutputs: map[string][]string{
		"image":       {".WEBP", "png", "webp"},
		"spreadsheet": {"xlsx"},
		"video":       {"", "  "},
	}}

	got := cfg.Rankings()
	if len(got) != 1 {
		t.Fatalf("rankings = %v, want only the image entry", got)
	}
	ranking := got[formats.CategoryImage]
	if len(ranking) != 2 || ranking[0] != "webp" || ranking[1] != "png" {
		t.Fatalf("image ranking = %v, want [webp png]", ranking)
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Tools.Office = "/usr/bin/soffice"
	buf, err := cfg.Marshal()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, buf, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.Tools.Office != cfg.Tools.Office {
		t.Fatalf("tools.office = %q, want %q", loaded.Tools.Office, cfg.Tools.Office)
	}
}
