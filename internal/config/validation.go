package config

import (
	"fmt"
	"os"

	"github.com/DevDeepakBhattarai/file-forge/internal/convert"
	"github.com/DevDeepakBhattarai/file-forge/pkg/formats"
)

// ValidationResult captures a single validation finding.
type ValidationResult struct {
	Level   string `json:"level"` // "error" or "warning"
	Message string `json:"message"`
}

// Validate checks the config for values that cannot work and values that
// look suspicious. Errors mean a field will be ignored or rejected at use;
// warnings flag probable mistakes that still run.
func (c Config) Validate() []ValidationResult {
	var results []ValidationResult
	results = append(results, c.validateDestination()...)
	results = append(results, c.validatePreferredOutputs()...)
	results = append(results, c.validateToolPaths()...)
	results = append(results, c.validateOutputDir()...)
	return results
}

func (c Config) validateDestination() []ValidationResult {
	if _, ok := convert.ParseDestination(c.Convert.Destination); !ok {
		return []ValidationResult{{
			Level:   "error",
			Message: fmt.Sprintf("convert.destination %q is not one of save, clipboard, both", c.Convert.Destination),
		}}
	}
	return nil
}

func (c Config) validatePreferredOutputs() []ValidationResult {
	var results []ValidationResult
	for name, exts := range c.PreferredOutputs {
		if _, ok := formats.ParseCategory(name); !ok {
			results = append(results, ValidationResult{
				Level:   "error",
				Message: fmt.Sprintf("preferred_outputs: unknown category %q", name),
			})
			continue
		}
		if len(formats.NormalizeRanking(exts)) == 0 {
			results = append(results, ValidationResult{
				Level:   "warning",
				Message: fmt.Sprintf("preferred_outputs.%s has no usable extensions", name),
			})
		}
	}
	return results
}

func (c Config) validateToolPaths() []ValidationResult {
	var results []ValidationResult
	for _, entry := range []struct {
		field string
		path  string
	}{
		{"tools.image", c.Tools.Image},
		{"tools.media", c.Tools.Media},
		{"tools.markup", c.Tools.Markup},
		{"tools.office", c.Tools.Office},
	} {
		if entry.path == "" {
			continue
		}
		if _, err := os.Stat(entry.path); err != nil {
			results = append(results, ValidationResult{
				Level:   "warning",
				Message: fmt.Sprintf("%s: %q not found, falling back to discovery", entry.field, entry.path),
			})
		}
	}
	return results
}

func (c Config) validateOutputDir() []ValidationResult {
	dir := c.Convert.OutputDir
	if dir == "" {
		return nil
	}
	info, err := os.Stat(dir)
	if err != nil {
		return []ValidationResult{{
			Level:   "warning",
			Message: fmt.Sprintf("convert.output_dir %q does not exist yet, it will be created on first use", dir),
		}}
	}
	if !info.IsDir() {
		return []ValidationResult{{
			Level:   "error",
			Message: fmt.Sprintf("convert.output_dir %q is not a directory", dir),
		}}
	}
	return nil
}
