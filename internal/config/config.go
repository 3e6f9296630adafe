package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/DevDeepakBhattarai/file-forge/pkg/formats"
)

// Config captures the user-tunable conversion defaults.
type Config struct {
	Version          int                 `yaml:"version"`
	Tools            ToolsConfig         `yaml:"tools"`
	Convert          ConvertConfig       `yaml:"convert"`
	PreferredOutputs map[string][]string `yaml:"preferred_outputs,omitempty"`
}

// ToolsConfig holds absolute executable paths that override discovery. An
// empty field means the tool is found on PATH as usual. A configured path is
// still probe-validated; a dead path falls back to discovery.
type ToolsConfig struct {
	Image  string `yaml:"image"`
	Media  string `yaml:"media"`
	Markup string `yaml:"markup"`
	Office string `yaml:"office"`
}

// ConvertConfig holds the defaults applied when the convert command's flags
// are left unset.
type ConvertConfig struct {
	Destination     string `yaml:"destination"`
	OutputDir       string `yaml:"output_dir"`
	Overwrite       bool   `yaml:"overwrite"`
	CopyToClipboard bool   `yaml:"copy_to_clipboard"`
}

// Default returns the baseline configuration.
func Default() Config {
	return Config{
		Version: 1,
		Convert: ConvertConfig{
			Destination: "save",
		},
	}
}

// Load reads the YAML configuration from disk if it exists, otherwise returns
// the default configuration.
func Load(path string) (Config, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg := Default()
			cfg.ApplyDefaults()
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(contents, &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.ApplyDefaults()
	return cfg, nil
}

// ApplyDefaults ensures fields fall back to sensible defaults when the YAML
// omits them.
func (c *Config) ApplyDefaults() {
	defaults := Default()

	if c.Version == 0 {
		c.Version = defaults.Version
	}
	if c.Convert.Destination == "" {
		c.Convert.Destination = defaults.Convert.Destination
	}
}

// Rankings converts the preferred-output overrides into normalized, ranked
// lists keyed by category. Unknown categories and entries that normalize to
// nothing are dropped; Validate reports them.
func (c Config) Rankings() map[formats.Category][]string {
	if len(c.PreferredOutputs) == 0 {
		return nil
	}
	out := make(map[formats.Category][]string, len(c.PreferredOutputs))
	for name, exts := range c.PreferredOutputs {
		category, ok := formats.ParseCategory(name)
		if !ok {
			continue
		}
		ranking := formats.NormalizeRanking(exts)
		if len(ranking) == 0 {
			continue
		}
		out[category] = ranking
	}
	return out
}

// Marshal returns the YAML encoding of the configuration.
func (c Config) Marshal() ([]byte, error) {
	buf, err := yaml.Marshal(&c)
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}
	return buf, nil
}
