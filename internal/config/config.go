// Package config loads the markypond YAML configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/markypond/internal/markdown"
	"git.home.luguber.info/inful/markypond/internal/options"
)

// DefaultPath is the configuration file looked up when none is given.
const DefaultPath = "markypond.yaml"

// ErrNotFound is returned by Load when the file does not exist.
var ErrNotFound = errors.New("configuration file not found")

// Config is the on-disk configuration.
type Config struct {
	Markypond MarkypondConfig `yaml:"markypond"`
	Renderer  RendererConfig  `yaml:"renderer"`
	Markdown  MarkdownConfig  `yaml:"markdown"`
	Metrics   MetricsConfig   `yaml:"metrics"`
}

// MarkypondConfig holds the extension-wide block defaults.
type MarkypondConfig struct {
	CacheDir  string `yaml:"cache_dir"`  // Content-addressed render cache
	OutputDir string `yaml:"output_dir"` // Base directory for published artifacts
	OutputFmt string `yaml:"output_fmt"` // svg|png|pdf
	BaseURL   string `yaml:"base_url"`   // Prefix for generated src/href
	Priority  int    `yaml:"priority"`   // Transform priority, lower runs first
}

// RendererConfig controls the lilypond subprocess.
type RendererConfig struct {
	Binary   string `yaml:"binary"`
	LogLevel string `yaml:"log_level"`
	Timeout  string `yaml:"timeout"` // Go duration; 0s disables the limit
}

// MarkdownConfig controls the goldmark host used by convert.
type MarkdownConfig struct {
	GFM    bool `yaml:"gfm"`
	Unsafe bool `yaml:"unsafe"`
}

// MetricsConfig controls metric export.
type MetricsConfig struct {
	// Textfile is a Prometheus textfile collector path written after each run.
	Textfile string `yaml:"textfile"`
}

// Load reads configPath, expands environment variables, applies defaults and
// validates the result. Variables from .env and .env.local are loaded first
// without overriding the process environment.
func Load(configPath string) (*Config, error) {
	if err := loadEnvFiles(); err != nil {
		return nil, err
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return Parse([]byte(os.ExpandEnv(string(data))))
}

// Parse decodes YAML on top of Default and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	applyDefaults(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// OptionDefaults returns the block defaults.
func (c *Config) OptionDefaults() options.Defaults {
	return options.Defaults{
		CacheDir:  c.Markypond.CacheDir,
		OutputDir: c.Markypond.OutputDir,
		OutputFmt: options.ParseFormat(c.Markypond.OutputFmt),
		BaseURL:   c.Markypond.BaseURL,
	}
}

// MarkdownOptions returns the goldmark host options.
func (c *Config) MarkdownOptions() markdown.Options {
	return markdown.Options{GFM: c.Markdown.GFM, Unsafe: c.Markdown.Unsafe}
}

// RenderTimeout returns the parsed renderer timeout. Validate guarantees the
// value parses.
func (c *Config) RenderTimeout() time.Duration {
	if c.Renderer.Timeout == "" {
		return 0
	}
	d, err := time.ParseDuration(c.Renderer.Timeout)
	if err != nil {
		return 0
	}
	return d
}

// Init writes an example configuration file holding the defaults.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("configuration file already exists: %s (use --force to overwrite)", configPath)
	}

	data, err := yaml.Marshal(Default())
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	header := "# markypond configuration\n# Values may reference environment variables as ${NAME}.\n"
	if err := os.WriteFile(configPath, append([]byte(header), data...), 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
