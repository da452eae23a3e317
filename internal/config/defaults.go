package config

import (
	"git.home.luguber.info/inful/markypond/internal/lilypond"
	"git.home.luguber.info/inful/markypond/internal/options"
)

// DefaultPriority mirrors the transform priority used when none is configured.
const DefaultPriority = 50

// Default returns a configuration holding every default value.
func Default() *Config {
	return &Config{
		Markypond: MarkypondConfig{
			CacheDir:  options.DefaultCacheDir,
			OutputDir: options.DefaultOutputDir,
			OutputFmt: string(options.DefaultOutputFmt),
			BaseURL:   options.DefaultBaseURL,
			Priority:  DefaultPriority,
		},
		Renderer: RendererConfig{
			Binary:   lilypond.DefaultBinary,
			LogLevel: lilypond.DefaultLogLevel,
			Timeout:  "0s",
		},
		Markdown: MarkdownConfig{GFM: true, Unsafe: true},
	}
}

// applyDefaults restores defaults for values a file set to empty.
func applyDefaults(cfg *Config) {
	def := Default()
	if cfg.Markypond.CacheDir == "" {
		cfg.Markypond.CacheDir = def.Markypond.CacheDir
	}
	if cfg.Markypond.OutputDir == "" {
		cfg.Markypond.OutputDir = def.Markypond.OutputDir
	}
	if cfg.Markypond.OutputFmt == "" {
		cfg.Markypond.OutputFmt = def.Markypond.OutputFmt
	}
	if cfg.Markypond.BaseURL == "" {
		cfg.Markypond.BaseURL = def.Markypond.BaseURL
	}
	if cfg.Markypond.Priority == 0 {
		cfg.Markypond.Priority = def.Markypond.Priority
	}
	if cfg.Renderer.Binary == "" {
		cfg.Renderer.Binary = def.Renderer.Binary
	}
	if cfg.Renderer.LogLevel == "" {
		cfg.Renderer.LogLevel = def.Renderer.LogLevel
	}
	if cfg.Renderer.Timeout == "" {
		cfg.Renderer.Timeout = def.Renderer.Timeout
	}
}
