package config

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"git.home.luguber.info/inful/markypond/internal/options"
)

// lilypond --loglevel values.
var rendererLogLevels = []interface{}{"NONE", "ERROR", "WARNING", "BASIC", "PROGRESS", "INFO", "DEBUG"}

func init() {
	// Report field errors by their YAML keys.
	validation.ErrorTag = "yaml"
}

// Validate checks every section.
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Markypond),
		validation.Field(&c.Renderer),
	)
}

// Validate checks the block defaults.
func (m MarkypondConfig) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.CacheDir, validation.Required),
		validation.Field(&m.OutputDir, validation.Required),
		validation.Field(&m.OutputFmt, validation.Required, validation.By(supportedFormat)),
		validation.Field(&m.BaseURL, validation.Required),
		validation.Field(&m.Priority, validation.Min(0)),
	)
}

// Validate checks the renderer settings.
func (r RendererConfig) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Binary, validation.Required),
		validation.Field(&r.LogLevel, validation.Required, validation.In(rendererLogLevels...)),
		validation.Field(&r.Timeout, validation.By(nonNegativeDuration)),
	)
}

func supportedFormat(value interface{}) error {
	s, _ := value.(string)
	if !options.ParseFormat(s).Supported() {
		return validation.NewError("markypond.output_fmt.unsupported", "must be one of "+options.SupportedFormatNames())
	}
	return nil
}

func nonNegativeDuration(value interface{}) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return validation.NewError("renderer.timeout.invalid", "must be a duration such as 30s or 2m")
	}
	if d < 0 {
		return validation.NewError("renderer.timeout.negative", "must not be negative")
	}
	return nil
}
