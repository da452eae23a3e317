// Package options holds the per-block option model: the raw key/value map
// parsed from an opening marker, the extension-wide defaults, and the typed
// view produced by layering one over the other.
package options

import (
	"maps"
	"slices"
	"strings"
)

// Recognized option names.
const (
	KeyOutputFile = "output_file"
	KeyOutputDir  = "output_dir"
	KeyOutputFmt  = "output_fmt"
	KeyBaseURL    = "base_url"
	KeyCacheDir   = "cache_dir"
	KeyLinkName   = "link_name"
)

// Default values applied when neither the block nor the configuration sets an option.
const (
	DefaultCacheDir  = ".markypond_cache"
	DefaultOutputDir = "."
	DefaultOutputFmt = FormatPNG
	DefaultBaseURL   = "/"
)

// Format is a renderer output format.
type Format string

const (
	FormatSVG Format = "svg"
	FormatPNG Format = "png"
	FormatPDF Format = "pdf"
)

var supportedFormats = []Format{FormatSVG, FormatPNG, FormatPDF}

// SupportedFormats returns the formats the renderer can produce, in display order.
func SupportedFormats() []Format {
	return slices.Clone(supportedFormats)
}

// SupportedFormatNames returns SupportedFormats joined for messages, e.g. "svg, png, pdf".
func SupportedFormatNames() string {
	names := make([]string, 0, len(supportedFormats))
	for _, f := range supportedFormats {
		names = append(names, string(f))
	}
	return strings.Join(names, ", ")
}

// Supported reports whether f is one of SupportedFormats.
func (f Format) Supported() bool {
	return slices.Contains(supportedFormats, f)
}

// ParseFormat trims a user supplied format name. Format names are case
// sensitive; the returned format may be unsupported.
func ParseFormat(s string) Format {
	return Format(strings.TrimSpace(s))
}

// BlockOptions is the raw option map of a single block.
type BlockOptions map[string]string

// Get returns the value for key and whether it was set.
func (o BlockOptions) Get(key string) (string, bool) {
	if o == nil {
		return "", false
	}
	v, ok := o[key]
	return v, ok
}

// Clone returns a shallow copy.
func (o BlockOptions) Clone() BlockOptions {
	if o == nil {
		return BlockOptions{}
	}
	return maps.Clone(o)
}

// Defaults are the extension-wide option values.
type Defaults struct {
	CacheDir  string
	OutputDir string
	OutputFmt Format
	BaseURL   string
}

// NewDefaults returns the built-in defaults.
func NewDefaults() Defaults {
	return Defaults{
		CacheDir:  DefaultCacheDir,
		OutputDir: DefaultOutputDir,
		OutputFmt: DefaultOutputFmt,
		BaseURL:   DefaultBaseURL,
	}
}

// WithFallbacks fills empty fields from the built-in defaults.
func (d Defaults) WithFallbacks() Defaults {
	base := NewDefaults()
	if d.CacheDir == "" {
		d.CacheDir = base.CacheDir
	}
	if d.OutputDir == "" {
		d.OutputDir = base.OutputDir
	}
	if d.OutputFmt == "" {
		d.OutputFmt = base.OutputFmt
	}
	if d.BaseURL == "" {
		d.BaseURL = base.BaseURL
	}
	return d
}

// Resolved is the effective option set for one block after layering block
// options over the defaults. It is not validated: OutputFile may be empty and
// OutputFmt may be unsupported.
type Resolved struct {
	OutputFile string
	OutputDir  string
	OutputFmt  Format
	BaseURL    string
	CacheDir   string
	LinkName   string
}

// Resolve layers block over defaults; any key present in block wins, even
// when its value is empty.
func Resolve(defaults Defaults, block BlockOptions) Resolved {
	d := defaults.WithFallbacks()
	r := Resolved{
		OutputDir: d.OutputDir,
		OutputFmt: d.OutputFmt,
		BaseURL:   d.BaseURL,
		CacheDir:  d.CacheDir,
	}
	if v, ok := block.Get(KeyOutputFile); ok {
		r.OutputFile = v
	}
	if v, ok := block.Get(KeyOutputDir); ok {
		r.OutputDir = v
	}
	if v, ok := block.Get(KeyOutputFmt); ok {
		r.OutputFmt = ParseFormat(v)
	}
	if v, ok := block.Get(KeyBaseURL); ok {
		r.BaseURL = v
	}
	if v, ok := block.Get(KeyCacheDir); ok {
		r.CacheDir = v
	}
	if v, ok := block.Get(KeyLinkName); ok {
		r.LinkName = v
	}
	return r
}
