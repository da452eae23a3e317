// Package markdown holds the host-side Markdown plumbing: byte-range edits
// for text-level rewriting and a goldmark factory for HTML conversion.
package markdown

import (
	"bytes"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// Options controls the goldmark host.
type Options struct {
	// GFM enables the GitHub Flavored Markdown extensions.
	GFM bool
	// Unsafe lets raw HTML through. Generated fragments that reach the
	// renderer as raw HTML (text filter mode) need it.
	Unsafe bool
}

// DefaultOptions matches the configuration defaults.
func DefaultOptions() Options {
	return Options{GFM: true, Unsafe: true}
}

// New returns a goldmark instance with exts installed after the built-ins.
func New(opts Options, exts ...goldmark.Extender) goldmark.Markdown {
	var all []goldmark.Extender
	if opts.GFM {
		all = append(all, extension.GFM)
	}
	all = append(all, exts...)

	var rendererOpts []goldmark.Option
	if opts.Unsafe {
		rendererOpts = append(rendererOpts, goldmark.WithRendererOptions(html.WithUnsafe()))
	}
	return goldmark.New(append(rendererOpts, goldmark.WithExtensions(all...))...)
}

// ToHTML converts source with md.
func ToHTML(md goldmark.Markdown, source []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := md.Convert(source, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
