package pipeline

import (
	"fmt"

	"git.home.luguber.info/inful/markypond/internal/options"
)

// MissingOutputFileError reports a block without an output_file option.
type MissingOutputFileError struct{}

func (e *MissingOutputFileError) Error() string {
	return options.KeyOutputFile + " block argument is required"
}

// UnsupportedFormatError reports an output_fmt the renderer cannot produce.
type UnsupportedFormatError struct {
	Format options.Format
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("output format %s is not supported; supported formats: %s", e.Format, options.SupportedFormatNames())
}

// RenderError reports a failed renderer run. Output holds the renderer
// diagnostics verbatim.
type RenderError struct {
	Output string
	Err    error
}

func (e *RenderError) Error() string {
	if e.Output == "" {
		return fmt.Sprintf("lilypond failed to render block: %v", e.Err)
	}
	return "lilypond failed to render block. lilypond output:\n" + e.Output
}

func (e *RenderError) Unwrap() error { return e.Err }
