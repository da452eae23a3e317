package commands

import (
	"errors"

	ferrors "git.home.luguber.info/inful/markypond/internal/foundation/errors"
	"git.home.luguber.info/inful/markypond/internal/htmltag"
	"git.home.luguber.info/inful/markypond/internal/pipeline"
)

// classify wraps a conversion error with the category deciding the exit code.
// Already classified errors pass through.
func classify(err error, input string) error {
	if err == nil {
		return nil
	}
	if _, ok := ferrors.AsClassified(err); ok {
		return err
	}

	var (
		missing     *pipeline.MissingOutputFileError
		unsupported *pipeline.UnsupportedFormatError
		renderErr   *pipeline.RenderError
		tagErr      *htmltag.UnsupportedTagError
	)
	var b *ferrors.ErrorBuilder
	switch {
	case errors.As(err, &missing), errors.As(err, &unsupported):
		b = ferrors.ValidationError("invalid markypond block")
	case errors.As(err, &renderErr):
		b = ferrors.RenderError("lilypond render failed")
	case errors.As(err, &tagErr):
		b = ferrors.InternalError("no fragment for output format")
	default:
		b = ferrors.FileSystemError("conversion failed").Fatal()
	}
	return b.WithCause(err).WithContext("input", input).Build()
}
