// Package errors provides the classified error type used at markypond's
// command boundary.
//
// Domain packages return plain typed errors (pipeline.RenderError,
// htmltag.UnsupportedTagError, ...). The CLI wraps them into a
// ClassifiedError carrying a category and severity, and the CLIErrorAdapter
// turns the category into a process exit code.
//
// Example usage:
//
//	err := errors.WrapError(cause, errors.CategoryRender, "render failed").
//		WithContext("input", path).
//		Build()
package errors
