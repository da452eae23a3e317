package lilypond

import "errors"

var (
	// ErrBinaryNotFound indicates the renderer executable was not found on PATH.
	ErrBinaryNotFound = errors.New("lilypond binary not found")
	// ErrExecutionFailed indicates the renderer exited with a non-zero status.
	ErrExecutionFailed = errors.New("lilypond execution failed")
)

// Failure describes a renderer run that exited unsuccessfully. Stderr holds
// the renderer diagnostics verbatim.
type Failure struct {
	Stderr string
	Err    error
}

func (f *Failure) Error() string {
	msg := ErrExecutionFailed.Error()
	if f.Err != nil {
		msg += ": " + f.Err.Error()
	}
	if f.Stderr != "" {
		msg += ": " + f.Stderr
	}
	return msg
}

func (f *Failure) Unwrap() []error {
	if f.Err == nil {
		return []error{ErrExecutionFailed}
	}
	return []error{ErrExecutionFailed, f.Err}
}
