package metrics

import "time"

// RunOutcome enumerates document conversion results.
type RunOutcome string

const (
	OutcomeSuccess RunOutcome = "success"
	OutcomeFailed  RunOutcome = "failed"
)

// Recorder defines the observability hooks of the block pipeline.
type Recorder interface {
	IncBlock(format string)
	IncCacheResult(format string, hit bool)
	ObserveRenderDuration(format string, d time.Duration, success bool)
	IncPublish(format string)
	ObserveRunDuration(d time.Duration)
	IncRunOutcome(outcome RunOutcome)
}

// NoopRecorder is a Recorder that does nothing (default when metrics are not configured).
type NoopRecorder struct{}

func (NoopRecorder) IncBlock(string)                                   {}
func (NoopRecorder) IncCacheResult(string, bool)                       {}
func (NoopRecorder) ObserveRenderDuration(string, time.Duration, bool) {}
func (NoopRecorder) IncPublish(string)                                 {}
func (NoopRecorder) ObserveRunDuration(time.Duration)                  {}
func (NoopRecorder) IncRunOutcome(RunOutcome)                          {}
