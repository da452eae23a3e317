// Package metrics provides optional instrumentation for markypond runs.
//
// Components receive a Recorder through dependency injection and default to
// NoopRecorder, so no nil checks are needed at call sites:
//
//	p := pipeline.New(renderer, pipeline.WithRecorder(metrics.NoopRecorder{}))
//
// The Prometheus implementation registers its collectors on a caller supplied
// registry. The CLI has no long-running server, so instead of an HTTP endpoint
// the registry is written once per run in the node-exporter textfile format
// (see WriteTextfile).
package metrics
