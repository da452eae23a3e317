package metrics

import (
	"fmt"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

const namespace = "markypond"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	reg            *prom.Registry
	blocks         *prom.CounterVec
	cacheResults   *prom.CounterVec
	renderDuration *prom.HistogramVec
	publishes      *prom.CounterVec
	runDuration    prom.Histogram
	runOutcomes    *prom.CounterVec
}

// NewPrometheusRecorder constructs the collectors and registers them on reg
// (a fresh registry when nil).
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		reg: reg,
		blocks: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "blocks_total",
			Help:      "Markypond blocks processed, by output format",
		}, []string{"format"}),
		cacheResults: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "cache_lookups_total",
			Help:      "Cache lookups by output format and result (hit|miss)",
		}, []string{"format", "result"}),
		renderDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "render_duration_seconds",
			Help:      "Duration of lilypond invocations",
			Buckets:   []float64{0.25, 0.5, 1, 2, 4, 8, 16, 32},
		}, []string{"format", "result"}),
		publishes: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "published_artifacts_total",
			Help:      "Artifacts copied to their output location",
		}, []string{"format"}),
		runDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Duration of a whole document conversion",
			Buckets:   prom.DefBuckets,
		}),
		runOutcomes: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Document conversions by outcome",
		}, []string{"outcome"}),
	}
	reg.MustRegister(pr.blocks, pr.cacheResults, pr.renderDuration, pr.publishes, pr.runDuration, pr.runOutcomes)
	return pr
}

// Registry returns the registry the collectors are registered on.
func (p *PrometheusRecorder) Registry() *prom.Registry { return p.reg }

func (p *PrometheusRecorder) IncBlock(format string) {
	if p == nil {
		return
	}
	p.blocks.WithLabelValues(format).Inc()
}

func (p *PrometheusRecorder) IncCacheResult(format string, hit bool) {
	if p == nil {
		return
	}
	res := "miss"
	if hit {
		res = "hit"
	}
	p.cacheResults.WithLabelValues(format, res).Inc()
}

func (p *PrometheusRecorder) ObserveRenderDuration(format string, d time.Duration, success bool) {
	if p == nil {
		return
	}
	res := "failed"
	if success {
		res = "success"
	}
	p.renderDuration.WithLabelValues(format, res).Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncPublish(format string) {
	if p == nil {
		return
	}
	p.publishes.WithLabelValues(format).Inc()
}

func (p *PrometheusRecorder) ObserveRunDuration(d time.Duration) {
	if p == nil {
		return
	}
	p.runDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncRunOutcome(outcome RunOutcome) {
	if p == nil {
		return
	}
	p.runOutcomes.WithLabelValues(string(outcome)).Inc()
}

// WriteTextfile writes every metric of the recorder's registry to path in the
// textfile collector format.
func (p *PrometheusRecorder) WriteTextfile(path string) error {
	if err := prom.WriteToTextfile(path, p.reg); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
