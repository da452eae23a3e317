package markypond

import (
	"context"
	"log/slog"

	"git.home.luguber.info/inful/markypond/internal/htmltag"
	"git.home.luguber.info/inful/markypond/internal/lilypond"
	"git.home.luguber.info/inful/markypond/internal/logfields"
	"git.home.luguber.info/inful/markypond/internal/marker"
	"git.home.luguber.info/inful/markypond/internal/metrics"
	"git.home.luguber.info/inful/markypond/internal/options"
	"git.home.luguber.info/inful/markypond/internal/pipeline"
)

type settings struct {
	renderer lilypond.Renderer
	logger   *slog.Logger
	recorder metrics.Recorder
}

// Option configures a Processor.
type Option func(*settings)

// WithRenderer replaces the lilypond subprocess renderer.
func WithRenderer(r lilypond.Renderer) Option {
	return func(s *settings) { s.renderer = r }
}

// WithLogger sets the diagnostic sink.
func WithLogger(l *slog.Logger) Option {
	return func(s *settings) { s.logger = l }
}

// WithRecorder sets the metrics recorder.
func WithRecorder(r metrics.Recorder) Option {
	return func(s *settings) { s.recorder = r }
}

// Processor renders single blocks.
type Processor struct {
	defaults options.Defaults
	pipeline *pipeline.Pipeline
	logger   *slog.Logger
}

// NewProcessor returns a processor layering block options over defaults.
func NewProcessor(defaults options.Defaults, opts ...Option) *Processor {
	s := settings{}
	for _, o := range opts {
		o(&s)
	}
	if s.renderer == nil {
		s.renderer = lilypond.NewBinaryRenderer()
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return &Processor{
		defaults: defaults.WithFallbacks(),
		pipeline: pipeline.New(s.renderer, pipeline.WithLogger(s.logger), pipeline.WithRecorder(s.recorder)),
		logger:   s.logger,
	}
}

// Defaults returns the effective extension-wide defaults.
func (p *Processor) Defaults() options.Defaults { return p.defaults }

// Process renders payload with the options parsed from args, publishes the
// artifact and returns the fragment referencing it.
func (p *Processor) Process(ctx context.Context, args, payload string) (htmltag.Fragment, error) {
	resolved := options.Resolve(p.defaults, marker.ParseArgs(args))
	res, err := p.pipeline.Render(ctx, payload, resolved)
	if err != nil {
		return htmltag.Fragment{}, err
	}
	frag, err := htmltag.Generate(resolved)
	if err != nil {
		return htmltag.Fragment{}, err
	}
	p.logger.Debug("Generated markypond fragment",
		logfields.OutputFile(resolved.OutputFile),
		logfields.CacheHit(res.CacheHit),
		slog.String("kind", frag.Kind.String()))
	return frag, nil
}
