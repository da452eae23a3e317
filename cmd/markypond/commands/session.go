package commands

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/markypond/internal/config"
	"git.home.luguber.info/inful/markypond/internal/lilypond"
	"git.home.luguber.info/inful/markypond/internal/logfields"
	"git.home.luguber.info/inful/markypond/internal/markypond"
	"git.home.luguber.info/inful/markypond/internal/metrics"
	"git.home.luguber.info/inful/markypond/internal/transforms"
)

// session holds what one invocation needs to convert documents.
type session struct {
	cfg      *config.Config
	logger   *slog.Logger
	renderer lilypond.Renderer
	prom     *metrics.PrometheusRecorder
	recorder metrics.Recorder
}

func newSession(cfg *config.Config, g *Global) *session {
	logger := g.logger()
	s := &session{cfg: cfg, logger: logger, recorder: metrics.NoopRecorder{}}
	if cfg.Metrics.Textfile != "" {
		s.prom = metrics.NewPrometheusRecorder(nil)
		s.recorder = s.prom
	}
	if g != nil && g.Renderer != nil {
		s.renderer = g.Renderer
	} else {
		s.renderer = &lilypond.BinaryRenderer{
			Binary:   cfg.Renderer.Binary,
			LogLevel: cfg.Renderer.LogLevel,
			Timeout:  cfg.RenderTimeout(),
			Logger:   logger,
		}
	}
	return s
}

// processor returns a block processor logging under runLogger.
func (s *session) processor(runLogger *slog.Logger) *markypond.Processor {
	return markypond.NewProcessor(s.cfg.OptionDefaults(),
		markypond.WithRenderer(s.renderer),
		markypond.WithLogger(runLogger),
		markypond.WithRecorder(s.recorder))
}

// registry returns a transform registry holding the markypond filter.
func (s *session) registry(runLogger *slog.Logger) *transforms.Registry {
	reg := transforms.NewRegistry()
	markypond.Register(reg, markypond.Settings{
		Defaults: s.cfg.OptionDefaults(),
		Priority: s.cfg.Markypond.Priority,
	}, markypond.WithRenderer(s.renderer), markypond.WithLogger(runLogger), markypond.WithRecorder(s.recorder))
	return reg
}

// run executes fn as one tracked run: it gets a run id, its duration and
// outcome are recorded and the metrics textfile is refreshed afterwards.
func (s *session) run(ctx context.Context, input string, fn func(ctx context.Context, logger *slog.Logger) error) error {
	logger := s.logger.With(logfields.RunID(uuid.NewString()), logfields.Input(input))
	start := time.Now()
	logger.Info("Starting markypond run")

	err := fn(ctx, logger)

	elapsed := time.Since(start)
	s.recorder.ObserveRunDuration(elapsed)
	if err != nil {
		s.recorder.IncRunOutcome(metrics.OutcomeFailed)
		logger.Error("Markypond run failed", logfields.Error(err))
	} else {
		s.recorder.IncRunOutcome(metrics.OutcomeSuccess)
		logger.Info("Markypond run completed", logfields.DurationMS(float64(elapsed.Milliseconds())))
	}

	if s.prom != nil {
		if werr := s.prom.WriteTextfile(s.cfg.Metrics.Textfile); werr != nil {
			logger.Warn("Failed to write metrics textfile", logfields.Error(werr))
		}
	}
	return err
}
