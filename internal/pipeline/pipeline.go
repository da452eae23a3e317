// Package pipeline renders one block of LilyPond source into a published
// artifact: validate options, look the source up in the content-addressed
// cache, render on a miss, then copy the cached file to its output location.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"git.home.luguber.info/inful/markypond/internal/cache"
	"git.home.luguber.info/inful/markypond/internal/fsutil"
	"git.home.luguber.info/inful/markypond/internal/lilypond"
	"git.home.luguber.info/inful/markypond/internal/logfields"
	"git.home.luguber.info/inful/markypond/internal/metrics"
	"git.home.luguber.info/inful/markypond/internal/options"
)

// Result describes a completed render-and-publish.
type Result struct {
	Hash          string
	Format        options.Format
	CachePath     string
	PublishedPath string
	CacheHit      bool
}

// Pipeline is safe to reuse across blocks and documents but performs every
// step synchronously.
type Pipeline struct {
	renderer lilypond.Renderer
	logger   *slog.Logger
	recorder metrics.Recorder
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets the diagnostic sink.
func WithLogger(l *slog.Logger) Option {
	return func(p *Pipeline) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithRecorder sets the metrics recorder.
func WithRecorder(r metrics.Recorder) Option {
	return func(p *Pipeline) {
		if r != nil {
			p.recorder = r
		}
	}
}

// New returns a pipeline rendering through r.
func New(r lilypond.Renderer, opts ...Option) *Pipeline {
	p := &Pipeline{
		renderer: r,
		logger:   slog.Default(),
		recorder: metrics.NoopRecorder{},
	}
	for _, o := range opts {
		o(p)
	}
	return p
}

// Validate checks the options a render depends on, format first.
func Validate(opts options.Resolved) error {
	if !opts.OutputFmt.Supported() {
		return &UnsupportedFormatError{Format: opts.OutputFmt}
	}
	if opts.OutputFile == "" {
		return &MissingOutputFileError{}
	}
	return nil
}

// PublishPath returns where the artifact for opts is copied to. An absolute
// output_file ignores output_dir.
func PublishPath(opts options.Resolved) string {
	if filepath.IsAbs(opts.OutputFile) {
		return opts.OutputFile
	}
	return filepath.Join(opts.OutputDir, opts.OutputFile)
}

// Render produces the artifact for source and publishes it. Nothing touches
// the filesystem or spawns a process until the options validate.
func (p *Pipeline) Render(ctx context.Context, source string, opts options.Resolved) (Result, error) {
	if err := Validate(opts); err != nil {
		return Result{}, err
	}
	format := string(opts.OutputFmt)
	p.recorder.IncBlock(format)
	p.logger.Info("Output format", logfields.OutputFmt(format))

	store := cache.NewStore(opts.CacheDir)
	entry := store.EntryFor(source, opts.OutputFmt)
	res := Result{Hash: entry.Hash, Format: opts.OutputFmt, CachePath: entry.Path}

	if err := store.Prepare(); err != nil {
		return res, err
	}
	hit, err := store.Exists(entry)
	if err != nil {
		return res, err
	}
	res.CacheHit = hit
	p.recorder.IncCacheResult(format, hit)

	if hit {
		p.logger.Info("Skipping lilypond generation: cache file already exists", logfields.CachePath(entry.Path))
	} else {
		if err := p.render(ctx, source, entry); err != nil {
			return res, err
		}
		p.logger.Info("Lilypond output cached", logfields.CachePath(entry.Path), logfields.Hash(entry.Hash))
	}

	dst := PublishPath(opts)
	if err := fsutil.EnsureParentDir(dst); err != nil {
		return res, err
	}
	if err := fsutil.CopyFile(entry.Path, dst); err != nil {
		return res, fmt.Errorf("publish %s: %w", dst, err)
	}
	res.PublishedPath = dst
	p.recorder.IncPublish(format)
	p.logger.Info("Copied lilypond output to destination", logfields.Published(dst))
	return res, nil
}

func (p *Pipeline) render(ctx context.Context, source string, entry cache.Entry) error {
	start := time.Now()
	err := p.renderer.Render(ctx, lilypond.Request{Source: source, Format: entry.Format, Target: entry.Path})
	p.recorder.ObserveRenderDuration(string(entry.Format), time.Since(start), err == nil)
	if err == nil {
		return nil
	}
	var failure *lilypond.Failure
	if errors.As(err, &failure) {
		return &RenderError{Output: failure.Stderr, Err: err}
	}
	return &RenderError{Err: err}
}
