// Package lilypond drives the external LilyPond engine that turns music
// notation source into PNG, SVG or PDF artifacts.
package lilypond

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"git.home.luguber.info/inful/markypond/internal/options"
)

const (
	// DefaultBinary is the executable looked up on PATH.
	DefaultBinary = "lilypond"
	// DefaultLogLevel is passed to --loglevel.
	DefaultLogLevel = "BASIC"
)

// Request describes one render.
type Request struct {
	// Source is fed to the renderer on stdin.
	Source string
	// Format selects the artifact type.
	Format options.Format
	// Target is the full artifact path including the format extension.
	Target string
}

// Renderer produces the artifact described by a Request. Implementations must
// block until the artifact is written or the render failed.
type Renderer interface {
	Render(ctx context.Context, req Request) error
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(ctx context.Context, req Request) error

func (f RendererFunc) Render(ctx context.Context, req Request) error { return f(ctx, req) }

// BinaryRenderer invokes the lilypond executable as a subprocess.
type BinaryRenderer struct {
	Binary   string
	LogLevel string
	// Timeout bounds one render; zero means the render may run indefinitely.
	Timeout time.Duration
	Logger  *slog.Logger
}

// NewBinaryRenderer returns a renderer using the default binary and log level.
func NewBinaryRenderer() *BinaryRenderer {
	return &BinaryRenderer{Binary: DefaultBinary, LogLevel: DefaultLogLevel}
}

func (b *BinaryRenderer) binary() string {
	if b.Binary == "" {
		return DefaultBinary
	}
	return b.Binary
}

func (b *BinaryRenderer) logger() *slog.Logger {
	if b.Logger == nil {
		return slog.Default()
	}
	return b.Logger
}

// Args returns the command line for req. LilyPond appends the format
// extension itself, so the output path is passed without it.
func (b *BinaryRenderer) Args(req Request) []string {
	level := b.LogLevel
	if level == "" {
		level = DefaultLogLevel
	}
	return []string{
		"-f" + string(req.Format),
		"--loglevel=" + level,
		"-dno-point-and-click",
		"-o", stripExt(req.Target),
		"-",
	}
}

func stripExt(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path))
}

// Render runs lilypond and waits for it to exit. A non-zero exit is reported
// as a *Failure carrying the captured stderr.
func (b *BinaryRenderer) Render(ctx context.Context, req Request) error {
	bin, err := exec.LookPath(b.binary())
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBinaryNotFound, err)
	}

	if b.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, b.Timeout)
		defer cancel()
	}

	args := b.Args(req)
	// #nosec G204 - binary and arguments come from configuration, not document content
	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Stdin = strings.NewReader(req.Source)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	log := b.logger()
	log.Debug("Invoking lilypond", "binary", bin, "args", args)
	start := time.Now()
	err = cmd.Run()

	if out := stdout.String(); out != "" {
		log.Debug("lilypond stdout", "output", out)
	}
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = fmt.Errorf("%w: %w", err, ctxErr)
		}
		return &Failure{Stderr: stderr.String(), Err: err}
	}
	log.Debug("lilypond finished", "duration", time.Since(start), "target", req.Target)
	return nil
}
