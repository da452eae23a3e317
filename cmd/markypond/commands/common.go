package commands

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/markypond/internal/config"
	ferrors "git.home.luguber.info/inful/markypond/internal/foundation/errors"
	"git.home.luguber.info/inful/markypond/internal/lilypond"
)

// LogLevelEnv overrides the log level when --verbose is not given.
const LogLevelEnv = "MARKYPOND_LOG_LEVEL"

// Global carries process-wide dependencies into commands.
type Global struct {
	Logger *slog.Logger
	// Renderer replaces the lilypond subprocess when set.
	Renderer lilypond.Renderer
	Stdin    io.Reader
	Stdout   io.Writer
}

func (g *Global) stdin() io.Reader {
	if g == nil || g.Stdin == nil {
		return os.Stdin
	}
	return g.Stdin
}

func (g *Global) stdout() io.Writer {
	if g == nil || g.Stdout == nil {
		return os.Stdout
	}
	return g.Stdout
}

func (g *Global) logger() *slog.Logger {
	if g == nil || g.Logger == nil {
		return slog.Default()
	}
	return g.Logger
}

// CLI definition & global flags.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path (default: markypond.yaml when present)" type:"path"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Convert ConvertCmd `cmd:"" help:"Convert a Markdown document with markypond blocks to HTML"`
	Filter  FilterCmd  `cmd:"" help:"Replace markypond blocks in a Markdown document with HTML fragments"`
	Init    InitCmd    `cmd:"" help:"Initialize a new configuration file"`
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply(g *Global) error {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: parseLogLevel(c.Verbose)}))
	slog.SetDefault(logger)
	if g != nil && g.Logger == nil {
		g.Logger = logger
	}
	return nil
}

// parseLogLevel returns debug for --verbose, else the level named by
// MARKYPOND_LOG_LEVEL, else info.
func parseLogLevel(verbose bool) slog.Level {
	if verbose {
		return slog.LevelDebug
	}
	switch strings.ToLower(strings.TrimSpace(os.Getenv(LogLevelEnv))) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// loadConfig loads the configured file. Without --config a missing
// markypond.yaml falls back to the built-in defaults.
func loadConfig(root *CLI) (*config.Config, error) {
	path := root.Config
	explicit := path != ""
	if !explicit {
		path = config.DefaultPath
	}
	cfg, err := config.Load(path)
	switch {
	case err == nil:
		return cfg, nil
	case errors.Is(err, config.ErrNotFound) && !explicit:
		return config.Default(), nil
	default:
		return nil, ferrors.ConfigError("load config").
			WithCause(err).
			WithContext("path", path).
			Build()
	}
}

// openOutput returns a writer for path; "" and "-" select w.
func openOutput(path string, w io.Writer) (io.WriteCloser, error) {
	if path == "" || path == "-" {
		return nopCloser{w}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, ferrors.FileSystemError("create output").
			WithCause(err).
			WithContext("path", path).
			Fatal().
			Build()
	}
	return f, nil
}

// readInput reads path; "" and "-" read r.
func readInput(path string, r io.Reader) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	if path == "" || path == "-" {
		data, err = io.ReadAll(r)
	} else {
		data, err = os.ReadFile(path)
	}
	if err == nil {
		return data, nil
	}
	msg := fmt.Sprintf("read input %s", path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ferrors.WrapError(err, ferrors.CategoryNotFound, msg).Fatal().Build()
	}
	return nil, ferrors.FileSystemError(msg).WithCause(err).Fatal().Build()
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }
