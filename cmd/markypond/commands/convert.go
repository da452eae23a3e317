package commands

import (
	"context"
	"log/slog"
	"os/signal"
	"syscall"

	ferrors "git.home.luguber.info/inful/markypond/internal/foundation/errors"
	"git.home.luguber.info/inful/markypond/internal/logfields"
	"git.home.luguber.info/inful/markypond/internal/markdown"
	"git.home.luguber.info/inful/markypond/internal/mdext"
)

// ConvertCmd implements the 'convert' command.
type ConvertCmd struct {
	Input  string `arg:"" help:"Markdown input file ('-' for stdin)" default:"-"`
	Output string `short:"o" help:"HTML output file (default: stdout)"`
	Watch  bool   `short:"w" help:"Re-convert whenever the input file changes"`
}

func (c *ConvertCmd) Run(g *Global, root *CLI) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}
	s := newSession(cfg, g)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if !c.Watch {
		return c.convert(ctx, s, g)
	}
	if c.Input == "" || c.Input == "-" {
		return errWatchNeedsFile
	}
	c.reconvert(ctx, s, g)
	return watchFile(ctx, c.Input, s.logger, func() {
		c.reconvert(ctx, s, g)
	})
}

// reconvert runs one watch pass. A failed pass is logged and watching goes on.
func (c *ConvertCmd) reconvert(ctx context.Context, s *session, g *Global) {
	err := c.convert(ctx, s, g)
	switch {
	case err == nil:
	case ferrors.HasCategory(err, ferrors.CategoryNotFound):
		s.logger.Warn("Input not found, waiting for it to reappear", logfields.Input(c.Input))
	default:
		s.logger.Warn("Conversion failed, still watching",
			logfields.Input(c.Input),
			slog.String("category", string(ferrors.GetCategory(err))))
	}
}

func (c *ConvertCmd) convert(ctx context.Context, s *session, g *Global) error {
	err := s.run(ctx, c.Input, func(ctx context.Context, logger *slog.Logger) error {
		src, err := readInput(c.Input, g.stdin())
		if err != nil {
			return err
		}
		md := markdown.New(s.cfg.MarkdownOptions(),
			mdext.New(s.processor(logger), s.cfg.Markypond.Priority, mdext.WithContext(ctx)))
		html, err := markdown.ToHTML(md, src)
		if err != nil {
			return err
		}
		out, err := openOutput(c.Output, g.stdout())
		if err != nil {
			return err
		}
		defer func() { _ = out.Close() }()
		if _, err := out.Write(html); err != nil {
			return err
		}
		if c.Output != "" && c.Output != "-" {
			logger.Info("Wrote HTML", logfields.Output(c.Output))
		}
		return nil
	})
	return classify(err, c.Input)
}
