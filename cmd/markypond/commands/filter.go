package commands

import (
	"context"
	"log/slog"

	"git.home.luguber.info/inful/markypond/internal/logfields"
)

// FilterCmd implements the 'filter' command: Markdown in, Markdown out, with
// every markypond block replaced by its HTML fragment.
type FilterCmd struct {
	Input  string `arg:"" help:"Markdown input file ('-' for stdin)" default:"-"`
	Output string `short:"o" help:"Markdown output file (default: stdout)"`
}

func (f *FilterCmd) Run(g *Global, root *CLI) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}
	s := newSession(cfg, g)

	err = s.run(context.Background(), f.Input, func(ctx context.Context, logger *slog.Logger) error {
		src, err := readInput(f.Input, g.stdin())
		if err != nil {
			return err
		}
		result, err := s.registry(logger).Apply(ctx, src)
		if err != nil {
			return err
		}
		out, err := openOutput(f.Output, g.stdout())
		if err != nil {
			return err
		}
		defer func() { _ = out.Close() }()
		if _, err := out.Write(result); err != nil {
			return err
		}
		if f.Output != "" && f.Output != "-" {
			logger.Info("Wrote filtered Markdown", logfields.Output(f.Output))
		}
		return nil
	})
	return classify(err, f.Input)
}
