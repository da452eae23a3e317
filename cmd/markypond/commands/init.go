package commands

import (
	"fmt"
	"path/filepath"

	"git.home.luguber.info/inful/markypond/internal/config"
	ferrors "git.home.luguber.info/inful/markypond/internal/foundation/errors"
)

// InitCmd implements the 'init' command.
type InitCmd struct {
	Force  bool   `help:"Overwrite existing configuration file"`
	Output string `short:"o" name:"output" help:"Directory to write markypond.yaml into"`
}

func (i *InitCmd) Run(g *Global, root *CLI) error {
	path := root.Config
	switch {
	case i.Output != "":
		path = filepath.Join(i.Output, config.DefaultPath)
	case path == "":
		path = config.DefaultPath
	}

	w := g.stdout()
	_, _ = fmt.Fprintf(w, "Writing configuration to %s\n", path)
	if err := config.Init(path, i.Force); err != nil {
		return ferrors.ConfigError("init config").
			WithCause(err).
			WithContext("path", path).
			Build()
	}
	_, _ = fmt.Fprintln(w, "initialized successfully")
	return nil
}
