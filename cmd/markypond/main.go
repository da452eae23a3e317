package main

import (
	"log/slog"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/markypond/cmd/markypond/commands"
	ferrors "git.home.luguber.info/inful/markypond/internal/foundation/errors"
	"git.home.luguber.info/inful/markypond/internal/version"
)

func main() {
	cli := &commands.CLI{}
	global := &commands.Global{}
	parser := kong.Parse(cli,
		kong.Name("markypond"),
		kong.Description("Render LilyPond blocks embedded in Markdown"),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
		kong.Bind(global),
	)

	err := parser.Run(global, cli)
	ferrors.NewCLIErrorAdapter(cli.Verbose, slog.Default()).HandleError(err)
}
