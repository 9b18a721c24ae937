package cmd

import (
	"io"
	"log/slog"

	"github.com/urfave/cli/v3"

	"git.asdf.cafe/abs3nt/simpledesktop/constants"
)

// NewApp builds the root command. Running it without a subcommand starts
// the daemon. Command output goes to out.
func NewApp(logger *slog.Logger, level *slog.LevelVar, out io.Writer) *cli.Command {
	run := NewRunHandler(logger, level)
	once := NewOnceHandler(logger, level)
	once.out = out
	history := NewHistoryHandler(logger, level)
	history.out = out

	return &cli.Command{
		Name:                  constants.AppName,
		Version:               constants.AppVersion,
		Usage:                 "Rotate the desktop background through the Simple Desktops catalog",
		EnableShellCompletion: true,
		Writer:                out,
		Flags:                 GlobalFlags(),
		Action:                run.Handle,
		Commands: []*cli.Command{
			{
				Name:   "run",
				Usage:  "Change the wallpaper periodically until stopped",
				Flags:  run.GetFlags(),
				Action: run.Handle,
			},
			{
				Name:   "once",
				Usage:  "Apply one random wallpaper and exit",
				Flags:  once.GetFlags(),
				Action: once.Handle,
			},
			{
				Name:    "history",
				Aliases: []string{"h"},
				Usage:   "Show recently applied wallpapers",
				Flags:   history.GetFlags(),
				Action:  history.Handle,
			},
		},
	}
}
