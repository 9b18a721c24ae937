// Package cmd provides command handlers for the CLI
package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/urfave/cli/v3"

	"git.asdf.cafe/abs3nt/simpledesktop/config"
	"git.asdf.cafe/abs3nt/simpledesktop/constants"
	"git.asdf.cafe/abs3nt/simpledesktop/executor"
	"git.asdf.cafe/abs3nt/simpledesktop/platform"
	"git.asdf.cafe/abs3nt/simpledesktop/scheduler"
	"git.asdf.cafe/abs3nt/simpledesktop/src/simpledesktops"
)

// NewLogger returns a text logger on w whose level can be changed later
// through the returned LevelVar.
func NewLogger(w io.Writer) (*slog.Logger, *slog.LevelVar) {
	level := new(slog.LevelVar)
	level.Set(slog.LevelInfo)
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == slog.LevelKey {
				if lvl, ok := a.Value.Any().(slog.Level); ok && lvl <= constants.LevelTrace {
					a.Value = slog.StringValue("TRACE")
				}
			}
			return a
		},
	})
	return slog.New(handler), level
}

// ParseLogLevel maps a --log-level value to a slog level
func ParseLogLevel(value string) (slog.Level, error) {
	switch strings.ToLower(value) {
	case constants.LogLevelTrace:
		return constants.LevelTrace, nil
	case constants.LogLevelDebug:
		return slog.LevelDebug, nil
	case constants.LogLevelInfo:
		return slog.LevelInfo, nil
	case constants.LogLevelWarn:
		return slog.LevelWarn, nil
	case constants.LogLevelError:
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("unknown log level %q", value)
}

// GlobalFlags are shared by every command
func GlobalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:      "directory",
			Aliases:   []string{"d"},
			Usage:     "Base directory for downloaded wallpapers (defaults to the pictures folder)",
			TakesFile: true,
			Sources:   cli.EnvVars(constants.EnvDirectory),
		},
		&cli.StringFlag{
			Name:      "script",
			Aliases:   []string{"s"},
			Usage:     "Executable run with the image path after each change",
			TakesFile: true,
		},
		&cli.StringFlag{
			Name:      "history-path",
			Usage:     "Location of the history database",
			Value:     config.GetDefaultHistoryPath(),
			TakesFile: true,
		},
		&cli.BoolFlag{
			Name:  "no-history",
			Usage: "Do not record applied wallpapers",
		},
		&cli.StringFlag{
			Name:  "log-level",
			Usage: "Log level (" + strings.Join(constants.ValidLogLevels, "|") + ")",
			Value: constants.DefaultLogLevel,
		},
	}
}

// buildConfig overlays CLI values on the defaults and validates the result.
// The log level is applied to level as a side effect.
func buildConfig(c *cli.Command, level *slog.LevelVar) (*config.Config, error) {
	cfg := config.NewConfig()

	cfg.DownloadDirectory = c.String("directory")
	cfg.ScriptPath = c.String("script")
	cfg.HistoryPath = c.String("history-path")
	if c.Bool("no-history") {
		cfg.HistoryPath = ""
	}
	cfg.LogLevel = c.String("log-level")

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if level != nil {
		lvl, err := ParseLogLevel(cfg.LogLevel)
		if err != nil {
			return nil, err
		}
		level.Set(lvl)
	}
	return cfg, nil
}

// newScheduler wires the production collaborators. The returned close func
// releases the history database and is safe to call when history is disabled.
func newScheduler(cfg *config.Config, logger *slog.Logger) (*scheduler.Scheduler, func()) {
	client := simpledesktops.NewClient(logger)
	opts := scheduler.Options{
		Catalog:  client,
		Cache:    simpledesktops.NewCache(client, logger),
		Desktop:  platform.New(logger),
		Executor: executor.NewScriptExecutor(logger),
		Config:   cfg,
		Logger:   logger,
	}

	closeFn := func() {}
	if cfg.HistoryPath != "" {
		history, err := simpledesktops.OpenHistory(cfg.HistoryPath)
		if err != nil {
			logger.Warn("History disabled", "path", cfg.HistoryPath, "error", err)
		} else {
			opts.History = history
			closeFn = func() {
				if err := history.Close(); err != nil {
					logger.Warn("Failed to close history database", "error", err)
				}
			}
		}
	}

	return scheduler.New(opts), closeFn
}
