package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"
)

// OnceHandler applies a single random wallpaper and exits
type OnceHandler struct {
	logger *slog.Logger
	level  *slog.LevelVar
	out    io.Writer
}

// NewOnceHandler creates a new once handler
func NewOnceHandler(logger *slog.Logger, level *slog.LevelVar) *OnceHandler {
	return &OnceHandler{
		logger: logger,
		level:  level,
		out:    os.Stdout,
	}
}

// Handle processes the once command
func (h *OnceHandler) Handle(ctx context.Context, c *cli.Command) error {
	cfg, err := buildConfig(c, h.level)
	if err != nil {
		h.logger.Error("Configuration validation failed", "error", err)
		return err
	}

	sched, closeHistory := newScheduler(cfg, h.logger)
	defer closeHistory()

	st, err := sched.Init(ctx)
	if err != nil {
		return err
	}

	wp, err := sched.ApplyRandom(ctx, st)
	if err != nil {
		return err
	}

	fmt.Fprintln(h.out, wp.Path)
	return nil
}

// GetFlags returns the CLI flags for the once command
func (h *OnceHandler) GetFlags() []cli.Flag {
	return nil
}
