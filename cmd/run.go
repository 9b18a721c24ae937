package cmd

import (
	"context"
	"errors"
	"log/slog"

	"github.com/urfave/cli/v3"
)

// RunHandler runs the wallpaper change loop until the process is stopped
type RunHandler struct {
	logger *slog.Logger
	level  *slog.LevelVar
}

// NewRunHandler creates a new run handler
func NewRunHandler(logger *slog.Logger, level *slog.LevelVar) *RunHandler {
	return &RunHandler{
		logger: logger,
		level:  level,
	}
}

// Handle processes the run command
func (h *RunHandler) Handle(ctx context.Context, c *cli.Command) error {
	cfg, err := buildConfig(c, h.level)
	if err != nil {
		h.logger.Error("Configuration validation failed", "error", err)
		return err
	}

	sched, closeHistory := newScheduler(cfg, h.logger)
	defer closeHistory()

	h.logger.Info("Starting wallpaper daemon", "run_id", sched.RunID(), "check_interval", cfg.CheckInterval)

	err = sched.Run(ctx)
	if errors.Is(err, context.Canceled) {
		h.logger.Info("Shutting down")
		return nil
	}
	return err
}

// GetFlags returns the CLI flags for the run command
func (h *RunHandler) GetFlags() []cli.Flag {
	return nil
}
