package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"git.asdf.cafe/abs3nt/simpledesktop/cmd"
	"git.asdf.cafe/abs3nt/simpledesktop/errors"
)

func main() {
	logger, level := cmd.NewLogger(os.Stderr)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cmd.NewApp(logger, level, os.Stdout).Run(ctx, os.Args); err != nil {
		logger.Error("simpledesktop failed", "kind", errors.KindOf(err), "error", err)
		stop()
		os.Exit(1)
	}
}
