package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/urfave/cli/v3"

	"git.asdf.cafe/abs3nt/simpledesktop/constants"
	"git.asdf.cafe/abs3nt/simpledesktop/errors"
	"git.asdf.cafe/abs3nt/simpledesktop/src/simpledesktops"
	"git.asdf.cafe/abs3nt/simpledesktop/validator"
)

// HistoryHandler prints recently applied wallpapers
type HistoryHandler struct {
	logger *slog.Logger
	level  *slog.LevelVar
	out    io.Writer
}

// NewHistoryHandler creates a new history handler
func NewHistoryHandler(logger *slog.Logger, level *slog.LevelVar) *HistoryHandler {
	return &HistoryHandler{
		logger: logger,
		level:  level,
		out:    os.Stdout,
	}
}

// Handle processes the history command
func (h *HistoryHandler) Handle(ctx context.Context, c *cli.Command) error {
	cfg, err := buildConfig(c, h.level)
	if err != nil {
		h.logger.Error("Configuration validation failed", "error", err)
		return err
	}

	limit := int(c.Int("limit"))
	if err := validator.NewValidator().ValidateHistoryLimit(limit); err != nil {
		return errors.Configuration("validate config", err)
	}

	if cfg.HistoryPath == "" {
		fmt.Fprintln(h.out, "History is disabled.")
		return nil
	}
	if _, err := os.Stat(cfg.HistoryPath); os.IsNotExist(err) {
		fmt.Fprintln(h.out, "No wallpaper history found.")
		return nil
	}

	history, err := simpledesktops.OpenHistory(cfg.HistoryPath)
	if err != nil {
		return errors.IO("open history", err)
	}
	defer history.Close()

	apps, err := history.Recent(limit)
	if err != nil {
		return errors.IO("read history", err)
	}
	stats, err := history.Stats()
	if err != nil {
		return errors.IO("read history", err)
	}

	h.print(apps, stats)
	return nil
}

func (h *HistoryHandler) print(apps []*simpledesktops.Application, stats *simpledesktops.HistoryStats) {
	if len(apps) == 0 {
		fmt.Fprintln(h.out, "No wallpaper history found.")
		return
	}

	heading := color.New(color.FgCyan, color.Bold)
	title := color.New(color.Bold)
	dim := color.New(color.Faint)

	heading.Fprintf(h.out, "\nWallpaper History (last %d)\n", len(apps))
	fmt.Fprintln(h.out, strings.Repeat("=", 60))

	for i, a := range apps {
		fmt.Fprintf(h.out, "\n%d. ", i+1)
		title.Fprintln(h.out, a.Title)
		fmt.Fprintf(h.out, "   File:       %s\n", filepath.Base(a.Path))
		if a.Resolution != "" {
			fmt.Fprintf(h.out, "   Resolution: %s\n", a.Resolution)
		}
		fmt.Fprintf(h.out, "   Size:       %s\n", humanize.Bytes(uint64(a.Size)))
		fmt.Fprintf(h.out, "   Applied:    %s", humanize.Time(a.AppliedAt))
		if a.Cached {
			dim.Fprint(h.out, " (from cache)")
		}
		fmt.Fprintln(h.out)
		fmt.Fprintf(h.out, "   Used:       %s times\n", humanize.Comma(int64(a.UseCount)))
	}

	fmt.Fprintln(h.out)
	heading.Fprintln(h.out, "Totals")
	fmt.Fprintln(h.out, strings.Repeat("=", 60))
	fmt.Fprintf(h.out, "  Wallpapers:   %s\n", humanize.Comma(int64(stats.Wallpapers)))
	fmt.Fprintf(h.out, "  Changes:      %s\n", humanize.Comma(int64(stats.Applications)))
	fmt.Fprintf(h.out, "  Disk usage:   %s\n", humanize.Bytes(uint64(stats.TotalSize)))
	if !stats.FirstApplied.IsZero() {
		fmt.Fprintf(h.out, "  First change: %s\n", humanize.Time(stats.FirstApplied))
	}
	if stats.MostUsed != nil {
		fmt.Fprintf(h.out, "  Most used:    %s (%d times)\n", stats.MostUsed.Title, stats.MostUsed.UseCount)
	}
}

// GetFlags returns the CLI flags for the history command
func (h *HistoryHandler) GetFlags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:    "limit",
			Aliases: []string{"n"},
			Usage:   "Number of entries to show",
			Value:   constants.DefaultHistoryLimit,
		},
	}
}
