// Package platform resolves the user's pictures directory and applies desktop
// backgrounds. Each supported operating system provides picturesDirectory and
// setBackground in its own build-tagged file.
package platform

import (
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"git.asdf.cafe/abs3nt/simpledesktop/errors"
)

// Desktop implements interfaces.Desktop for the running operating system
type Desktop struct {
	logger   *slog.Logger
	getenv   func(string) string
	home     func() (string, error)
	output   func(name string, args ...string) ([]byte, error)
	lookPath func(file string) (string, error)
	plasma   func(path string) error
}

// New creates a Desktop backed by the real operating system
func New(logger *slog.Logger) *Desktop {
	if logger == nil {
		logger = slog.Default()
	}
	return &Desktop{
		logger:   logger,
		getenv:   os.Getenv,
		home:     os.UserHomeDir,
		output:   commandOutput,
		lookPath: exec.LookPath,
		plasma:   setPlasmaWallpaper,
	}
}

// DefaultPicturesDirectory returns the user's standard pictures folder
func (d *Desktop) DefaultPicturesDirectory() (string, error) {
	dir, err := picturesDirectory(d)
	if err != nil {
		return "", errors.Platform("resolve pictures directory", err)
	}
	d.logger.Debug("Resolved pictures directory", "path", dir)
	return dir, nil
}

// SetDesktopBackground applies the image at path as the wallpaper. The setting
// is persisted by the desktop and survives a reboot.
func (d *Desktop) SetDesktopBackground(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return errors.Platform("set desktop background", err)
	}
	if err := setBackground(d, abs); err != nil {
		return errors.Platform("set desktop background", err)
	}
	d.logger.Info("Desktop background updated", "path", abs)
	return nil
}

func commandOutput(name string, args ...string) ([]byte, error) {
	out, err := exec.Command(name, args...).CombinedOutput()
	if err != nil {
		return out, fmt.Errorf("%s: %w: %s", name, err, strings.TrimSpace(string(out)))
	}
	return out, nil
}

func (d *Desktop) run(name string, args ...string) error {
	d.logger.Debug("Running command", "command", name, "args", args)
	_, err := d.output(name, args...)
	return err
}
