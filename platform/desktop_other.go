//go:build !windows && !darwin && !linux && !freebsd && !openbsd && !netbsd && !dragonfly

package platform

import (
	"fmt"
	"runtime"

	"git.asdf.cafe/abs3nt/simpledesktop/errors"
)

func picturesDirectory(_ *Desktop) (string, error) {
	return "", fmt.Errorf("%w: %s", errors.ErrUnsupportedPlatform, runtime.GOOS)
}

func setBackground(_ *Desktop, _ string) error {
	return fmt.Errorf("%w: %s", errors.ErrUnsupportedPlatform, runtime.GOOS)
}

func setPlasmaWallpaper(string) error {
	return fmt.Errorf("%w: %s", errors.ErrUnsupportedPlatform, runtime.GOOS)
}
