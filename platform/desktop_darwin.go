//go:build darwin

package platform

import (
	"fmt"
	"path/filepath"
	"strconv"
)

func picturesDirectory(d *Desktop) (string, error) {
	home, err := d.home()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, "Pictures"), nil
}

// setBackground uses AppleScript to set the picture of every desktop.
func setBackground(d *Desktop, path string) error {
	script := `tell application "System Events" to tell every desktop to set picture to ` + strconv.Quote(path)
	return d.run("osascript", "-e", script)
}

func setPlasmaWallpaper(string) error {
	return fmt.Errorf("plasma is not available on darwin")
}
