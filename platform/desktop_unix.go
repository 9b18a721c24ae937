//go:build linux || freebsd || openbsd || netbsd || dragonfly

package platform

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/godbus/dbus/v5"
	"github.com/joho/godotenv"

	"git.asdf.cafe/abs3nt/simpledesktop/errors"
)

// picturesDirectory reads XDG_PICTURES_DIR from user-dirs.dirs and falls back
// to ~/Pictures.
func picturesDirectory(d *Desktop) (string, error) {
	home, err := d.home()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}

	configHome := d.getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		configHome = filepath.Join(home, ".config")
	}

	data, err := os.ReadFile(filepath.Join(configHome, "user-dirs.dirs"))
	if err == nil {
		if dir, ok := parseUserDirs(string(data), home); ok {
			return dir, nil
		}
	} else if !os.IsNotExist(err) {
		d.logger.Warn("Failed to read user-dirs.dirs", "error", err)
	}

	return filepath.Join(home, "Pictures"), nil
}

// parseUserDirs extracts XDG_PICTURES_DIR. A value equal to $HOME means the
// directory is disabled.
func parseUserDirs(content, home string) (string, bool) {
	vars, err := godotenv.Unmarshal(strings.ReplaceAll(content, "$HOME", home))
	if err != nil {
		return "", false
	}
	dir := strings.TrimSpace(vars["XDG_PICTURES_DIR"])
	if dir == "" || !filepath.IsAbs(dir) {
		return "", false
	}
	dir = filepath.Clean(dir)
	if dir == filepath.Clean(home) {
		return "", false
	}
	return dir, true
}

func setBackground(d *Desktop, path string) error {
	current := strings.ToLower(d.getenv("XDG_CURRENT_DESKTOP"))
	uri := (&url.URL{Scheme: "file", Path: path}).String()

	switch {
	case containsAny(current, "gnome", "unity", "budgie", "pantheon"):
		if err := d.run("gsettings", "set", "org.gnome.desktop.background", "picture-uri", uri); err != nil {
			return err
		}
		// picture-uri-dark only exists on GNOME 42 and later
		if err := d.run("gsettings", "set", "org.gnome.desktop.background", "picture-uri-dark", uri); err != nil {
			d.logger.Debug("Could not set dark wallpaper", "error", err)
		}
		return nil
	case containsAny(current, "cinnamon"):
		return d.run("gsettings", "set", "org.cinnamon.desktop.background", "picture-uri", uri)
	case containsAny(current, "mate"):
		return d.run("gsettings", "set", "org.mate.background", "picture-filename", path)
	case containsAny(current, "kde"):
		return d.plasma(path)
	case containsAny(current, "xfce"):
		return d.setXfce(path)
	}

	if _, err := d.lookPath("swww"); err == nil {
		return d.run("swww", "img", path)
	}
	if _, err := d.lookPath("feh"); err == nil {
		return d.run("feh", "--bg-fill", path)
	}
	return fmt.Errorf("%w: no wallpaper setter for desktop %q", errors.ErrUnsupportedPlatform, current)
}

// setXfce updates every last-image property xfdesktop knows about.
func (d *Desktop) setXfce(path string) error {
	out, err := d.output("xfconf-query", "-c", "xfce4-desktop", "-l")
	if err != nil {
		return err
	}

	var updated int
	for _, prop := range strings.Split(string(out), "\n") {
		prop = strings.TrimSpace(prop)
		if !strings.HasSuffix(prop, "/last-image") {
			continue
		}
		if err := d.run("xfconf-query", "-c", "xfce4-desktop", "-p", prop, "-s", path); err != nil {
			return err
		}
		updated++
	}
	if updated == 0 {
		return fmt.Errorf("xfconf-query: no last-image properties found")
	}
	return nil
}

const plasmaScript = `var allDesktops = desktops();
for (var i = 0; i < allDesktops.length; i++) {
	var d = allDesktops[i];
	d.wallpaperPlugin = "org.kde.image";
	d.currentConfigGroup = ["Wallpaper", "org.kde.image", "General"];
	d.writeConfig("Image", %s);
}`

// setPlasmaWallpaper asks plasmashell over the session bus to change the image.
func setPlasmaWallpaper(path string) error {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return fmt.Errorf("connect session bus: %w", err)
	}
	defer conn.Close()

	uri := (&url.URL{Scheme: "file", Path: path}).String()
	script := fmt.Sprintf(plasmaScript, strconv.Quote(uri))

	obj := conn.Object("org.kde.plasmashell", "/PlasmaShell")
	if call := obj.Call("org.kde.PlasmaShell.evaluateScript", 0, script); call.Err != nil {
		return fmt.Errorf("plasmashell evaluateScript: %w", call.Err)
	}
	return nil
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
