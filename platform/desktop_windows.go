//go:build windows

package platform

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	user32                    = windows.NewLazySystemDLL("user32.dll")
	procSystemParametersInfoW = user32.NewProc("SystemParametersInfoW")
)

const (
	spiSetDeskWallpaper = 0x0014
	spifUpdateIniFile   = 0x01
	spifSendChange      = 0x02
)

func picturesDirectory(_ *Desktop) (string, error) {
	dir, err := windows.KnownFolderPath(windows.FOLDERID_Pictures, 0)
	if err != nil {
		return "", fmt.Errorf("SHGetKnownFolderPath failed: %w", err)
	}
	return dir, nil
}

func setBackground(_ *Desktop, path string) error {
	p, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return err
	}
	r1, _, callErr := procSystemParametersInfoW.Call(
		spiSetDeskWallpaper,
		0,
		uintptr(unsafe.Pointer(p)),
		spifUpdateIniFile|spifSendChange,
	)
	if r1 == 0 {
		return fmt.Errorf("SystemParametersInfoW failed: %w", callErr)
	}
	return nil
}

// setPlasmaWallpaper is only reachable on Linux desktops.
func setPlasmaWallpaper(string) error {
	return fmt.Errorf("plasma is not available on windows")
}
