// Package interfaces defines interfaces for dependency injection
package interfaces

import (
	"context"
	"time"

	"git.asdf.cafe/abs3nt/simpledesktop/src/simpledesktops"
)

// Catalog defines the catalog operations the scheduler needs
type Catalog interface {
	TotalCount(ctx context.Context) (uint32, error)
}

// WallpaperCache defines the interface for the local wallpaper cache
type WallpaperCache interface {
	EnsureDownloaded(ctx context.Context, offset uint32, baseDir string) (*simpledesktops.DownloadedWallpaper, error)
}

// Desktop defines the operating system operations for wallpapers
type Desktop interface {
	DefaultPicturesDirectory() (string, error)
	SetDesktopBackground(path string) error
}

// HistoryStore defines the interface for recording applied wallpapers
type HistoryStore interface {
	Record(runID string, offset uint32, wp *simpledesktops.DownloadedWallpaper, appliedAt time.Time) error
	Recent(limit int) ([]*simpledesktops.Application, error)
	Stats() (*simpledesktops.HistoryStats, error)
	Close() error
}

// ScriptExecutor defines the interface for script execution
type ScriptExecutor interface {
	Execute(scriptPath, imagePath string) error
}
