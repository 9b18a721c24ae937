// Package constants defines application constants
package constants

import (
	"log/slog"
	"time"
)

// Application constants
const (
	AppName    = "simpledesktop"
	AppVersion = "1.0.0"
	UserAgent  = "simpledesktop/1.0"
	HistoryDir = "simpledesktop"
	HistoryDB  = "history.db"
)

// Catalog constants
const (
	// CatalogURL returns exactly one entry per page; callers append &offset=N.
	CatalogURL      = "http://api.simpledesktops.com/v1/desktop_mobile/?format=json&limit=1"
	WallpaperFolder = "SimpleDesktop"
	WallpaperExt    = ".png"
)

// Environment variables
const (
	EnvDirectory = "SIMPLE_DESKTOP_DIRECTORY"
	EnvTimeout   = "SIMPLE_DESKTOP_TIMEOUT"
)

// Scheduling defaults
const (
	CheckInterval         = 60 * time.Second
	DefaultChangeInterval = 60 * time.Minute
)

// HTTP constants
const (
	MaxIdleConns        = 10
	MaxIdleConnsPerHost = 2
	IdleConnTimeout     = 30 // seconds
)

// Log levels
const (
	LogLevelTrace = "trace"
	LogLevelDebug = "debug"
	LogLevelInfo  = "info"
	LogLevelWarn  = "warn"
	LogLevelError = "error"
)

// Valid log levels
var ValidLogLevels = []string{
	LogLevelTrace, LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError,
}

// Default values
const (
	DefaultLogLevel     = LogLevelInfo
	DefaultHistoryLimit = 20
	MaxHistoryLimit     = 500
)

// File permission constants
const (
	DirPermissions  = 0o755
	FilePermissions = 0o644
)

// LevelTrace sits below slog.LevelDebug for per-download detail.
const LevelTrace = slog.Level(-8)
