package simpledesktops

import (
	"crypto/sha256"
	"database/sql"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"git.asdf.cafe/abs3nt/simpledesktop/constants"
)

// Application is one time a wallpaper was set as the desktop background
type Application struct {
	ID         int64     `json:"id"`
	RunID      string    `json:"run_id"`
	Offset     uint32    `json:"offset"`
	Cached     bool      `json:"cached"`
	AppliedAt  time.Time `json:"applied_at"`
	Path       string    `json:"path"`
	EntryID    string    `json:"entry_id"`
	Title      string    `json:"title"`
	ImageURL   string    `json:"image_url"`
	Permalink  string    `json:"permalink"`
	Hash       string    `json:"hash"`
	Size       int64     `json:"size"`
	Resolution string    `json:"resolution"`
	UseCount   int       `json:"use_count"`
}

// HistoryStats summarises the history database
type HistoryStats struct {
	Wallpapers   int
	Applications int
	TotalSize    int64
	FirstApplied time.Time
	LastApplied  time.Time
	MostUsed     *Application
}

// History records applied wallpapers in SQLite
type History struct {
	db *sql.DB
	mu sync.RWMutex // protects database operations
}

// OpenHistory opens or creates the history database at dbPath
func OpenHistory(dbPath string) (*History, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), constants.DirPermissions); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	h := &History{db: db}

	if err := h.initialize(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return h, nil
}

// initialize creates the database schema
func (h *History) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS wallpapers (
		path TEXT PRIMARY KEY,
		entry_id TEXT NOT NULL,
		title TEXT NOT NULL,
		image_url TEXT NOT NULL,
		permalink TEXT NOT NULL,
		hash TEXT NOT NULL,
		size INTEGER NOT NULL,
		resolution TEXT,
		first_applied DATETIME NOT NULL,
		last_applied DATETIME NOT NULL,
		use_count INTEGER NOT NULL DEFAULT 1
	);

	CREATE TABLE IF NOT EXISTS applications (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		path TEXT NOT NULL,
		run_id TEXT NOT NULL,
		catalog_offset INTEGER NOT NULL,
		cached BOOLEAN NOT NULL,
		applied_at DATETIME NOT NULL,
		FOREIGN KEY (path) REFERENCES wallpapers(path) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_wallpapers_last_applied ON wallpapers(last_applied);
	CREATE INDEX IF NOT EXISTS idx_applications_path ON applications(path);
	CREATE INDEX IF NOT EXISTS idx_applications_run_id ON applications(run_id);
	`

	_, err := h.db.Exec(schema)
	return err
}

// Close closes the database connection
func (h *History) Close() error {
	return h.db.Close()
}

// Record stores that wp was applied at appliedAt
func (h *History) Record(runID string, offset uint32, wp *DownloadedWallpaper, appliedAt time.Time) error {
	hash, size, err := CalculateFileHash(wp.Path)
	if err != nil {
		return fmt.Errorf("failed to calculate hash: %w", err)
	}

	resolution, err := getImageResolution(wp.Path)
	if err != nil {
		slog.Warn("Failed to get image resolution", "path", wp.Path, "error", err)
		resolution = ""
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	tx, err := h.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// The first entry stored under a path keeps its metadata; later title
	// collisions only bump the counters.
	_, err = tx.Exec(`
		INSERT INTO wallpapers (path, entry_id, title, image_url, permalink, hash, size, resolution, first_applied, last_applied, use_count)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 1)
		ON CONFLICT(path) DO UPDATE SET
			last_applied = excluded.last_applied,
			use_count = use_count + 1,
			hash = excluded.hash,
			size = excluded.size
	`, wp.Path, wp.Entry.ID, wp.Entry.Title, wp.Entry.ImageURL, wp.Entry.Permalink, hash, size, resolution, appliedAt, appliedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert wallpaper: %w", err)
	}

	_, err = tx.Exec(`
		INSERT INTO applications (path, run_id, catalog_offset, cached, applied_at)
		VALUES (?, ?, ?, ?, ?)
	`, wp.Path, runID, offset, wp.Cached, appliedAt)
	if err != nil {
		return fmt.Errorf("failed to insert application: %w", err)
	}

	return tx.Commit()
}

const applicationColumns = `
	a.id, a.run_id, a.catalog_offset, a.cached, a.applied_at,
	w.path, w.entry_id, w.title, w.image_url, w.permalink, w.hash, w.size,
	COALESCE(w.resolution, ''), w.use_count`

func scanApplication(row interface{ Scan(...any) error }) (*Application, error) {
	var a Application
	err := row.Scan(&a.ID, &a.RunID, &a.Offset, &a.Cached, &a.AppliedAt,
		&a.Path, &a.EntryID, &a.Title, &a.ImageURL, &a.Permalink, &a.Hash, &a.Size,
		&a.Resolution, &a.UseCount)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Recent returns the last limit applications, newest first
func (h *History) Recent(limit int) ([]*Application, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if limit <= 0 {
		limit = constants.DefaultHistoryLimit
	}

	rows, err := h.db.Query(`
		SELECT `+applicationColumns+`
		FROM applications a
		JOIN wallpapers w ON w.path = a.path
		ORDER BY a.id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	var out []*Application
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// Stats returns totals over the whole history
func (h *History) Stats() (*HistoryStats, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	stats := &HistoryStats{}
	err := h.db.QueryRow(`SELECT COUNT(*), COALESCE(SUM(size), 0) FROM wallpapers`).Scan(&stats.Wallpapers, &stats.TotalSize)
	if err != nil {
		return nil, fmt.Errorf("failed to count wallpapers: %w", err)
	}
	if err := h.db.QueryRow(`SELECT COUNT(*) FROM applications`).Scan(&stats.Applications); err != nil {
		return nil, fmt.Errorf("failed to count applications: %w", err)
	}
	if stats.Applications == 0 {
		return stats, nil
	}

	h.db.QueryRow(`SELECT applied_at FROM applications ORDER BY id ASC LIMIT 1`).Scan(&stats.FirstApplied)
	h.db.QueryRow(`SELECT applied_at FROM applications ORDER BY id DESC LIMIT 1`).Scan(&stats.LastApplied)

	mostUsed, err := scanApplication(h.db.QueryRow(`
		SELECT ` + applicationColumns + `
		FROM applications a
		JOIN wallpapers w ON w.path = a.path
		ORDER BY w.use_count DESC, a.id DESC
		LIMIT 1
	`))
	if err == nil {
		stats.MostUsed = mostUsed
	}

	return stats, nil
}

// getImageResolution returns the resolution of an image as "WIDTHxHEIGHT"
func getImageResolution(filePath string) (string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return "", err
	}
	defer file.Close()

	img, _, err := image.DecodeConfig(file)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%dx%d", img.Width, img.Height), nil
}

// CalculateFileHash calculates SHA256 hash and size of a file
func CalculateFileHash(filePath string) (string, int64, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return "", 0, err
	}
	defer file.Close()

	hash := sha256.New()
	size, err := io.Copy(hash, file)
	if err != nil {
		return "", 0, err
	}

	return fmt.Sprintf("%x", hash.Sum(nil)), size, nil
}
