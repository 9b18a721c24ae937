package simpledesktops

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"git.asdf.cafe/abs3nt/simpledesktop/constants"
	"git.asdf.cafe/abs3nt/simpledesktop/errors"
)

// Source is the part of the catalog the cache depends on; *Client implements it.
type Source interface {
	FetchPage(ctx context.Context, offset uint32) (*CatalogPage, error)
	FetchImage(ctx context.Context, url string, w io.Writer) (int64, error)
}

// Cache stores downloaded wallpapers under <base>/SimpleDesktop keyed by title.
// Files are written once and never evicted.
type Cache struct {
	source Source
	logger *slog.Logger
}

// NewCache creates a cache backed by source
func NewCache(source Source, logger *slog.Logger) *Cache {
	if logger == nil {
		logger = slog.Default()
	}
	return &Cache{source: source, logger: logger}
}

var titleReplacer = strings.NewReplacer("/", "-", `\`, "-")

// CachePath returns where a wallpaper with the given title is stored.
func CachePath(baseDir, title string) string {
	return filepath.Join(baseDir, constants.WallpaperFolder, titleReplacer.Replace(title)+constants.WallpaperExt)
}

// EnsureDownloaded fetches the catalog entry at offset and makes sure its image
// is on disk. An existing file with the same title counts as a hit, whatever its content.
func (c *Cache) EnsureDownloaded(ctx context.Context, offset uint32, baseDir string) (*DownloadedWallpaper, error) {
	page, err := c.source.FetchPage(ctx, offset)
	if err != nil {
		return nil, err
	}
	if len(page.Entries) == 0 {
		return nil, errors.API(fmt.Sprintf("select entry at offset %d", offset), errors.ErrEmptyPage)
	}

	entry := page.Entries[0]
	target := CachePath(baseDir, entry.Title)

	if err := os.MkdirAll(filepath.Dir(target), constants.DirPermissions); err != nil {
		return nil, errors.IO("create wallpaper directory", err)
	}

	if _, err := os.Stat(target); err == nil {
		c.logger.Debug("Wallpaper already cached", "path", target)
		return &DownloadedWallpaper{Path: target, Entry: entry, Cached: true}, nil
	} else if !os.IsNotExist(err) {
		return nil, errors.IO("check cached wallpaper", err)
	}

	if err := c.download(ctx, entry.ImageURL, target); err != nil {
		return nil, err
	}

	c.logger.Log(ctx, constants.LevelTrace, "Downloaded wallpaper", "path", target)
	return &DownloadedWallpaper{Path: target, Entry: entry}, nil
}

// download writes to a temporary file next to target and renames it into place,
// so an interrupted download never looks like a cache hit.
func (c *Cache) download(ctx context.Context, url, target string) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(target), "."+filepath.Base(target)+".*.part")
	if err != nil {
		return errors.IO("create temporary file", err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	written, err := c.source.FetchImage(ctx, url, tmp)
	if err != nil {
		return err
	}
	if err = tmp.Chmod(constants.FilePermissions); err != nil {
		return errors.IO("set file permissions", err)
	}
	if err = tmp.Close(); err != nil {
		return errors.IO("close temporary file", err)
	}
	if err = os.Rename(tmp.Name(), target); err != nil {
		return errors.IO("move wallpaper into place", err)
	}

	c.logger.Debug("Download completed", "bytes_written", written)
	return nil
}
