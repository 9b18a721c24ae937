package simpledesktops

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	apperrors "git.asdf.cafe/abs3nt/simpledesktop/errors"
)

// fakeSource serves canned pages and images and counts image downloads.
type fakeSource struct {
	pages     map[uint32]*CatalogPage
	images    map[string][]byte
	imageErr  error
	downloads int
}

func (f *fakeSource) FetchPage(_ context.Context, offset uint32) (*CatalogPage, error) {
	page, ok := f.pages[offset]
	if !ok {
		return &CatalogPage{}, nil
	}
	return page, nil
}

func (f *fakeSource) FetchImage(_ context.Context, url string, w io.Writer) (int64, error) {
	f.downloads++
	if f.imageErr != nil {
		// write a little first so a partial file would exist without the rename
		_, _ = w.Write([]byte("partial"))
		return 7, f.imageErr
	}
	n, err := io.Copy(w, bytes.NewReader(f.images[url]))
	return n, err
}

func pageWith(title, url string) *CatalogPage {
	return &CatalogPage{
		Metadata: PageMetadata{Limit: 1, TotalCount: 1},
		Entries:  []CatalogEntry{{ID: "1", Title: title, ImageURL: url}},
	}
}

func TestCachePath(t *testing.T) {
	tests := []struct {
		name  string
		base  string
		title string
		want  string
	}{
		{"plain", "/pics", "Sunset", filepath.Join("/pics", "SimpleDesktop", "Sunset.png")},
		{"spaces", "/pics", "Big Sky", filepath.Join("/pics", "SimpleDesktop", "Big Sky.png")},
		{"slash in title", "/pics", "AC/DC", filepath.Join("/pics", "SimpleDesktop", "AC-DC.png")},
		{"traversal", "/pics", "../../etc/passwd", filepath.Join("/pics", "SimpleDesktop", "..-..-etc-passwd.png")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CachePath(tt.base, tt.title)
			if got != tt.want {
				t.Errorf("CachePath() = %s, want %s", got, tt.want)
			}
			if again := CachePath(tt.base, tt.title); again != got {
				t.Errorf("CachePath() not stable: %s then %s", got, again)
			}
		})
	}
}

func TestCache_EnsureDownloaded(t *testing.T) {
	tmpDir := t.TempDir()
	image := []byte("sunset image bytes")
	source := &fakeSource{
		pages:  map[uint32]*CatalogPage{0: pageWith("Sunset", "http://x/sunset.png")},
		images: map[string][]byte{"http://x/sunset.png": image},
	}
	cache := NewCache(source, nil)

	first, err := cache.EnsureDownloaded(context.Background(), 0, tmpDir)
	if err != nil {
		t.Fatalf("EnsureDownloaded() error = %v", err)
	}

	wantPath := filepath.Join(tmpDir, "SimpleDesktop", "Sunset.png")
	if first.Path != wantPath {
		t.Errorf("Expected path %s, got %s", wantPath, first.Path)
	}
	if first.Cached {
		t.Error("Expected first download not to be a cache hit")
	}

	data, err := os.ReadFile(wantPath)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(data, image) {
		t.Errorf("Expected file content %q, got %q", image, data)
	}

	second, err := cache.EnsureDownloaded(context.Background(), 0, tmpDir)
	if err != nil {
		t.Fatalf("EnsureDownloaded() second call error = %v", err)
	}
	if second.Path != first.Path {
		t.Errorf("Expected identical paths, got %s and %s", first.Path, second.Path)
	}
	if !second.Cached {
		t.Error("Expected second call to be a cache hit")
	}
	if source.downloads != 1 {
		t.Errorf("Expected exactly 1 image download, got %d", source.downloads)
	}
}

func TestCache_TitleCollisionIsCacheHit(t *testing.T) {
	tmpDir := t.TempDir()
	source := &fakeSource{
		pages: map[uint32]*CatalogPage{
			0: pageWith("Waves", "http://x/waves-1.png"),
			1: pageWith("Waves", "http://x/waves-2.png"),
		},
		images: map[string][]byte{
			"http://x/waves-1.png": []byte("first"),
			"http://x/waves-2.png": []byte("second"),
		},
	}
	cache := NewCache(source, nil)

	if _, err := cache.EnsureDownloaded(context.Background(), 0, tmpDir); err != nil {
		t.Fatal(err)
	}
	got, err := cache.EnsureDownloaded(context.Background(), 1, tmpDir)
	if err != nil {
		t.Fatal(err)
	}

	if !got.Cached {
		t.Error("Expected colliding title to be treated as a cache hit")
	}
	data, _ := os.ReadFile(got.Path)
	if string(data) != "first" {
		t.Errorf("Expected first image to be kept, got %q", data)
	}
}

func TestCache_EmptyPage(t *testing.T) {
	tmpDir := t.TempDir()
	source := &fakeSource{pages: map[uint32]*CatalogPage{}}
	cache := NewCache(source, nil)

	_, err := cache.EnsureDownloaded(context.Background(), 7, tmpDir)
	if !apperrors.Is(err, apperrors.KindAPI) {
		t.Fatalf("Expected ApiError, got %v", err)
	}
	if !errors.Is(err, apperrors.ErrEmptyPage) {
		t.Errorf("Expected ErrEmptyPage in chain, got %v", err)
	}

	entries, err := os.ReadDir(tmpDir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("Expected no filesystem writes, found %d entries", len(entries))
	}
	if source.downloads != 0 {
		t.Errorf("Expected no downloads, got %d", source.downloads)
	}
}

func TestCache_FailedDownloadLeavesNoFile(t *testing.T) {
	tmpDir := t.TempDir()
	source := &fakeSource{
		pages:    map[uint32]*CatalogPage{0: pageWith("Sunset", "http://x/sunset.png")},
		imageErr: apperrors.Request("download", errors.New("connection reset")),
	}
	cache := NewCache(source, nil)

	_, err := cache.EnsureDownloaded(context.Background(), 0, tmpDir)
	if !apperrors.Is(err, apperrors.KindRequest) {
		t.Fatalf("Expected RequestError, got %v", err)
	}

	entries, err := os.ReadDir(filepath.Join(tmpDir, "SimpleDesktop"))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("Expected no leftover files, found %v", entries)
	}

	// a later attempt must download again rather than hit a partial file
	source.imageErr = nil
	source.images = map[string][]byte{"http://x/sunset.png": []byte("ok")}
	got, err := cache.EnsureDownloaded(context.Background(), 0, tmpDir)
	if err != nil {
		t.Fatal(err)
	}
	if got.Cached {
		t.Error("Expected retry after failure to download, not hit the cache")
	}
}

func TestCache_DirectoryCreationFailure(t *testing.T) {
	tmpDir := t.TempDir()
	blocker := filepath.Join(tmpDir, "file")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	source := &fakeSource{pages: map[uint32]*CatalogPage{0: pageWith("Sunset", "http://x/sunset.png")}}
	cache := NewCache(source, nil)

	_, err := cache.EnsureDownloaded(context.Background(), 0, blocker)
	if !apperrors.Is(err, apperrors.KindIO) {
		t.Errorf("Expected IoError, got %v", err)
	}
}
