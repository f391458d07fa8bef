package imagecache

import (
	"bytes"
	"context"
	"fmt"
	"hash/fnv"
	"image"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/disintegration/imaging"
)

const defaultRetention = 168 * time.Hour

// Photo is a single search result offered to the cache for download.
type Photo struct {
	URL    string
	Width  int
	Height int
}

// Searcher is the external image-search provider. Implementations return
// landscape-oriented matches, best first.
type Searcher interface {
	Search(ctx context.Context, query string) ([]Photo, error)
	Download(ctx context.Context, photoURL string) ([]byte, error)
}

// Status tags a Fetch outcome. Provider failures never surface as errors;
// they collapse into StatusUnavailable so every caller has to handle the
// no-image case explicitly.
type Status int

const (
	StatusHit Status = iota
	StatusFetched
	StatusUnavailable
)

// Result is the tagged outcome of a cache lookup.
type Result struct {
	Status Status
	Path   string
}

// Available reports whether the result carries a usable image path.
func (r Result) Available() bool {
	return r.Status == StatusHit || r.Status == StatusFetched
}

type Config struct {
	Dir       string
	Retention time.Duration
	MaxWidth  int
}

// Cache is a local on-disk image cache keyed by normalized search term,
// backed by a flat file directory plus a sqlite index. It is used by a
// single process at a time; there is no cross-process locking.
type Cache struct {
	dir       string
	index     *Index
	searcher  Searcher
	retention time.Duration
	maxWidth  int
	now       func() time.Time
}

func New(cfg Config, searcher Searcher) (*Cache, error) {
	if err := os.MkdirAll(cfg.Dir, 0755); err != nil {
		return nil, fmt.Errorf("create cache directory: %w", err)
	}

	index, err := OpenIndex(cfg.Dir)
	if err != nil {
		return nil, err
	}

	retention := cfg.Retention
	if retention <= 0 {
		retention = defaultRetention
	}

	return &Cache{
		dir:       cfg.Dir,
		index:     index,
		searcher:  searcher,
		retention: retention,
		maxWidth:  cfg.MaxWidth,
		now:       time.Now,
	}, nil
}

func (c *Cache) Close() error {
	return c.index.Close()
}

// NormalizeKey turns a search term into its cache key: lowercase, trimmed,
// inner whitespace collapsed to single spaces.
func NormalizeKey(term string) string {
	return strings.Join(strings.Fields(strings.ToLower(term)), " ")
}

// Fetch resolves a search term to a local image path. A valid cached entry
// is returned without any network call; otherwise the term is searched,
// the first usable landscape match downloaded and recorded. Any provider
// failure (network error, rate limit, zero results) yields
// StatusUnavailable so the caller can fall back to a placeholder.
func (c *Cache) Fetch(ctx context.Context, term string) Result {
	key := NormalizeKey(term)
	if key == "" {
		return Result{Status: StatusUnavailable}
	}

	entry, err := c.index.Get(key)
	if err != nil {
		slog.Warn("Cache index lookup failed", "key", key, "error", err)
	}
	if entry != nil {
		if fileUsable(entry.FilePath) {
			slog.Debug("Cache hit", "key", key, "path", entry.FilePath)
			return Result{Status: StatusHit, Path: entry.FilePath}
		}
		// The file behind the entry is gone or empty: the entry is
		// invalid, drop it and refetch.
		slog.Warn("Cache entry points to unusable file, refetching", "key", key, "path", entry.FilePath)
		if err := c.index.Delete(key); err != nil {
			slog.Warn("Failed to drop stale cache entry", "key", key, "error", err)
		}
	}

	if c.searcher == nil {
		return Result{Status: StatusUnavailable}
	}

	photos, err := c.searcher.Search(ctx, key)
	if err != nil {
		slog.Warn("Image search failed", "key", key, "error", err)
		return Result{Status: StatusUnavailable}
	}
	if len(photos) == 0 {
		slog.Warn("No image results", "key", key)
		return Result{Status: StatusUnavailable}
	}

	path, ok := c.downloadFirstUsable(ctx, key, photos)
	if !ok {
		return Result{Status: StatusUnavailable}
	}

	if err := c.index.Put(key, path, c.now()); err != nil {
		slog.Warn("Failed to record cache entry", "key", key, "error", err)
	}

	return Result{Status: StatusFetched, Path: path}
}

func (c *Cache) downloadFirstUsable(ctx context.Context, key string, photos []Photo) (string, bool) {
	for _, photo := range photos {
		data, err := c.searcher.Download(ctx, photo.URL)
		if err != nil {
			slog.Debug("Image download failed", "url", photo.URL, "error", err)
			continue
		}

		img, err := imaging.Decode(bytes.NewReader(data))
		if err != nil {
			slog.Debug("Undecodable image skipped", "url", photo.URL, "error", err)
			continue
		}
		if !isLandscape(img) {
			slog.Debug("Non-landscape image skipped", "url", photo.URL)
			continue
		}

		if c.maxWidth > 0 && img.Bounds().Dx() > c.maxWidth {
			img = imaging.Resize(img, c.maxWidth, 0, imaging.Lanczos)
		}

		path := filepath.Join(c.dir, cacheFileName(key))
		if err := imaging.Save(img, path, imaging.JPEGQuality(90)); err != nil {
			slog.Warn("Failed to write cached image", "path", path, "error", err)
			return "", false
		}

		return path, true
	}

	return "", false
}

// Cleanup removes entries older than the retention window along with
// their files, and deletes image files the index no longer knows about.
// The policy is purely age-bound.
func (c *Cache) Cleanup() error {
	cutoff := c.now().Add(-c.retention)

	expired, err := c.index.ListOlderThan(cutoff)
	if err != nil {
		return err
	}
	for _, e := range expired {
		if err := os.Remove(e.FilePath); err != nil && !os.IsNotExist(err) {
			slog.Warn("Failed to remove expired image", "path", e.FilePath, "error", err)
		}
		if err := c.index.Delete(e.Key); err != nil {
			return err
		}
		slog.Debug("Removed expired cache entry", "key", e.Key)
	}

	return c.removeOrphans()
}

// Clear empties the cache entirely.
func (c *Cache) Clear() (int, error) {
	entries, err := c.index.List()
	if err != nil {
		return 0, err
	}

	for _, e := range entries {
		if err := os.Remove(e.FilePath); err != nil && !os.IsNotExist(err) {
			slog.Warn("Failed to remove cached image", "path", e.FilePath, "error", err)
		}
		if err := c.index.Delete(e.Key); err != nil {
			return 0, err
		}
	}

	return len(entries), c.removeOrphans()
}

func (c *Cache) removeOrphans() error {
	entries, err := c.index.List()
	if err != nil {
		return err
	}
	known := make(map[string]bool, len(entries))
	for _, e := range entries {
		known[filepath.Base(e.FilePath)] = true
	}

	files, err := os.ReadDir(c.dir)
	if err != nil {
		return fmt.Errorf("read cache directory: %w", err)
	}
	for _, f := range files {
		if f.IsDir() || f.Name() == indexFileName || known[f.Name()] {
			continue
		}
		if !isImageFile(f.Name()) {
			continue
		}
		if err := os.Remove(filepath.Join(c.dir, f.Name())); err != nil {
			slog.Warn("Failed to remove orphaned image", "name", f.Name(), "error", err)
		}
	}

	return nil
}

// Len returns the number of indexed entries.
func (c *Cache) Len() (int, error) {
	entries, err := c.index.List()
	if err != nil {
		return 0, err
	}
	return len(entries), nil
}

func fileUsable(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Size() > 0
}

func isLandscape(img image.Image) bool {
	b := img.Bounds()
	return b.Dx() >= b.Dy()
}

func isImageFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".jpg", ".jpeg", ".png":
		return true
	}
	return false
}

// cacheFileName derives a deterministic file name from the cache key. The
// readable prefix keeps the directory browsable; the hash suffix keeps
// distinct keys from colliding after sanitization.
func cacheFileName(key string) string {
	var b strings.Builder
	for _, r := range key {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteRune('_')
		}
	}
	safe := b.String()
	if len(safe) > 50 {
		safe = safe[:50]
	}

	h := fnv.New32a()
	_, _ = h.Write([]byte(key))

	return fmt.Sprintf("%s_%08x.jpg", safe, h.Sum32())
}
