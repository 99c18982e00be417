package cache

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// FileCache is an in-memory cache backed by a JSON file.
//
// The file holds a flat object of composite key to translation. It is
// read once by LoadFileCache and written only by Save, so entries added
// after the last Save are lost on abnormal termination.
type FileCache struct {
	*InMemoryCache
	path string
}

// LoadFileCache reads the cache file at path. A missing or corrupt file
// yields an empty cache; corruption is logged, never returned.
func LoadFileCache(path string, logger *slog.Logger) *FileCache {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	fc := &FileCache{
		InMemoryCache: NewInMemoryCache(0),
		path:          path,
	}

	data, err := os.ReadFile(path) // #nosec G304 - cache path comes from configuration
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warn("cache file unreadable, starting empty",
				slog.String("path", path), slog.String("error", err.Error()))
		}
		return fc
	}

	var entries map[string]string
	if err := json.Unmarshal(data, &entries); err != nil {
		logger.Warn("cache file corrupt, starting empty",
			slog.String("path", path), slog.String("error", err.Error()))
		return fc
	}

	fc.Merge(entries)
	logger.Debug("cache loaded", slog.String("path", path), slog.Int("entries", len(entries)))
	return fc
}

// Path returns the backing file path.
func (c *FileCache) Path() string {
	return c.path
}

// Save writes every entry to the backing file. The write goes through a
// temporary file so a crash mid-save keeps the previous snapshot.
func (c *FileCache) Save() error {
	data, err := encodeEntries(c.Entries())
	if err != nil {
		return fmt.Errorf("encoding cache: %w", err)
	}

	dir := filepath.Dir(c.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating cache directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".cache-*.json")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing cache: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing cache: %w", err)
	}

	if err := os.Rename(tmp.Name(), c.path); err != nil {
		return fmt.Errorf("replacing %s: %w", c.path, err)
	}
	return nil
}

// encodeEntries renders entries as indented JSON with keys sorted and
// markup left unescaped.
func encodeEntries(entries map[string]string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(entries); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

var _ TranslationCache = (*FileCache)(nil)
