package cache

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/ZaguanLabs/mdxlai"
)

// ExportVersion is the current export format version.
const ExportVersion = "1.0"

// ExportFormat is the portable JSON document written by Exporter.
type ExportFormat struct {
	Version    string            `json:"version"`
	ExportedAt string            `json:"exported_at"`
	Entries    []ExportEntry     `json:"entries"`
	Skipped    int               `json:"skipped,omitempty"` // Keys that are not source|target|text
	Metadata   map[string]string `json:"metadata,omitempty"`
}

// ExportEntry is one cached translation with its composite key split
// into language pair and source text.
type ExportEntry struct {
	Source      string `json:"source"`
	Target      string `json:"target"`
	Text        string `json:"text"`
	Translation string `json:"translation"`
}

// Key rebuilds the composite cache key.
func (e ExportEntry) Key() string {
	return mdxlai.CacheKey(e.Source, e.Target, e.Text)
}

// splitKey parses a "source|target|text" key. The text may contain "|".
func splitKey(key string) (ExportEntry, bool) {
	parts := strings.SplitN(key, "|", 3)
	if len(parts) != 3 || parts[0] == "" || parts[1] == "" || parts[2] == "" {
		return ExportEntry{}, false
	}
	return ExportEntry{Source: parts[0], Target: parts[1], Text: parts[2]}, true
}

// Exporter writes the contents of an enumerable cache.
type Exporter struct {
	cache EntryLister
	now   func() time.Time
}

// NewExporter creates a new cache exporter.
func NewExporter(cache EntryLister) *Exporter {
	return &Exporter{cache: cache, now: time.Now}
}

// Export writes the cache to w, entries ordered by language pair and
// text. It returns the number of entries written.
func (e *Exporter) Export(w io.Writer, metadata map[string]string) (int, error) {
	export := ExportFormat{
		Version:    ExportVersion,
		ExportedAt: e.now().UTC().Format(time.RFC3339),
		Metadata:   metadata,
	}

	for key, value := range e.cache.Entries() {
		entry, ok := splitKey(key)
		if !ok {
			export.Skipped++
			continue
		}
		entry.Translation = value
		export.Entries = append(export.Entries, entry)
	}
	sort.Slice(export.Entries, func(i, j int) bool {
		return export.Entries[i].Key() < export.Entries[j].Key()
	})

	encoder := json.NewEncoder(w)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(export); err != nil {
		return 0, fmt.Errorf("encoding JSON: %w", err)
	}

	return len(export.Entries), nil
}

// ExportToFile exports the cache to a file.
func (e *Exporter) ExportToFile(path string, metadata map[string]string) (int, error) {
	f, err := os.Create(path) // #nosec G304 - path is intentionally user-provided
	if err != nil {
		return 0, fmt.Errorf("creating file: %w", err)
	}
	defer f.Close()

	return e.Export(f, metadata)
}

// Importer loads export documents, or plain cache files, into a cache.
type Importer struct {
	cache TranslationCache
}

// NewImporter creates a new cache importer.
func NewImporter(cache TranslationCache) *Importer {
	return &Importer{cache: cache}
}

// Import reads r into the cache, overwriting existing keys. Both the
// export document and the flat {"source|target|text": translation}
// object of a cache file are accepted. Malformed entries are counted as
// failed and skipped.
func (i *Importer) Import(r io.Reader) (*ImportResult, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}

	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("decoding JSON: %w", err)
	}
	if _, ok := probe["entries"]; !ok {
		return i.importFlat(data)
	}

	var export ExportFormat
	if err := json.NewDecoder(bytes.NewReader(data)).Decode(&export); err != nil {
		return nil, fmt.Errorf("decoding export: %w", err)
	}
	if major, _, _ := strings.Cut(export.Version, "."); major != "1" {
		return nil, fmt.Errorf("unsupported export version %q", export.Version)
	}

	result := &ImportResult{
		Version:  export.Version,
		Metadata: export.Metadata,
	}
	for _, entry := range export.Entries {
		if entry.Source == "" || entry.Target == "" || entry.Text == "" {
			result.Failed++
			continue
		}
		i.store(result, entry.Key(), entry.Translation)
	}
	return result, nil
}

func (i *Importer) importFlat(data []byte) (*ImportResult, error) {
	var entries map[string]string
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("decoding cache file: %w", err)
	}

	result := &ImportResult{Flat: true}
	for key, value := range entries {
		if _, ok := splitKey(key); !ok {
			result.Failed++
			continue
		}
		i.store(result, key, value)
	}
	return result, nil
}

func (i *Importer) store(result *ImportResult, key, value string) {
	if err := i.cache.Set(key, value); err != nil {
		result.Failed++
		return
	}
	result.Imported++
}

// ImportFromFile imports cache entries from a file.
func (i *Importer) ImportFromFile(path string) (*ImportResult, error) {
	f, err := os.Open(path) // #nosec G304 - path is intentionally user-provided
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	return i.Import(f)
}

// ImportResult contains statistics about the import operation.
type ImportResult struct {
	Version  string
	Metadata map[string]string
	Flat     bool // Input was a plain cache file
	Imported int
	Failed   int
}
