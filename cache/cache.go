// Package cache provides translation cache stores: an in-memory map, a
// JSON file persisted on demand, and Redis.
package cache

// TranslationCache is the interface for translation caching.
type TranslationCache interface {
	// Get retrieves a cached translation. Returns empty string and false if not found or expired.
	Get(key string) (string, bool)

	// Set stores a translation in the cache.
	Set(key string, value string) error
}

// EntryLister is implemented by caches that can enumerate their entries.
type EntryLister interface {
	Entries() map[string]string
}
