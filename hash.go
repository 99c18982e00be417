package mdxlai

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// HashText computes the SHA-256 hash of the trimmed text.
func HashText(text string) string {
	trimmed := strings.TrimSpace(text)
	hash := sha256.Sum256([]byte(trimmed))
	return hex.EncodeToString(hash[:])
}

// CacheKey builds the composite cache key for a translation.
// The format matches the persisted cache file: "source|target|text".
func CacheKey(sourceLang, targetLang, text string) string {
	return sourceLang + "|" + targetLang + "|" + text
}

// KeyDigest returns a fixed-length digest of a composite cache key,
// for stores that prefer short keys.
func KeyDigest(key string) string {
	hash := sha256.Sum256([]byte(key))
	return hex.EncodeToString(hash[:])
}
