package mdxlai

import (
	"regexp"
	"sync"
)

var (
	termPatternsMu sync.Mutex
	termPatterns   = map[string]*regexp.Regexp{}
)

// TermPattern returns the whole-word, case-insensitive matcher for a brand
// term. Patterns are compiled once and shared.
func TermPattern(term string) *regexp.Regexp {
	termPatternsMu.Lock()
	defer termPatternsMu.Unlock()

	if re, ok := termPatterns[term]; ok {
		return re
	}
	re := regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(term) + `\b`)
	termPatterns[term] = re
	return re
}

// CanonicalizeTerms rewrites every case variant of each term back to its
// canonical spelling ("codex" → "Codex").
func CanonicalizeTerms(text string, terms []string) string {
	for _, term := range terms {
		text = TermPattern(term).ReplaceAllLiteralString(text, term)
	}
	return text
}
