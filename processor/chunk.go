package processor

import (
	"regexp"
	"unicode/utf8"
)

// DefaultChunkSize is the per-request character budget.
const DefaultChunkSize = 800

var paragraphBreak = regexp.MustCompile(`\n\n+`)

// SplitChunks splits text into pieces of at most maxChars characters,
// breaking only at blank-line runs. Separators are kept, so the chunks
// concatenate back to text. A paragraph longer than maxChars becomes a
// chunk of its own.
func SplitChunks(text string, maxChars int) []string {
	if maxChars <= 0 {
		maxChars = DefaultChunkSize
	}
	if utf8.RuneCountInString(text) <= maxChars {
		return []string{text}
	}

	var (
		chunks  []string
		current string
		size    int
	)
	for _, piece := range splitKeepingBreaks(text) {
		n := utf8.RuneCountInString(piece)
		if size+n <= maxChars {
			current += piece
			size += n
			continue
		}
		if current != "" {
			chunks = append(chunks, current)
		}
		current, size = piece, n
	}
	if current != "" {
		chunks = append(chunks, current)
	}
	return chunks
}

// splitKeepingBreaks alternates paragraph text and the break runs between them.
func splitKeepingBreaks(text string) []string {
	var pieces []string
	last := 0
	for _, loc := range paragraphBreak.FindAllStringIndex(text, -1) {
		if loc[0] > last {
			pieces = append(pieces, text[last:loc[0]])
		}
		pieces = append(pieces, text[loc[0]:loc[1]])
		last = loc[1]
	}
	if last < len(text) {
		pieces = append(pieces, text[last:])
	}
	return pieces
}
