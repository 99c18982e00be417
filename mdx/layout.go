package mdx

import (
	"strings"
	"unicode"
)

// AdPlaceholder is the ad slot component line.
const AdPlaceholder = "<AdPlaceholder />"

// CodexCaptionMarkers mark image-description lines in the Codex docs.
var CodexCaptionMarkers = []string{"Image Description", "image description", "Codex app showing"}

// NormalizeHTML rewrites both line-break spellings to <br />.
func NormalizeHTML(text string) string {
	text = strings.ReplaceAll(text, "<br>", "<br />")
	return strings.ReplaceAll(text, "<br/>", "<br />")
}

// RemoveImports drops the component import lines and leading blank lines.
// The result is trimmed and ends with a newline.
func RemoveImports(body string) string {
	var kept []string
	for _, line := range strings.Split(body, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "import { AdPlaceholder }") ||
			strings.HasPrefix(trimmed, "import { Callout }") {
			continue
		}
		kept = append(kept, line)
	}
	for len(kept) > 0 && strings.TrimSpace(kept[0]) == "" {
		kept = kept[1:]
	}
	return strings.TrimSpace(strings.Join(kept, "\n")) + "\n"
}

// ItalicizeCaptions wraps every line containing one of markers in
// *italics*, unless it already is. Matching is case-sensitive.
func ItalicizeCaptions(body string, markers []string) string {
	if len(markers) == 0 {
		return body
	}

	lines := strings.Split(body, "\n")
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || !containsAny(trimmed, markers) {
			continue
		}
		if strings.HasPrefix(trimmed, "*") && strings.HasSuffix(trimmed, "*") {
			continue
		}
		lines[i] = "*" + trimmed + "*"
	}
	return strings.Join(lines, "\n")
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if sub != "" && strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// EnsureAds makes sure the body carries ad slots after the first heading
// and at the very end.
//
// With no slot at all, one goes after the first heading (or at the top).
// A slot is appended when the last line is not one. If fewer than two
// slots exist after that, another is inserted after the first heading.
// Depending on the input the result holds two or three slots; output is
// a fixed point.
func EnsureAds(body string) string {
	trimmed := strings.TrimSpace(body)
	if trimmed == "" {
		return AdPlaceholder + "\n\n" + AdPlaceholder + "\n"
	}

	raw := strings.Split(trimmed, "\n")
	lines := make([]string, len(raw))
	count := 0
	for i, line := range raw {
		lines[i] = strings.TrimRightFunc(line, unicode.IsSpace)
		if strings.TrimSpace(lines[i]) == AdPlaceholder {
			count++
		}
	}

	if count < 1 {
		lines = insertAd(lines, afterFirstHeading(lines))
		count++
	}

	if strings.TrimSpace(lines[len(lines)-1]) != AdPlaceholder {
		lines = append(lines, "", AdPlaceholder)
		count++
	}

	if count < 2 {
		lines = insertAd(lines, afterFirstHeading(lines))
	}

	return strings.TrimSpace(strings.Join(lines, "\n")) + "\n"
}

// CountAds returns the number of ad slot lines in body.
func CountAds(body string) int {
	n := 0
	for _, line := range strings.Split(body, "\n") {
		if strings.TrimSpace(line) == AdPlaceholder {
			n++
		}
	}
	return n
}

// afterFirstHeading returns the index just past the first line starting
// with '#', or 0 when there is none.
func afterFirstHeading(lines []string) int {
	for i, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "#") {
			return i + 1
		}
	}
	return 0
}

func insertAd(lines []string, at int) []string {
	out := make([]string, 0, len(lines)+2)
	out = append(out, lines[:at]...)
	out = append(out, "", AdPlaceholder)
	return append(out, lines[at:]...)
}
