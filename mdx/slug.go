package mdx

import (
	"path/filepath"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var (
	nonSlugRun = regexp.MustCompile(`[^a-z0-9]+`)
	validSlug  = regexp.MustCompile(`^[A-Za-z0-9-]+$`)
	mdxSuffix  = regexp.MustCompile(`(?i)(_final)?\.mdx$`)
)

// Slugify derives a URL slug from text: compatibility-decomposed, reduced
// to ASCII, lowercased, with every run of other characters collapsed to a
// single hyphen. When nothing is left, fallback is reduced the same way,
// and "doc" is the last resort.
func Slugify(text, fallback string) string {
	if s := reduce(asciiOnly(norm.NFKD.String(text))); s != "" {
		return s
	}
	if s := reduce(fallback); s != "" {
		return s
	}
	return "doc"
}

func asciiOnly(s string) string {
	return strings.Map(func(r rune) rune {
		if r > unicode.MaxASCII {
			return -1
		}
		return r
	}, s)
}

func reduce(s string) string {
	return strings.Trim(nonSlugRun.ReplaceAllString(strings.ToLower(s), "-"), "-")
}

// ValidSlug reports whether s can be reused as a slug as is.
func ValidSlug(s string) bool {
	return validSlug.MatchString(s)
}

// FileSlug derives a slug from a file name, dropping the ".mdx" or
// "_final.mdx" suffix.
func FileSlug(name string) string {
	name = mdxSuffix.ReplaceAllString(strings.ToLower(filepath.Base(name)), "")
	if s := reduce(name); s != "" {
		return s
	}
	return "doc"
}
