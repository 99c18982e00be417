// Package mdx reads and writes the MDX documents of the docs site:
// frontmatter, layout fix-ups, slugs, formatting repair, table checks
// and the sitemap.
package mdx

import (
	"regexp"
	"strings"
)

// Frontmatter keys written to every output document, in order.
const (
	KeyTitle       = "title"
	KeyDescription = "description"
	KeyTool        = "tool"
	KeySlug        = "slug"
	KeyLocale      = "locale"
)

// FieldOrder is the serialization order of the frontmatter.
var FieldOrder = []string{KeyTitle, KeyDescription, KeyTool, KeySlug, KeyLocale}

// Component imports written after the frontmatter and stripped on input.
const (
	ImportAdPlaceholder = "import { AdPlaceholder } from '@/components/AdPlaceholder'"
	ImportCallout       = "import { Callout } from '@/components/Callout'"
)

// Frontmatter holds the flat key/value metadata of a document.
type Frontmatter map[string]string

// Get returns the value for key, or def when the key is absent.
func (f Frontmatter) Get(key, def string) string {
	if v, ok := f[key]; ok {
		return v
	}
	return def
}

// Document is a parsed MDX file.
type Document struct {
	Frontmatter Frontmatter
	Body        string
}

var frontmatterPattern = regexp.MustCompile(`(?s)^---\n(.*?)\n---\n?(.*)$`)

// Parse splits content into frontmatter and body. Content without a
// leading --- block yields empty frontmatter and the whole input as body.
func Parse(content string) Document {
	m := frontmatterPattern.FindStringSubmatch(content)
	if m == nil {
		return Document{Frontmatter: Frontmatter{}, Body: content}
	}

	fm := Frontmatter{}
	for _, line := range strings.Split(m[1], "\n") {
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		fm[strings.TrimSpace(key)] = parseValue(value)
	}
	return Document{Frontmatter: fm, Body: m[2]}
}

// parseValue reads a scalar written by QuoteYAML. Other values only lose
// surrounding whitespace and quote characters.
func parseValue(value string) string {
	v := strings.TrimSpace(value)
	if len(v) >= 2 && v[0] == '"' && v[len(v)-1] == '"' {
		return unquoteYAML(v[1 : len(v)-1])
	}
	return strings.Trim(strings.Trim(v, `"`), "'")
}

// unquoteYAML reverses the escaping done by QuoteYAML.
func unquoteYAML(v string) string {
	if !strings.Contains(v, `\`) {
		return v
	}
	var b strings.Builder
	for i := 0; i < len(v); i++ {
		if v[i] == '\\' && i+1 < len(v) && (v[i+1] == '\\' || v[i+1] == '"') {
			i++
		}
		b.WriteByte(v[i])
	}
	return b.String()
}

// Compose renders a document: the five frontmatter keys, both component
// imports, a blank line, then body as given.
func Compose(fm Frontmatter, body string) string {
	var b strings.Builder
	b.WriteString("---\n")
	for _, key := range FieldOrder {
		b.WriteString(key)
		b.WriteString(": ")
		b.WriteString(QuoteYAML(fm[key]))
		b.WriteByte('\n')
	}
	b.WriteString("---\n\n")
	b.WriteString(ImportAdPlaceholder + "\n")
	b.WriteString(ImportCallout + "\n\n")
	b.WriteString(body)
	return b.String()
}

// QuoteYAML double-quotes v, escaping backslashes and quotes.
func QuoteYAML(v string) string {
	v = strings.ReplaceAll(v, `\`, `\\`)
	v = strings.ReplaceAll(v, `"`, `\"`)
	return `"` + v + `"`
}
