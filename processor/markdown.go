package processor

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ZaguanLabs/mdxlai"
)

// ContentTypeMarkdown identifies markdown bodies in errors and node types.
const ContentTypeMarkdown = "markdown"

var fencedCodePattern = regexp.MustCompile("```[\\s\\S]*?```")

// MarkdownProcessor extracts translatable chunks from a markdown body for
// one target locale. Fenced code blocks are never translated.
type MarkdownProcessor struct {
	target     mdxlai.Locale
	brandTerms []string
	chunkSize  int
}

// MarkdownOption configures a MarkdownProcessor.
type MarkdownOption func(*MarkdownProcessor)

// WithBrandTerms sets the terms kept verbatim in Chinese output.
func WithBrandTerms(terms []string) MarkdownOption {
	return func(p *MarkdownProcessor) {
		p.brandTerms = terms
	}
}

// WithChunkSize sets the per-request character budget.
func WithChunkSize(n int) MarkdownOption {
	return func(p *MarkdownProcessor) {
		if n > 0 {
			p.chunkSize = n
		}
	}
}

// NewMarkdownProcessor creates a processor translating into target.
func NewMarkdownProcessor(target mdxlai.Locale, opts ...MarkdownOption) *MarkdownProcessor {
	p := &MarkdownProcessor{
		target:     target,
		brandTerms: mdxlai.DefaultBrandTerms,
		chunkSize:  DefaultChunkSize,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Target returns the locale the processor translates into.
func (p *MarkdownProcessor) Target() mdxlai.Locale {
	return p.target
}

// ContentType returns "markdown".
func (p *MarkdownProcessor) ContentType() string {
	return ContentTypeMarkdown
}

// piece is a slice of the body: either kept verbatim or sent for
// translation with its own placeholders.
type piece struct {
	text   string // verbatim text, or the protected chunk
	tokens TokenMap
	hash   string // empty for verbatim pieces
}

type parsedMarkdown struct {
	pieces   []piece
	verbatim bool // nothing to translate; Apply returns the body as given
}

// Extract splits body into code blocks, verbatim text and protected chunks.
func (p *MarkdownProcessor) Extract(body string) (any, []TextNode, error) {
	parsed := &parsedMarkdown{}

	// A blank body, or an English target with no Chinese anywhere, has
	// nothing to do.
	if strings.TrimSpace(body) == "" || (p.target == mdxlai.LocaleEN && !mdxlai.HasCJK(body)) {
		parsed.pieces = append(parsed.pieces, piece{text: body})
		parsed.verbatim = true
		return parsed, nil, nil
	}

	var nodes []TextNode
	for i, seg := range splitFences(body) {
		if seg.code || !p.needsTranslation(seg.text) {
			parsed.pieces = append(parsed.pieces, piece{text: seg.text})
			continue
		}

		for _, chunk := range SplitChunks(seg.text, p.chunkSize) {
			if strings.TrimSpace(chunk) == "" {
				parsed.pieces = append(parsed.pieces, piece{text: chunk})
				continue
			}

			protected, tokens := Protect(chunk, p.protectedTerms())
			hash := mdxlai.HashText(protected)
			parsed.pieces = append(parsed.pieces, piece{text: protected, tokens: tokens, hash: hash})
			nodes = append(nodes, TextNode{
				ID:       fmt.Sprintf("chunk-%d", len(nodes)),
				Text:     protected,
				Hash:     hash,
				NodeType: "mdx_text",
				Metadata: map[string]string{"segment": fmt.Sprint(i)},
			})
		}
	}

	return parsed, nodes, nil
}

// Apply restores placeholders in each translated chunk and reassembles
// the body. The result is trimmed and ends with exactly one newline,
// except for bodies Extract found nothing to translate in, which are
// returned unchanged.
func (p *MarkdownProcessor) Apply(parsed any, nodes []TextNode, translations map[string]string) (string, error) {
	doc, ok := parsed.(*parsedMarkdown)
	if !ok {
		return "", &mdxlai.ProcessorError{
			Message:     fmt.Sprintf("unexpected parsed content %T", parsed),
			ContentType: ContentTypeMarkdown,
		}
	}

	if doc.verbatim {
		return doc.pieces[0].text, nil
	}

	var b strings.Builder
	for _, pc := range doc.pieces {
		if pc.hash == "" {
			b.WriteString(pc.text)
			continue
		}

		translated, ok := translations[pc.hash]
		if !ok {
			translated = pc.text
		}
		// Chunks sharing a hash differ at most in surrounding whitespace;
		// each keeps its own.
		translated = keepSurroundingSpace(pc.text, strings.TrimSpace(translated))
		translated = Restore(translated, pc.tokens)
		if p.target == mdxlai.LocaleZH {
			// Recasing covers the whole restored chunk, inline code,
			// link targets and URLs included.
			translated = mdxlai.CanonicalizeTerms(translated, p.brandTerms)
		}
		b.WriteString(translated)
	}

	return strings.TrimSpace(b.String()) + "\n", nil
}

func (p *MarkdownProcessor) needsTranslation(text string) bool {
	if strings.TrimSpace(text) == "" {
		return false
	}
	return p.target != mdxlai.LocaleEN || mdxlai.HasCJK(text)
}

func (p *MarkdownProcessor) protectedTerms() []string {
	if p.target == mdxlai.LocaleZH {
		return p.brandTerms
	}
	return nil
}

type fenceSegment struct {
	text string
	code bool
}

// splitFences cuts body around ``` fenced blocks, dropping empty segments.
func splitFences(body string) []fenceSegment {
	var segs []fenceSegment
	last := 0
	for _, loc := range fencedCodePattern.FindAllStringIndex(body, -1) {
		if loc[0] > last {
			segs = append(segs, fenceSegment{text: body[last:loc[0]]})
		}
		segs = append(segs, fenceSegment{text: body[loc[0]:loc[1]], code: true})
		last = loc[1]
	}
	if last < len(body) {
		segs = append(segs, fenceSegment{text: body[last:]})
	}
	return segs
}

// keepSurroundingSpace wraps core in the leading and trailing whitespace of orig.
func keepSurroundingSpace(orig, core string) string {
	trimmed := strings.TrimSpace(orig)
	if trimmed == "" {
		return orig
	}
	lead := orig[:strings.Index(orig, trimmed)]
	trail := orig[len(lead)+len(trimmed):]
	return lead + core + trail
}

var _ ContentProcessor = (*MarkdownProcessor)(nil)
