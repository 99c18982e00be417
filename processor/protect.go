package processor

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/ZaguanLabs/mdxlai"
)

// Token is one placeholder and the text it stands for.
type Token struct {
	Placeholder string
	Original    string
}

// TokenMap records the placeholders of one Protect call, in creation order.
type TokenMap []Token

// Original returns the text behind placeholder.
func (m TokenMap) Original(placeholder string) (string, bool) {
	for _, t := range m {
		if t.Placeholder == placeholder {
			return t.Original, true
		}
	}
	return "", false
}

var (
	inlineCodePattern   = regexp.MustCompile("`[^`]+`")
	markdownLinkPattern = regexp.MustCompile(`\[[^\]]+\]\([^)]+\)`)
	bareURLPattern      = regexp.MustCompile(`(?i)https?://[^\s)]+`)
	htmlTagPattern      = regexp.MustCompile(`<[^>]+>`)
)

// placeholderLetters are tried in order; the first whose "@@<L>" prefix is
// absent from the input names the placeholders.
const placeholderLetters = "PQRSTUVWXYZ"

// protector replaces pattern matches with placeholders, one pass at a time.
type protector struct {
	text   string
	prefix string
	tokens TokenMap
}

func newProtector(text string) *protector {
	prefix := "@@P"
	for _, l := range placeholderLetters {
		candidate := "@@" + string(l)
		if !strings.Contains(text, candidate) {
			prefix = candidate
			break
		}
	}
	return &protector{text: text, prefix: prefix}
}

func (p *protector) replace(re *regexp.Regexp) {
	p.text = re.ReplaceAllStringFunc(p.text, func(match string) string {
		placeholder := p.prefix + strconv.Itoa(len(p.tokens)) + "@@"
		p.tokens = append(p.tokens, Token{Placeholder: placeholder, Original: match})
		return placeholder
	})
}

// protectInlineCode hides `code` spans.
func (p *protector) protectInlineCode() { p.replace(inlineCodePattern) }

// protectLinks hides [text](target) links.
func (p *protector) protectLinks() { p.replace(markdownLinkPattern) }

// protectURLs hides bare http(s) URLs.
func (p *protector) protectURLs() { p.replace(bareURLPattern) }

// protectTags hides HTML and JSX component tags.
func (p *protector) protectTags() { p.replace(htmlTagPattern) }

// protectTerms hides whole-word occurrences of each term, in any casing.
func (p *protector) protectTerms(terms []string) {
	for _, term := range terms {
		if term == "" {
			continue
		}
		p.replace(mdxlai.TermPattern(term))
	}
}

// Protect replaces the parts of text a translator must not touch with
// placeholders. Passes run in a fixed order: inline code, links, bare
// URLs, tags, then the given terms. Restore(Protect(text)) == text.
func Protect(text string, terms []string) (string, TokenMap) {
	p := newProtector(text)
	p.protectInlineCode()
	p.protectLinks()
	p.protectURLs()
	p.protectTags()
	if len(terms) > 0 {
		p.protectTerms(terms)
	}
	return p.text, p.tokens
}

// Restore puts the original text back for every placeholder in m.
// Later placeholders may contain earlier ones, so they are expanded first.
func Restore(text string, m TokenMap) string {
	for i := len(m) - 1; i >= 0; i-- {
		text = strings.ReplaceAll(text, m[i].Placeholder, m[i].Original)
	}
	return text
}
