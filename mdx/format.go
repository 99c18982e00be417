package mdx

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

var (
	htmlComment       = regexp.MustCompile(`<!--\s*([\s\S]*?)\s*-->`)
	gluedComponent    = regexp.MustCompile(`([^\n])(<(?:Callout|AdPlaceholder|WorkflowSteps|ToggleSection)\b)`)
	gluedClosingTag   = regexp.MustCompile(`(</(?:Callout|WorkflowSteps|ToggleSection)>)([^\n])`)
	gluedFence        = regexp.MustCompile("([^\\s`])(```)")
	anchorElement     = regexp.MustCompile(`<a\s+href=[^>]*>[\s\S]*?</a>`)
	bareAngleWord     = regexp.MustCompile("(`?)<(DIRECTORY|stdio|full|feature)>(`?)")
	headingComponent  = regexp.MustCompile(`(?m)^(#{1,6}[^\n<]+)<(Callout|ToggleSection|WorkflowSteps)\b`)
	fenceGluedToProse = strings.NewReplacer(
		"```###", "```\n###",
		"```For", "```\nFor",
		"```This", "```\nThis",
		"```To", "```\nTo",
		"```After", "```\nAfter",
	)
)

// FixFormat repairs MDX that breaks the site build: HTML comments become
// JSX comments, block components and code fences get their own lines,
// plain anchors are unwrapped to their content and bare placeholder words
// such as <stdio> are wrapped in backticks.
func FixFormat(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = htmlComment.ReplaceAllString(text, "{/* $1 */}")
	text = gluedComponent.ReplaceAllString(text, "$1\n$2")
	text = gluedClosingTag.ReplaceAllString(text, "$1\n$2")
	text = gluedFence.ReplaceAllString(text, "$1\n$2")
	text = fenceGluedToProse.Replace(text)
	text = anchorElement.ReplaceAllStringFunc(text, unwrapAnchor)
	text = bareAngleWord.ReplaceAllStringFunc(text, func(m string) string {
		if strings.HasPrefix(m, "`") && strings.HasSuffix(m, "`") {
			return m
		}
		return "`" + strings.Trim(m, "`") + "`"
	})
	text = headingComponent.ReplaceAllString(text, "$1\n<$2")
	return text
}

// unwrapAnchor returns the content of a single <a> element. Text is kept
// as parsed; nested elements are re-rendered.
func unwrapAnchor(fragment string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return fragment
	}

	anchor := doc.Find("a").First()
	if anchor.Length() == 0 {
		return fragment
	}

	var b strings.Builder
	for c := anchor.Get(0).FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
			continue
		}
		if err := html.Render(&b, c); err != nil {
			return fragment
		}
	}
	return b.String()
}
