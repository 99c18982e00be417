package pipeline

import (
	"context"
	"strings"

	"github.com/ZaguanLabs/mdxlai"
	"github.com/ZaguanLabs/mdxlai/mdx"
)

// TranslateFilename derives the Chinese file name from an English one.
// Names whose stem already contains CJK are kept. Otherwise each
// hyphen-separated segment is translated on its own and put back in
// place, keeping the hyphens and any padding inside the segment.
func (p *Pipeline) TranslateFilename(ctx context.Context, name string) string {
	stem := name
	hasExt := strings.HasSuffix(strings.ToLower(name), mdx.Ext)
	if hasExt {
		stem = name[:len(name)-len(mdx.Ext)]
	}

	if mdxlai.HasCJK(stem) {
		if hasExt {
			return name
		}
		return stem + mdx.Ext
	}

	parts := strings.Split(stem, "-")
	for i, part := range parts {
		core := strings.TrimSpace(part)
		if core == "" || mdxlai.HasCJK(core) {
			continue
		}
		translated := strings.TrimSpace(p.translator.TranslateText(ctx, core, mdxlai.LangEnglish, mdxlai.LangChinese))
		parts[i] = strings.Replace(part, core, sanitizeSegment(translated), 1)
	}
	return strings.Join(parts, "-") + mdx.Ext
}

// sanitizeSegment keeps a translated segment from escaping its directory.
func sanitizeSegment(s string) string {
	return strings.NewReplacer("/", "-", `\`, "-").Replace(s)
}
