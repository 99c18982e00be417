// Package pipeline migrates per-tool documentation folders into English
// and Chinese variants.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/ZaguanLabs/mdxlai"
	"github.com/ZaguanLabs/mdxlai/mdx"
	"github.com/ZaguanLabs/mdxlai/processor"
)

// BodyTranslationThreshold is the CJK share above which a source body is
// translated to English.
const BodyTranslationThreshold = 0.08

// Tool is one documentation set: a source folder and its two outputs.
type Tool struct {
	Name           string
	SourceDir      string
	EnglishDir     string
	ChineseDir     string
	CaptionMarkers []string // Lines containing one of these are italicized in English output
}

// Pipeline turns source documents into locale variants.
type Pipeline struct {
	translator *mdxlai.Translator
	brandTerms []string
	chunkSize  int
	logger     *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithBrandTerms sets the product names kept verbatim in Chinese output.
func WithBrandTerms(terms []string) Option {
	return func(p *Pipeline) {
		p.brandTerms = terms
	}
}

// WithChunkSize sets the per-request character budget for bodies.
func WithChunkSize(n int) Option {
	return func(p *Pipeline) {
		if n > 0 {
			p.chunkSize = n
		}
	}
}

// New creates a Pipeline translating through translator.
func New(translator *mdxlai.Translator, opts ...Option) *Pipeline {
	p := &Pipeline{
		translator: translator,
		brandTerms: mdxlai.DefaultBrandTerms,
		chunkSize:  processor.DefaultChunkSize,
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// FileResult describes the two documents written for one source file.
type FileResult struct {
	Source      string
	EnglishPath string
	ChinesePath string
	Slug        string
	Fallbacks   int // Texts left untranslated after exhausted retries
}

// ToolResult summarizes one tool run.
type ToolResult struct {
	Tool      string
	Files     int
	Failed    int
	Fallbacks int
}

// Run processes every tool in order and saves the translation cache after
// each one. Per-document failures are logged and counted; cancellation
// stops the run.
func (p *Pipeline) Run(ctx context.Context, tools []Tool) ([]ToolResult, error) {
	var (
		results []ToolResult
		errs    []error
	)
	for _, tool := range tools {
		res, err := p.RunTool(ctx, tool)
		results = append(results, res)

		if saveErr := p.translator.Save(); saveErr != nil {
			p.logger.Error("saving translation cache", slog.String("error", saveErr.Error()))
			errs = append(errs, saveErr)
		}
		if err != nil {
			errs = append(errs, err)
			break
		}
	}
	return results, errors.Join(errs...)
}

// RunTool processes the .mdx files directly inside tool.SourceDir in
// sorted order.
func (p *Pipeline) RunTool(ctx context.Context, tool Tool) (ToolResult, error) {
	res := ToolResult{Tool: tool.Name}

	files, err := mdx.ListFiles(tool.SourceDir, false)
	if err != nil {
		return res, fmt.Errorf("listing %s: %w", tool.SourceDir, err)
	}
	for _, dir := range []string{tool.EnglishDir, tool.ChineseDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return res, fmt.Errorf("creating %s: %w", dir, err)
		}
	}

	p.logger.Info("processing tool", slog.String("tool", tool.Name),
		slog.String("source", tool.SourceDir), slog.Int("files", len(files)))

	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		fr, err := p.ProcessFile(ctx, file, tool)
		if err != nil {
			if ctx.Err() != nil {
				return res, ctx.Err()
			}
			res.Failed++
			p.logger.Warn("document failed", slog.String("file", file), slog.String("error", err.Error()))
			continue
		}

		res.Files++
		res.Fallbacks += fr.Fallbacks
		p.logger.Debug("document migrated",
			slog.String("file", file),
			slog.String("slug", fr.Slug),
			slog.String("zh", filepath.Base(fr.ChinesePath)))
	}

	p.logger.Info("tool done", slog.String("tool", tool.Name),
		slog.Int("files", res.Files), slog.Int("failed", res.Failed), slog.Int("fallbacks", res.Fallbacks))
	return res, nil
}

// ProcessFile writes the English and Chinese variants of one source
// document. The Chinese body is always derived from the English output.
func (p *Pipeline) ProcessFile(ctx context.Context, path string, tool Tool) (*FileResult, error) {
	raw, err := os.ReadFile(path) // #nosec G304 - source tree comes from configuration
	if err != nil {
		return nil, &mdxlai.DocumentError{Path: path, Stage: "read", Err: err}
	}

	name := filepath.Base(path)
	stem := strings.TrimSuffix(name, filepath.Ext(name))
	res := &FileResult{Source: path}

	doc := mdx.Parse(string(raw))
	body := mdx.NormalizeHTML(mdx.RemoveImports(doc.Body))

	titleEN, descEN, slug := p.englishFields(ctx, doc.Frontmatter, stem, res)
	res.Slug = slug

	bodyEN := body
	if mdxlai.CJKRatio(body) > BodyTranslationThreshold {
		bodyEN, err = p.translateBody(ctx, body, mdxlai.LocaleEN, mdxlai.LangAuto, res)
		if err != nil {
			return nil, &mdxlai.DocumentError{Path: path, Stage: "translate", Err: err}
		}
	}
	bodyEN = mdx.NormalizeHTML(bodyEN)
	bodyEN = mdx.ItalicizeCaptions(bodyEN, tool.CaptionMarkers)
	bodyEN = mdx.EnsureAds(bodyEN)

	res.EnglishPath = filepath.Join(tool.EnglishDir, name)
	if err := writeDocument(res.EnglishPath, mdx.Frontmatter{
		mdx.KeyTitle:       titleEN,
		mdx.KeyDescription: descEN,
		mdx.KeyTool:        tool.Name,
		mdx.KeySlug:        slug,
		mdx.KeyLocale:      string(mdxlai.LocaleEN),
	}, bodyEN); err != nil {
		return nil, err
	}

	bodyZH, err := p.translateBody(ctx, bodyEN, mdxlai.LocaleZH, mdxlai.LangEnglish, res)
	if err != nil {
		return nil, &mdxlai.DocumentError{Path: path, Stage: "translate", Err: err}
	}
	bodyZH = mdx.EnsureAds(mdx.NormalizeHTML(bodyZH))

	titleZH := p.translateField(ctx, titleEN, mdxlai.LangEnglish, mdxlai.LangChinese, res)
	descZH := p.translateField(ctx, descEN, mdxlai.LangEnglish, mdxlai.LangChinese, res)
	titleZH = mdxlai.CanonicalizeTerms(titleZH, p.brandTerms)
	descZH = mdxlai.CanonicalizeTerms(descZH, p.brandTerms)

	res.ChinesePath = filepath.Join(tool.ChineseDir, p.TranslateFilename(ctx, name))
	if err := writeDocument(res.ChinesePath, mdx.Frontmatter{
		mdx.KeyTitle:       strings.TrimSpace(titleZH),
		mdx.KeyDescription: strings.TrimSpace(descZH),
		mdx.KeyTool:        tool.Name,
		mdx.KeySlug:        slug,
		mdx.KeyLocale:      string(mdxlai.LocaleZH),
	}, bodyZH); err != nil {
		return nil, err
	}

	return res, nil
}

// englishFields returns the English title, description and slug. Missing
// values default to the file stem and the title respectively; fields are
// translated only when they contain CJK text.
func (p *Pipeline) englishFields(ctx context.Context, fm mdx.Frontmatter, stem string, res *FileResult) (title, desc, slug string) {
	title = fm.Get(mdx.KeyTitle, stem)
	desc = fm.Get(mdx.KeyDescription, title)
	slug = strings.TrimSpace(fm.Get(mdx.KeySlug, ""))

	if mdxlai.HasCJK(title) {
		title = p.translateField(ctx, title, mdxlai.LangAuto, mdxlai.LangEnglish, res)
	}
	if mdxlai.HasCJK(desc) {
		desc = p.translateField(ctx, desc, mdxlai.LangAuto, mdxlai.LangEnglish, res)
	}
	title = strings.TrimSpace(title)

	if !mdx.ValidSlug(slug) {
		slug = mdx.Slugify(title, stem)
	}
	return title, strings.TrimSpace(desc), slug
}

func (p *Pipeline) translateField(ctx context.Context, text, source, target string, res *FileResult) string {
	r := p.translator.Translate(ctx, text, source, target)
	if r.Fallback() {
		res.Fallbacks++
	}
	return r.Text
}

func (p *Pipeline) translateBody(ctx context.Context, body string, target mdxlai.Locale, source string, res *FileResult) (string, error) {
	proc := processor.NewMarkdownProcessor(target,
		processor.WithBrandTerms(p.brandTerms),
		processor.WithChunkSize(p.chunkSize))

	out, err := p.translator.Process(ctx, body, proc, source, mdxlai.ServiceLang(target))
	if err != nil {
		return "", fmt.Errorf("translating body to %s: %w", target, err)
	}
	res.Fallbacks += out.FallbackCount
	return out.Content, nil
}

func writeDocument(path string, fm mdx.Frontmatter, body string) error {
	if err := os.WriteFile(path, []byte(mdx.Compose(fm, body)), 0o644); err != nil { // #nosec G306 - published content
		return &mdxlai.DocumentError{Path: path, Stage: "write", Err: err}
	}
	return nil
}
