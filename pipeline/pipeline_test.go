package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ZaguanLabs/mdxlai"
	"github.com/ZaguanLabs/mdxlai/cache"
	"github.com/ZaguanLabs/mdxlai/mdx"
	"github.com/ZaguanLabs/mdxlai/provider"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTool(t *testing.T, name string) Tool {
	t.Helper()
	root := t.TempDir()
	tool := Tool{
		Name:       name,
		SourceDir:  filepath.Join(root, "source"),
		EnglishDir: filepath.Join(root, "content", name, "en"),
		ChineseDir: filepath.Join(root, "content", name, "zh"),
	}
	require.NoError(t, os.MkdirAll(tool.SourceDir, 0o755))
	return tool
}

func writeSource(t *testing.T, tool Tool, name, content string) string {
	t.Helper()
	path := filepath.Join(tool.SourceDir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func readDoc(t *testing.T, path string) mdx.Document {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return mdx.Parse(string(data))
}

func scenarioProvider() *provider.MockProvider {
	m := provider.NewMockProvider()
	m.Translations = map[string]string{
		"你好":           "Hello",
		"介绍":           "Introduction",
		"Hello":        "你好",
		"Introduction": "介绍",
		"intro":        "简介",
	}
	m.Translations["# 你好\n\n这是内容。"] = "# Hello\n\nThis is the content."
	m.Translations["# Hello\n\n@@P0@@\n\nThis is the content.\n\n@@P1@@"] = "# 你好\n\n@@P0@@\n\n这是内容。\n\n@@P1@@"
	return m
}

func TestProcessFile_Scenario(t *testing.T) {
	tool := newTool(t, "x")
	src := writeSource(t, tool, "intro.mdx",
		"---\ntitle: \"你好\"\ndescription: \"介绍\"\ntool: \"x\"\nslug: \"\"\n---\n# 你好\n\n这是内容。")

	p := New(mdxlai.NewTranslator(scenarioProvider(), mdxlai.WithCache(cache.NewInMemoryCache(0))))
	_, err := p.RunTool(context.Background(), tool)
	require.NoError(t, err)

	en := readDoc(t, filepath.Join(tool.EnglishDir, "intro.mdx"))
	assert.Equal(t, "en", en.Frontmatter[mdx.KeyLocale])
	assert.Equal(t, "Hello", en.Frontmatter[mdx.KeyTitle])
	assert.Equal(t, "Introduction", en.Frontmatter[mdx.KeyDescription])
	assert.Equal(t, "x", en.Frontmatter[mdx.KeyTool])
	assert.Equal(t, "hello", en.Frontmatter[mdx.KeySlug])
	assert.False(t, mdxlai.HasCJK(en.Body))
	assert.Equal(t, 2, strings.Count(en.Body, mdx.AdPlaceholder))
	assert.Contains(t, en.Body, "# Hello\n\n<AdPlaceholder />\n\nThis is the content.\n\n<AdPlaceholder />\n")

	zh := readDoc(t, filepath.Join(tool.ChineseDir, "简介.mdx"))
	assert.Equal(t, "zh", zh.Frontmatter[mdx.KeyLocale])
	assert.Equal(t, "hello", zh.Frontmatter[mdx.KeySlug])
	assert.Equal(t, "你好", zh.Frontmatter[mdx.KeyTitle])
	assert.Equal(t, "介绍", zh.Frontmatter[mdx.KeyDescription])
	assert.Contains(t, zh.Body, "# 你好\n\n<AdPlaceholder />\n\n这是内容。\n\n<AdPlaceholder />\n")

	fr, err := p.ProcessFile(context.Background(), src, tool)
	require.NoError(t, err)
	assert.Zero(t, fr.Fallbacks)
}

func TestProcessFile_EnglishSourceKeepsSlugAndBody(t *testing.T) {
	tool := newTool(t, "codex")
	tool.CaptionMarkers = mdx.CodexCaptionMarkers
	writeSource(t, tool, "setup.mdx",
		"---\ntitle: Setup codex\ndescription: Install it\nslug: custom-slug\n---\n"+
			"import { Callout } from '@/components/Callout'\n\n# Setup<br>\n\nImage Description: the app\n")

	m := provider.NewMockProvider()
	m.Translations = map[string]string{}
	p := New(mdxlai.NewTranslator(m))

	fr, err := p.ProcessFile(context.Background(), filepath.Join(tool.SourceDir, "setup.mdx"), tool)
	require.NoError(t, err)
	assert.Equal(t, "custom-slug", fr.Slug)

	en := readDoc(t, fr.EnglishPath)
	assert.Equal(t, "Setup codex", en.Frontmatter[mdx.KeyTitle])
	assert.Equal(t, 1, strings.Count(en.Body, mdx.ImportCallout))
	assert.Contains(t, en.Body, "# Setup<br />")
	assert.Contains(t, en.Body, "*Image Description: the app*")

	// Brand terms in provider output are recased.
	zh := readDoc(t, fr.ChinesePath)
	assert.Equal(t, "[Setup Codex]", zh.Frontmatter[mdx.KeyTitle])
	assert.Equal(t, "[setup].mdx", filepath.Base(fr.ChinesePath))
}

func TestProcessFile_ProviderDownFallsBack(t *testing.T) {
	tool := newTool(t, "gemini-cli")
	writeSource(t, tool, "guide.mdx", "---\ntitle: 指南\n---\n# 指南\n\n内容很多。")

	m := provider.NewMockProvider()
	m.FailFirst = -1
	p := New(mdxlai.NewTranslator(m, mdxlai.WithRetryConfig(mdxlai.RetryConfig{MaxAttempts: 2})))

	fr, err := p.ProcessFile(context.Background(), filepath.Join(tool.SourceDir, "guide.mdx"), tool)
	require.NoError(t, err)

	assert.Equal(t, "guide", fr.Slug)
	assert.Positive(t, fr.Fallbacks)

	en := readDoc(t, fr.EnglishPath)
	assert.Equal(t, "指南", en.Frontmatter[mdx.KeyTitle])
	assert.Equal(t, "指南", en.Frontmatter[mdx.KeyDescription])
	assert.Equal(t, 2, mdx.CountAds(en.Body))
	assert.FileExists(t, fr.ChinesePath)
}

func TestRun_SortedAndSavesCache(t *testing.T) {
	tool := newTool(t, "gemini-cli")
	writeSource(t, tool, "b.mdx", "---\ntitle: B\n---\nSecond")
	writeSource(t, tool, "a.mdx", "---\ntitle: A\n---\nFirst")
	writeSource(t, tool, "notes.txt", "ignored")
	require.NoError(t, os.Mkdir(filepath.Join(tool.SourceDir, "nested.mdx"), 0o755))

	cachePath := filepath.Join(t.TempDir(), "scripts", ".translation_cache.json")
	store := cache.LoadFileCache(cachePath, nil)

	m := provider.NewMockProvider()
	p := New(mdxlai.NewTranslator(m, mdxlai.WithCache(store)))

	results, err := p.Run(context.Background(), []Tool{tool})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, ToolResult{Tool: "gemini-cli", Files: 2}, results[0])

	assert.FileExists(t, cachePath)
	reloaded := cache.LoadFileCache(cachePath, nil)
	v, ok := reloaded.Get(mdxlai.CacheKey(mdxlai.LangEnglish, mdxlai.LangChinese, "A"))
	assert.True(t, ok)
	assert.Equal(t, "[A]", v)

	assert.FileExists(t, filepath.Join(tool.ChineseDir, "[a].mdx"))
	assert.FileExists(t, filepath.Join(tool.EnglishDir, "b.mdx"))
}

func TestRun_Cancelled(t *testing.T) {
	tool := newTool(t, "codex")
	writeSource(t, tool, "a.mdx", "# A")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := New(mdxlai.NewTranslator(provider.NewMockProvider()))
	_, err := p.Run(ctx, []Tool{tool})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunTool_FailedDocumentIsCounted(t *testing.T) {
	tool := newTool(t, "codex")
	writeSource(t, tool, "ok.mdx", "# Fine")
	writeSource(t, tool, "bad.mdx", "# Blocked")
	// A directory in the way of the English output.
	require.NoError(t, os.MkdirAll(filepath.Join(tool.EnglishDir, "bad.mdx"), 0o755))

	p := New(mdxlai.NewTranslator(provider.NewMockProvider()))
	res, err := p.RunTool(context.Background(), tool)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Files)
	assert.Equal(t, 1, res.Failed)
}

func TestProcessFile_ErrorsNameDocumentAndStage(t *testing.T) {
	tool := newTool(t, "codex")
	src := writeSource(t, tool, "bad.mdx", "# Blocked")
	require.NoError(t, os.MkdirAll(filepath.Join(tool.EnglishDir, "bad.mdx"), 0o755))

	p := New(mdxlai.NewTranslator(provider.NewMockProvider()))

	_, err := p.ProcessFile(context.Background(), src, tool)
	var docErr *mdxlai.DocumentError
	require.ErrorAs(t, err, &docErr)
	assert.Equal(t, "write", docErr.Stage)
	assert.Equal(t, filepath.Join(tool.EnglishDir, "bad.mdx"), docErr.Path)

	_, err = p.ProcessFile(context.Background(), filepath.Join(tool.SourceDir, "missing.mdx"), tool)
	require.ErrorAs(t, err, &docErr)
	assert.Equal(t, "read", docErr.Stage)
}
