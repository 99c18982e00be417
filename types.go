package mdxlai

// Locale identifies a document variant.
type Locale string

const (
	// LocaleEN is the English variant.
	LocaleEN Locale = "en"
	// LocaleZH is the Simplified Chinese variant.
	LocaleZH Locale = "zh"
)

// Language codes understood by the translation service.
const (
	LangAuto    = "auto"
	LangEnglish = "en"
	LangChinese = "zh-CN"
)

// DefaultBrandTerms are product names that must keep their spelling and
// casing in Chinese output.
var DefaultBrandTerms = []string{"Codex", "Gemini", "OpenAI"}

// TextNode represents a translatable unit of content.
type TextNode struct {
	ID       string            // Position-based identifier ("chunk-0", ...)
	Text     string            // Text sent to the provider (placeholders in place)
	Hash     string            // SHA-256 hash of the trimmed Text
	NodeType string            // Content type: "mdx_text", ...
	Metadata map[string]string // Additional info (segment index, ...)
}

// ResultKind tells whether a translation came back from the provider or
// degraded to the original text.
type ResultKind int

const (
	// Translated means the provider (or a cached provider answer) produced the text.
	Translated ResultKind = iota
	// FallbackUsed means retries were exhausted and the original text was kept.
	FallbackUsed
)

func (k ResultKind) String() string {
	if k == FallbackUsed {
		return "fallback"
	}
	return "translated"
}

// Result is the outcome of a single translation lookup.
// Text is usable in both cases.
type Result struct {
	Text   string
	Kind   ResultKind
	Cached bool  // Served from the cache without a provider call
	Err    error // Last provider error when Kind == FallbackUsed
}

// Fallback reports whether the original text was kept.
func (r Result) Fallback() bool {
	return r.Kind == FallbackUsed
}

// ProcessedContent is the result of a content translation.
type ProcessedContent struct {
	Content         string // Translated content
	TranslatedCount int    // Nodes translated by a provider call
	CachedCount     int    // Nodes served from the cache
	FallbackCount   int    // Nodes left untranslated after exhausted retries
	TotalNodes      int    // Total translatable nodes found
}
