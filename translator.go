package mdxlai

import (
	"context"
	"io"
	"log/slog"
	"strings"
)

// Translator is the translation engine: a memoizing front for a Provider
// with retry and fallback.
type Translator struct {
	provider Provider
	cache    TranslationCache
	retry    RetryConfig
	logger   *slog.Logger
}

// Provider is the interface for translation backends. A provider
// translates one text from SourceLang ("auto" allowed) to TargetLang.
type Provider interface {
	Translate(ctx context.Context, req TranslateRequest) (string, error)
}

// TranslateRequest contains the parameters for a translation request.
type TranslateRequest struct {
	Text       string
	SourceLang string
	TargetLang string
}

// TranslationCache is the interface for translation caching.
type TranslationCache interface {
	Get(key string) (string, bool)
	Set(key string, value string) error
}

// Saver is implemented by caches that persist explicitly.
type Saver interface {
	Save() error
}

// ContentProcessor splits content into translatable nodes and reassembles
// it from their translations. Translations are keyed by TextNode.Hash.
type ContentProcessor interface {
	Extract(content string) (any, []TextNode, error)
	Apply(parsed any, nodes []TextNode, translations map[string]string) (string, error)
	ContentType() string
}

// TranslatorOption is a functional option for configuring the Translator.
type TranslatorOption func(*Translator)

// WithCache sets the translation cache.
func WithCache(cache TranslationCache) TranslatorOption {
	return func(t *Translator) {
		t.cache = cache
	}
}

// WithRetryConfig overrides the retry policy.
func WithRetryConfig(cfg RetryConfig) TranslatorOption {
	return func(t *Translator) {
		t.retry = cfg
	}
}

// WithLogger sets the logger used for fallback warnings.
func WithLogger(logger *slog.Logger) TranslatorOption {
	return func(t *Translator) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// NewTranslator creates a new Translator backed by provider.
func NewTranslator(provider Provider, opts ...TranslatorOption) *Translator {
	t := &Translator{
		provider: provider,
		retry:    DefaultRetryConfig(),
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		opt(t)
	}

	return t
}

// Translate returns the translation of text, consulting the cache first.
//
// Whitespace-only text is returned as is. Surrounding newlines are kept
// out of the cache key and re-attached to the result; spaces and tabs are
// part of the key, so keys written by earlier cache files still match.
// When the provider keeps failing, the original text is returned as a
// FallbackUsed result and stored in the cache so the same input is not
// retried again.
func (t *Translator) Translate(ctx context.Context, text, sourceLang, targetLang string) Result {
	if strings.TrimSpace(text) == "" {
		return Result{Text: text, Kind: Translated}
	}
	core := strings.TrimLeft(text, "\n")
	lead := text[:len(text)-len(core)]
	core = strings.TrimRight(core, "\n")
	trail := text[len(lead)+len(core):]

	key := CacheKey(sourceLang, targetLang, core)
	if t.cache != nil {
		if cached, ok := t.cache.Get(key); ok {
			return Result{Text: lead + cached + trail, Kind: Translated, Cached: true}
		}
	}

	if t.provider == nil {
		return Result{Text: text, Kind: FallbackUsed, Err: &TranslationError{Message: "no provider configured"}}
	}

	translated, err := WithRetry(ctx, t.retry, func() (string, error) {
		return t.provider.Translate(ctx, TranslateRequest{
			Text:       core,
			SourceLang: sourceLang,
			TargetLang: targetLang,
		})
	})
	if err != nil {
		if ctx.Err() != nil {
			// Interrupted runs must not poison the cache with fallbacks.
			return Result{Text: text, Kind: FallbackUsed, Err: err}
		}
		t.logger.Warn("translation failed, fallback to original",
			slog.String("source", sourceLang),
			slog.String("target", targetLang),
			slog.String("error", err.Error()))
		t.store(key, core)
		return Result{Text: text, Kind: FallbackUsed, Err: err}
	}

	translated = strings.TrimSpace(translated)
	t.store(key, translated)
	return Result{Text: lead + translated + trail, Kind: Translated}
}

// TranslateText is Translate reduced to its text.
func (t *Translator) TranslateText(ctx context.Context, text, sourceLang, targetLang string) string {
	return t.Translate(ctx, text, sourceLang, targetLang).Text
}

func (t *Translator) store(key, value string) {
	if t.cache == nil {
		return
	}
	if err := t.cache.Set(key, value); err != nil {
		t.logger.Warn("cache write failed", slog.String("error", err.Error()))
	}
}

// Process translates content with proc: extract nodes, translate each
// distinct node, apply the translations.
func (t *Translator) Process(ctx context.Context, content string, proc ContentProcessor, sourceLang, targetLang string) (*ProcessedContent, error) {
	if proc == nil {
		return nil, &ProcessorError{Message: "no processor given", ContentType: "unknown"}
	}

	parsed, nodes, err := proc.Extract(content)
	if err != nil {
		return nil, err
	}

	out := &ProcessedContent{TotalNodes: len(nodes)}
	translations := make(map[string]string, len(nodes))

	for _, node := range nodes {
		if _, done := translations[node.Hash]; done {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, &TranslationError{Message: "translation interrupted", Cause: err}
		}

		res := t.Translate(ctx, node.Text, sourceLang, targetLang)
		translations[node.Hash] = res.Text

		switch {
		case res.Fallback():
			out.FallbackCount++
		case res.Cached:
			out.CachedCount++
		default:
			out.TranslatedCount++
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, &TranslationError{Message: "translation interrupted", Cause: err}
	}

	result, err := proc.Apply(parsed, nodes, translations)
	if err != nil {
		return nil, err
	}
	out.Content = result

	return out, nil
}

// Save persists the cache if it supports explicit saving.
func (t *Translator) Save() error {
	saver, ok := t.cache.(Saver)
	if !ok {
		return nil
	}
	if err := saver.Save(); err != nil {
		return &CacheError{Message: "saving cache", Cause: err}
	}
	return nil
}

// Cache returns the configured cache (may be nil).
func (t *Translator) Cache() TranslationCache {
	return t.cache
}
