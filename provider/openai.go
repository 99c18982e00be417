package provider

import (
	"context"
	"fmt"
	"strings"

	"github.com/ZaguanLabs/mdxlai"
	"github.com/sashabaranov/go-openai"
)

// OpenAIProvider implements Provider using an OpenAI-compatible chat API.
type OpenAIProvider struct {
	client      *openai.Client
	model       string
	temperature float32
}

// OpenAIConfig holds configuration for the OpenAI provider.
type OpenAIConfig struct {
	APIKey      string  // OpenAI API key (uses OPENAI_API_KEY env var if empty)
	Model       string  // Model to use (default: "gpt-4o-mini")
	Temperature float32 // Temperature for generation (default: 0.3)
	BaseURL     string  // Custom base URL (optional)
}

// NewOpenAIProvider creates a new OpenAI provider.
func NewOpenAIProvider(cfg OpenAIConfig) *OpenAIProvider {
	config := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		config.BaseURL = cfg.BaseURL
	}

	model := cfg.Model
	if model == "" {
		model = "gpt-4o-mini"
	}

	temperature := cfg.Temperature
	if temperature == 0 {
		temperature = 0.3
	}

	return &OpenAIProvider{
		client:      openai.NewClientWithConfig(config),
		model:       model,
		temperature: temperature,
	}
}

// Translate translates one text. The reply is used verbatim apart from a
// stray code fence some models wrap around it.
func (p *OpenAIProvider) Translate(ctx context.Context, req TranslateRequest) (string, error) {
	if strings.TrimSpace(req.Text) == "" {
		return req.Text, nil
	}

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: p.buildSystemPrompt(req)},
			{Role: openai.ChatMessageRoleUser, Content: req.Text},
		},
		Temperature: p.temperature,
	})
	if err != nil {
		return "", &mdxlai.ProviderError{
			Message:   "OpenAI API call failed",
			Cause:     err,
			Retryable: isRetryableError(ctx, err),
		}
	}

	if len(resp.Choices) == 0 {
		return "", &mdxlai.ProviderError{
			Message:   "no response from OpenAI",
			Retryable: true,
		}
	}

	return stripFence(resp.Choices[0].Message.Content), nil
}

func (p *OpenAIProvider) buildSystemPrompt(req TranslateRequest) string {
	targetName := mdxlai.GetLanguageName(req.TargetLang)

	source := "Detect the source language."
	if req.SourceLang != "" && req.SourceLang != mdxlai.LangAuto {
		source = fmt.Sprintf("The source language is %s.", mdxlai.GetLanguageName(req.SourceLang))
	}

	return fmt.Sprintf(`# Role
You are a technical translator for developer documentation written in Markdown.

# Task
Translate the user's message into %s. %s

# Rules
- Placeholders of the form @@P0@@ (any capital letter, any number) must appear in the output exactly as in the input, the same number of times.
- Keep Markdown syntax (headings, lists, emphasis, tables) intact.
- Keep product names such as %s untranslated.
- Preserve line breaks.
- Reply with the translation only, no explanations and no code fences.`,
		targetName, source, strings.Join(mdxlai.DefaultBrandTerms, ", "))
}

// stripFence removes a single surrounding ``` fence, if present.
func stripFence(s string) string {
	t := strings.TrimSpace(s)
	if !strings.HasPrefix(t, "```") || !strings.HasSuffix(t, "```") || len(t) < 6 {
		return s
	}
	t = strings.TrimSuffix(strings.TrimPrefix(t, "```"), "```")
	if i := strings.IndexByte(t, '\n'); i >= 0 && !strings.ContainsAny(t[:i], " \t") {
		t = t[i+1:]
	}
	return strings.TrimSpace(t)
}

// isRetryableError treats every API failure as transient unless the
// caller has given up.
func isRetryableError(ctx context.Context, err error) bool {
	return err != nil && ctx.Err() == nil
}

var _ Provider = (*OpenAIProvider)(nil)
