package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ZaguanLabs/mdxlai"
)

// DefaultGoogleEndpoint is the public translate endpoint used by the gtx client.
const DefaultGoogleEndpoint = "https://translate.googleapis.com/translate_a/single"

// DefaultTimeout bounds a single provider call.
const DefaultTimeout = 20 * time.Second

// GoogleProvider implements Provider on top of the keyless Google
// Translate endpoint.
type GoogleProvider struct {
	client   *http.Client
	endpoint string
}

// GoogleConfig holds configuration for the Google provider.
type GoogleConfig struct {
	Endpoint string        // Override for tests or proxies
	Timeout  time.Duration // Per-call timeout (default: 20s)
	Client   *http.Client  // Optional custom client
}

// NewGoogleProvider creates a new Google provider.
func NewGoogleProvider(cfg GoogleConfig) *GoogleProvider {
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = DefaultGoogleEndpoint
	}

	client := cfg.Client
	if client == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		client = &http.Client{Timeout: timeout}
	}

	return &GoogleProvider{client: client, endpoint: endpoint}
}

// Translate translates a single text. Every failure is reported as a
// retryable ProviderError; the caller decides when to give up.
func (p *GoogleProvider) Translate(ctx context.Context, req TranslateRequest) (string, error) {
	source := req.SourceLang
	if source == "" {
		source = mdxlai.LangAuto
	}

	q := url.Values{}
	q.Set("client", "gtx")
	q.Set("sl", source)
	q.Set("tl", req.TargetLang)
	q.Set("dt", "t")
	q.Set("q", req.Text)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, p.endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return "", &mdxlai.ProviderError{Message: "building request", Cause: err}
	}
	httpReq.Header.Set("User-Agent", mdxlai.UserAgent())

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return "", &mdxlai.ProviderError{Message: "google translate request failed", Cause: err, Retryable: true}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &mdxlai.ProviderError{Message: "reading response", Cause: err, Retryable: true}
	}

	if resp.StatusCode != http.StatusOK {
		return "", &mdxlai.ProviderError{
			Message:   fmt.Sprintf("google translate returned %s", resp.Status),
			Retryable: true,
		}
	}

	translated, err := parseGooglePayload(body)
	if err != nil {
		return "", &mdxlai.ProviderError{Message: "invalid response format", Cause: err, Retryable: true}
	}
	return translated, nil
}

// parseGooglePayload joins the first element of every segment in
// payload[0]. Segments with an empty or missing first element are skipped.
func parseGooglePayload(body []byte) (string, error) {
	var payload []json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", err
	}
	if len(payload) == 0 {
		return "", fmt.Errorf("empty payload")
	}

	var segments []json.RawMessage
	if err := json.Unmarshal(payload[0], &segments); err != nil {
		return "", fmt.Errorf("segments: %w", err)
	}
	if segments == nil {
		return "", fmt.Errorf("no segments")
	}

	var b strings.Builder
	for _, raw := range segments {
		var parts []any
		if err := json.Unmarshal(raw, &parts); err != nil || len(parts) == 0 {
			continue
		}
		if s, ok := parts[0].(string); ok {
			b.WriteString(s)
		}
	}
	return b.String(), nil
}

var _ Provider = (*GoogleProvider)(nil)
