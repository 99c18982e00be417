package provider

import (
	"context"
	"errors"
	"sync"

	"github.com/ZaguanLabs/mdxlai"
)

// MockProvider is a scripted provider for tests and dry runs.
type MockProvider struct {
	Translations map[string]string // Map of source text to translation
	FailFirst    int               // Calls that fail before succeeding (-1 = every call)
	Err          error             // Error returned on failing calls

	mu          sync.Mutex
	callCount   int
	lastRequest *TranslateRequest
}

// NewMockProvider creates a new mock provider with default translations.
func NewMockProvider() *MockProvider {
	return &MockProvider{
		Translations: map[string]string{
			"你好":          "Hello",
			"世界":          "World",
			"Hello":       "你好",
			"World":       "世界",
			"Hello World": "你好世界",
		},
	}
}

// Translate returns the scripted translation, or the text in brackets
// when none is known.
func (m *MockProvider) Translate(ctx context.Context, req TranslateRequest) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.callCount++
	m.lastRequest = &req

	if err := ctx.Err(); err != nil {
		return "", err
	}

	if m.FailFirst < 0 || m.callCount <= m.FailFirst {
		err := m.Err
		if err == nil {
			err = errors.New("mock provider failure")
		}
		return "", &mdxlai.ProviderError{Message: "mock", Cause: err, Retryable: true}
	}

	if translation, ok := m.Translations[req.Text]; ok {
		return translation, nil
	}
	return "[" + req.Text + "]", nil
}

// CallCount returns the number of Translate calls.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.callCount
}

// LastRequest returns the most recent request, or nil.
func (m *MockProvider) LastRequest() *TranslateRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastRequest
}

// Reset resets the call count and last request.
func (m *MockProvider) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callCount = 0
	m.lastRequest = nil
}

var _ Provider = (*MockProvider)(nil)
