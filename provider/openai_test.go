package provider

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ZaguanLabs/mdxlai"
)

func newChatServer(t *testing.T, handler func(t *testing.T, body map[string]any) (int, string)) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/chat/completions") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decoding request: %v", err)
		}
		status, resp := handler(t, body)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(resp))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func chatReply(content string) string {
	data, _ := json.Marshal(map[string]any{
		"id":     "chatcmpl-1",
		"object": "chat.completion",
		"model":  "gpt-4o-mini",
		"choices": []map[string]any{{
			"index":         0,
			"message":       map[string]string{"role": "assistant", "content": content},
			"finish_reason": "stop",
		}},
	})
	return string(data)
}

func TestBuildSystemPrompt(t *testing.T) {
	p := NewOpenAIProvider(OpenAIConfig{APIKey: "test"})

	prompt := p.buildSystemPrompt(TranslateRequest{SourceLang: "en", TargetLang: "zh-CN"})

	if !strings.Contains(prompt, "Chinese (Simplified)") {
		t.Error("Prompt should contain target language name")
	}
	if !strings.Contains(prompt, "The source language is English") {
		t.Error("Prompt should name the source language")
	}
	if !strings.Contains(prompt, "@@P0@@") {
		t.Error("Prompt should describe placeholders")
	}
	if !strings.Contains(prompt, "Codex") {
		t.Error("Prompt should list brand terms")
	}
}

func TestBuildSystemPrompt_AutoSource(t *testing.T) {
	p := NewOpenAIProvider(OpenAIConfig{APIKey: "test"})

	prompt := p.buildSystemPrompt(TranslateRequest{SourceLang: mdxlai.LangAuto, TargetLang: "en"})
	if !strings.Contains(prompt, "Detect the source language") {
		t.Error("Auto source should ask for detection")
	}
}

func TestOpenAIProvider_Translate(t *testing.T) {
	srv := newChatServer(t, func(t *testing.T, body map[string]any) (int, string) {
		msgs := body["messages"].([]any)
		user := msgs[1].(map[string]any)["content"]
		if user != "Hello @@P0@@" {
			t.Errorf("unexpected user message %v", user)
		}
		return http.StatusOK, chatReply("你好 @@P0@@")
	})

	p := NewOpenAIProvider(OpenAIConfig{APIKey: "test", BaseURL: srv.URL + "/v1"})
	got, err := p.Translate(context.Background(), TranslateRequest{Text: "Hello @@P0@@", SourceLang: "en", TargetLang: "zh-CN"})
	if err != nil {
		t.Fatalf("Translate failed: %v", err)
	}
	if got != "你好 @@P0@@" {
		t.Errorf("got %q", got)
	}
}

func TestOpenAIProvider_StripsFence(t *testing.T) {
	srv := newChatServer(t, func(*testing.T, map[string]any) (int, string) {
		return http.StatusOK, chatReply("```markdown\n你好\n```")
	})

	p := NewOpenAIProvider(OpenAIConfig{APIKey: "test", BaseURL: srv.URL + "/v1"})
	got, err := p.Translate(context.Background(), TranslateRequest{Text: "Hello", TargetLang: "zh-CN"})
	if err != nil {
		t.Fatalf("Translate failed: %v", err)
	}
	if got != "你好" {
		t.Errorf("got %q", got)
	}
}

func TestOpenAIProvider_APIErrorIsRetryable(t *testing.T) {
	srv := newChatServer(t, func(*testing.T, map[string]any) (int, string) {
		return http.StatusInternalServerError, `{"error":{"message":"overloaded","type":"server_error"}}`
	})

	p := NewOpenAIProvider(OpenAIConfig{APIKey: "test", BaseURL: srv.URL + "/v1"})
	_, err := p.Translate(context.Background(), TranslateRequest{Text: "Hello", TargetLang: "zh-CN"})

	var provErr *mdxlai.ProviderError
	if !errors.As(err, &provErr) {
		t.Fatalf("Expected ProviderError, got %v", err)
	}
	if !provErr.Retryable {
		t.Error("API failures should be retryable")
	}
}

func TestOpenAIProvider_NoChoices(t *testing.T) {
	srv := newChatServer(t, func(*testing.T, map[string]any) (int, string) {
		return http.StatusOK, `{"id":"x","object":"chat.completion","choices":[]}`
	})

	p := NewOpenAIProvider(OpenAIConfig{APIKey: "test", BaseURL: srv.URL + "/v1"})
	if _, err := p.Translate(context.Background(), TranslateRequest{Text: "Hello", TargetLang: "zh-CN"}); err == nil {
		t.Error("Expected error for empty choices")
	}
}

func TestOpenAIProvider_BlankText(t *testing.T) {
	p := NewOpenAIProvider(OpenAIConfig{APIKey: "test", BaseURL: "http://127.0.0.1:1"})
	got, err := p.Translate(context.Background(), TranslateRequest{Text: "  ", TargetLang: "zh-CN"})
	if err != nil || got != "  " {
		t.Errorf("blank text should short-circuit, got %q, %v", got, err)
	}
}

func TestStripFence(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"plain", "plain"},
		{"```\n代码\n```", "代码"},
		{"```md\n标题\n```", "标题"},
		{"uses ``` inside", "uses ``` inside"},
	}
	for _, tt := range tests {
		if got := stripFence(tt.in); got != tt.want {
			t.Errorf("stripFence(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
