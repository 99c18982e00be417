package provider

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ZaguanLabs/mdxlai"
)

func TestGoogleProvider_Translate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("client") != "gtx" || q.Get("dt") != "t" {
			t.Errorf("unexpected query %v", q)
		}
		if q.Get("sl") != "auto" || q.Get("tl") != "en" {
			t.Errorf("unexpected languages %v", q)
		}
		if q.Get("q") != "你好。世界" {
			t.Errorf("unexpected text %q", q.Get("q"))
		}
		_, _ = w.Write([]byte(`[[["Hello. ","你好。",null,null,10],["World","世界",null,null,10],[null,null,"Nǐ hǎo"]],null,"zh-CN"]`))
	}))
	defer srv.Close()

	p := NewGoogleProvider(GoogleConfig{Endpoint: srv.URL})
	got, err := p.Translate(context.Background(), TranslateRequest{Text: "你好。世界", TargetLang: "en"})
	if err != nil {
		t.Fatalf("Translate failed: %v", err)
	}
	if got != "Hello. World" {
		t.Errorf("got %q, want %q", got, "Hello. World")
	}
}

func TestGoogleProvider_Errors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"server error", http.StatusServiceUnavailable, "busy"},
		{"rate limited", http.StatusTooManyRequests, ""},
		{"not json", http.StatusOK, "<html>captcha</html>"},
		{"empty payload", http.StatusOK, "[]"},
		{"null segments", http.StatusOK, "[null]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			p := NewGoogleProvider(GoogleConfig{Endpoint: srv.URL})
			_, err := p.Translate(context.Background(), TranslateRequest{Text: "x", SourceLang: "en", TargetLang: "zh-CN"})

			var provErr *mdxlai.ProviderError
			if !errors.As(err, &provErr) {
				t.Fatalf("Expected ProviderError, got %v", err)
			}
			if !provErr.Retryable {
				t.Error("Expected retryable error")
			}
		})
	}
}

func TestGoogleProvider_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(time.Second):
		}
	}))
	defer srv.Close()

	p := NewGoogleProvider(GoogleConfig{Endpoint: srv.URL, Timeout: 20 * time.Millisecond})
	if _, err := p.Translate(context.Background(), TranslateRequest{Text: "x", TargetLang: "en"}); err == nil {
		t.Error("Expected timeout error")
	}
}

func TestParseGooglePayload_SkipsEmptySegments(t *testing.T) {
	got, err := parseGooglePayload([]byte(`[[["A",""],[""],[],["B","b"]]]`))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if got != "AB" {
		t.Errorf("got %q", got)
	}
}
