package mdxlai

import (
	"context"
	"testing"
	"time"
)

func TestRateLimiter_TryAcquire(t *testing.T) {
	limiter := NewRateLimiter(RateLimitConfig{
		RequestsPerMinute: 60,
		BurstSize:         3,
	})

	for i := 0; i < 3; i++ {
		if !limiter.TryAcquire() {
			t.Errorf("Expected to acquire token %d", i)
		}
	}

	if limiter.TryAcquire() {
		t.Error("Expected fourth acquire to fail")
	}
}

func TestRateLimiter_Refill(t *testing.T) {
	limiter := NewRateLimiter(RateLimitConfig{
		RequestsPerMinute: 600, // 10 per second
		BurstSize:         1,
	})

	limiter.TryAcquire()
	if limiter.TryAcquire() {
		t.Error("Expected acquire to fail after drain")
	}

	time.Sleep(150 * time.Millisecond)

	if !limiter.TryAcquire() {
		t.Error("Expected acquire to succeed after refill")
	}
}

func TestRateLimiter_Wait(t *testing.T) {
	limiter := NewRateLimiter(RateLimitConfig{
		RequestsPerMinute: 600,
		BurstSize:         1,
	})

	limiter.TryAcquire()

	start := time.Now()
	if err := limiter.Wait(context.Background()); err != nil {
		t.Errorf("Wait failed: %v", err)
	}

	if elapsed := time.Since(start); elapsed < 50*time.Millisecond {
		t.Errorf("Wait returned too quickly: %v", elapsed)
	}
}

func TestRateLimiter_WaitCancelled(t *testing.T) {
	limiter := NewRateLimiter(RateLimitConfig{
		RequestsPerMinute: 1,
		BurstSize:         1,
	})
	limiter.TryAcquire()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	if err := limiter.Wait(ctx); err == nil {
		t.Error("Expected error when context expires")
	}
}

func TestRateLimiter_Available(t *testing.T) {
	limiter := NewRateLimiter(RateLimitConfig{RequestsPerMinute: 60, BurstSize: 5})

	if avail := limiter.Available(); avail < 4.9 || avail > 5 {
		t.Errorf("Expected ~5 tokens, got %v", avail)
	}
}

type countingProvider struct {
	calls int
}

func (c *countingProvider) Translate(ctx context.Context, req TranslateRequest) (string, error) {
	c.calls++
	return "[" + req.Text + "]", nil
}

func TestRateLimitedProvider(t *testing.T) {
	inner := &countingProvider{}
	provider := NewRateLimitedProvider(inner, RateLimitConfig{
		RequestsPerMinute: 600,
		BurstSize:         2,
	})

	ctx := context.Background()
	for _, text := range []string{"a", "b"} {
		if _, err := provider.Translate(ctx, TranslateRequest{Text: text}); err != nil {
			t.Errorf("Translate(%q) failed: %v", text, err)
		}
	}

	start := time.Now()
	out, err := provider.Translate(ctx, TranslateRequest{Text: "c"})
	if err != nil {
		t.Errorf("Third translate failed: %v", err)
	}
	if out != "[c]" {
		t.Errorf("Expected [c], got %q", out)
	}
	if elapsed := time.Since(start); elapsed < 50*time.Millisecond {
		t.Errorf("Expected rate limit wait, but returned in %v", elapsed)
	}
	if inner.calls != 3 {
		t.Errorf("Expected 3 inner calls, got %d", inner.calls)
	}
}

func TestRateLimitedProvider_ContextCancelled(t *testing.T) {
	provider := NewRateLimitedProvider(&countingProvider{}, RateLimitConfig{
		RequestsPerMinute: 1,
		BurstSize:         1,
	})
	_, _ = provider.Translate(context.Background(), TranslateRequest{Text: "a"})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := provider.Translate(ctx, TranslateRequest{Text: "b"})
	if err == nil {
		t.Fatal("Expected error when context cancelled")
	}
	if IsRetryable(err) {
		t.Error("Cancelled rate-limit wait should not be retryable")
	}
}
