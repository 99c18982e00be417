package processor

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestSplitChunks_WithinBudget(t *testing.T) {
	text := "short paragraph\n\nanother"
	chunks := SplitChunks(text, 800)
	if len(chunks) != 1 || chunks[0] != text {
		t.Errorf("expected a single chunk, got %q", chunks)
	}
}

func TestSplitChunks_Packing(t *testing.T) {
	a := strings.Repeat("a", 40)
	b := strings.Repeat("b", 40)
	c := strings.Repeat("c", 40)
	text := a + "\n\n" + b + "\n\n\n" + c

	chunks := SplitChunks(text, 50)

	want := []string{a + "\n\n", b + "\n\n\n", c}
	if len(chunks) != len(want) {
		t.Fatalf("got %d chunks %q, want %d", len(chunks), chunks, len(want))
	}
	for i := range want {
		if chunks[i] != want[i] {
			t.Errorf("chunk %d = %q, want %q", i, chunks[i], want[i])
		}
	}
}

func TestSplitChunks_OversizedParagraph(t *testing.T) {
	big := strings.Repeat("x", 120)
	text := "intro\n\n" + big + "\n\nend"

	chunks := SplitChunks(text, 50)

	found := false
	for _, c := range chunks {
		if c == big {
			found = true
		}
	}
	if !found {
		t.Errorf("oversized paragraph should be its own chunk: %q", chunks)
	}
}

func TestSplitChunks_CountsCharacters(t *testing.T) {
	// 300 ideographs are 900 bytes but fit an 800-character budget.
	text := strings.Repeat("文", 300)
	if chunks := SplitChunks(text, 800); len(chunks) != 1 {
		t.Errorf("expected 1 chunk, got %d", len(chunks))
	}
}

func TestSplitChunks_ConcatenationIsInput(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 60; i++ {
		b.WriteString(strings.Repeat("段落", i%7+1))
		b.WriteString(strings.Repeat("\n", i%3+1))
	}
	inputs := []string{
		b.String(),
		"\n\nleading breaks\n\n" + strings.Repeat("y", 900),
		strings.Repeat("z\n\n", 500),
	}

	for _, in := range inputs {
		for _, max := range []int{1, 10, 100, 800} {
			chunks := SplitChunks(in, max)
			if got := strings.Join(chunks, ""); got != in {
				t.Fatalf("concatenation differs for max=%d", max)
			}
			for _, c := range chunks {
				if c == "" {
					t.Errorf("empty chunk for max=%d", max)
				}
			}
		}
	}
}

func TestSplitChunks_RespectsBudgetWhenPossible(t *testing.T) {
	text := strings.Repeat(strings.Repeat("w", 30)+"\n\n", 40)
	for _, c := range SplitChunks(text, 100) {
		if utf8.RuneCountInString(c) > 100 {
			t.Errorf("chunk over budget: %d chars", utf8.RuneCountInString(c))
		}
	}
}
