package core

import (
	"strings"
	"testing"
)

func TestExtractJSONObject(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{`Sure! {"a": 1} there you go`, `{"a": 1}`},
		{`{"outer": {"inner": 2}} trailing`, `{"outer": {"inner": 2}}`},
		{`no braces at all`, ``},
		{`{never closed`, ``},
	}
	for _, c := range cases {
		if got := extractJSONObject(c.in); got != c.want {
			t.Fatalf("extractJSONObject(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestExtractJSONArray(t *testing.T) {
	in := `Here is the plan: [{"id":"t1"},{"id":"t2"}] hope it helps`
	want := `[{"id":"t1"},{"id":"t2"}]`
	if got := extractJSONArray(in); got != want {
		t.Fatalf("extractJSONArray = %q, want %q", got, want)
	}
}

func TestNormTextCollapsesWhitespace(t *testing.T) {
	in := "a  b\n\tc   d"
	if got := normText(in, 100); got != "a b c d" {
		t.Fatalf("expected collapsed whitespace, got %q", got)
	}
}

func TestNormTextTruncatesAtWordBoundary(t *testing.T) {
	in := strings.Repeat("word ", 200)
	got := normText(in, 50)
	if !strings.HasSuffix(got, "...") {
		t.Fatalf("expected ellipsis suffix, got %q", got)
	}
	if strings.Contains(strings.TrimSuffix(got, "..."), "wor ") {
		t.Fatalf("truncation split a word: %q", got)
	}
	if len(got) > 53 {
		t.Fatalf("truncated text too long: %d chars", len(got))
	}
}

func TestNormTextEmpty(t *testing.T) {
	if got := normText("", 10); got != "" {
		t.Fatalf("expected empty output, got %q", got)
	}
}

func TestClampAndRound(t *testing.T) {
	if got := clamp01(-0.3); got != 0 {
		t.Fatalf("clamp01(-0.3) = %v", got)
	}
	if got := clamp01(1.7); got != 1 {
		t.Fatalf("clamp01(1.7) = %v", got)
	}
	if got := round3(0.12345); got != 0.123 {
		t.Fatalf("round3(0.12345) = %v", got)
	}
}
