package provider

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/mohammad-safakhou/briefer/config"
)

func llmConfigWithKey(key string) config.LLMConfig {
	return config.LLMConfig{APIKey: key, Model: "gpt-4o-mini", Temperature: 0.2, Timeout: time.Second}
}

func TestMockSummarizeDeterministic(t *testing.T) {
	m := Mock{}
	a, err := m.Summarize(context.Background(), "summarize this text", 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, _ := m.Summarize(context.Background(), "summarize this text", 100)
	if a != b {
		t.Fatalf("mock summaries differ: %q vs %q", a, b)
	}
	if !strings.HasPrefix(a, "(mock) ") {
		t.Fatalf("expected mock prefix, got %q", a)
	}
}

func TestMockSummarizeTruncates(t *testing.T) {
	m := Mock{}
	long := strings.Repeat("word ", 200)
	out, err := m.Summarize(context.Background(), long, 50)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasSuffix(out, "...") {
		t.Fatalf("expected truncated summary, got %q", out)
	}
}

func TestMockAnalyzeClaimsHeuristic(t *testing.T) {
	m := Mock{}

	sup, err := m.AnalyzeClaims(context.Background(), "claim", []string{"A study shows the effect is real."})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sup.Stance != "supports" || sup.Support < 0.55 {
		t.Fatalf("expected supporting stance, got %#v", sup)
	}

	con, err := m.AnalyzeClaims(context.Background(), "claim", []string{"Experts refute this outright."})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if con.Stance != "contradicts" || con.Support > 0.45 {
		t.Fatalf("expected contradicting stance, got %#v", con)
	}

	mix, err := m.AnalyzeClaims(context.Background(), "claim", []string{"Unrelated chatter about the weather."})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mix.Stance != "mixed" {
		t.Fatalf("expected mixed stance, got %#v", mix)
	}

	for _, st := range []Stance{sup, con, mix} {
		if st.Support < 0 || st.Support > 1 {
			t.Fatalf("support %v out of [0,1]", st.Support)
		}
	}
}

func TestNewLLMFallsBackToMock(t *testing.T) {
	llm := NewLLM(llmConfigWithKey(""))
	if llm.Available() {
		t.Fatalf("keyless config must yield the unavailable mock")
	}
	real := NewLLM(llmConfigWithKey("sk-test"))
	if !real.Available() {
		t.Fatalf("keyed config must yield an available client")
	}
}
