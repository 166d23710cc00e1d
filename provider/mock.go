package provider

import (
	"context"
	"strings"
)

// Mock is the offline LLM. Summaries echo a truncated prompt; claim analysis
// uses a keyword heuristic. Output is deterministic for a given input, which
// the test suite relies on.
type Mock struct{}

func (Mock) Available() bool { return false }

func (Mock) Summarize(ctx context.Context, prompt string, maxTokens int) (string, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "(mock) No content to summarize.", nil
	}
	return "(mock) " + safeTruncate(prompt, maxTokens), nil
}

func (Mock) AnalyzeClaims(ctx context.Context, claim string, snippets []string) (Stance, error) {
	lc := strings.ToLower(strings.Join(snippets, " "))
	score := 0.5
	for _, w := range []string{"study", "evidence", "found", "shows", "reported"} {
		if strings.Contains(lc, w) {
			score += 0.2
			break
		}
	}
	for _, w := range []string{"no evidence", "not", "contradict", "refute", "denies"} {
		if strings.Contains(lc, w) {
			score -= 0.2
			break
		}
	}
	if score < 0 {
		score = 0
	}
	if score > 1 {
		score = 1
	}
	stance := "mixed"
	if score >= 0.55 {
		stance = "supports"
	} else if score <= 0.45 {
		stance = "contradicts"
	}
	return Stance{Support: score, Stance: stance, Note: "(heuristic fallback)"}, nil
}

func safeTruncate(text string, maxChars int) string {
	if maxChars <= 0 || len(text) <= maxChars {
		return text
	}
	cut := text[:maxChars]
	if idx := strings.LastIndex(cut, " "); idx > 0 {
		cut = cut[:idx]
	}
	return cut + "..."
}
