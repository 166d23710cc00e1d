package core

import (
	"crypto/sha1"
	"encoding/hex"
	"math"
	"strings"
)

// extractJSONObject returns the first balanced brace-delimited substring of
// text, or "" when none exists. LLM replies often wrap JSON in prose; this is
// the only parsing the core does on free-form output.
func extractJSONObject(text string) string {
	return extractBalanced(text, '{', '}')
}

// extractJSONArray returns the first balanced bracket-delimited substring.
func extractJSONArray(text string) string {
	return extractBalanced(text, '[', ']')
}

func extractBalanced(text string, open, close rune) string {
	start := -1
	depth := 0
	for i, ch := range text {
		switch ch {
		case open:
			if depth == 0 {
				start = i
			}
			depth++
		case close:
			if depth > 0 {
				depth--
			}
			if depth == 0 && start != -1 {
				return text[start : i+1]
			}
		}
	}
	return ""
}

// normText collapses internal whitespace and truncates at the last whole word
// before the budget, appending an ellipsis marker.
func normText(t string, budget int) string {
	if t == "" {
		return ""
	}
	s := strings.Join(strings.Fields(t), " ")
	if len(s) <= budget {
		return s
	}
	cut := s[:budget]
	if idx := strings.LastIndex(cut, " "); idx > 0 {
		cut = cut[:idx]
	}
	return cut + "..."
}

func hashText(t string) string {
	sum := sha1.Sum([]byte(t))
	return hex.EncodeToString(sum[:])
}

func round3(f float64) float64 {
	return math.Round(f*1000) / 1000
}

func clamp01(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}
