package core

import (
	"math"
	"sort"
	"strings"
)

// snippetBudget is the maximum snippet length in characters; longer snippets
// are word-boundary truncated.
const snippetBudget = 400

// trustedNewsDomains is the two-tier relevance trust table: a fixed set of
// reputable news domains scores 0.95, everything else 0.5. The richer tiering
// lives in the credibility aggregator, not here.
var trustedNewsDomains = []string{"bbc.", "reuters.", "nytimes.", "theguardian.", "apnews"}

func domainTrust(domain string) float64 {
	d := strings.ToLower(domain)
	for _, t := range trustedNewsDomains {
		if strings.Contains(d, t) {
			return 0.95
		}
	}
	return 0.5
}

// NormalizeEvidence deduplicates raw evidence, merges collisions, computes a
// relevance score per item and returns the list sorted by descending
// relevance. Pure: safe to call repeatedly, and idempotent on its own output.
//
// Identity key is url, else source_id, else a hash of the snippet. On
// collision the item with the longer text survives and its score becomes the
// max of the colliding scores.
func NormalizeEvidence(items []EvidenceItem) []EvidenceItem {
	type slot struct {
		item EvidenceItem
	}
	order := make([]string, 0, len(items))
	dedup := make(map[string]*slot, len(items))

	for _, e := range items {
		key := e.URL
		if key == "" {
			key = e.SourceID
		}
		if key == "" {
			key = hashText(e.Snippet)
		}
		existing, ok := dedup[key]
		if !ok {
			dedup[key] = &slot{item: e}
			order = append(order, key)
			continue
		}
		if len(e.Text) > len(existing.item.Text) {
			merged := e
			merged.Score = math.Max(existing.item.Score, e.Score)
			existing.item = merged
		} else if e.Score > existing.item.Score {
			existing.item.Score = e.Score
		}
	}

	normalized := make([]EvidenceItem, 0, len(dedup))
	for _, key := range order {
		item := dedup[key].item
		item.Relevance = relevanceScore(item)
		normalized = append(normalized, item)
	}

	sort.SliceStable(normalized, func(i, j int) bool {
		return normalized[i].Relevance > normalized[j].Relevance
	})
	return normalized
}

// relevanceScore combines domain trust, the retrieval score and a saturating
// text-length factor. Clamped to [0,1] and rounded to 3 decimals.
func relevanceScore(item EvidenceItem) float64 {
	lengthFactor := 0.0
	if n := len(item.Text); n > 0 {
		lengthFactor = math.Min(1.0, math.Log1p(float64(n))/math.Log1p(4000))
	}
	rel := domainTrust(item.Domain) * item.Score * (0.6*lengthFactor + 0.4)
	return round3(clamp01(rel))
}
