package core

import (
	"math"
	"strings"

	"github.com/mohammad-safakhou/briefer/internal/knowledge"
	"github.com/mohammad-safakhou/briefer/provider"
)

// CredibilityEngine aggregates domain, content, stance-support and graph
// centrality signals into a single [0,1] trust estimate. The weights are a
// fixed policy, not learned.
type CredibilityEngine struct{}

// Aggregation weights.
const (
	wDomain  = 0.30
	wContent = 0.25
	wSupport = 0.30
	wCentral = 0.15
)

// Domain tiers, highest first.
var (
	trustedOutlets  = []string{"bbc.", "reuters.", "nytimes.", "theguardian.", "washingtonpost.", "cnn.", "aljazeera.", "apnews."}
	academicDomains = []string{"ieee.", "springer.", "nature.", "sciencedirect.", "acm.", "nih.gov"}
	regionalOutlets = []string{"thehindu", "timesofindia", "indianexpress", "lallantop"}
)

// Score computes the credibility of an article given an optional knowledge
// graph, an optional stance and a bias note. Always in [0,1], rounded to 3
// decimals.
func (CredibilityEngine) Score(article Article, kg *knowledge.Graph, stance *provider.Stance, biasNote string) float64 {
	domainScore := domainReliability(article.URL)
	contentScore := contentScore(strings.TrimSpace(article.Text))

	supportScore := 0.5
	if stance != nil {
		supportScore = stance.Support
	}

	centralityScore := 0.5
	if kg != nil {
		centralityScore = centrality(*kg)
	}

	raw := wDomain*domainScore + wContent*contentScore + wSupport*supportScore + wCentral*centralityScore
	return round3(clamp01(raw - biasPenalty(biasNote)))
}

// domainReliability is the four-tier URL lookup: 0.95 major outlets, 0.85
// academic publishers, 0.70 regional outlets, 0.50 default, 0.45 when the URL
// is empty.
func domainReliability(url string) float64 {
	if url == "" {
		return 0.45
	}
	u := strings.ToLower(url)
	for _, t := range trustedOutlets {
		if strings.Contains(u, t) {
			return 0.95
		}
	}
	for _, a := range academicDomains {
		if strings.Contains(u, a) {
			return 0.85
		}
	}
	for _, r := range regionalOutlets {
		if strings.Contains(u, r) {
			return 0.70
		}
	}
	return 0.5
}

// contentScore blends a saturating length factor with an approximate sentence
// density. Empty text scores a flat 0.2.
func contentScore(text string) float64 {
	if text == "" {
		return 0.2
	}
	ln := math.Min(1.0, math.Log1p(float64(len(text)))/math.Log1p(5000))
	sents := strings.Count(text, ".") + strings.Count(text, "!") + strings.Count(text, "?")
	density := math.Min(1.0, float64(sents)/math.Max(1, float64(len(text))/200))
	return round3(0.5*ln + 0.5*density)
}

// centrality maps the graph's mean degree centrality into a [0,0.95] signal.
// Graphs too small to say anything get 0.45.
func centrality(kg knowledge.Graph) float64 {
	if len(kg.Nodes) < 2 {
		return 0.45
	}
	avg := kg.MeanDegreeCentrality()
	return round3(math.Min(0.95, avg*1.5))
}

func biasPenalty(note string) float64 {
	if note == "" {
		return 0.0
	}
	low := strings.ToLower(note)
	for _, marker := range []string{"sensational", "opinionated", "highly biased"} {
		if strings.Contains(low, marker) {
			return 0.18
		}
	}
	if strings.Contains(low, "slightly biased") {
		return 0.06
	}
	return 0.0
}
