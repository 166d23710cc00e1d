package core

import (
	"context"
	"fmt"
	"log"
	"math"
	"strings"

	"github.com/mohammad-safakhou/briefer/provider"
)

// Analyst performs single-article analysis: evidence snippets, summary,
// claim-vs-evidence stance, a bias note and a per-article credibility
// estimate. Used for URL-mode detection and for plan tasks that skip search.
type Analyst struct {
	llm    provider.LLM
	graphs GraphBuilder
	logger *log.Logger
}

func NewAnalyst(llm provider.LLM, graphs GraphBuilder) *Analyst {
	return &Analyst{
		llm:    llm,
		graphs: graphs,
		logger: log.New(log.Writer(), "[ANALYST] ", log.LstdFlags),
	}
}

// Analyze inspects one article. It absorbs every collaborator failure into a
// degraded but complete Analysis.
func (a *Analyst) Analyze(ctx context.Context, article Article) Analysis {
	text := strings.TrimSpace(article.Text)
	title := strings.TrimSpace(article.Title)

	snips := makeSnippets(text, 8)

	summary := "(no text to summarize)"
	if text != "" {
		prompt := "Summarize the following text concisely (2-4 sentences). Keep the original language:\n\n" + text
		if s, err := a.llm.Summarize(ctx, prompt, 300); err == nil {
			summary = s
		} else {
			a.logger.Printf("summarize failed: %v", err)
			summary = "(summary unavailable)"
		}
	}

	claim := title
	if claim == "" && text != "" {
		claim = firstSentence(text)
	}
	stance := provider.Stance{Support: 0.5, Stance: "mixed", Note: "no claim"}
	if claim != "" {
		if st, err := a.llm.AnalyzeClaims(ctx, claim, snips); err == nil {
			stance = st
		} else {
			a.logger.Printf("claim analysis failed: %v", err)
			stance = provider.Stance{Support: 0.5, Stance: "mixed", Note: "(llm error)"}
		}
	}

	biasNote := a.biasNote(ctx, text)

	domainScore := analystDomainScore(article.URL)
	lengthScore := 0.3
	if text != "" {
		lengthScore = math.Min(0.95, float64(len(text))/5000+0.1)
	}
	combined := 0.5*lengthScore + 0.3*domainScore + 0.2*stance.Support

	evidence := []string{
		fmt.Sprintf("Article length: %d", len(text)),
		fmt.Sprintf("Title: %s", title),
	}
	for i, s := range snips {
		if i >= 6 {
			break
		}
		if len(s) > 240 {
			s = s[:240]
		}
		evidence = append(evidence, fmt.Sprintf("Snippet %d: %s", i+1, s))
	}

	var contradictions []string
	if stance.Stance == "contradicts" {
		contradictions = append(contradictions, "Evidence was found that contradicts the main claim.")
	}

	return Analysis{
		Summary:        summary,
		Snippets:       snips,
		Evidence:       evidence,
		Contradictions: contradictions,
		Credibility:    round3(clamp01(combined)),
		KnowledgeGraph: a.graphs.Build(text),
		Stance:         stance,
		BiasNote:       biasNote,
	}
}

// biasNote probes the article's tone. With a real provider it asks for a
// one-sentence assessment; offline it falls back to a clickbait-marker scan.
func (a *Analyst) biasNote(ctx context.Context, text string) string {
	if a.llm.Available() {
		probe := "Return a one-sentence assessment of the article's overall tone and potential bias " +
			"(e.g., neutral, slightly biased, opinionated, sensational). Keep response short.\n\n"
		body := text
		if len(body) > 3000 {
			body = body[:3000]
		}
		note, err := a.llm.Summarize(ctx, probe+body, 60)
		if err != nil {
			return "(bias detection unavailable)"
		}
		return strings.TrimSpace(note)
	}
	low := strings.ToLower(text)
	for _, marker := range []string{"shocking", "must read", "unbelievable", "you won't believe"} {
		if strings.Contains(low, marker) {
			return "sensational"
		}
	}
	return "neutral"
}

// analystDomainScore is the analyst's own, coarser domain table. Academic
// publishers rank lower here because they often block scraping, leaving us
// nothing to judge.
func analystDomainScore(url string) float64 {
	if url == "" {
		return 0.5
	}
	u := strings.ToLower(url)
	for _, t := range []string{"bbc.", "reuters.", "nytimes.", "theguardian.", "washingtonpost.", "cnn.", "aljazeera."} {
		if strings.Contains(u, t) {
			return 0.9
		}
	}
	for _, a := range []string{"ieee.", "springer.", "nature.", "sciencedirect.", "acm."} {
		if strings.Contains(u, a) {
			return 0.6
		}
	}
	return 0.5
}

// makeSnippets splits text into sentences and keeps up to max that are long
// enough to carry a claim. Falls back to a single leading chunk.
func makeSnippets(text string, max int) []string {
	if text == "" {
		return nil
	}
	var snips []string
	for _, s := range splitSentences(text) {
		s = strings.TrimSpace(s)
		if len(s) > 30 {
			snips = append(snips, s)
		}
		if len(snips) >= max {
			break
		}
	}
	if len(snips) == 0 {
		chunk := strings.TrimSpace(text)
		if len(chunk) > 300 {
			chunk = chunk[:300]
		}
		return []string{chunk}
	}
	return snips
}

func splitSentences(text string) []string {
	var out []string
	start := 0
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '.', '!', '?':
			// Consume any run of terminal punctuation.
			j := i
			for j+1 < len(text) && (text[j+1] == '.' || text[j+1] == '!' || text[j+1] == '?') {
				j++
			}
			out = append(out, text[start:j+1])
			i = j
			start = j + 1
		}
	}
	if start < len(text) {
		out = append(out, text[start:])
	}
	return out
}

func firstSentence(text string) string {
	if idx := strings.IndexByte(text, '.'); idx > 0 {
		return strings.TrimSpace(text[:idx])
	}
	return strings.TrimSpace(text)
}
