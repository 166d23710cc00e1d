package core

import (
	"context"
	"time"

	"github.com/mohammad-safakhou/briefer/internal/knowledge"
	"github.com/mohammad-safakhou/briefer/provider"
	fetchmodels "github.com/mohammad-safakhou/briefer/tools/web_fetch/models"
	searchmodels "github.com/mohammad-safakhou/briefer/tools/web_search/models"
)

// TaskRole classifies what a planned task is meant to contribute.
type TaskRole string

const (
	RoleBackground    TaskRole = "background"
	RoleEvidence      TaskRole = "evidence"
	RoleContradiction TaskRole = "contradiction"
	RoleImplications  TaskRole = "implications"
)

// Task is one step of a research plan. Immutable once the planner returns it.
type Task struct {
	ID             string   `json:"id"`
	Role           TaskRole `json:"role"`
	Prompt         string   `json:"prompt"`
	RequiresSearch bool     `json:"requires_search"`
}

// EvidenceItem is a unit of retrieved text with provenance. Created raw by the
// collector, merged and scored by the normalizer, tagged with credibility by
// the orchestrator.
type EvidenceItem struct {
	SourceID    string   `json:"source_id"`
	URL         string   `json:"url"`
	Title       string   `json:"title"`
	Snippet     string   `json:"snippet"`
	Text        string   `json:"text"`
	Domain      string   `json:"domain"`
	Score       float64  `json:"score"`
	Relevance   float64  `json:"relevance"`
	Credibility *float64 `json:"credibility,omitempty"`
}

// TaskResult pairs a task with its normalized evidence, ordered by descending
// relevance.
type TaskResult struct {
	Task     Task           `json:"task"`
	Evidence []EvidenceItem `json:"evidence"`
}

// Section is one ordered block of a synthesized brief.
type Section struct {
	Order   int    `json:"order"`
	Content string `json:"content"`
}

// Citation points a brief back at one evidence source.
type Citation struct {
	ID    string  `json:"id"`
	URL   string  `json:"url"`
	Title string  `json:"title"`
	Score float64 `json:"score"`
}

// Brief is the final synthesized, citation-bearing research output.
type Brief struct {
	Sections       []Section        `json:"sections"`
	Conclusion     string           `json:"conclusion"`
	Contradictions []string         `json:"contradictions_and_uncertainties"`
	Citations      []Citation       `json:"citations"`
	KnowledgeGraph knowledge.Graph  `json:"knowledge_graph"`
	Stance         *provider.Stance `json:"stance,omitempty"`
}

// RunResult is the complete output of one research run. Immutable once
// returned.
type RunResult struct {
	ID                  string       `json:"id"`
	Query               string       `json:"query"`
	Plan                []Task       `json:"plan"`
	TaskResults         []TaskResult `json:"task_results"`
	Brief               Brief        `json:"brief"`
	TopLevelCredibility float64      `json:"top_level_credibility"`
	Timestamp           time.Time    `json:"timestamp"`
}

// Article is the flat input to credibility scoring and article analysis.
type Article struct {
	URL   string `json:"url"`
	Title string `json:"title"`
	Text  string `json:"text"`
}

// Analysis is the article analyst's output for a single article.
type Analysis struct {
	Summary        string          `json:"summary"`
	Snippets       []string        `json:"snippets"`
	Evidence       []string        `json:"evidence"`
	Contradictions []string        `json:"contradictions"`
	Credibility    float64         `json:"credibility_score"`
	KnowledgeGraph knowledge.Graph `json:"knowledge_graph"`
	Stance         provider.Stance `json:"stance"`
	BiasNote       string          `json:"bias_note"`
}

// Searcher is the web search capability the collector depends on.
type Searcher interface {
	Search(ctx context.Context, q string, k int, domains []string) ([]searchmodels.Hit, error)
}

// Scraper is the page fetching capability the collector depends on.
type Scraper interface {
	Scrape(ctx context.Context, url string) (fetchmodels.Page, error)
}

// GraphBuilder is the entity graph capability. Deterministic given its input.
type GraphBuilder interface {
	Build(text string) knowledge.Graph
}
