package core

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mohammad-safakhou/briefer/config"
	"github.com/mohammad-safakhou/briefer/internal/agent/telemetry"
	"github.com/mohammad-safakhou/briefer/provider"
)

// ErrEmptyQuery is the only error Run surfaces to callers; everything
// attributable to an external collaborator degrades into partial results.
var ErrEmptyQuery = errors.New("query must not be empty")

// Orchestrator sequences the full pipeline: plan, collect and normalize per
// task, tag per-item credibility, synthesize the brief, and score the whole
// run.
type Orchestrator struct {
	planner   *Planner
	collector *Collector
	synth     *Synthesizer
	cred      CredibilityEngine
	pacer     Pacer
	telemetry *telemetry.Telemetry
	logger    *log.Logger

	maxSearchResults int
}

// NewOrchestrator wires the pipeline from its collaborators. tele may be nil.
func NewOrchestrator(cfg config.ResearchConfig, llm provider.LLM, search Searcher, scraper Scraper, graphs GraphBuilder, tele *telemetry.Telemetry) *Orchestrator {
	maxResults := cfg.MaxSearchResults
	if maxResults <= 0 {
		maxResults = 6
	}
	analyst := NewAnalyst(llm, graphs)
	return &Orchestrator{
		planner:          NewPlanner(llm),
		collector:        NewCollector(search, scraper, analyst, cfg.DomainFilter, cfg.MaxTaskResults),
		synth:            NewSynthesizer(llm, graphs),
		cred:             CredibilityEngine{},
		pacer:            NewSleepPacer(cfg.TaskPause),
		telemetry:        tele,
		logger:           log.New(log.Writer(), "[ORCH] ", log.LstdFlags),
		maxSearchResults: maxResults,
	}
}

// SetPacer replaces the inter-task pacing policy.
func (o *Orchestrator) SetPacer(p Pacer) {
	if p != nil {
		o.pacer = p
	}
}

// Analyst exposes the orchestrator's article analyst for URL-mode detection.
func (o *Orchestrator) Analyst() *Analyst {
	return o.collector.analyst
}

const (
	credibilityTagLimit = 12
	pseudoArticleTexts  = 8
)

// Run executes the full research pipeline for the query. It returns an error
// only for invalid caller input; collaborator failures produce a degraded but
// complete RunResult.
func (o *Orchestrator) Run(ctx context.Context, query string) (RunResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return RunResult{}, ErrEmptyQuery
	}

	start := time.Now()
	plan := o.planner.Plan(ctx, query)
	o.logger.Printf("plan ready: %d tasks for %q", len(plan), query)

	taskResults := make([]TaskResult, 0, len(plan))
	for i, task := range plan {
		if ctx.Err() != nil {
			// Cancelled mid-run: remaining tasks contribute empty evidence so
			// the plan-order invariant still holds.
			taskResults = append(taskResults, TaskResult{Task: task, Evidence: []EvidenceItem{}})
			continue
		}
		o.logger.Printf("running task %s (requires_search=%t)", task.ID, task.RequiresSearch)
		raw := o.collector.Collect(ctx, task, query, o.maxSearchResults)
		taskResults = append(taskResults, TaskResult{Task: task, Evidence: NormalizeEvidence(raw)})
		if i < len(plan)-1 {
			o.pacer.Pause(ctx)
		}
	}

	// Flatten in task order, then per-task relevance order.
	var flattened []*EvidenceItem
	for ti := range taskResults {
		for ei := range taskResults[ti].Evidence {
			flattened = append(flattened, &taskResults[ti].Evidence[ei])
		}
	}

	// Tag per-item credibility for the leading items using a neutral stance
	// proxy; a failure here leaves the item untagged, nothing more.
	for i, item := range flattened {
		if i >= credibilityTagLimit {
			break
		}
		score := o.cred.Score(Article{URL: item.URL, Title: item.Title, Text: item.Text}, nil, &provider.Stance{Support: 0.5}, "")
		item.Credibility = &score
	}

	brief := o.synth.Synthesize(ctx, query, taskResults)

	var texts []string
	for i, item := range flattened {
		if i >= pseudoArticleTexts {
			break
		}
		texts = append(texts, item.Text)
	}
	pseudo := Article{URL: "", Title: query, Text: strings.Join(texts, "\n\n")}
	stance := brief.Stance
	if stance == nil {
		stance = &provider.Stance{Support: 0.5}
	}
	topCred := o.cred.Score(pseudo, &brief.KnowledgeGraph, stance, "")

	result := RunResult{
		ID:                  uuid.NewString(),
		Query:               query,
		Plan:                plan,
		TaskResults:         taskResults,
		Brief:               brief,
		TopLevelCredibility: topCred,
		Timestamp:           time.Now(),
	}
	if o.telemetry != nil {
		o.telemetry.RecordRun(time.Since(start), len(flattened))
	}
	o.logger.Printf("run complete for %q: %d tasks, %d evidence items, credibility %.3f",
		query, len(plan), len(flattened), topCred)
	return result, nil
}
