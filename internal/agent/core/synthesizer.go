package core

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/mohammad-safakhou/briefer/internal/knowledge"
	"github.com/mohammad-safakhou/briefer/provider"
)

// Synthesizer aggregates task evidence into a cited brief. With a working LLM
// it asks for structured JSON; otherwise (or on any failure) it emits a
// deterministic per-task fallback. It never fails.
type Synthesizer struct {
	llm    provider.LLM
	graphs GraphBuilder
	logger *log.Logger
}

func NewSynthesizer(llm provider.LLM, graphs GraphBuilder) *Synthesizer {
	return &Synthesizer{
		llm:    llm,
		graphs: graphs,
		logger: log.New(log.Writer(), "[SYNTH] ", log.LstdFlags),
	}
}

const (
	maxExcerpts        = 12
	maxGraphTexts      = 3
	fallbackSnippetCap = 240
)

// Synthesize builds the final brief for the query from all task results.
func (s *Synthesizer) Synthesize(ctx context.Context, query string, taskResults []TaskResult) Brief {
	citations := make([]Citation, 0)
	var excerpts []string
	var graphTexts []string
	for _, tr := range taskResults {
		for i, ev := range tr.Evidence {
			citations = append(citations, Citation{ID: ev.SourceID, URL: ev.URL, Title: ev.Title, Score: ev.Relevance})
			excerpts = append(excerpts, fmt.Sprintf("[%s] %s", ev.SourceID, ev.Snippet))
			if i < maxGraphTexts {
				graphTexts = append(graphTexts, ev.Text)
			}
		}
	}
	if len(excerpts) > maxExcerpts {
		excerpts = excerpts[:maxExcerpts]
	}
	kg := s.graphs.Build(strings.Join(graphTexts, "\n\n"))

	if s.llm.Available() {
		if brief, ok := s.synthesizeLLM(ctx, query, excerpts, citations, kg); ok {
			return brief
		}
	}

	return fallbackBrief(query, taskResults, citations, kg)
}

func (s *Synthesizer) synthesizeLLM(ctx context.Context, query string, excerpts []string, citations []Citation, kg knowledge.Graph) (Brief, bool) {
	system := "You are an expert research synthesizer. Given a research query, evidence citations (with source tags) " +
		"and short notes, produce a JSON object with keys: sections (array of {order:int, content:str}), conclusion:str, " +
		"contradictions_and_uncertainties:[...], citations:[{id,url,title,score}]."
	user := fmt.Sprintf("Query: %s\n\nEvidence excerpts:\n%s\n\nReturn JSON only.", query, strings.Join(excerpts, "\n\n"))

	raw, err := s.llm.Summarize(ctx, system+"\n\n"+user, 700)
	if err != nil {
		s.logger.Printf("synthesis LLM failed: %v", err)
		return Brief{}, false
	}

	jsonStr := extractJSONObject(raw)
	if jsonStr == "" {
		s.logger.Printf("synthesis response had no JSON object, using fallback")
		return Brief{}, false
	}

	var out struct {
		Sections       []Section        `json:"sections"`
		Conclusion     string           `json:"conclusion"`
		Contradictions []string         `json:"contradictions_and_uncertainties"`
		Citations      []Citation       `json:"citations"`
		KnowledgeGraph *knowledge.Graph `json:"knowledge_graph"`
		Stance         *provider.Stance `json:"stance"`
	}
	if err := json.Unmarshal([]byte(jsonStr), &out); err != nil {
		s.logger.Printf("synthesis JSON parse failed: %v", err)
		return Brief{}, false
	}

	brief := Brief{
		Sections:       out.Sections,
		Conclusion:     out.Conclusion,
		Contradictions: out.Contradictions,
		Citations:      out.Citations,
		KnowledgeGraph: kg,
		Stance:         out.Stance,
	}
	if brief.Contradictions == nil {
		brief.Contradictions = []string{}
	}
	if brief.Citations == nil {
		brief.Citations = citations
	}
	if out.KnowledgeGraph != nil {
		brief.KnowledgeGraph = *out.KnowledgeGraph
	}
	return brief, true
}

// fallbackBrief lists each task's top snippets under one section per task.
// Contradiction detection requires a dedicated collaborator, so the
// contradictions list stays empty here.
func fallbackBrief(query string, taskResults []TaskResult, citations []Citation, kg knowledge.Graph) Brief {
	sections := make([]Section, 0, len(taskResults))
	for i, tr := range taskResults {
		var b strings.Builder
		fmt.Fprintf(&b, "Task: %s - %s\nFindings:\n", tr.Task.Role, tr.Task.Prompt)
		for j, ev := range tr.Evidence {
			if j >= 3 {
				break
			}
			snippet := ev.Snippet
			if len(snippet) > fallbackSnippetCap {
				snippet = snippet[:fallbackSnippetCap]
			}
			fmt.Fprintf(&b, "- %s (source: %s)\n", snippet, ev.Domain)
		}
		sections = append(sections, Section{Order: i + 1, Content: b.String()})
	}

	return Brief{
		Sections:       sections,
		Conclusion:     fmt.Sprintf("(auto) Brief conclusion for: %s", query),
		Contradictions: []string{},
		Citations:      citations,
		KnowledgeGraph: kg,
	}
}
