package core

import (
	"context"
	"strings"
	"testing"

	"github.com/mohammad-safakhou/briefer/internal/knowledge"
	"github.com/mohammad-safakhou/briefer/provider"
)

func TestSynthesizeFallbackBrief(t *testing.T) {
	s := NewSynthesizer(provider.Mock{}, knowledge.Builder{})

	taskResults := []TaskResult{
		{
			Task: Task{ID: "t1", Role: RoleBackground, Prompt: "Background on X"},
			Evidence: []EvidenceItem{
				{SourceID: "s1", URL: "https://bbc.com/a", Title: "A", Snippet: "Alpha Beta studied the effect.", Text: "Alpha Beta studied the effect.", Domain: "bbc.com", Relevance: 0.8},
			},
		},
		{
			Task:     Task{ID: "t2", Role: RoleEvidence, Prompt: "Evidence on X"},
			Evidence: []EvidenceItem{},
		},
	}

	brief := s.Synthesize(context.Background(), "X", taskResults)

	if len(brief.Sections) != 2 {
		t.Fatalf("expected one section per task, got %d", len(brief.Sections))
	}
	for i, sec := range brief.Sections {
		if sec.Order != i+1 {
			t.Fatalf("section %d has order %d", i, sec.Order)
		}
	}
	if !strings.Contains(brief.Sections[0].Content, "Task: background") {
		t.Fatalf("section missing task header: %q", brief.Sections[0].Content)
	}
	if !strings.Contains(brief.Sections[0].Content, "(source: bbc.com)") {
		t.Fatalf("section missing source attribution: %q", brief.Sections[0].Content)
	}
	if !strings.HasPrefix(brief.Conclusion, "(auto)") {
		t.Fatalf("expected auto conclusion, got %q", brief.Conclusion)
	}
	if brief.Contradictions == nil || len(brief.Contradictions) != 0 {
		t.Fatalf("fallback contradictions must be an empty list, got %#v", brief.Contradictions)
	}
	if len(brief.Citations) != 1 || brief.Citations[0].ID != "s1" {
		t.Fatalf("unexpected citations: %#v", brief.Citations)
	}
	if brief.Citations[0].Score != 0.8 {
		t.Fatalf("citation score must carry relevance, got %v", brief.Citations[0].Score)
	}
	if brief.KnowledgeGraph.Nodes == nil {
		t.Fatalf("knowledge graph nodes must never be nil")
	}
}

func TestSynthesizeNoEvidence(t *testing.T) {
	s := NewSynthesizer(provider.Mock{}, knowledge.Builder{})
	brief := s.Synthesize(context.Background(), "empty", []TaskResult{
		{Task: Task{ID: "t1", Role: RoleBackground, Prompt: "p"}, Evidence: []EvidenceItem{}},
	})
	if len(brief.Sections) != 1 {
		t.Fatalf("expected 1 section, got %d", len(brief.Sections))
	}
	if len(brief.Citations) != 0 {
		t.Fatalf("expected no citations, got %#v", brief.Citations)
	}
}
