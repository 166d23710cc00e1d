package core

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/mohammad-safakhou/briefer/provider"
)

// Planner decomposes a research query into a short ordered task plan. It never
// fails: when the LLM is unavailable or returns garbage it falls back to a
// deterministic three-task template.
type Planner struct {
	llm    provider.LLM
	logger *log.Logger
}

func NewPlanner(llm provider.LLM) *Planner {
	return &Planner{
		llm:    llm,
		logger: log.New(log.Writer(), "[PLANNER] ", log.LstdFlags),
	}
}

const planMaxTasks = 6

// Plan returns 3-6 tasks for the query.
func (p *Planner) Plan(ctx context.Context, query string) []Task {
	if !p.llm.Available() {
		return fallbackPlan(query)
	}

	system := "You are a research planner. Given a one-line research query, return a JSON array of 3-6 task objects " +
		"with keys: id, role (background,evidence,contradiction,implications), prompt, requires_search (true/false)."
	user := fmt.Sprintf("Query: %s\n\nReturn JSON only.", query)

	raw, err := p.llm.Summarize(ctx, system+"\n\n"+user, 300)
	if err != nil {
		p.logger.Printf("planner LLM failed: %v", err)
		return fallbackPlan(query)
	}

	tasks, ok := parsePlan(raw, query)
	if !ok {
		p.logger.Printf("planner response had no usable JSON plan, using fallback")
		return fallbackPlan(query)
	}
	return tasks
}

// parsePlan extracts the first bracketed array from the reply and backfills
// missing task fields. Plans outside the 3-6 task contract are rejected.
func parsePlan(raw, query string) ([]Task, bool) {
	jsonStr := extractJSONArray(raw)
	if jsonStr == "" {
		return nil, false
	}

	var rawTasks []struct {
		ID             string `json:"id"`
		Role           string `json:"role"`
		Prompt         string `json:"prompt"`
		RequiresSearch *bool  `json:"requires_search"`
	}
	if err := json.Unmarshal([]byte(jsonStr), &rawTasks); err != nil {
		return nil, false
	}
	if len(rawTasks) < 3 {
		return nil, false
	}
	if len(rawTasks) > planMaxTasks {
		rawTasks = rawTasks[:planMaxTasks]
	}

	tasks := make([]Task, 0, len(rawTasks))
	for i, rt := range rawTasks {
		t := Task{
			ID:             strings.TrimSpace(rt.ID),
			Role:           TaskRole(strings.TrimSpace(rt.Role)),
			Prompt:         strings.TrimSpace(rt.Prompt),
			RequiresSearch: true,
		}
		if t.ID == "" {
			t.ID = fmt.Sprintf("t%d", i+1)
		}
		if t.Role == "" {
			t.Role = RoleEvidence
		}
		if t.Prompt == "" {
			t.Prompt = fmt.Sprintf("Investigate: %s", query)
		}
		if rt.RequiresSearch != nil {
			t.RequiresSearch = *rt.RequiresSearch
		}
		tasks = append(tasks, t)
	}
	return tasks, true
}

// fallbackPlan is the deterministic offline plan: background and evidence with
// search, implications without.
func fallbackPlan(query string) []Task {
	return []Task{
		{ID: "t1", Role: RoleBackground, Prompt: fmt.Sprintf("Background: define and scope '%s'", query), RequiresSearch: true},
		{ID: "t2", Role: RoleEvidence, Prompt: fmt.Sprintf("Evidence: find key studies or news pieces for '%s'", query), RequiresSearch: true},
		{ID: "t3", Role: RoleImplications, Prompt: fmt.Sprintf("Implications & open questions for '%s'", query), RequiresSearch: false},
	}
}
