package core

import (
	"context"
	"testing"

	"github.com/mohammad-safakhou/briefer/provider"
)

func TestPlanFallbackWithoutLLM(t *testing.T) {
	p := NewPlanner(provider.Mock{})
	tasks := p.Plan(context.Background(), "climate change")

	if len(tasks) != 3 {
		t.Fatalf("expected 3 fallback tasks, got %d", len(tasks))
	}
	wantIDs := []string{"t1", "t2", "t3"}
	wantRoles := []TaskRole{RoleBackground, RoleEvidence, RoleImplications}
	for i, task := range tasks {
		if task.ID != wantIDs[i] {
			t.Fatalf("task %d: expected id %q, got %q", i, wantIDs[i], task.ID)
		}
		if task.Role != wantRoles[i] {
			t.Fatalf("task %d: expected role %q, got %q", i, wantRoles[i], task.Role)
		}
		if task.Prompt == "" {
			t.Fatalf("task %d has empty prompt", i)
		}
	}
	if !tasks[0].RequiresSearch || !tasks[1].RequiresSearch {
		t.Fatalf("background and evidence tasks must require search")
	}
	if tasks[2].RequiresSearch {
		t.Fatalf("implications task must not require search")
	}
}

func TestParsePlanExtractsArrayFromProse(t *testing.T) {
	raw := `Here is your plan:
[{"id":"a","role":"background","prompt":"look up basics","requires_search":true},
 {"role":"evidence","prompt":"find studies"},
 {"id":"c","prompt":"","requires_search":false}]
Hope that helps!`

	tasks, ok := parsePlan(raw, "vaccines")
	if !ok {
		t.Fatalf("expected plan to parse")
	}
	if len(tasks) != 3 {
		t.Fatalf("expected 3 tasks, got %d", len(tasks))
	}
	if tasks[0].ID != "a" || tasks[0].Role != RoleBackground {
		t.Fatalf("unexpected first task: %#v", tasks[0])
	}
	if tasks[1].ID != "t2" {
		t.Fatalf("expected backfilled id t2, got %q", tasks[1].ID)
	}
	if tasks[1].Role != RoleEvidence {
		t.Fatalf("expected role evidence, got %q", tasks[1].Role)
	}
	if !tasks[1].RequiresSearch {
		t.Fatalf("missing requires_search must default to true")
	}
	if tasks[2].Prompt != "Investigate: vaccines" {
		t.Fatalf("expected backfilled prompt, got %q", tasks[2].Prompt)
	}
	if tasks[2].RequiresSearch {
		t.Fatalf("explicit requires_search=false must be honored")
	}
}

func TestParsePlanRejectsShortPlans(t *testing.T) {
	if _, ok := parsePlan(`[{"id":"a"},{"id":"b"}]`, "q"); ok {
		t.Fatalf("expected a 2-task plan to be rejected")
	}
	if _, ok := parsePlan("no json here", "q"); ok {
		t.Fatalf("expected prose without JSON to be rejected")
	}
}

func TestParsePlanCapsAtSixTasks(t *testing.T) {
	raw := `[{"id":"1"},{"id":"2"},{"id":"3"},{"id":"4"},{"id":"5"},{"id":"6"},{"id":"7"},{"id":"8"}]`
	tasks, ok := parsePlan(raw, "q")
	if !ok {
		t.Fatalf("expected plan to parse")
	}
	if len(tasks) != 6 {
		t.Fatalf("expected plan capped at 6 tasks, got %d", len(tasks))
	}
}
