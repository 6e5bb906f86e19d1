package planner

import (
	"testing"

	"github.com/danieljhkim/nitf-rename/internal/collect"
)

func TestPlan_HasConflicts(t *testing.T) {
	tests := []struct {
		name      string
		conflicts []Conflict
		wantHas   bool
	}{
		{
			name:      "no conflicts",
			conflicts: []Conflict{},
			wantHas:   false,
		},
		{
			name:      "nil conflicts",
			conflicts: nil,
			wantHas:   false,
		},
		{
			name: "one conflict",
			conflicts: []Conflict{
				{Kind: ConflictExists, Line: 1, Path: "/x", Reason: "destination already exists"},
			},
			wantHas: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := &Plan{Conflicts: tt.conflicts}
			if got := plan.HasConflicts(); got != tt.wantHas {
				t.Errorf("HasConflicts() = %v, want %v", got, tt.wantHas)
			}
		})
	}
}

func TestPlan_AddTask(t *testing.T) {
	plan := &Plan{}
	plan.AddTask(Task{Line: 1, Source: collect.Entry{Root: "/r", Path: "/r/a"}, Destination: "/r/b"})
	plan.AddTask(Task{Line: 2, Source: collect.Entry{Root: "/r", Path: "/r/c"}, Destination: "/r/c"})

	if len(plan.Tasks) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(plan.Tasks))
	}
	if plan.Tasks[0].Unchanged() {
		t.Error("task 1 should be changed")
	}
	if !plan.Tasks[1].Unchanged() {
		t.Error("task 2 should be unchanged")
	}
}
