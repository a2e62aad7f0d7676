package mql

import (
	"reflect"
	"testing"
)

func projectIDs(results []Result) []string {
	ids := make([]string, len(results))
	for i, r := range results {
		ids[i], _ = r["project_id"].(string)
	}
	return ids
}

func TestRankRecency(t *testing.T) {
	results := []Result{
		{"project_id": "a", "updated_at": "2026-03-01T00:00:00Z"},
		{"project_id": "b", "updated_at": "2026-08-01T00:00:00Z"},
		{"project_id": "c", "updated_at": "2026-05-01T00:00:00Z"},
	}

	got := Rank(results, []string{"RECENCY"})
	if want := []string{"b", "c", "a"}; !reflect.DeepEqual(projectIDs(got), want) {
		t.Errorf("order = %v, want %v", projectIDs(got), want)
	}

	// The input slice is left untouched.
	if want := []string{"a", "b", "c"}; !reflect.DeepEqual(projectIDs(results), want) {
		t.Errorf("input mutated: %v", projectIDs(results))
	}
}

func TestRankRecencyStable(t *testing.T) {
	results := []Result{
		{"project_id": "a", "updated_at": "2026-05-01T00:00:00Z"},
		{"project_id": "b", "updated_at": "2026-05-01T00:00:00Z"},
		{"project_id": "c", "updated_at": "2026-08-01T00:00:00Z"},
	}
	got := Rank(results, []string{"RECENCY"})
	if want := []string{"c", "a", "b"}; !reflect.DeepEqual(projectIDs(got), want) {
		t.Errorf("order = %v, want %v", projectIDs(got), want)
	}
}

func TestRankNoOps(t *testing.T) {
	missing := []Result{
		{"project_id": "a", "updated_at": "2026-03-01T00:00:00Z"},
		{"project_id": "b"}, // no updated_at: RECENCY must be a no-op
	}

	tests := []struct {
		name       string
		results    []Result
		directives []string
	}{
		{"recency with missing field", missing, []string{"RECENCY"}},
		{"relevance pass-through", missing, []string{"RELEVANCE"}},
		{"unknown directive ignored", missing, []string{"NOVELTY"}},
		{"no directives", missing, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Rank(tt.results, tt.directives)
			if !reflect.DeepEqual(projectIDs(got), []string{"a", "b"}) {
				t.Errorf("order changed: %v", projectIDs(got))
			}
		})
	}
}
