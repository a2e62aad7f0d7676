package mql

import (
	"testing"
	"time"

	"github.com/magpiehq/magpie/internal/model"
)

func evalProject() *model.Project {
	return &model.Project{
		ID:          "payments-api",
		Name:        "Payments API",
		Description: "billing and invoicing service",
		Status:      "active",
		CreatedAt:   time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC),
		UpdatedAt:   time.Date(2026, 8, 20, 14, 30, 0, 0, time.UTC),
		Metadata: map[string]interface{}{
			"priority": "high",
			"weight":   float64(3), // JSON round-trip yields float64
			"team": map[string]interface{}{
				"lead": "sam",
				"size": float64(4),
			},
			"tags": []interface{}{"backend", "billing"},
		},
	}
}

func mustCondition(t *testing.T, clause string) Condition {
	t.Helper()
	q, err := Parse("WHERE " + clause + " IN ALL_PROJECTS")
	if err != nil {
		t.Fatalf("Parse(%q): %v", clause, err)
	}
	return q.(*WhereQuery).Condition
}

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name   string
		clause string
		want   bool
	}{
		{"status equals", `STATUS = "active"`, true},
		{"status not equals", `STATUS = "archived"`, false},
		{"status contains", `STATUS CONTAINS "ctiv"`, true},
		{"name reserved field", `NAME = "Payments API"`, true},
		{"description contains", `DESCRIPTION CONTAINS "billing"`, true},
		{"metadata direct key", `PRIORITY = "high"`, true},
		{"metadata in list", `PRIORITY IN ("high", "critical")`, true},
		{"metadata in list miss", `PRIORITY IN ("low", "medium")`, false},
		{"dotted path", `metadata.team.lead = "sam"`, true},
		{"dotted path numeric", `metadata.team.size > 3`, true},
		{"dotted path missing segment", `metadata.team.mascot = "crow"`, false},
		{"numeric coercion", `weight = 3`, true},
		{"numeric ordering", `weight >= 3`, true},
		{"numeric ordering strict", `weight > 3`, false},
		{"list membership via contains", `tags CONTAINS "billing"`, true},
		{"list membership miss", `tags CONTAINS "frontend"`, false},
		{"and both true", `STATUS = "active" AND PRIORITY = "high"`, true},
		{"and one false", `STATUS = "active" AND PRIORITY = "low"`, false},
		{"or one true", `STATUS = "archived" OR PRIORITY = "high"`, true},
		{"or both false", `STATUS = "archived" OR PRIORITY = "low"`, false},
		{"absent field", `NONEXISTENT = "x"`, false},
		{"type mismatch returns false", `STATUS > 5`, false},
		{"string ordering", `UPDATED_AT > "2026-01-01"`, true},
	}

	p := evalProject()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cond := mustCondition(t, tt.clause)
			if got := Evaluate(cond, p); got != tt.want {
				t.Errorf("Evaluate(%s) = %v, want %v", cond, got, tt.want)
			}
		})
	}
}

func TestEvaluateNeverPanics(t *testing.T) {
	// Evaluation must stay total even for a zero-value project.
	clauses := []string{
		`STATUS = "active"`,
		`metadata.a.b.c = 1`,
		`PRIORITY IN ("x")`,
		`NAME CONTAINS "y"`,
		`UPDATED_AT <= "2020-01-01"`,
	}
	for _, clause := range clauses {
		cond := mustCondition(t, clause)
		_ = Evaluate(cond, &model.Project{})
	}
}
