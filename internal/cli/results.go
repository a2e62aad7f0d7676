package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/magpiehq/magpie/internal/mql"
	"github.com/magpiehq/magpie/internal/ui"
)

// renderEnvelope prints a query envelope for humans. Agents get the
// raw envelope via --json.
func renderEnvelope(env *mql.Envelope) {
	switch env.QueryType {
	case "find":
		renderFindResults(env)
	case "where":
		renderWhereResults(env)
	case "context":
		renderContextResults(env)
	default:
		fmt.Printf("%+v\n", env)
	}
}

func renderFindResults(env *mql.Envelope) {
	if len(env.Results) == 0 {
		fmt.Printf("No matches for %v in %s %s\n", env.Value, env.Scope,
			ui.Count(env.ProjectsSearched, "project searched", "projects searched"))
		return
	}

	fmt.Printf("%s %s\n\n", ui.Header(fmt.Sprintf("Matches for %v", env.Value)),
		ui.Count(env.ProjectsSearched, "project searched", "projects searched"))

	for _, entry := range env.Results {
		id, _ := entry["project_id"].(string)
		count, _ := entry["match_count"].(int)
		fmt.Printf("%s %s\n", ui.ProjectID(id), ui.Count(count, "match", "matches"))

		if matches, ok := entry["matches"].([]mql.Match); ok {
			for _, m := range matches {
				fmt.Printf("  %s  %s\n", m.Path, ui.Hint(fmt.Sprintf("%v", m.Value)))
			}
		}
		if updated, ok := entry["updated_at"].(string); ok {
			fmt.Printf("  %s\n", ui.Timestamp("updated "+updated))
		}
		fmt.Println()
	}
}

func renderWhereResults(env *mql.Envelope) {
	if len(env.Results) == 0 {
		fmt.Printf("No projects match %s %s\n", env.Condition,
			ui.Count(env.ProjectsSearched, "project searched", "projects searched"))
		return
	}

	fmt.Printf("%s %s\n\n", ui.Header(env.Condition),
		ui.Count(env.ProjectsMatched, "project", "projects"))

	display := ui.NewDisplayContext()
	tbl := ui.NewResultsTable(display, ui.ProjectLayout)
	for i, entry := range env.Results {
		id, _ := entry["project_id"].(string)
		status, _ := entry["status"].(string)
		desc, _ := entry["description"].(string)
		updated, _ := entry["updated_at"].(string)
		tbl.AddRow(ui.ResultRow{
			Num: i + 1,
			Cells: []string{
				ui.FormatRowNum(i+1, len(env.Results)),
				id,
				status,
				ui.TruncateWithEllipsis(desc, tbl.ColumnWidth("detail")),
				updated,
			},
		})
	}
	fmt.Println(tbl.Render())

	if env.ContextSpec != "" {
		fmt.Println()
		for _, entry := range env.Results {
			id, _ := entry["project_id"].(string)
			if payload, ok := entry["context"].(map[string]interface{}); ok {
				fmt.Printf("%s\n", ui.ProjectID(id))
				printContextPayload(payload, "  ")
			}
		}
	}
}

func renderContextResults(env *mql.Envelope) {
	if len(env.Results) == 0 {
		fmt.Printf("No projects in scope %s\n", env.Scope)
		return
	}

	fmt.Printf("%s %s\n\n", ui.Header("Context: "+env.ContextSpec),
		ui.Count(len(env.Results), "project", "projects"))

	for _, entry := range env.Results {
		id, _ := entry["project_id"].(string)
		fmt.Printf("%s\n", ui.ProjectID(id))
		payload, ok := entry["context"].(map[string]interface{})
		if !ok || len(payload) == 0 {
			fmt.Println(ui.Hint("  (no context)"))
			continue
		}
		printContextPayload(payload, "  ")
		fmt.Println()
	}
}

// printContextPayload renders a context map with stable key order.
func printContextPayload(payload map[string]interface{}, indent string) {
	keys := make([]string, 0, len(payload))
	for k := range payload {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		switch v := payload[k].(type) {
		case []interface{}:
			fmt.Printf("%s%s:\n", indent, k)
			for _, item := range v {
				printContextItem(item, indent+"  ")
			}
		case map[string]interface{}:
			fmt.Printf("%s%s:\n", indent, k)
			printContextPayload(v, indent+"  ")
		default:
			fmt.Printf("%s%s: %v\n", indent, k, v)
		}
	}
}

func printContextItem(item interface{}, indent string) {
	switch v := item.(type) {
	case map[string]interface{}:
		var parts []string
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			parts = append(parts, fmt.Sprintf("%s=%v", k, v[k]))
		}
		fmt.Printf("%s- %s\n", indent, strings.Join(parts, " "))
	default:
		fmt.Printf("%s- %v\n", indent, v)
	}
}
