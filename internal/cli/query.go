package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/magpiehq/magpie/internal/config"
	"github.com/magpiehq/magpie/internal/lastquery"
	"github.com/magpiehq/magpie/internal/mql"
	"github.com/magpiehq/magpie/internal/ui"
)

var queryCmd = &cobra.Command{
	Use:   "query <query-string>",
	Short: "Run an MQL query against the workspace",
	Long: `Query projects, sessions, and context using MQL.

Query forms:
  FIND <value> IN <scope>      Search context payloads for a value
  WHERE <condition> IN <scope> Filter projects by field conditions
  CONTEXT <scope>              Retrieve context for a scope

Scopes:
  CURRENT_PROJECT    The project of the most recent session
  ALL_PROJECTS       Every registered project
  <project-id>       A specific project

Optional clauses (in any order after the scope):
  WHERE <condition>            Filter matched projects
  CONTEXT <spec>               LAST_SESSION, LAST_<N>_COMMITS, LAST_<N>_DAYS, FULL
  PRIORITIZE <directive>,...   RECENCY, RELEVANCE

Examples:
  mgp query 'FIND "auth" IN ALL_PROJECTS'
  mgp query 'WHERE STATUS = "active" IN ALL_PROJECTS PRIORITIZE RECENCY'
  mgp query 'CONTEXT CURRENT_PROJECT CONTEXT LAST_5_COMMITS'
  mgp query standup                  # Run saved query
  mgp query --list                   # List saved queries`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		start := time.Now()

		wcfg, err := loadWorkspaceConfigSafe()
		if err != nil {
			return handleError(ErrInternal, err, "")
		}

		listFlag, _ := cmd.Flags().GetBool("list")
		if listFlag {
			return listSavedQueries(wcfg, start)
		}

		if len(args) == 0 {
			return handleErrorMsg(ErrMissingArgument, "specify a query string", "Run 'mgp query --list' to see saved queries")
		}

		queryStr := args[0]

		// Saved query names are bare words; MQL always starts with a verb.
		if !isMQLQuery(queryStr) {
			saved, ok := wcfg.SavedQuery(queryStr)
			if !ok {
				return handleErrorMsg(ErrQueryInvalid,
					fmt.Sprintf("unknown query: %s", queryStr),
					"Queries must start with FIND, WHERE, or CONTEXT, or be a saved query name. Run 'mgp query --list' to see saved queries.")
			}
			queryStr = saved.Query
		}

		st, err := openWorkspaceStore()
		if err != nil {
			return handleError(ErrDatabaseError, err, "")
		}
		defer st.Close()

		env := newExecutor(st).Execute(queryStr)
		elapsed := time.Since(start).Milliseconds()

		if env.Error == "" {
			// Best effort; a failed write should not fail the query.
			_ = lastquery.Write(getWorkspacePath(), &lastquery.LastQuery{
				Query:     queryStr,
				Timestamp: time.Now().UTC(),
				Envelope:  env,
			})
		}

		if isJSONOutput() {
			if env.Error != "" {
				outputError(ErrQueryInvalid, env.Error, map[string]interface{}{"query": env.Query}, "")
				return nil
			}
			outputSuccess(env, &Meta{Count: len(env.Results), QueryTimeMs: elapsed})
			return nil
		}

		if env.Error != "" {
			return handleErrorMsg(ErrQueryInvalid, env.Error, "")
		}
		renderEnvelope(env)
		return nil
	},
}

// isMQLQuery reports whether the string starts with an MQL verb.
func isMQLQuery(s string) bool {
	fields := strings.Fields(strings.TrimSpace(s))
	if len(fields) == 0 {
		return false
	}
	first := strings.ToUpper(fields[0])
	switch first {
	case "FIND", "WHERE", "CONTEXT":
		return true
	}
	return false
}

func listSavedQueries(wcfg *config.WorkspaceConfig, start time.Time) error {
	elapsed := time.Since(start).Milliseconds()

	if isJSONOutput() {
		type savedQueryInfo struct {
			Name        string `json:"name"`
			Query       string `json:"query"`
			Description string `json:"description,omitempty"`
		}
		var queries []savedQueryInfo
		for _, name := range wcfg.SavedQueryNames() {
			q := wcfg.Queries[name]
			queries = append(queries, savedQueryInfo{Name: name, Query: q.Query, Description: q.Description})
		}
		outputSuccess(map[string]interface{}{"queries": queries}, &Meta{Count: len(queries), QueryTimeMs: elapsed})
		return nil
	}

	fmt.Println(ui.Header("Saved queries"))
	if len(wcfg.Queries) == 0 {
		fmt.Println("  (none defined)")
		fmt.Println("\nDefine queries in magpie.yaml under 'queries:' or run 'mgp query add'.")
		return nil
	}
	list := ui.NewList()
	for _, name := range wcfg.SavedQueryNames() {
		q := wcfg.Queries[name]
		desc := q.Description
		if desc == "" {
			desc = q.Query
		}
		list.Add(fmt.Sprintf("%-12s %s", name, ui.Hint(desc)))
	}
	fmt.Print(list.String())
	return nil
}

var queryAddCmd = &cobra.Command{
	Use:   "add <name> <query-string>",
	Short: "Add a saved query to magpie.yaml",
	Long: `Add a new saved query to magpie.yaml.

Examples:
  mgp query add active 'WHERE STATUS = "active" IN ALL_PROJECTS'
  mgp query add standup 'CONTEXT CURRENT_PROJECT CONTEXT LAST_SESSION' --description "What was I doing?"`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		queryStr := args[1]

		if !isMQLQuery(queryStr) {
			return handleErrorMsg(ErrQueryInvalid,
				fmt.Sprintf("not a valid query: %s", queryStr),
				"Queries must start with FIND, WHERE, or CONTEXT")
		}
		// Reject queries that would not parse rather than saving a dud.
		if _, err := mql.Parse(queryStr); err != nil {
			return handleErrorMsg(ErrQueryInvalid, err.Error(), "")
		}

		wcfg, err := loadWorkspaceConfigSafe()
		if err != nil {
			return handleError(ErrInternal, err, "")
		}
		if _, exists := wcfg.SavedQuery(name); exists {
			return handleErrorMsg(ErrDuplicateName,
				fmt.Sprintf("query '%s' already exists", name),
				"Use 'mgp query remove' first to replace it")
		}

		description, _ := cmd.Flags().GetString("description")
		wcfg.SetSavedQuery(name, &config.SavedQuery{Query: queryStr, Description: description})
		if err := wcfg.Save(); err != nil {
			return handleError(ErrInternal, err, "")
		}

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{
				"name":        name,
				"query":       queryStr,
				"description": description,
			}, nil)
			return nil
		}
		fmt.Printf("✓ Added query '%s'\n", name)
		fmt.Printf("  Run with: mgp query %s\n", name)
		return nil
	},
}

var queryRemoveCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Remove a saved query from magpie.yaml",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]

		wcfg, err := loadWorkspaceConfigSafe()
		if err != nil {
			return handleError(ErrInternal, err, "")
		}
		if _, exists := wcfg.SavedQuery(name); !exists {
			return handleErrorMsg(ErrQueryNotFound,
				fmt.Sprintf("query '%s' not found", name),
				"Run 'mgp query --list' to see available queries")
		}

		delete(wcfg.Queries, name)
		if err := wcfg.Save(); err != nil {
			return handleError(ErrInternal, err, "")
		}

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{"name": name, "removed": true}, nil)
			return nil
		}
		fmt.Printf("✓ Removed query '%s'\n", name)
		return nil
	},
}

func init() {
	queryCmd.Flags().BoolP("list", "l", false, "List saved queries")
	queryAddCmd.Flags().String("description", "", "Human-readable description")

	queryCmd.AddCommand(queryAddCmd)
	queryCmd.AddCommand(queryRemoveCmd)
	rootCmd.AddCommand(queryCmd)
}
