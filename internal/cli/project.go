package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/magpiehq/magpie/internal/model"
	"github.com/magpiehq/magpie/internal/store"
	"github.com/magpiehq/magpie/internal/ui"
)

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Manage projects in the workspace",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var (
	projectDescFlag    string
	projectGitPathFlag string
	projectMetaFlags   []string
	projectCtxFlag     bool
)

var projectRegisterCmd = &cobra.Command{
	Use:   "register <name>",
	Short: "Register a new project",
	Long: `Register a new project in the workspace.

The project ID is derived from the name (lowercased, slugified).

Examples:
  mgp project register "Payments API" --description "Billing and payments service"
  mgp project register docs-site --git-path ~/src/docs-site
  mgp project register ml-pipeline --meta team=data --meta lang=python`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openWorkspaceStore()
		if err != nil {
			return handleError(ErrDatabaseError, err, "")
		}
		defer st.Close()

		metadata := make(map[string]interface{})
		for _, m := range projectMetaFlags {
			k, v, err := parseKeyValue(m)
			if err != nil {
				return handleErrorMsg(ErrInvalidInput, err.Error(), "")
			}
			metadata[k] = v
		}
		if projectGitPathFlag != "" {
			metadata["git_path"] = projectGitPathFlag
		}

		project, err := st.RegisterProject(args[0], projectDescFlag, metadata)
		if err != nil {
			if errors.Is(err, store.ErrProjectExists) {
				return handleErrorMsg(ErrProjectExists, err.Error(), "Run 'mgp project list' to see registered projects")
			}
			return handleError(ErrDatabaseError, err, "")
		}

		if isJSONOutput() {
			outputSuccess(project, nil)
			return nil
		}
		fmt.Println(ui.Successf("Registered project %s", ui.ProjectID(project.ID)))
		return nil
	},
}

var projectListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered projects",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openWorkspaceStore()
		if err != nil {
			return handleError(ErrDatabaseError, err, "")
		}
		defer st.Close()

		projects, err := st.AllProjects()
		if err != nil {
			return handleError(ErrDatabaseError, err, "")
		}

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{"projects": projects}, &Meta{Count: len(projects)})
			return nil
		}

		if len(projects) == 0 {
			fmt.Println("No projects registered.")
			fmt.Println("\nRun 'mgp project register <name>' to add one.")
			return nil
		}

		display := ui.NewDisplayContext()
		tbl := ui.NewResultsTable(display, ui.ProjectLayout)
		for i, p := range projects {
			tbl.AddRow(ui.ResultRow{
				Num: i + 1,
				Cells: []string{
					ui.FormatRowNum(i+1, len(projects)),
					p.ID,
					p.Status,
					ui.TruncateWithEllipsis(p.Description, tbl.ColumnWidth("detail")),
					p.UpdatedAt.Local().Format("2006-01-02 15:04"),
				},
			})
		}
		fmt.Println(tbl.Render())
		return nil
	},
}

var projectShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a project's details and history",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openWorkspaceStore()
		if err != nil {
			return handleError(ErrDatabaseError, err, "")
		}
		defer st.Close()

		project, err := st.Project(args[0])
		if err != nil {
			if errors.Is(err, model.ErrProjectNotFound) {
				return handleErrorMsg(ErrProjectNotFound,
					fmt.Sprintf("project not found: %s", args[0]),
					"Run 'mgp project list' to see registered projects")
			}
			return handleError(ErrDatabaseError, err, "")
		}

		if isJSONOutput() {
			outputSuccess(project, nil)
			return nil
		}

		printProject(project)
		return nil
	},
}

func printProject(p *model.Project) {
	fmt.Println(ui.Header(p.Name))
	fmt.Printf("  id:      %s\n", ui.ProjectID(p.ID))
	fmt.Printf("  status:  %s\n", p.Status)
	if p.Description != "" {
		fmt.Printf("  about:   %s\n", p.Description)
	}
	fmt.Printf("  created: %s\n", ui.Timestamp(p.CreatedAt.Local().Format(time.RFC1123)))
	fmt.Printf("  updated: %s\n", ui.Timestamp(p.UpdatedAt.Local().Format(time.RFC1123)))

	if len(p.Metadata) > 0 {
		fmt.Println("\n" + ui.Header("Metadata"))
		tbl := ui.NewTable(2)
		for k, v := range p.Metadata {
			tbl.AddRow("  "+k, fmt.Sprintf("%v", v))
		}
		fmt.Print(tbl.String())
	}

	if len(p.Context) > 0 {
		fmt.Println("\n" + ui.Header("Context"))
		tbl := ui.NewTable(2)
		for k, v := range p.Context {
			tbl.AddRow("  "+k, fmt.Sprintf("%v", v))
		}
		fmt.Print(tbl.String())
	}

	if len(p.History) > 0 {
		fmt.Printf("\n%s %s\n", ui.Header("History"), ui.Count(len(p.History), "event", "events"))
		for _, h := range p.History {
			fmt.Printf("  %s  %s\n", ui.Timestamp(h.Timestamp.Local().Format("2006-01-02 15:04")), h.Event)
		}
	}
}

var projectSetStatusCmd = &cobra.Command{
	Use:   "set-status <id> <status>",
	Short: "Change a project's status",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openWorkspaceStore()
		if err != nil {
			return handleError(ErrDatabaseError, err, "")
		}
		defer st.Close()

		if err := st.SetProjectStatus(args[0], args[1]); err != nil {
			if errors.Is(err, model.ErrProjectNotFound) {
				return handleErrorMsg(ErrProjectNotFound, fmt.Sprintf("project not found: %s", args[0]), "")
			}
			return handleError(ErrDatabaseError, err, "")
		}

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{"id": args[0], "status": args[1]}, nil)
			return nil
		}
		fmt.Println(ui.Successf("%s is now %s", ui.ProjectID(args[0]), args[1]))
		return nil
	},
}

var projectSetCmd = &cobra.Command{
	Use:   "set <id> <key=value>...",
	Short: "Set project metadata or context values",
	Long: `Set metadata on a project. With --context, values are written to the
project's context map instead.

Examples:
  mgp project set payments-api team=platform oncall=alice
  mgp project set payments-api --context focus="migrating to v2 API"`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openWorkspaceStore()
		if err != nil {
			return handleError(ErrDatabaseError, err, "")
		}
		defer st.Close()

		id := args[0]
		for _, pair := range args[1:] {
			k, v, err := parseKeyValue(pair)
			if err != nil {
				return handleErrorMsg(ErrInvalidInput, err.Error(), "")
			}
			if projectCtxFlag {
				err = st.SetProjectContext(id, k, v)
			} else {
				err = st.SetProjectMeta(id, k, v)
			}
			if err != nil {
				if errors.Is(err, model.ErrProjectNotFound) {
					return handleErrorMsg(ErrProjectNotFound, fmt.Sprintf("project not found: %s", id), "")
				}
				return handleError(ErrDatabaseError, err, "")
			}
		}

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{"id": id, "updated": len(args) - 1}, nil)
			return nil
		}
		fmt.Println(ui.Successf("Updated %s", ui.ProjectID(id)))
		return nil
	},
}

var projectLogCmd = &cobra.Command{
	Use:   "log <id> <event>",
	Short: "Append an event to a project's history",
	Long: `Append an event to a project's history. Detail pairs attach
structured data to the event.

Examples:
  mgp project log payments-api "deployed v2.3.1"
  mgp project log docs-site "design review" --detail reviewer=sam`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openWorkspaceStore()
		if err != nil {
			return handleError(ErrDatabaseError, err, "")
		}
		defer st.Close()

		details, _ := cmd.Flags().GetStringSlice("detail")
		var detail map[string]interface{}
		if len(details) > 0 {
			detail = make(map[string]interface{})
			for _, d := range details {
				k, v, err := parseKeyValue(d)
				if err != nil {
					return handleErrorMsg(ErrInvalidInput, err.Error(), "")
				}
				detail[k] = v
			}
		}

		if err := st.AppendHistory(args[0], args[1], detail); err != nil {
			if errors.Is(err, model.ErrProjectNotFound) {
				return handleErrorMsg(ErrProjectNotFound, fmt.Sprintf("project not found: %s", args[0]), "")
			}
			return handleError(ErrDatabaseError, err, "")
		}

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{"id": args[0], "event": args[1]}, nil)
			return nil
		}
		fmt.Println(ui.Successf("Logged event on %s", ui.ProjectID(args[0])))
		return nil
	},
}

var projectRemoveCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Remove a project and its recorded history",
	Long: `Remove a project from the workspace, including its sessions and
history. This cannot be undone.

Examples:
  mgp project remove old-prototype
  mgp project remove old-prototype --force`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := args[0]

		force, _ := cmd.Flags().GetBool("force")
		if !force {
			if !shouldPromptForConfirm() {
				return handleErrorMsg(ErrInvalidInput,
					"refusing to remove without confirmation",
					"Re-run with --force, or run interactively")
			}
			if !promptForConfirm(fmt.Sprintf("Remove project %s and all its history?", id)) {
				fmt.Println("Aborted.")
				return nil
			}
		}

		st, err := openWorkspaceStore()
		if err != nil {
			return handleError(ErrDatabaseError, err, "")
		}
		defer st.Close()

		if err := st.DeleteProject(id); err != nil {
			if errors.Is(err, model.ErrProjectNotFound) {
				return handleErrorMsg(ErrProjectNotFound, fmt.Sprintf("project not found: %s", id), "")
			}
			return handleError(ErrDatabaseError, err, "")
		}

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{"id": id, "removed": true}, nil)
			return nil
		}
		fmt.Println(ui.Successf("Removed project %s", ui.ProjectID(id)))
		return nil
	},
}

func init() {
	projectRegisterCmd.Flags().StringVar(&projectDescFlag, "description", "", "Project description")
	projectRegisterCmd.Flags().StringVar(&projectGitPathFlag, "git-path", "", "Path to the project's git repository")
	projectRegisterCmd.Flags().StringSliceVar(&projectMetaFlags, "meta", nil, "Metadata in key=value format (repeatable)")

	projectSetCmd.Flags().BoolVar(&projectCtxFlag, "context", false, "Write to the project's context map instead of metadata")

	projectLogCmd.Flags().StringSlice("detail", nil, "Event detail in key=value format (repeatable)")

	projectRemoveCmd.Flags().Bool("force", false, "Skip confirmation prompt")

	projectCmd.AddCommand(projectRegisterCmd)
	projectCmd.AddCommand(projectListCmd)
	projectCmd.AddCommand(projectShowCmd)
	projectCmd.AddCommand(projectSetStatusCmd)
	projectCmd.AddCommand(projectSetCmd)
	projectCmd.AddCommand(projectLogCmd)
	projectCmd.AddCommand(projectRemoveCmd)
	rootCmd.AddCommand(projectCmd)
}
