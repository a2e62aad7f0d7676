package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/magpiehq/magpie/internal/model"
	"github.com/magpiehq/magpie/internal/ui"
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Manage work sessions",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var sessionStartCmd = &cobra.Command{
	Use:   "start <project-id>",
	Short: "Start a work session on a project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openWorkspaceStore()
		if err != nil {
			return handleError(ErrDatabaseError, err, "")
		}
		defer st.Close()

		session, err := st.StartSession(args[0])
		if err != nil {
			if errors.Is(err, model.ErrProjectNotFound) {
				return handleErrorMsg(ErrProjectNotFound,
					fmt.Sprintf("project not found: %s", args[0]),
					"Run 'mgp project list' to see registered projects")
			}
			return handleError(ErrDatabaseError, err, "")
		}

		if isJSONOutput() {
			outputSuccess(session, nil)
			return nil
		}
		fmt.Println(ui.Successf("Started session %s on %s", session.ID, ui.ProjectID(session.CurrentProject)))
		return nil
	},
}

var sessionEndCmd = &cobra.Command{
	Use:   "end <session-id>",
	Short: "End a work session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openWorkspaceStore()
		if err != nil {
			return handleError(ErrDatabaseError, err, "")
		}
		defer st.Close()

		if err := st.EndSession(args[0]); err != nil {
			if errors.Is(err, model.ErrSessionNotFound) {
				return handleErrorMsg(ErrSessionNotFound,
					fmt.Sprintf("session not found: %s", args[0]),
					"Run 'mgp session list' to see sessions")
			}
			return handleError(ErrDatabaseError, err, "")
		}

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{"id": args[0], "ended": true}, nil)
			return nil
		}
		fmt.Println(ui.Successf("Ended session %s", args[0]))
		return nil
	},
}

var sessionSetCmd = &cobra.Command{
	Use:   "set <session-id> <key=value>...",
	Short: "Record context on a session",
	Long: `Record context on a session. Session context is what CONTEXT
LAST_SESSION queries return, so this is the main way agents leave
notes for their future selves.

Examples:
  mgp session set 20260826-101500-a1b2c3 focus="token refresh bug"
  mgp session set 20260826-101500-a1b2c3 branch=fix/refresh blockers=none`,
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
			if err := st.SetSessionContext(id, k, v); err != nil {
				if errors.Is(err, model.ErrSessionNotFound) {
					return handleErrorMsg(ErrSessionNotFound, fmt.Sprintf("session not found: %s", id), "")
				}
				return handleError(ErrDatabaseError, err, "")
			}
		}

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{"id": id, "updated": len(args) - 1}, nil)
			return nil
		}
		fmt.Println(ui.Successf("Updated session %s", id))
		return nil
	},
}

var sessionListCmd = &cobra.Command{
	Use:   "list",
	Short: "List sessions, most recent first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openWorkspaceStore()
		if err != nil {
			return handleError(ErrDatabaseError, err, "")
		}
		defer st.Close()

		sessions, err := st.AllSessions()
		if err != nil {
			return handleError(ErrDatabaseError, err, "")
		}

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{"sessions": sessions}, &Meta{Count: len(sessions)})
			return nil
		}

		if len(sessions) == 0 {
			fmt.Println("No sessions recorded.")
			fmt.Println("\nRun 'mgp session start <project-id>' to begin one.")
			return nil
		}

		tbl := ui.NewTable(4)
		for _, s := range sessions {
			state := "active"
			if s.EndedAt != nil {
				state = "ended " + s.EndedAt.Local().Format("2006-01-02 15:04")
			}
			tbl.AddRow(
				s.ID,
				s.CurrentProject,
				s.StartedAt.Local().Format(time.RFC822),
				state,
			)
		}
		fmt.Print(tbl.String())
		return nil
	},
}

func init() {
	sessionCmd.AddCommand(sessionStartCmd)
	sessionCmd.AddCommand(sessionEndCmd)
	sessionCmd.AddCommand(sessionSetCmd)
	sessionCmd.AddCommand(sessionListCmd)
	rootCmd.AddCommand(sessionCmd)
}
