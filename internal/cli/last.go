package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/magpiehq/magpie/internal/lastquery"
	"github.com/magpiehq/magpie/internal/ui"
)

var lastCmd = &cobra.Command{
	Use:   "last",
	Short: "Re-display the results of the most recent query",
	Long: `Re-display the results of the most recent query without re-running it.

The results shown are a snapshot from when the query ran; re-run the
query itself to pick up changes since then.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		lq, err := lastquery.Read(getWorkspacePath())
		if err != nil {
			if errors.Is(err, lastquery.ErrNoLastQuery) {
				return handleErrorMsg(ErrQueryNotFound,
					"no query has been run in this workspace",
					"Run 'mgp query' first")
			}
			return handleError(ErrInternal, err, "")
		}

		if lq.Envelope == nil {
			return handleErrorMsg(ErrInternal, "last query record is incomplete", "Re-run the query")
		}

		if isJSONOutput() {
			outputSuccess(lq, &Meta{Count: len(lq.Envelope.Results)})
			return nil
		}

		fmt.Printf("%s %s\n", ui.Muted.Render("Query:"), lq.Query)
		fmt.Printf("%s %s\n\n", ui.Muted.Render("Ran:"), ui.Timestamp(lq.Timestamp.Local().Format("Jan 2 15:04")))
		renderEnvelope(lq.Envelope)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(lastCmd)
}
