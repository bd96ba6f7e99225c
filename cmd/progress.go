package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/ndscreen/internal/workspace"
)

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Show overall and per-instrument completion",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withWorkspace(cmd, func(ws *workspace.Workspace) error {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "overall: %d%%  (%d of %d tests complete)\n",
				ws.Progress.Overall(), ws.Progress.CompletedCount(), ws.Catalog.Len())
			for _, in := range ws.Catalog.All() {
				c := ws.Progress.Count(in.ID)
				fmt.Fprintf(out, "  %-10s %4d%%  %d/%d\n", in.ID, c.Percent(), c.Answered, c.Total)
			}
			return nil
		})
	},
}
