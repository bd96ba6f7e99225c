package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/ndscreen/internal/workspace"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete the profile, every answer and note, and all backups",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")
		if !yes {
			return fmt.Errorf("reset deletes everything and cannot be undone: re-run with --yes")
		}
		return withWorkspace(cmd, func(ws *workspace.Workspace) error {
			if err := ws.Reset(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "all data deleted")
			return nil
		})
	},
}

func init() {
	resetCmd.Flags().BoolP("yes", "y", false, "Confirm deletion")
}
