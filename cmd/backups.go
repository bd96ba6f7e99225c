package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/ndscreen/internal/workspace"
)

var backupsCmd = &cobra.Command{
	Use:   "backups",
	Short: "List or restore the automatic backups taken before imports",
}

var backupsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List backups, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		return withWorkspace(cmd, func(ws *workspace.Workspace) error {
			list, err := ws.Backups(cmd.Context(), limit)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(list) == 0 {
				fmt.Fprintln(out, "no backups")
				return nil
			}
			for _, b := range list {
				if b.Err != nil {
					fmt.Fprintf(out, "%s  %s  %-8s  unreadable: %v\n",
						b.ID, b.CreatedAt.Local().Format("2006-01-02 15:04"), b.Reason, b.Err)
					continue
				}
				name := b.ProfileName
				if name == "" {
					name = "(no profile)"
				}
				fmt.Fprintf(out, "%s  %s  %-8s  %-20s  %d answers  %d notes\n",
					b.ID, b.CreatedAt.Local().Format("2006-01-02 15:04"), b.Reason, truncate(name, 20), b.Answered, b.Notes)
			}
			return nil
		})
	},
}

var backupsRestoreCmd = &cobra.Command{
	Use:   "restore <id>",
	Short: "Replace the whole session with a backup",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")
		if !yes {
			return errNotConfirmed
		}
		return withWorkspace(cmd, func(ws *workspace.Workspace) error {
			b, err := ws.RestoreBackup(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "restored %s; previous state saved as backup %s\n", args[0], b.ID)
			return nil
		})
	},
}

func init() {
	backupsListCmd.Flags().Int("limit", 0, "Show at most this many backups (0 for all)")
	backupsRestoreCmd.Flags().BoolP("yes", "y", false, "Apply without further confirmation")
	backupsCmd.AddCommand(backupsListCmd, backupsRestoreCmd)
}
