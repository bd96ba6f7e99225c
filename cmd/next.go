package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/ndscreen/internal/workspace"
)

var nextCmd = &cobra.Command{
	Use:   "next <instrument>",
	Short: "Print the next unanswered item and its scale",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		after, _ := cmd.Flags().GetString("after")
		return withWorkspace(cmd, func(ws *workspace.Workspace) error {
			in, err := lookupInstrument(ws, args[0])
			if err != nil {
				return err
			}
			if after != "" && !in.HasItem(after) {
				return fmt.Errorf("no item %q in %s", after, in.ID)
			}

			out := cmd.OutOrStdout()
			it, ok := ws.Sections.NextUnanswered(in.ID, after, ws.Session.Answered(in.ID))
			if !ok {
				if ws.Progress.Count(in.ID).Complete() {
					fmt.Fprintf(out, "%s is complete\n", in.Title)
				} else {
					fmt.Fprintf(out, "no unanswered item after %s\n", after)
				}
				return nil
			}

			fmt.Fprintf(out, "%s  [%s]\n%s\n\n", it.ID, it.GroupName(), it.Text)
			for _, lvl := range in.Scale {
				fmt.Fprintf(out, "  %d  %s\n", lvl.Index, lvl.Label)
			}
			return nil
		})
	},
}

func init() {
	nextCmd.Flags().String("after", "", "Search after this item instead of from the start")
}
