package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/ndscreen/internal/workspace"
)

var sectionsCmd = &cobra.Command{
	Use:   "sections <instrument>",
	Short: "List an instrument's sections with their items and answers",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		verbose, _ := cmd.Flags().GetBool("items")
		return withWorkspace(cmd, func(ws *workspace.Workspace) error {
			in, err := lookupInstrument(ws, args[0])
			if err != nil {
				return err
			}
			secs, err := ws.Sections.Sections(in.ID)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, s := range secs {
				c := ws.Progress.Section(s)
				mark := ""
				if ws.Session.HasSectionNote(s.Key.String()) {
					mark = "  [note]"
				}
				fmt.Fprintf(out, "%s  %d/%d%s\n", s.Name, c.Answered, c.Total, mark)
				if !verbose {
					continue
				}
				for _, it := range s.Items {
					answer := "-"
					if idx, ok := ws.Session.Response(in.ID, it.ID); ok {
						answer = in.Label(idx)
					}
					fmt.Fprintf(out, "  %-12s %-50s %s\n", it.ID, truncate(it.Text, 50), answer)
				}
			}
			return nil
		})
	},
}

func init() {
	sectionsCmd.Flags().Bool("items", false, "Also list each item with its answer")
}
