package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/ndscreen/internal/catalog"
	"github.com/abhisek/ndscreen/internal/session"
	"github.com/abhisek/ndscreen/internal/workspace"
)

var instrumentsCmd = &cobra.Command{
	Use:   "instruments",
	Short: "Browse the instrument catalog",
}

var instrumentsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List instruments with their completion",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withWorkspace(cmd, func(ws *workspace.Workspace) error {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%-10s  %-40s  %5s  %8s  %s\n", "ID", "Title", "Items", "Progress", "Status")
			fmt.Fprintln(out, strings.Repeat("─", 84))
			for _, in := range ws.Catalog.All() {
				c := ws.Progress.Count(in.ID)
				fmt.Fprintf(out, "%-10s  %-40s  %5d  %7d%%  %s\n",
					in.ID, truncate(in.Title, 40), c.Total, c.Percent(), ws.Progress.Status(in.ID))
			}
			return nil
		})
	},
}

var instrumentsInfoCmd = &cobra.Command{
	Use:   "info <instrument>",
	Short: "Show an instrument's scale, sections and information sheet",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
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
			fmt.Fprintf(out, "%s (%s)\n", in.Title, in.ID)
			if in.Info != nil && in.Info.FullName != "" {
				fmt.Fprintln(out, in.Info.FullName)
			}
			if in.Description != "" {
				fmt.Fprintf(out, "\n%s\n", in.Description)
			}

			fmt.Fprintf(out, "\nItems: %d\n\nScale:\n", len(in.Items))
			for _, lvl := range in.Scale {
				fmt.Fprintf(out, "  %d  %s\n", lvl.Index, lvl.Label)
			}

			fmt.Fprintln(out, "\nSections:")
			for _, s := range secs {
				c := ws.Progress.Section(s)
				fmt.Fprintf(out, "  %-40s  %d/%d\n", s.Name, c.Answered, c.Total)
			}

			if in.Info != nil {
				printInfo(out, *in.Info)
			}
			return nil
		})
	},
}

func printInfo(w io.Writer, info catalog.Info) {
	for _, f := range []struct{ heading, text string }{
		{"Designed for", info.DesignedFor},
		{"Versions", info.Versions},
		{"Taking the test", info.TakingTest},
		{"Scoring", info.Scoring},
		{"Validity", info.Validity},
		{"Discussion", info.Discussion},
	} {
		if f.text == "" {
			continue
		}
		fmt.Fprintf(w, "\n%s\n%s\n", f.heading, strings.TrimSpace(f.text))
	}
}

func lookupInstrument(ws *workspace.Workspace, id string) (catalog.Instrument, error) {
	in, ok := ws.Catalog.Get(id)
	if !ok {
		return catalog.Instrument{}, fmt.Errorf("%w: %q (known: %s)",
			session.ErrUnknownInstrument, id, strings.Join(ws.Catalog.IDs(), ", "))
	}
	return in, nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

func init() {
	instrumentsCmd.AddCommand(instrumentsListCmd, instrumentsInfoCmd)
}
