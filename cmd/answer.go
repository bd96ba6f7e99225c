package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/ndscreen/internal/catalog"
	"github.com/abhisek/ndscreen/internal/session"
	"github.com/abhisek/ndscreen/internal/workspace"
)

var answerCmd = &cobra.Command{
	Use:   "answer <instrument> <item> <level>",
	Short: "Record an answer; level is a scale index or its label",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withWorkspace(cmd, func(ws *workspace.Workspace) error {
			in, err := lookupInstrument(ws, args[0])
			if err != nil {
				return err
			}
			idx, err := parseLevel(in, args[2])
			if err != nil {
				return err
			}
			if err := ws.Session.SetResponse(in.ID, args[1], idx); err != nil {
				return err
			}
			if err := ws.Save(cmd.Context()); err != nil {
				return err
			}
			c := ws.Progress.Count(in.ID)
			fmt.Fprintf(cmd.OutOrStdout(), "%s = %d (%s)  [%d/%d answered]\n",
				args[1], idx, in.Label(idx), c.Answered, c.Total)
			return nil
		})
	},
}

var clearCmd = &cobra.Command{
	Use:   "clear <instrument> <item>",
	Short: "Remove an answer",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withWorkspace(cmd, func(ws *workspace.Workspace) error {
			in, err := lookupInstrument(ws, args[0])
			if err != nil {
				return err
			}
			if !in.HasItem(args[1]) {
				return fmt.Errorf("%w: %q in %s", session.ErrUnknownItem, args[1], in.ID)
			}
			ws.Session.ClearResponse(in.ID, args[1])
			if err := ws.Save(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s cleared\n", args[1])
			return nil
		})
	},
}

// parseLevel accepts a scale index or a case-insensitive scale label.
// Out-of-range indexes are passed through so the session reports them.
func parseLevel(in catalog.Instrument, s string) (int, error) {
	if idx, err := strconv.Atoi(s); err == nil {
		return idx, nil
	}
	for _, lvl := range in.Scale {
		if strings.EqualFold(lvl.Label, s) {
			return lvl.Index, nil
		}
	}
	labels := make([]string, len(in.Scale))
	for i, lvl := range in.Scale {
		labels[i] = fmt.Sprintf("%d=%s", lvl.Index, lvl.Label)
	}
	return 0, fmt.Errorf("unknown level %q for %s (%s)", s, in.ID, strings.Join(labels, ", "))
}
