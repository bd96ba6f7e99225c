package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/ndscreen/internal/session"
	"github.com/abhisek/ndscreen/internal/workspace"
)

var noteCmd = &cobra.Command{
	Use:   "note",
	Short: "Read or write item and section notes",
}

var noteItemCmd = &cobra.Command{
	Use:   "item <item> [text...]",
	Short: "Print an item note, or set it when text is given",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withWorkspace(cmd, func(ws *workspace.Workspace) error {
			itemID := args[0]
			if !itemKnown(ws, itemID) {
				return fmt.Errorf("%w: %q", session.ErrUnknownItem, itemID)
			}
			if len(args) == 1 {
				text, _ := ws.Session.ItemNote(itemID)
				fmt.Fprintln(cmd.OutOrStdout(), text)
				return nil
			}
			ws.Session.SetItemNote(itemID, strings.Join(args[1:], " "))
			if err := ws.Save(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "note saved for %s\n", itemID)
			return nil
		})
	},
}

var noteSectionCmd = &cobra.Command{
	Use:   "section <instrument> <section> [text...]",
	Short: "Print a section note, or set it when text is given",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withWorkspace(cmd, func(ws *workspace.Workspace) error {
			in, err := lookupInstrument(ws, args[0])
			if err != nil {
				return err
			}
			sec, ok := ws.Sections.Section(in.ID, args[1])
			if !ok {
				return fmt.Errorf("no section %q in %s", args[1], in.ID)
			}
			key := sec.Key.String()
			if len(args) == 2 {
				text, _ := ws.Session.SectionNote(key)
				fmt.Fprintln(cmd.OutOrStdout(), text)
				return nil
			}
			ws.Session.SetSectionNote(key, strings.Join(args[2:], " "))
			if err := ws.Save(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "note saved for %s\n", key)
			return nil
		})
	},
}

func itemKnown(ws *workspace.Workspace, itemID string) bool {
	for _, in := range ws.Catalog.All() {
		if in.HasItem(itemID) {
			return true
		}
	}
	return false
}

func init() {
	noteCmd.AddCommand(noteItemCmd, noteSectionCmd)
}
