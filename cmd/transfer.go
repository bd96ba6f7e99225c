package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/ndscreen/internal/workspace"
)

var errNotConfirmed = errors.New("not applied: re-run with --yes to confirm")

var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Write all answers and notes to a JSON file (\"-\" for stdout)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withWorkspace(cmd, func(ws *workspace.Workspace) error {
			data, name, err := ws.Export(time.Now())
			if err != nil {
				return err
			}
			if len(args) == 1 {
				name = args[0]
			}
			if name == "-" {
				_, err := cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(name, data, 0o600); err != nil {
				return fmt.Errorf("write export: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "exported to %s\n", name)
			return nil
		})
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Replace answers and notes from an exported JSON file (\"-\" for stdin)",
	Long: "Import replaces every part of the session the file contains. The current\n" +
		"state is backed up first and can be brought back with 'backups restore'.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")
		raw, err := readInput(cmd, args[0])
		if err != nil {
			return err
		}

		return withWorkspace(cmd, func(ws *workspace.Workspace) error {
			snap, err := ws.PreviewImport(raw)
			if err != nil {
				return err
			}
			changes := workspace.ImportChanges(snap)
			out := cmd.OutOrStdout()
			if len(changes) == 0 {
				fmt.Fprintln(out, "the file contains nothing to import")
				return nil
			}
			fmt.Fprintln(out, "This replaces:")
			for _, c := range changes {
				fmt.Fprintf(out, "  - %s\n", c)
			}
			if !yes {
				return errNotConfirmed
			}

			b, err := ws.Import(cmd.Context(), raw)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "imported; previous state saved as backup %s\n", b.ID)
			return nil
		})
	},
}

func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read import: %w", err)
	}
	return raw, nil
}

func init() {
	importCmd.Flags().BoolP("yes", "y", false, "Apply without further confirmation")
}
