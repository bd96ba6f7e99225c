package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/ndscreen/internal/app"
)

// runApp opens the workspace with file logging and launches the TUI.
func runApp(cmd *cobra.Command) error {
	e, err := openEnv(cmd, true)
	if err != nil {
		return err
	}
	defer e.Close()

	e.logger.Info("starting tui",
		"instruments", e.ws.Catalog.Len(),
		"onboarded", e.ws.Session.HasProfile())
	return app.Run(e.ws, e.cfg, e.logger)
}
