package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/abhisek/ndscreen/internal/config"
	"github.com/abhisek/ndscreen/internal/logging"
	"github.com/abhisek/ndscreen/internal/workspace"
)

var settings = config.NewViper()

var rootCmd = &cobra.Command{
	Use:   "ndscreen",
	Short: "Self-administered neurodevelopmental screening questionnaires",
	Long: "ndscreen walks through standardized screening questionnaires in the terminal.\n" +
		"Answers are stored locally and are never scored or interpreted.",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("db", "", "Path to SQLite database file (overrides NDSCREEN_DB env var)")
	pf.String("catalog", "", "Instrument catalog YAML file (default: built-in catalog)")
	pf.String("log-level", "", "Log level: debug, info, warn or error")
	pf.String("log-file", "", "Log file used while the terminal UI runs")

	bindFlag(settings, config.KeyDB, rootCmd, "db")
	bindFlag(settings, config.KeyCatalog, rootCmd, "catalog")
	bindFlag(settings, config.KeyLogLevel, rootCmd, "log-level")
	bindFlag(settings, config.KeyLogFile, rootCmd, "log-file")

	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(instrumentsCmd)
	rootCmd.AddCommand(answerCmd)
	rootCmd.AddCommand(clearCmd)
	rootCmd.AddCommand(noteCmd)
	rootCmd.AddCommand(sectionsCmd)
	rootCmd.AddCommand(nextCmd)
	rootCmd.AddCommand(progressCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(backupsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}

func bindFlag(v *viper.Viper, key string, cmd *cobra.Command, flag string) {
	if err := v.BindPFlag(key, cmd.PersistentFlags().Lookup(flag)); err != nil {
		panic(fmt.Sprintf("bind flag %s: %v", flag, err))
	}
}

// env is everything a command needs: resolved settings, the logger and
// the open workspace.
type env struct {
	cfg      config.Config
	logger   *slog.Logger
	ws       *workspace.Workspace
	closeLog func() error
}

// openEnv resolves settings, installs the logger and opens the workspace.
// In TUI mode logs go to a file so they do not draw over the screen.
func openEnv(cmd *cobra.Command, tui bool) (*env, error) {
	cfg, err := config.Load(settings)
	if err != nil {
		return nil, err
	}
	logger, closeLog := logging.Setup(cfg.LogLevel, tui, cfg.LogFile)

	ws, err := workspace.Open(cmd.Context(), cfg, logger)
	if err != nil {
		_ = closeLog()
		return nil, err
	}
	switch r := ws.Restored; {
	case r.Fresh():
		logger.Debug("no saved session, starting fresh")
	case len(r.Corrupt) > 0:
		logger.Warn("some saved data could not be read and was reset", "corrupt", r.Corrupt)
	}
	return &env{cfg: cfg, logger: logger, ws: ws, closeLog: closeLog}, nil
}

func (e *env) Close() error {
	err := e.ws.Close()
	if cerr := e.closeLog(); err == nil {
		err = cerr
	}
	return err
}

// withWorkspace runs fn against an open CLI workspace and closes it.
func withWorkspace(cmd *cobra.Command, fn func(ws *workspace.Workspace) error) error {
	e, err := openEnv(cmd, false)
	if err != nil {
		return err
	}
	defer e.Close()
	return fn(e.ws)
}
