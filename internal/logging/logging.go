// Package logging builds the process logger. The terminal UI owns the
// screen, so in TUI mode records go to a file instead of stderr.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// New returns a text logger writing to w at level.
func New(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// DefaultFilePath returns the TUI log file path:
// $XDG_STATE_HOME/ndscreen/ndscreen.log, falling back to
// ~/.local/state/ndscreen/ndscreen.log.
func DefaultFilePath() (string, error) {
	base := os.Getenv("XDG_STATE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		base = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(base, "ndscreen", "ndscreen.log"), nil
}

// OpenFile opens path for appending, creating it and its directory.
func OpenFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return f, nil
}

// Setup installs the default logger. CLI mode logs to stderr. TUI mode logs
// to file (or the default path when file is empty); if the file cannot be
// opened, logging is discarded rather than drawn over the UI. The returned
// func closes any opened file.
func Setup(level slog.Level, tui bool, file string) (*slog.Logger, func() error) {
	noop := func() error { return nil }

	if !tui {
		l := New(os.Stderr, level)
		slog.SetDefault(l)
		return l, noop
	}

	if file == "" {
		p, err := DefaultFilePath()
		if err != nil {
			l := New(io.Discard, level)
			slog.SetDefault(l)
			return l, noop
		}
		file = p
	}
	f, err := OpenFile(file)
	if err != nil {
		l := New(io.Discard, level)
		slog.SetDefault(l)
		return l, noop
	}
	l := New(f, level)
	slog.SetDefault(l)
	return l, f.Close
}
