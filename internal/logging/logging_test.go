package logging

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, slog.LevelWarn)

	l.Info("hidden")
	l.Warn("shown", "entry", "notes")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info record written at warn level: %q", out)
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "entry=notes") {
		t.Errorf("warn record missing: %q", out)
	}
}

func TestDefaultFilePath(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", "/var/state")
	p, err := DefaultFilePath()
	if err != nil {
		t.Fatal(err)
	}
	if p != "/var/state/ndscreen/ndscreen.log" {
		t.Errorf("DefaultFilePath() = %q", p)
	}
}

func TestSetupTUIWritesToFile(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	path := filepath.Join(t.TempDir(), "nested", "app.log")
	l, closeFn := Setup(slog.LevelDebug, true, path)
	l.Debug("restored", "loaded", 4)
	if err := closeFn(); err != nil {
		t.Fatalf("close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "restored") {
		t.Errorf("log file missing record: %q", data)
	}
	if slog.Default() != l {
		t.Error("Setup should install the default logger")
	}
}
