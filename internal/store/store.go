package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// Table names, matching the ent schemas.
const (
	tableEntries = "entries"
	tableBackups = "backups"
)

// Store is the SQLite database holding the persisted session and its
// backups.
type Store struct {
	db  *sql.DB
	drv *entsql.Driver
	rev *revisionCounter
}

// pragmas are applied on every pooled connection through the DSN, so a
// connection opened later by database/sql gets them too. The migrator
// requires foreign_keys.
var pragmas = []string{
	"foreign_keys(1)",
	"journal_mode(WAL)",
	"busy_timeout(5000)",
	"synchronous(NORMAL)",
}

// Open connects to the SQLite database at dsn and brings its tables up
// to date with the ent schemas.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", withPragmas(dsn))
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("open database: %w", err)
	}

	drv := entsql.OpenDB(dialect.SQLite, db)
	if err := migrate(context.Background(), drv); err != nil {
		drv.Close()
		return nil, fmt.Errorf("auto-migrate: %w", err)
	}

	rev, err := newRevisionCounter(db)
	if err != nil {
		drv.Close()
		return nil, err
	}
	return &Store{db: db, drv: drv, rev: rev}, nil
}

func withPragmas(dsn string) string {
	var b strings.Builder
	b.WriteString(dsn)
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	for _, p := range pragmas {
		b.WriteString(sep + "_pragma=" + p)
		sep = "&"
	}
	return b.String()
}

func (s *Store) Close() error { return s.drv.Close() }

func (s *Store) Entries() EntryRepo { return &entryRepo{drv: s.drv, rev: s.rev} }

func (s *Store) Backups() BackupRepo { return &backupRepo{drv: s.drv} }

// DefaultDBPath is $XDG_DATA_HOME/ndscreen/ndscreen.db, falling back to
// ~/.local/share. The parent directory is created. An explicit path from
// the --db flag or NDSCREEN_DB arrives through config instead.
func DefaultDBPath() (string, error) {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	p := filepath.Join(dataHome, "ndscreen", "ndscreen.db")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path.
func EnsureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o700)
}
