// Package workspace assembles the catalog, the database and the session
// into the unit that CLI commands and the terminal UI operate on.
package workspace

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/abhisek/ndscreen/internal/catalog"
	"github.com/abhisek/ndscreen/internal/config"
	"github.com/abhisek/ndscreen/internal/progress"
	"github.com/abhisek/ndscreen/internal/sections"
	"github.com/abhisek/ndscreen/internal/session"
	"github.com/abhisek/ndscreen/internal/snapshot"
	"github.com/abhisek/ndscreen/internal/store"
)

// Backup reasons.
const (
	ReasonImport  = "import"
	ReasonRestore = "restore"
)

// Workspace is an open session bound to its database.
type Workspace struct {
	Store    *store.Store
	Catalog  *catalog.Catalog
	Session  *session.Session
	Sections *sections.Engine
	Progress *progress.Calculator

	// Restored describes what was loaded from the database at open.
	Restored session.RestoreReport

	backupKeep int
	logger     *slog.Logger
}

// Open loads the catalog, opens the database and restores the session.
func Open(ctx context.Context, cfg config.Config, logger *slog.Logger) (*Workspace, error) {
	if logger == nil {
		logger = slog.Default()
	}

	cat, err := loadCatalog(cfg.CatalogPath)
	if err != nil {
		return nil, err
	}

	dbPath := cfg.DBPath
	if dbPath == "" {
		dbPath, err = store.DefaultDBPath()
		if err != nil {
			return nil, fmt.Errorf("resolve DB path: %w", err)
		}
	} else if err := store.EnsureDir(dbPath); err != nil {
		return nil, fmt.Errorf("create DB dir: %w", err)
	}

	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	w := New(st, cat, cfg.BackupKeep, logger)
	w.Restored = w.Session.Restore(ctx, st.Entries())
	logger.Debug("session restored",
		"db", dbPath,
		"loaded", w.Restored.Loaded,
		"missing", w.Restored.Missing,
		"corrupt", w.Restored.Corrupt,
		"revision", w.Restored.Revision)
	return w, nil
}

// New wraps an open store. The session starts empty.
func New(st *store.Store, cat *catalog.Catalog, backupKeep int, logger *slog.Logger) *Workspace {
	if logger == nil {
		logger = slog.Default()
	}
	sess := session.New(cat, session.WithLogger(logger))
	return &Workspace{
		Store:      st,
		Catalog:    cat,
		Session:    sess,
		Sections:   sections.NewEngine(cat),
		Progress:   progress.New(cat, sess),
		backupKeep: backupKeep,
		logger:     logger,
	}
}

func loadCatalog(path string) (*catalog.Catalog, error) {
	if path == "" {
		return catalog.Default()
	}
	cat, err := catalog.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load catalog %s: %w", path, err)
	}
	return cat, nil
}

// Save persists the session immediately.
func (w *Workspace) Save(ctx context.Context) error {
	rev, err := w.Session.Persist(ctx, w.Store.Entries())
	if err != nil {
		return err
	}
	w.logger.Debug("session saved", "revision", rev)
	return nil
}

// Close closes the database.
func (w *Workspace) Close() error {
	return w.Store.Close()
}

// Export encodes the full session and suggests a file name for it.
func (w *Workspace) Export(now time.Time) (data []byte, filename string, err error) {
	data, err = snapshot.Encode(w.Session.ExportSnapshot(now))
	if err != nil {
		return nil, "", err
	}
	return data, snapshot.Filename(w.Session.Profile(), now), nil
}

// Import replaces session state with the fields present in raw. The
// document is fully validated before anything is written; the current
// state is then saved as a backup, applied, and persisted. A rejected
// document changes nothing.
func (w *Workspace) Import(ctx context.Context, raw []byte) (*store.Backup, error) {
	snap, err := snapshot.Decode(raw)
	if err != nil {
		return nil, err
	}
	return w.apply(ctx, snap, ReasonImport, w.Session.ApplySnapshot)
}

// PreviewImport decodes and checks raw exactly as Import would, without
// changing anything.
func (w *Workspace) PreviewImport(raw []byte) (*store.Snapshot, error) {
	snap, err := snapshot.Decode(raw)
	if err != nil {
		return nil, err
	}
	if err := w.Session.CheckSnapshot(snap); err != nil {
		return nil, err
	}
	return snap, nil
}

// ImportChanges describes which parts of the session a snapshot replaces.
func ImportChanges(snap *store.Snapshot) []string {
	var out []string
	if snap.Profile != nil {
		out = append(out, fmt.Sprintf("profile (%s)", snap.Profile.Name))
	}
	if snap.Responses != nil {
		n := 0
		for _, items := range snap.Responses {
			n += len(items)
		}
		out = append(out, fmt.Sprintf("all answers (%d in file)", n))
	}
	if snap.Notes != nil {
		out = append(out, fmt.Sprintf("item notes (%d in file)", len(snap.Notes)))
	}
	if snap.SectionNotes != nil {
		out = append(out, fmt.Sprintf("section notes (%d in file)", len(snap.SectionNotes)))
	}
	return out
}

// RestoreBackup replaces the whole session with a stored backup. The
// current state is itself backed up first.
func (w *Workspace) RestoreBackup(ctx context.Context, id string) (*store.Backup, error) {
	b, err := w.Store.Backups().Get(ctx, id)
	if err != nil {
		return nil, err
	}
	snap, err := snapshot.Decode(b.Data)
	if err != nil {
		return nil, fmt.Errorf("backup %s: %w", id, err)
	}
	// A backup is the whole state at the time it was taken; a null profile
	// means there was none.
	return w.apply(ctx, snap, ReasonRestore, w.Session.ReplaceSnapshot)
}

func (w *Workspace) apply(ctx context.Context, snap *store.Snapshot, reason string,
	set func(*store.Snapshot) error) (*store.Backup, error) {
	if err := w.Session.CheckSnapshot(snap); err != nil {
		return nil, err
	}

	backup, err := w.backup(ctx, reason)
	if err != nil {
		return nil, err
	}

	if err := set(snap); err != nil {
		return nil, err
	}
	if err := w.Save(ctx); err != nil {
		return backup, err
	}
	w.logger.Info("snapshot applied", "reason", reason, "backup", backup.ID)
	return backup, nil
}

func (w *Workspace) backup(ctx context.Context, reason string) (*store.Backup, error) {
	data, err := snapshot.Encode(w.Session.ExportSnapshot(time.Now()))
	if err != nil {
		return nil, err
	}
	rev, err := w.Store.Entries().Revision(ctx)
	if err != nil {
		return nil, err
	}

	b := &store.Backup{Reason: reason, Revision: rev, Data: data}
	if err := w.Store.Backups().Save(ctx, b); err != nil {
		return nil, err
	}
	if w.backupKeep > 0 {
		if err := w.Store.Backups().Prune(ctx, w.backupKeep); err != nil {
			w.logger.Warn("prune backups", "error", err)
		}
	}
	return b, nil
}

// BackupSummary is a backup with a digest of its contents.
type BackupSummary struct {
	store.Backup
	ProfileName string
	Answered    int
	Notes       int
	// Err is set when the stored document no longer decodes.
	Err error
}

// Backups lists stored backups, newest first, with a digest of each.
func (w *Workspace) Backups(ctx context.Context, limit int) ([]BackupSummary, error) {
	backups, err := w.Store.Backups().List(ctx, store.QueryOpts{Limit: limit})
	if err != nil {
		return nil, err
	}
	out := make([]BackupSummary, len(backups))
	for i, b := range backups {
		out[i] = BackupSummary{Backup: b}
		snap, err := snapshot.Decode(b.Data)
		if err != nil {
			out[i].Err = err
			continue
		}
		if snap.Profile != nil {
			out[i].ProfileName = snap.Profile.Name
		}
		for _, items := range snap.Responses {
			out[i].Answered += len(items)
		}
		out[i].Notes = len(snap.Notes) + len(snap.SectionNotes)
	}
	return out, nil
}

// Reset clears the session, the persisted entries and every backup.
func (w *Workspace) Reset(ctx context.Context) error {
	w.Session.Reset()
	if err := w.Store.Entries().Clear(ctx); err != nil {
		return err
	}
	if err := w.Store.Backups().Clear(ctx); err != nil {
		return err
	}
	w.logger.Info("session reset")
	return nil
}
