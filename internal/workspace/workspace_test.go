package workspace

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/ndscreen/internal/catalog"
	"github.com/abhisek/ndscreen/internal/config"
	"github.com/abhisek/ndscreen/internal/session"
	"github.com/abhisek/ndscreen/internal/snapshot"
	"github.com/abhisek/ndscreen/internal/store"
)

func newTestWorkspace(t *testing.T) *Workspace {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	st, err := store.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	cat, err := catalog.Default()
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	return New(st, cat, 3, nil)
}

func onboard(t *testing.T, w *Workspace) {
	t.Helper()
	require.NoError(t, w.Session.CompleteOnboarding(store.Profile{
		Name: "Ada Lovelace", DateOfBirth: "1990-03-15", Gender: "Female",
	}))
	require.NoError(t, w.Session.SetResponse("aq", "aq_1", 2))
	w.Session.SetItemNote("aq_1", "sometimes")
	require.NoError(t, w.Save(context.Background()))
}

func TestOpenFileDatabase(t *testing.T) {
	dir := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.DBPath = filepath.Join(dir, "data", "screen.db")
	ctx := context.Background()

	w, err := Open(ctx, cfg, nil)
	require.NoError(t, err)
	assert.True(t, w.Restored.Fresh())
	onboard(t, w)
	require.NoError(t, w.Close())

	w2, err := Open(ctx, cfg, nil)
	require.NoError(t, err)
	defer w2.Close()
	assert.False(t, w2.Restored.Fresh())
	assert.Equal(t, "Ada Lovelace", w2.Session.Profile().Name)
	assert.Equal(t, 2, mustResponse(t, w2, "aq", "aq_1"))
}

func TestOpenCustomCatalog(t *testing.T) {
	dir := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.DBPath = filepath.Join(dir, "screen.db")
	cfg.CatalogPath = filepath.Join(dir, "missing.yaml")

	_, err := Open(context.Background(), cfg, nil)
	assert.Error(t, err)
}

func mustResponse(t *testing.T, w *Workspace, inst, item string) int {
	t.Helper()
	v, ok := w.Session.Response(inst, item)
	require.True(t, ok, "no response for %s/%s", inst, item)
	return v
}

func TestExport(t *testing.T) {
	w := newTestWorkspace(t)
	onboard(t, w)

	now := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)
	data, name, err := w.Export(now)
	require.NoError(t, err)
	assert.Equal(t, "screening_Ada_Lovelace_2026-10-18.json", name)

	snap, err := snapshot.Decode(data)
	require.NoError(t, err)
	assert.Equal(t, "3.0", snap.Version)
	assert.Equal(t, store.Responses{"aq": {"aq_1": 2}}, snap.Responses)
}

func TestImportWritesBackupFirst(t *testing.T) {
	w := newTestWorkspace(t)
	onboard(t, w)
	ctx := context.Background()

	b, err := w.Import(ctx, []byte(`{"version":"3.0","responses":{"wurs":{"wurs_1":4}}}`))
	require.NoError(t, err)
	require.NotNil(t, b)
	assert.Equal(t, ReasonImport, b.Reason)

	// The backup holds the pre-import state.
	prior, err := snapshot.Decode(b.Data)
	require.NoError(t, err)
	assert.Equal(t, store.Responses{"aq": {"aq_1": 2}}, prior.Responses)

	// The import replaced responses and was persisted.
	assert.Equal(t, store.Responses{"wurs": {"wurs_1": 4}}, w.Session.Responses())
	fresh := session.New(w.Catalog)
	fresh.Restore(ctx, w.Store.Entries())
	assert.Equal(t, store.Responses{"wurs": {"wurs_1": 4}}, fresh.Responses())
	// Notes were absent from the document.
	note, _ := fresh.ItemNote("aq_1")
	assert.Equal(t, "sometimes", note)
}

func TestImportRejectedWritesNothing(t *testing.T) {
	w := newTestWorkspace(t)
	onboard(t, w)
	ctx := context.Background()

	inputs := map[string]string{
		"malformed":    `{"responses":`,
		"out of range": `{"responses":{"aq":{"aq_1":9}}}`,
	}
	for name, input := range inputs {
		_, err := w.Import(ctx, []byte(input))
		require.Error(t, err, name)
	}

	var de *snapshot.DeserializationError
	_, err := w.Import(ctx, []byte(`[]`))
	assert.True(t, errors.As(err, &de))

	backups, err := w.Store.Backups().List(ctx, store.QueryOpts{})
	require.NoError(t, err)
	assert.Empty(t, backups)
	assert.Equal(t, 2, mustResponse(t, w, "aq", "aq_1"))
}

func TestPreviewImportChangesNothing(t *testing.T) {
	w := newTestWorkspace(t)
	onboard(t, w)

	snap, err := w.PreviewImport([]byte(`{"responses":{"aq":{"aq_1":3}},"notes":null}`))
	require.NoError(t, err)
	assert.Equal(t, 3, snap.Responses["aq"]["aq_1"])
	assert.Nil(t, snap.Notes)
	assert.Equal(t, 2, mustResponse(t, w, "aq", "aq_1"))

	_, err = w.PreviewImport([]byte(`{"responses":{"aq":{"aq_1":4}}}`))
	var re *session.RangeError
	assert.True(t, errors.As(err, &re))
}

func TestRestoreBackup(t *testing.T) {
	w := newTestWorkspace(t)
	onboard(t, w)
	ctx := context.Background()

	b, err := w.Import(ctx, []byte(`{"responses":{},"notes":{},"profile":{"name":"Grace","dob":"1985-12-09","gender":"Female"}}`))
	require.NoError(t, err)
	assert.Equal(t, "Grace", w.Session.Profile().Name)

	_, err = w.RestoreBackup(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", w.Session.Profile().Name)
	assert.Equal(t, 2, mustResponse(t, w, "aq", "aq_1"))

	backups, err := w.Store.Backups().List(ctx, store.QueryOpts{})
	require.NoError(t, err)
	assert.Len(t, backups, 2)

	_, err = w.RestoreBackup(ctx, "missing")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestBackupSummaries(t *testing.T) {
	w := newTestWorkspace(t)
	onboard(t, w)
	ctx := context.Background()

	_, err := w.Import(ctx, []byte(`{"responses":{}}`))
	require.NoError(t, err)

	list, err := w.Backups(ctx, 0)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.NoError(t, list[0].Err)
	assert.Equal(t, "Ada Lovelace", list[0].ProfileName)
	assert.Equal(t, 1, list[0].Answered)
	assert.Equal(t, 1, list[0].Notes)
	assert.Equal(t, ReasonImport, list[0].Reason)
}

func TestBackupsPruned(t *testing.T) {
	w := newTestWorkspace(t) // keeps 3
	onboard(t, w)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := w.Import(ctx, []byte(fmt.Sprintf(`{"responses":{"aq":{"aq_1":%d}}}`, i%4)))
		require.NoError(t, err)
		time.Sleep(2 * time.Millisecond) // distinct created_at
	}

	backups, err := w.Store.Backups().List(ctx, store.QueryOpts{})
	require.NoError(t, err)
	assert.Len(t, backups, 3)
}

func TestReset(t *testing.T) {
	w := newTestWorkspace(t)
	onboard(t, w)
	ctx := context.Background()
	_, err := w.Import(ctx, []byte(`{"notes":{}}`))
	require.NoError(t, err)

	require.NoError(t, w.Reset(ctx))
	assert.False(t, w.Session.HasProfile())

	fresh := session.New(w.Catalog)
	report := fresh.Restore(ctx, w.Store.Entries())
	assert.True(t, report.Fresh())

	backups, err := w.Store.Backups().List(ctx, store.QueryOpts{})
	require.NoError(t, err)
	assert.Empty(t, backups)
}

func TestImportChanges(t *testing.T) {
	snap, err := snapshot.Decode([]byte(`{"profile":{"name":"Grace","dob":"1985-12-09","gender":"Female"},"responses":{"aq":{"aq_1":1,"aq_2":0}},"sectionNotes":{}}`))
	require.NoError(t, err)
	assert.Equal(t, []string{
		"profile (Grace)",
		"all answers (2 in file)",
		"section notes (0 in file)",
	}, ImportChanges(snap))

	assert.Empty(t, ImportChanges(&store.Snapshot{}))
}

func TestRestoreBackupClearsProfileTakenBeforeOnboarding(t *testing.T) {
	w := newTestWorkspace(t)
	ctx := context.Background()
	require.False(t, w.Session.HasProfile())

	b, err := w.Import(ctx, []byte(`{"profile":{"name":"Grace","dob":"1985-12-09","gender":"Female"},"responses":{"aq":{"aq_1":1}}}`))
	require.NoError(t, err)
	require.True(t, w.Session.HasProfile())

	_, err = w.RestoreBackup(ctx, b.ID)
	require.NoError(t, err)
	assert.False(t, w.Session.HasProfile())
	assert.Empty(t, w.Session.Responses())

	fresh := session.New(w.Catalog)
	fresh.Restore(ctx, w.Store.Entries())
	assert.False(t, fresh.HasProfile(), "cleared profile is persisted")
}
