package session

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/ndscreen/internal/store"
)

// memRepo is an in-memory EntryRepo that counts writes.
type memRepo struct {
	mu      sync.Mutex
	entries map[string]store.Entry
	rev     int64
	saves   int
	saveErr error
}

func newMemRepo() *memRepo {
	return &memRepo{entries: make(map[string]store.Entry)}
}

func (r *memRepo) Load(_ context.Context, key string) (*store.Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[key]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &e, nil
}

func (r *memRepo) SaveAll(_ context.Context, values map[string][]byte) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.saveErr != nil {
		return 0, r.saveErr
	}
	r.rev++
	r.saves++
	for k, v := range values {
		r.entries[k] = store.Entry{Key: k, Value: v, Revision: r.rev, UpdatedAt: time.Now()}
	}
	return r.rev, nil
}

func (r *memRepo) Revision(context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rev, nil
}

func (r *memRepo) Clear(context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = make(map[string]store.Entry)
	return nil
}

func (r *memRepo) saveCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.saves
}

func (r *memRepo) raw(key string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return string(r.entries[key].Value)
}

func openStore(t *testing.T) *store.Store {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	st, err := store.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

func TestPersistRestoreRoundTrip(t *testing.T) {
	st := openStore(t)
	ctx := context.Background()

	src := populated(t)
	rev, err := src.Persist(ctx, st.Entries())
	require.NoError(t, err)
	assert.Positive(t, rev)

	dst := New(src.Catalog())
	report := dst.Restore(ctx, st.Entries())

	assert.ElementsMatch(t, store.EntryKeys, report.Loaded)
	assert.Empty(t, report.Missing)
	assert.Empty(t, report.Corrupt)
	assert.Equal(t, rev, report.Revision)

	assert.Equal(t, src.Profile(), dst.Profile())
	assert.Equal(t, src.Responses(), dst.Responses())
	assert.Equal(t, src.Notes(), dst.Notes())
	assert.Equal(t, src.SectionNotes(), dst.SectionNotes())
}

func TestPersistWithoutProfileWritesNull(t *testing.T) {
	repo := newMemRepo()
	s := New(defaultCatalog(t))
	require.NoError(t, s.SetResponse("aq", "aq_1", 1))

	_, err := s.Persist(context.Background(), repo)
	require.NoError(t, err)
	assert.Equal(t, "null", repo.raw(store.KeyProfile))

	restored := New(s.Catalog())
	report := restored.Restore(context.Background(), repo)
	assert.False(t, restored.HasProfile())
	assert.Contains(t, report.Loaded, store.KeyProfile)
	assert.Equal(t, 1, restored.AnsweredCount("aq"))
}

func TestRestoreFreshDatabase(t *testing.T) {
	st := openStore(t)
	s := New(defaultCatalog(t))

	report := s.Restore(context.Background(), st.Entries())
	assert.True(t, report.Fresh())
	assert.ElementsMatch(t, store.EntryKeys, report.Missing)
	assert.False(t, s.HasProfile())
	assert.Empty(t, s.Responses())
}

func TestRestoreToleratesCorruptEntry(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		payload string
	}{
		{"profile garbage", store.KeyProfile, `{"name":`},
		{"responses wrong shape", store.KeyResponses, `["aq"]`},
		{"responses out of range", store.KeyResponses, `{"aq":{"aq_1":9}}`},
		{"notes wrong type", store.KeyNotes, `{"aq_1":42}`},
		{"section notes garbage", store.KeySectionNotes, `oops`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newMemRepo()
			src := populated(t)
			_, err := src.Persist(context.Background(), repo)
			require.NoError(t, err)

			repo.entries[tt.key] = store.Entry{Key: tt.key, Value: []byte(tt.payload), Revision: 1}

			dst := New(src.Catalog())
			report := dst.Restore(context.Background(), repo)

			assert.Equal(t, []string{tt.key}, report.Corrupt)
			assert.Len(t, report.Loaded, 3)

			// The corrupt piece is empty; the others loaded.
			switch tt.key {
			case store.KeyProfile:
				assert.False(t, dst.HasProfile())
				assert.Equal(t, src.Responses(), dst.Responses())
			case store.KeyResponses:
				assert.Empty(t, dst.Responses())
				assert.Equal(t, src.Profile(), dst.Profile())
			case store.KeyNotes:
				assert.Empty(t, dst.Notes())
				assert.Equal(t, src.SectionNotes(), dst.SectionNotes())
			case store.KeySectionNotes:
				assert.Empty(t, dst.SectionNotes())
				assert.Equal(t, src.Notes(), dst.Notes())
			}
		})
	}
}

func TestRestoreDoesNotNotify(t *testing.T) {
	repo := newMemRepo()
	src := populated(t)
	_, err := src.Persist(context.Background(), repo)
	require.NoError(t, err)

	dst := New(src.Catalog())
	calls := 0
	dst.OnChange(func() { calls++ })
	dst.Restore(context.Background(), repo)
	assert.Equal(t, 0, calls)
}
