// Package session owns the live screening state: the profile, the
// responses, and the item and section notes.
package session

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/abhisek/ndscreen/internal/catalog"
	"github.com/abhisek/ndscreen/internal/snapshot"
	"github.com/abhisek/ndscreen/internal/store"
)

// Session is the single owner of the four state maps. It is not safe for
// concurrent use; mutations run on the caller's goroutine.
type Session struct {
	catalog *catalog.Catalog
	logger  *slog.Logger

	profile      *store.Profile
	responses    store.Responses
	notes        store.Notes
	sectionNotes store.Notes

	onChange func()
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the logger used for restore diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// New creates an empty session over cat.
func New(cat *catalog.Catalog, opts ...Option) *Session {
	s := &Session{
		catalog:      cat,
		logger:       slog.Default(),
		responses:    store.Responses{},
		notes:        store.Notes{},
		sectionNotes: store.Notes{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Catalog returns the catalog the session validates against.
func (s *Session) Catalog() *catalog.Catalog {
	return s.catalog
}

// OnChange registers fn to be called after every successful mutation.
// Only one observer is kept; a later call replaces the earlier one.
func (s *Session) OnChange(fn func()) {
	s.onChange = fn
}

func (s *Session) changed() {
	if s.onChange != nil {
		s.onChange()
	}
}

// --- Profile ---

// Genders lists the gender options offered during onboarding. Any
// non-empty value is accepted.
var Genders = []string{"Female", "Male", "Non-Binary", "Other", "Prefer not to say"}

// ValidateProfile checks that every required field is present and that the
// date of birth parses and is not in the future.
func ValidateProfile(p store.Profile, now time.Time) error {
	if strings.TrimSpace(p.Name) == "" {
		return &ValidationError{Field: "name", Reason: "required"}
	}
	if strings.TrimSpace(p.DateOfBirth) == "" {
		return &ValidationError{Field: "dob", Reason: "required"}
	}
	dob, err := time.Parse(store.DateLayout, p.DateOfBirth)
	if err != nil {
		return &ValidationError{Field: "dob", Reason: "must be YYYY-MM-DD"}
	}
	if dob.After(now) {
		return &ValidationError{Field: "dob", Reason: "in the future"}
	}
	if strings.TrimSpace(p.Gender) == "" {
		return &ValidationError{Field: "gender", Reason: "required"}
	}
	return nil
}

// CompleteOnboarding validates p and sets it as the profile. An existing
// profile is overwritten.
func (s *Session) CompleteOnboarding(p store.Profile) error {
	if err := ValidateProfile(p, time.Now()); err != nil {
		return err
	}
	s.profile = &p
	s.changed()
	return nil
}

// UpdateProfile replaces the profile of an onboarded session.
func (s *Session) UpdateProfile(p store.Profile) error {
	if s.profile == nil {
		return ErrNoProfile
	}
	return s.CompleteOnboarding(p)
}

// Profile returns a copy of the profile, or nil before onboarding.
func (s *Session) Profile() *store.Profile {
	if s.profile == nil {
		return nil
	}
	p := *s.profile
	return &p
}

// HasProfile reports whether onboarding has been completed.
func (s *Session) HasProfile() bool {
	return s.profile != nil
}

// --- Responses ---

// SetResponse records index as the answer to itemID. Nothing is stored when
// an error is returned.
func (s *Session) SetResponse(instrumentID, itemID string, index int) error {
	in, ok := s.catalog.Get(instrumentID)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownInstrument, instrumentID)
	}
	if !s.catalog.Contains(instrumentID, itemID) {
		return fmt.Errorf("%w: %q in %s", ErrUnknownItem, itemID, instrumentID)
	}
	if !in.ValidIndex(index) {
		return &RangeError{InstrumentID: instrumentID, ItemID: itemID, Index: index, Size: in.ScaleSize()}
	}

	items := s.responses[instrumentID]
	if items == nil {
		items = make(map[string]int)
		s.responses[instrumentID] = items
	}
	items[itemID] = index
	s.changed()
	return nil
}

// ClearResponse removes the answer to itemID. Clearing an unanswered item
// is a no-op.
func (s *Session) ClearResponse(instrumentID, itemID string) {
	items, ok := s.responses[instrumentID]
	if !ok {
		return
	}
	if _, ok := items[itemID]; !ok {
		return
	}
	delete(items, itemID)
	if len(items) == 0 {
		delete(s.responses, instrumentID)
	}
	s.changed()
}

// Response returns the stored index for itemID.
func (s *Session) Response(instrumentID, itemID string) (int, bool) {
	v, ok := s.responses[instrumentID][itemID]
	return v, ok
}

// Answered returns the answers recorded for one instrument. The map must
// not be modified.
func (s *Session) Answered(instrumentID string) map[string]int {
	return s.responses[instrumentID]
}

// AnsweredCount returns the number of stored answers for an instrument.
func (s *Session) AnsweredCount(instrumentID string) int {
	return len(s.responses[instrumentID])
}

// Responses returns a deep copy of all responses.
func (s *Session) Responses() store.Responses {
	return s.responses.Clone()
}

// --- Notes ---

// SetItemNote stores text as the note for itemID. Empty text is kept as a
// present-but-empty note.
func (s *Session) SetItemNote(itemID, text string) {
	s.notes[itemID] = text
	s.changed()
}

// ItemNote returns the note for itemID and whether one was ever set.
func (s *Session) ItemNote(itemID string) (string, bool) {
	v, ok := s.notes[itemID]
	return v, ok
}

// HasItemNote reports whether itemID has non-empty note text.
func (s *Session) HasItemNote(itemID string) bool {
	return s.notes[itemID] != ""
}

// SetSectionNote stores text as the note for a section key.
func (s *Session) SetSectionNote(key, text string) {
	s.sectionNotes[key] = text
	s.changed()
}

// SectionNote returns the note for a section key and whether one was ever set.
func (s *Session) SectionNote(key string) (string, bool) {
	v, ok := s.sectionNotes[key]
	return v, ok
}

// HasSectionNote reports whether a section key has non-empty note text.
func (s *Session) HasSectionNote(key string) bool {
	return s.sectionNotes[key] != ""
}

// Notes returns a copy of the item notes.
func (s *Session) Notes() store.Notes {
	return s.notes.Clone()
}

// SectionNotes returns a copy of the section notes.
func (s *Session) SectionNotes() store.Notes {
	return s.sectionNotes.Clone()
}

// --- Snapshots ---

// ExportSnapshot returns the complete state stamped with now.
func (s *Session) ExportSnapshot(now time.Time) store.Snapshot {
	return store.Snapshot{
		Version:      snapshot.CurrentVersion,
		Date:         now.UTC(),
		Profile:      s.Profile(),
		Responses:    s.responses.Clone(),
		Notes:        s.notes.Clone(),
		SectionNotes: s.sectionNotes.Clone(),
	}
}

// LoadSnapshot decodes raw and applies it with ApplySnapshot. A decode
// failure is a *snapshot.DeserializationError and leaves state unchanged.
//
// Loading is irreversible for every field the document supplies. Callers
// confirm with the user and take a backup first.
func (s *Session) LoadSnapshot(raw []byte) error {
	snap, err := snapshot.Decode(raw)
	if err != nil {
		return err
	}
	return s.ApplySnapshot(snap)
}

// ApplySnapshot replaces each state field that snap supplies; nil fields
// leave the current state untouched. Present fields replace wholesale, they
// are never merged key by key.
//
// Responses for catalog instruments are checked first: an out-of-range
// index rejects the whole snapshot with a *RangeError and nothing changes.
// Responses for instruments missing from the catalog are kept as-is.
func (s *Session) ApplySnapshot(snap *store.Snapshot) error {
	if snap == nil {
		return nil
	}
	if err := s.CheckSnapshot(snap); err != nil {
		return err
	}

	if snap.Profile != nil {
		p := *snap.Profile
		s.profile = &p
	}
	if snap.Responses != nil {
		s.responses = snap.Responses.Clone()
	}
	if snap.Notes != nil {
		s.notes = snap.Notes.Clone()
	}
	if snap.SectionNotes != nil {
		s.sectionNotes = snap.SectionNotes.Clone()
	}
	s.changed()
	return nil
}

// ReplaceSnapshot makes snap the whole state. Unlike ApplySnapshot, a nil
// field clears the matching state: a nil profile returns the session to
// before onboarding. The responses are checked as in ApplySnapshot.
func (s *Session) ReplaceSnapshot(snap *store.Snapshot) error {
	if err := s.CheckSnapshot(snap); err != nil {
		return err
	}

	s.profile = nil
	if snap.Profile != nil {
		p := *snap.Profile
		s.profile = &p
	}
	s.responses = orEmpty(snap.Responses.Clone())
	s.notes = orEmpty(snap.Notes.Clone())
	s.sectionNotes = orEmpty(snap.SectionNotes.Clone())
	s.changed()
	return nil
}

func orEmpty[M ~map[K]V, K comparable, V any](m M) M {
	if m == nil {
		return M{}
	}
	return m
}

// CheckSnapshot reports whether ApplySnapshot would accept snap, without
// changing any state.
func (s *Session) CheckSnapshot(snap *store.Snapshot) error {
	return s.checkResponses(snap.Responses)
}

func (s *Session) checkResponses(r store.Responses) error {
	for instID, items := range r {
		in, ok := s.catalog.Get(instID)
		if !ok {
			continue
		}
		for itemID, idx := range items {
			if !in.ValidIndex(idx) {
				return &RangeError{InstrumentID: instID, ItemID: itemID, Index: idx, Size: in.ScaleSize()}
			}
		}
	}
	return nil
}

// Reset clears all state back to the pre-onboarding state.
func (s *Session) Reset() {
	s.profile = nil
	s.responses = store.Responses{}
	s.notes = store.Notes{}
	s.sectionNotes = store.Notes{}
	s.changed()
}
