package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// Persisted entry names. Each piece of session state is stored as its own
// entry so that a corrupt or missing one never blocks loading the others.
const (
	KeyProfile      = "profile"
	KeyResponses    = "responses"
	KeyNotes        = "notes"
	KeySectionNotes = "sectionNotes"
)

// EntryKeys lists the persisted entry names in restore order.
var EntryKeys = []string{KeyProfile, KeyResponses, KeyNotes, KeySectionNotes}

// Profile identifies the person taking the screening.
type Profile struct {
	Name        string `json:"name"`
	DateOfBirth string `json:"dob"` // YYYY-MM-DD
	Gender      string `json:"gender"`
}

// DateLayout is the format of Profile.DateOfBirth.
const DateLayout = "2006-01-02"

// Age returns the age in whole years on the date of now.
// ok is false when DateOfBirth does not parse.
func (p Profile) Age(now time.Time) (age int, ok bool) {
	birth, err := time.Parse(DateLayout, p.DateOfBirth)
	if err != nil {
		return 0, false
	}
	age = now.Year() - birth.Year()
	if now.Month() < birth.Month() || (now.Month() == birth.Month() && now.Day() < birth.Day()) {
		age--
	}
	return age, true
}

// Responses maps instrument ID -> item ID -> selected scale index.
type Responses map[string]map[string]int

// Clone returns a deep copy. A nil receiver yields nil.
func (r Responses) Clone() Responses {
	if r == nil {
		return nil
	}
	out := make(Responses, len(r))
	for inst, items := range r {
		m := make(map[string]int, len(items))
		for id, v := range items {
			m[id] = v
		}
		out[inst] = m
	}
	return out
}

// Notes maps a key (item ID or section key) to free text.
type Notes map[string]string

// Clone returns a copy. A nil receiver yields nil.
func (n Notes) Clone() Notes {
	if n == nil {
		return nil
	}
	out := make(Notes, len(n))
	for k, v := range n {
		out[k] = v
	}
	return out
}

// Snapshot bundles the full session state for export and import.
// A nil field means the field was absent from the source document.
type Snapshot struct {
	Version      string
	Date         time.Time
	Profile      *Profile
	Responses    Responses
	Notes        Notes
	SectionNotes Notes
}

// Entry is one persisted piece of session state.
type Entry struct {
	Key       string
	Value     []byte
	Revision  int64
	UpdatedAt time.Time
}

// EntryRepo persists the independent session entries.
type EntryRepo interface {
	// Load returns the entry stored under key, or ErrNotFound.
	Load(ctx context.Context, key string) (*Entry, error)

	// SaveAll writes values in one transaction stamped with a new revision,
	// which is returned.
	SaveAll(ctx context.Context, values map[string][]byte) (int64, error)

	// Revision returns the highest revision written, 0 if none.
	Revision(ctx context.Context) (int64, error)

	// Clear deletes every entry.
	Clear(ctx context.Context) error
}

// QueryOpts configures list queries with pagination.
type QueryOpts struct {
	Limit int // max results (0 = unlimited)
}

// Backup is a stored copy of an encoded snapshot taken before a
// destructive operation.
type Backup struct {
	ID        string
	Reason    string
	Revision  int64
	CreatedAt time.Time
	Data      []byte
}

// BackupRepo manages the backup history.
type BackupRepo interface {
	// Save stores a new backup.
	Save(ctx context.Context, b *Backup) error

	// Get returns the backup with the given ID, or ErrNotFound.
	Get(ctx context.Context, id string) (*Backup, error)

	// List returns backups newest first.
	List(ctx context.Context, opts QueryOpts) ([]Backup, error)

	// Prune deletes all but the N most recent backups.
	Prune(ctx context.Context, keep int) error

	// Clear deletes every backup.
	Clear(ctx context.Context) error
}
