package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/abhisek/ndscreen/internal/store"
)

// Payload is an encoded copy of the session state, one value per
// persisted entry.
type Payload struct {
	Values     map[string][]byte
	HasProfile bool
}

// Payload encodes the current state for persistence. The result shares no
// memory with the session.
func (s *Session) Payload() (Payload, error) {
	values := make(map[string][]byte, len(store.EntryKeys))
	fields := map[string]any{
		store.KeyProfile:      s.profile,
		store.KeyResponses:    s.responses,
		store.KeyNotes:        s.notes,
		store.KeySectionNotes: s.sectionNotes,
	}
	for key, v := range fields {
		data, err := json.Marshal(v)
		if err != nil {
			return Payload{}, fmt.Errorf("encode %s: %w", key, err)
		}
		values[key] = data
	}
	return Payload{Values: values, HasProfile: s.profile != nil}, nil
}

// Persist writes the four entries to repo in one revision.
func (s *Session) Persist(ctx context.Context, repo store.EntryRepo) (int64, error) {
	p, err := s.Payload()
	if err != nil {
		return 0, err
	}
	rev, err := repo.SaveAll(ctx, p.Values)
	if err != nil {
		return 0, fmt.Errorf("persist session: %w", err)
	}
	return rev, nil
}

// RestoreReport describes the outcome of Restore per entry.
type RestoreReport struct {
	Loaded   []string
	Missing  []string
	Corrupt  []string
	Revision int64
}

// Fresh reports whether nothing was restored.
func (r RestoreReport) Fresh() bool {
	return len(r.Loaded) == 0
}

// Restore replaces the session state with the entries in repo. Each entry
// loads independently: a missing or corrupt one leaves that piece empty and
// is recorded in the report. Restore does not notify the change observer.
func (s *Session) Restore(ctx context.Context, repo store.EntryRepo) RestoreReport {
	var report RestoreReport

	s.profile = nil
	s.responses = store.Responses{}
	s.notes = store.Notes{}
	s.sectionNotes = store.Notes{}

	for _, key := range store.EntryKeys {
		e, err := repo.Load(ctx, key)
		if errors.Is(err, store.ErrNotFound) {
			report.Missing = append(report.Missing, key)
			continue
		}
		if err != nil {
			s.logger.Warn("restore entry failed", "entry", key, "error", err)
			report.Corrupt = append(report.Corrupt, key)
			continue
		}
		if err := s.decodeEntry(key, e.Value); err != nil {
			s.logger.Warn("discarding corrupt entry", "entry", key, "revision", e.Revision, "error", err)
			report.Corrupt = append(report.Corrupt, key)
			continue
		}
		report.Loaded = append(report.Loaded, key)
		report.Revision = max(report.Revision, e.Revision)
	}
	return report
}

func (s *Session) decodeEntry(key string, data []byte) error {
	switch key {
	case store.KeyProfile:
		var p *store.Profile
		if err := json.Unmarshal(data, &p); err != nil {
			return err
		}
		s.profile = p
	case store.KeyResponses:
		var r store.Responses
		if err := json.Unmarshal(data, &r); err != nil {
			return err
		}
		if err := s.checkResponses(r); err != nil {
			return err
		}
		if r != nil {
			s.responses = r
		}
	case store.KeyNotes, store.KeySectionNotes:
		var n store.Notes
		if err := json.Unmarshal(data, &n); err != nil {
			return err
		}
		if n == nil {
			return nil
		}
		if key == store.KeyNotes {
			s.notes = n
		} else {
			s.sectionNotes = n
		}
	default:
		return fmt.Errorf("unknown entry %q", key)
	}
	return nil
}
