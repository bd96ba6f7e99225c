// Package snapshot encodes session state to the portable export document
// and decodes untrusted documents back into a store.Snapshot.
package snapshot

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"time"

	"golang.org/x/mod/semver"

	"github.com/abhisek/ndscreen/internal/store"
)

// CurrentVersion is the format version written by Encode.
const CurrentVersion = "3.0"

// dateLayout matches JavaScript's Date.toISOString.
const dateLayout = "2006-01-02T15:04:05.000Z07:00"

// document is the wire form. Pointer and map fields stay nil when the key
// is absent or null.
type document struct {
	Version      string          `json:"version,omitempty"`
	Date         string          `json:"date,omitempty"`
	Profile      *store.Profile  `json:"profile"`
	Responses    store.Responses `json:"responses"`
	Notes        store.Notes     `json:"notes"`
	SectionNotes store.Notes     `json:"sectionNotes"`
}

// Encode serializes snap as an indented JSON document. Nil maps are written
// as empty objects; a nil profile is written as null.
func Encode(snap store.Snapshot) ([]byte, error) {
	doc := document{
		Version:      snap.Version,
		Profile:      snap.Profile,
		Responses:    snap.Responses,
		Notes:        snap.Notes,
		SectionNotes: snap.SectionNotes,
	}
	if doc.Version == "" {
		doc.Version = CurrentVersion
	}
	if !snap.Date.IsZero() {
		doc.Date = snap.Date.UTC().Format(dateLayout)
	}
	if doc.Responses == nil {
		doc.Responses = store.Responses{}
	}
	if doc.Notes == nil {
		doc.Notes = store.Notes{}
	}
	if doc.SectionNotes == nil {
		doc.SectionNotes = store.Notes{}
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return data, nil
}

// Decode parses an untrusted snapshot document. Any failure is returned as
// *DeserializationError. Fields that are absent or null in raw are nil in
// the result; present fields, including empty objects, are non-nil.
func Decode(raw []byte) (*store.Snapshot, error) {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, &DeserializationError{Reason: "not valid JSON", Err: err}
	}
	if _, ok := parsed.(map[string]any); !ok {
		return nil, &DeserializationError{Reason: fmt.Sprintf("top level is %s, want object", jsonKind(parsed))}
	}

	compiled, err := compiledSchema()
	if err != nil {
		return nil, &DeserializationError{Reason: "compile schema", Err: err}
	}
	if err := compiled.Validate(parsed); err != nil {
		return nil, &DeserializationError{Reason: "schema validation failed", Err: err}
	}

	var doc document
	dec := json.NewDecoder(bytes.NewReader(raw))
	if err := dec.Decode(&doc); err != nil {
		return nil, &DeserializationError{Reason: "decode fields", Err: err}
	}

	if err := CheckVersion(doc.Version); err != nil {
		return nil, err
	}

	snap := &store.Snapshot{
		Version:      doc.Version,
		Profile:      doc.Profile,
		Responses:    doc.Responses,
		Notes:        doc.Notes,
		SectionNotes: doc.SectionNotes,
	}
	// The date is informational; an unparseable one is dropped.
	if doc.Date != "" {
		if t, err := time.Parse(time.RFC3339Nano, doc.Date); err == nil {
			snap.Date = t.UTC()
		}
	}
	return snap, nil
}

// CheckVersion reports whether a document written with version v can be
// read. An empty version is accepted for files that predate versioning.
// Versions with a newer major than CurrentVersion are rejected.
func CheckVersion(v string) error {
	if v == "" {
		return nil
	}
	sv := "v" + v
	if !semver.IsValid(sv) {
		return &DeserializationError{Reason: fmt.Sprintf("malformed version %q", v)}
	}
	if semver.Compare(semver.Major(sv), semver.Major("v"+CurrentVersion)) > 0 {
		return &DeserializationError{
			Reason: fmt.Sprintf("version %s is newer than supported %s", v, CurrentVersion),
		}
	}
	return nil
}

var whitespace = regexp.MustCompile(`\s+`)

// Filename returns the suggested export file name for profile on the UTC
// date of now.
func Filename(profile *store.Profile, now time.Time) string {
	name := "backup"
	if profile != nil && profile.Name != "" {
		name = whitespace.ReplaceAllString(profile.Name, "_")
	}
	return fmt.Sprintf("screening_%s_%s.json", name, now.UTC().Format(store.DateLayout))
}

func jsonKind(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case float64:
		return "number"
	case string:
		return "string"
	case []any:
		return "array"
	default:
		return "object"
	}
}
