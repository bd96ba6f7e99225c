package catalog

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidCatalog is wrapped by every structural catalog error.
var ErrInvalidCatalog = errors.New("invalid catalog")

// validateInstruments performs all structural checks on the given instruments.
// Returns a combined error describing all problems found, or nil if valid.
func validateInstruments(instruments []Instrument) error {
	var errs []string

	ids := make(map[string]bool, len(instruments))
	itemOwner := make(map[string]string)

	for _, in := range instruments {
		if in.ID == "" {
			errs = append(errs, fmt.Sprintf("instrument %q has an empty ID", in.Title))
			continue
		}
		if ids[in.ID] {
			errs = append(errs, fmt.Sprintf("duplicate instrument ID: %q", in.ID))
		}
		ids[in.ID] = true

		if len(in.Scale) == 0 {
			errs = append(errs, fmt.Sprintf("instrument %q has an empty scale", in.ID))
		}
		for i, lvl := range in.Scale {
			if lvl.Index != i {
				errs = append(errs, fmt.Sprintf("instrument %q scale level %d has index %d", in.ID, i, lvl.Index))
			}
		}
		if len(in.Items) == 0 {
			errs = append(errs, fmt.Sprintf("instrument %q has no items", in.ID))
		}

		// Item IDs are used as flat keys for item notes, so they must not
		// collide across instruments either.
		for _, it := range in.Items {
			if it.ID == "" {
				errs = append(errs, fmt.Sprintf("instrument %q has an item with an empty ID", in.ID))
				continue
			}
			if owner, dup := itemOwner[it.ID]; dup {
				errs = append(errs, fmt.Sprintf("item %q in %q already declared by %q", it.ID, in.ID, owner))
				continue
			}
			itemOwner[it.ID] = in.ID
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w:\n  %s", ErrInvalidCatalog, strings.Join(errs, "\n  "))
	}
	return nil
}
