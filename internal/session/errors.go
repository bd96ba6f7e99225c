package session

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownInstrument is returned when an instrument ID is not in the catalog.
	ErrUnknownInstrument = errors.New("unknown instrument")

	// ErrUnknownItem is returned when an item ID does not belong to the instrument.
	ErrUnknownItem = errors.New("unknown item")

	// ErrNoProfile is returned by operations that require onboarding first.
	ErrNoProfile = errors.New("no profile: onboarding not completed")
)

// ValidationError reports a profile field that is missing or malformed.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid profile %s: %s", e.Field, e.Reason)
}

// RangeError reports a response index outside the instrument's scale.
type RangeError struct {
	InstrumentID string
	ItemID       string
	Index        int
	Size         int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("response %d for %s/%s out of range [0, %d)",
		e.Index, e.InstrumentID, e.ItemID, e.Size)
}
