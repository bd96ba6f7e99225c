package snapshot

import "fmt"

// DeserializationError indicates a snapshot document could not be decoded.
// No part of a document that fails with this error is ever applied.
type DeserializationError struct {
	Reason string
	Err    error
}

func (e *DeserializationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid snapshot: %s: %v", e.Reason, e.Err)
	}
	return "invalid snapshot: " + e.Reason
}

func (e *DeserializationError) Unwrap() error { return e.Err }
