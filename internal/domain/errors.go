package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for domain-level error handling.
// The handler layer maps these to HTTP status codes.
var (
	ErrSlotOutOfRange = errors.New("slot_out_of_range")
	ErrNoResult       = errors.New("no_result")
	ErrUnknownEvent   = errors.New("unknown_event")
)

// Cause identifies which price rule a slot failed.
type Cause string

const (
	CauseEmpty      Cause = "empty"
	CauseNotANumber Cause = "not_a_number"
	CauseNegative   Cause = "negative"
)

// ValidationError reports the first slot that failed validation.
// Slot is 0-based; the message shown to users is 1-based.
type ValidationError struct {
	Slot  int
	Cause Cause
}

func (e *ValidationError) Error() string {
	n := e.Slot + 1
	switch e.Cause {
	case CauseEmpty:
		return fmt.Sprintf("Product %d's field cannot be empty.", n)
	case CauseNotANumber:
		return fmt.Sprintf("Product %d's field must be a valid number.", n)
	case CauseNegative:
		return fmt.Sprintf("Product %d's price cannot be negative.", n)
	}
	return fmt.Sprintf("Product %d's field is invalid.", n)
}
