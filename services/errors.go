package services

import (
	"errors"
	"fmt"
)

// ErrMissingField marks a required column absent from a raw row.
var ErrMissingField = errors.New("required field is missing")

// MalformedInputError reports the row and column that broke the input schema.
// Any MalformedInputError fails the whole batch.
type MalformedInputError struct {
	Row   int // 1-based data row, header excluded
	Field string
	Value string
	Err   error
}

func (e *MalformedInputError) Error() string {
	if errors.Is(e.Err, ErrMissingField) {
		return fmt.Sprintf("row %d: %q: %v", e.Row, e.Field, e.Err)
	}
	return fmt.Sprintf("row %d: %q: cannot parse %q: %v", e.Row, e.Field, e.Value, e.Err)
}

func (e *MalformedInputError) Unwrap() error {
	return e.Err
}

// ParseError is the MalformedInputError raised for unparseable date or time values.
type ParseError = MalformedInputError

// ErrUnknownEvent is returned when no profile is configured for the requested event.
var ErrUnknownEvent = errors.New("unknown event")
