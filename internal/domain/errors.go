package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrSourceUnavailable aborts a report pass: nothing is rendered.
	ErrSourceUnavailable = errors.New("record source unavailable")
	// ErrDataFormat marks a single malformed record.
	ErrDataFormat        = errors.New("data format error")
)

// FieldError names the record and field that failed.
type FieldError struct {
	Index  int
	Name   string
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	name := e.Name
	if name == "" {
		name = "<unnamed>"
	}
	return fmt.Sprintf("record %d (%s): field %s: %s", e.Index, name, e.Field, e.Reason)
}

func (e *FieldError) Unwrap() error { return ErrDataFormat }

// SourceError wraps a retrieval or parse failure.
func SourceError(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrSourceUnavailable, err)
}
