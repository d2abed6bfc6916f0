package history

import "fmt"

// InputNotFoundError is returned when the history file cannot be opened or read.
type InputNotFoundError struct {
	Path string
	Err  error
}

func (e *InputNotFoundError) Error() string {
	return fmt.Sprintf("reading %q: %v", e.Path, e.Err)
}

func (e *InputNotFoundError) Unwrap() error {
	return e.Err
}

// MalformedRecordError is returned when a record cannot be normalized. Index
// is the zero-based position of the record in the input, or -1 when the
// document as a whole is not a list of records.
type MalformedRecordError struct {
	Index int
	Field string
	Err   error
}

func (e *MalformedRecordError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("malformed history: %v", e.Err)
	}
	if e.Field != "" {
		return fmt.Sprintf("malformed record %d: field %q: %v", e.Index, e.Field, e.Err)
	}
	return fmt.Sprintf("malformed record %d: %v", e.Index, e.Err)
}

func (e *MalformedRecordError) Unwrap() error {
	return e.Err
}
