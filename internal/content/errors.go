package content

import (
	"errors"
	"fmt"
)

// Record type names reported in decode errors.
const (
	RecordContent  = "content"
	RecordProperty = "property"
	RecordTag      = "tag"
)

var (
	// ErrMissingField matches any MissingFieldError.
	ErrMissingField = errors.New("missing required field")

	// ErrTypeMismatch matches any TypeMismatchError.
	ErrTypeMismatch = errors.New("field type mismatch")
)

// MissingFieldError reports a required field absent from a payload.
// The first one encountered aborts the decode.
type MissingFieldError struct {
	Record string // content, property or tag
	Field  string // wire key
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%s: missing required field %q", e.Record, e.Field)
}

func (e *MissingFieldError) Is(target error) bool {
	return target == ErrMissingField
}

// TypeMismatchError reports a field whose value has the wrong shape.
type TypeMismatchError struct {
	Record   string
	Field    string
	Expected string
	Got      string
	Err      error // from the conversion layer
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("%s: field %q: expected %s, got %s", e.Record, e.Field, e.Expected, e.Got)
}

func (e *TypeMismatchError) Unwrap() error { return e.Err }

func (e *TypeMismatchError) Is(target error) bool {
	return target == ErrTypeMismatch
}

// IsRecordError reports whether err is a per-record decode failure that a
// batch caller may skip.
func IsRecordError(err error) bool {
	return errors.Is(err, ErrMissingField) || errors.Is(err, ErrTypeMismatch)
}
