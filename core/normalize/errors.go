package normalize

import (
	"errors"
	"fmt"
)

// ErrSchemaMismatch is matched by every SchemaMismatchError.
var ErrSchemaMismatch = errors.New("schema mismatch")

// SchemaMismatchError reports a raw record (or schema declaration) that does not
// fit the expected schema.
type SchemaMismatchError struct {
	// Field is the offending field name.
	Field string
	// Reason describes the mismatch.
	Reason string
	// Err is the underlying conversion error, if any.
	Err error
}

func (e *SchemaMismatchError) Error() string {
	msg := fmt.Sprintf("schema mismatch on field %q: %s", e.Field, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Is makes errors.Is(err, ErrSchemaMismatch) true.
func (e *SchemaMismatchError) Is(target error) bool {
	return target == ErrSchemaMismatch
}

func (e *SchemaMismatchError) Unwrap() error {
	return e.Err
}
