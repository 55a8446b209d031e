package fetch

import (
	"errors"
	"fmt"
)

var (
	// ErrNoMorePages is returned by Iterator.Next once the sequence is exhausted.
	ErrNoMorePages = errors.New("no more pages")

	// ErrSourceUnavailable is matched by every SourceUnavailableError.
	ErrSourceUnavailable = errors.New("source unavailable")
)

// StatusError reports a non-success transport status.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("unexpected status %d", e.Code)
	}
	return fmt.Sprintf("unexpected status %d: %s", e.Code, e.Body)
}

// SourceUnavailableError reports a page whose attempts were all exhausted.
type SourceUnavailableError struct {
	// Page is the 1-based index of the page that could not be fetched.
	Page int
	// Cursor is the continuation token the page was requested with.
	Cursor string
	// Attempts is the number of attempts made.
	Attempts int
	// LastStatus is the last observed transport status, or 0 if none was received.
	LastStatus int
	// Err is the last attempt's error.
	Err error
}

func (e *SourceUnavailableError) Error() string {
	return fmt.Sprintf("source unavailable: page %d (cursor %q) failed after %d attempts, last status %d: %v",
		e.Page, e.Cursor, e.Attempts, e.LastStatus, e.Err)
}

// Is makes errors.Is(err, ErrSourceUnavailable) true.
func (e *SourceUnavailableError) Is(target error) bool {
	return target == ErrSourceUnavailable
}

func (e *SourceUnavailableError) Unwrap() error {
	return e.Err
}
