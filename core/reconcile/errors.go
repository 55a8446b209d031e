package reconcile

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicateIdentity reports two incoming records sharing an identity value.
	ErrDuplicateIdentity = errors.New("duplicate identity")

	// ErrStoreUnavailable reports a read-side store failure.
	ErrStoreUnavailable = errors.New("store unavailable")

	// ErrStoreWriteFailed reports a write-side store failure.
	ErrStoreWriteFailed = errors.New("store write failed")
)

// DuplicateIdentityError names the duplicated identity value.
type DuplicateIdentityError struct {
	Value Identity
}

func (e *DuplicateIdentityError) Error() string {
	return fmt.Sprintf("duplicate identity %v in incoming set", e.Value)
}

// Is makes errors.Is(err, ErrDuplicateIdentity) true.
func (e *DuplicateIdentityError) Is(target error) bool {
	return target == ErrDuplicateIdentity
}

// PhaseError identifies the phase in which a run failed.
type PhaseError struct {
	Table string
	Phase Phase
	Err   error
}

func (e *PhaseError) Error() string {
	return fmt.Sprintf("reconcile %s: %s phase failed: %v", e.Table, e.Phase, e.Err)
}

func (e *PhaseError) Unwrap() error {
	return e.Err
}

// ensureKind wraps err with kind unless it already matches it.
func ensureKind(err, kind error) error {
	if errors.Is(err, kind) {
		return err
	}
	return fmt.Errorf("%w: %w", kind, err)
}
