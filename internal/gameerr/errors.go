// Package gameerr defines the error taxonomy shared by the game core.
//
// Callers classify failures with errors.Is against the sentinels below.
// PreconditionFailed is benign under concurrency: it normally means a
// racing actor already made the same transition, so the desired end state
// was reached by someone.
package gameerr

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation marks malformed input (empty name, unknown category).
	ErrValidation = errors.New("validation failed")

	// ErrPreconditionFailed marks a guard that no longer holds: the status
	// moved on, the caller is not the host, or the row already exists.
	ErrPreconditionFailed = errors.New("precondition failed")

	// ErrNotFound marks a missing game, round, or player.
	ErrNotFound = errors.New("not found")

	// ErrStoreUnavailable marks a transient store failure; the operation is
	// safe to retry.
	ErrStoreUnavailable = errors.New("store unavailable")
)

// Validationf wraps ErrValidation with a formatted reason.
func Validationf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrValidation}, args...)...)
}

// Preconditionf wraps ErrPreconditionFailed with a formatted reason.
func Preconditionf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrPreconditionFailed}, args...)...)
}
