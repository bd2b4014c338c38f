package apperr

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ===============================
// Error kinds
// ===============================

// ValidationError carries every violated rule, in the order the rules were
// checked. Callers display all of them together.
type ValidationError struct {
	Violations []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Violations, "; ")
}

// DuplicateError means a confirmed reservation already exists for the same
// (email, date, classType).
type DuplicateError struct {
	Email     string
	Date      string
	ClassType string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("duplicate reservation for %s on %s (%s)", e.Email, e.Date, e.ClassType)
}

// CancellationWindowError means the session starts within 24 hours.
type CancellationWindowError struct {
	SessionStart time.Time
}

func (e *CancellationWindowError) Error() string {
	return fmt.Sprintf("cancellation window closed for session at %s", e.SessionStart.Format(time.RFC3339))
}

type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("reservation %s not found", e.ID)
}

type AlreadyCancelledError struct {
	ID string
}

func (e *AlreadyCancelledError) Error() string {
	return fmt.Sprintf("reservation %s is already cancelled", e.ID)
}

// StorageError wraps an underlying persistence failure that no fallback
// recovered.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// ===============================
// Matchers
// ===============================

func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	ok := errors.As(err, &ve)
	return ve, ok
}

func IsDuplicate(err error) bool {
	var de *DuplicateError
	return errors.As(err, &de)
}

func IsCancellationWindow(err error) bool {
	var we *CancellationWindowError
	return errors.As(err, &we)
}

func IsNotFound(err error) bool {
	var ne *NotFoundError
	return errors.As(err, &ne)
}

func IsAlreadyCancelled(err error) bool {
	var ae *AlreadyCancelledError
	return errors.As(err, &ae)
}

func IsStorage(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}

// Storage wraps err as a StorageError unless it already is one.
func Storage(op string, err error) error {
	if err == nil {
		return nil
	}
	var se *StorageError
	if errors.As(err, &se) {
		return err
	}
	return &StorageError{Op: op, Err: err}
}
