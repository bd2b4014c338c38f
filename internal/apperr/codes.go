package apperr

// Wire codes shared by the API handlers and the remote backend client, so
// an application error survives the HTTP round trip as the same kind.
const (
	CodeValidation       = "validation_failed"
	CodeDuplicate        = "duplicate_reservation"
	CodeWindow           = "cancellation_window_closed"
	CodeNotFound         = "reservation_not_found"
	CodeAlreadyCancelled = "already_cancelled"
	CodeStorage          = "storage_error"
)

// Code maps an error to its wire code; empty for errors that are not
// application errors.
func Code(err error) string {
	switch {
	case err == nil:
		return ""
	case IsDuplicate(err):
		return CodeDuplicate
	case IsCancellationWindow(err):
		return CodeWindow
	case IsAlreadyCancelled(err):
		return CodeAlreadyCancelled
	case IsNotFound(err):
		return CodeNotFound
	case IsStorage(err):
		return CodeStorage
	}
	if _, ok := AsValidation(err); ok {
		return CodeValidation
	}
	return ""
}

// FromCode rebuilds the matching error kind from a wire code. Unknown codes
// come back as nil.
func FromCode(code, message string, violations []string) error {
	switch code {
	case CodeValidation:
		if len(violations) == 0 && message != "" {
			violations = []string{message}
		}
		return &ValidationError{Violations: violations}
	case CodeDuplicate:
		return &DuplicateError{}
	case CodeWindow:
		return &CancellationWindowError{}
	case CodeNotFound:
		return &NotFoundError{}
	case CodeAlreadyCancelled:
		return &AlreadyCancelledError{}
	case CodeStorage:
		return &StorageError{Op: "remote", Err: errString(message)}
	}
	return nil
}

type errString string

func (e errString) Error() string { return string(e) }
