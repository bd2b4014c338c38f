package reservation

import "github.com/serenity-studio/yoga-scheduler/internal/apperr"

// ===============================
// Reservation Status
// ===============================

type Status string

const (
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
)

// Labels shown on confirmation screens and in the CSV export.
var statusLabels = map[Status]string{
	StatusConfirmed: "確認済み",
	StatusCancelled: "キャンセル済み",
}

func (s Status) Label() string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return string(s)
}

// ===============================
// Validations
// ===============================

// CanCancel holds the one-directional transition: only a confirmed
// reservation may be cancelled, and only once.
func CanCancel(id string, current Status) error {
	switch current {
	case StatusConfirmed:
		return nil
	case StatusCancelled:
		return &apperr.AlreadyCancelledError{ID: id}
	default:
		return &apperr.NotFoundError{ID: id}
	}
}

func InitialStatus() Status {
	return StatusConfirmed
}
