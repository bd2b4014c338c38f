package reservation

import (
	"context"
	"strings"

	"github.com/serenity-studio/yoga-scheduler/internal/apperr"
	"github.com/serenity-studio/yoga-scheduler/internal/audit"
	"github.com/serenity-studio/yoga-scheduler/internal/models"
	"github.com/serenity-studio/yoga-scheduler/internal/store"
)

type CancelReservation struct {
	backend store.Backend
	audit   *audit.Dispatcher
}

func NewCancelReservation(
	backend store.Backend,
	auditd *audit.Dispatcher,
) *CancelReservation {
	return &CancelReservation{
		backend: backend,
		audit:   auditd,
	}
}

// Execute cancels by id. The backend enforces existence, the one-shot
// status transition and the 24-hour window atomically with the write.
func (uc *CancelReservation) Execute(
	ctx context.Context,
	id string,
) (*models.Reservation, error) {

	id = strings.TrimSpace(id)
	if id == "" {
		return nil, &apperr.NotFoundError{ID: id}
	}

	cancelled, err := uc.backend.Cancel(ctx, id)
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		Action:    "reservation_cancelled",
		ID:        cancelled.ID,
		ClassType: cancelled.ClassType,
		Date:      cancelled.Date,
		Email:     cancelled.Email,
	})

	return cancelled, nil
}
