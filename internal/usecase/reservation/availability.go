package reservation

import (
	"context"

	"github.com/serenity-studio/yoga-scheduler/internal/apperr"
	domain "github.com/serenity-studio/yoga-scheduler/internal/domain/reservation"
	"github.com/serenity-studio/yoga-scheduler/internal/schedule"
	"github.com/serenity-studio/yoga-scheduler/internal/store"
)

type Availability struct {
	Capacity  int  `json:"capacity"`
	Booked    int  `json:"booked"`
	Remaining int  `json:"remaining"`
	Available bool `json:"available"`
}

type CheckAvailability struct {
	backend store.Backend
}

func NewCheckAvailability(backend store.Backend) *CheckAvailability {
	return &CheckAvailability{backend: backend}
}

// Execute counts confirmed bookings for (classType, date) against the
// class capacity.
func (uc *CheckAvailability) Execute(
	ctx context.Context,
	classType string,
	date string,
) (*Availability, error) {

	class, ok := schedule.ByType(classType)
	if !ok {
		return nil, &apperr.ValidationError{
			Violations: []string{"無効なクラスタイプです"},
		}
	}

	all, err := uc.backend.List(ctx)
	if err != nil {
		return nil, err
	}

	booked := 0
	for _, r := range all {
		if r.ClassType == classType &&
			r.Date == date &&
			r.Status == string(domain.StatusConfirmed) {
			booked++
		}
	}

	remaining := class.Capacity - booked
	if remaining < 0 {
		remaining = 0
	}

	return &Availability{
		Capacity:  class.Capacity,
		Booked:    booked,
		Remaining: remaining,
		Available: remaining > 0,
	}, nil
}
