package reservation

import (
	"strings"
	"time"

	"github.com/serenity-studio/yoga-scheduler/internal/apperr"
	"github.com/serenity-studio/yoga-scheduler/internal/models"
	"github.com/serenity-studio/yoga-scheduler/internal/schedule"
	"github.com/serenity-studio/yoga-scheduler/internal/timezone"
)

// ===============================
// Domain Actions
// ===============================

// CancellationWindow is how long before the session start cancellation
// closes.
const CancellationWindow = 24 * time.Hour

// Cancel flips a reservation to cancelled, enforcing the status transition
// and the cancellation window against now.
func Cancel(r *models.Reservation, now time.Time) error {
	if err := CanCancel(r.ID, Status(r.Status)); err != nil {
		return err
	}

	start := SessionStart(r, now.Location())
	if start.Sub(now) <= CancellationWindow {
		return &apperr.CancellationWindowError{SessionStart: start}
	}

	r.Status = string(StatusCancelled)
	r.CancelledAt = &now
	return nil
}

// SessionStart resolves when the booked session begins: the start of the
// reservation's time slot, else the class's published start, else midnight
// of the booking date.
func SessionStart(r *models.Reservation, loc *time.Location) time.Time {
	date, err := time.ParseInLocation("2006-01-02", r.Date, loc)
	if err != nil {
		return time.Time{}
	}

	start, ok := schedule.SlotStart(r.Time)
	if !ok {
		if class, found := schedule.ByType(r.ClassType); found {
			start, ok = class.ScheduledStart()
		}
	}
	if !ok {
		return timezone.Midnight(date)
	}

	t, err := time.ParseInLocation("2006-01-02 15:04", r.Date+" "+start, loc)
	if err != nil {
		return timezone.Midnight(date)
	}
	return t
}

// SameBooking reports whether two reservations target the same
// (email, date, classType) triple. Email identity is case-insensitive.
func SameBooking(a, b *models.Reservation) bool {
	return strings.EqualFold(a.Email, b.Email) &&
		a.Date == b.Date &&
		a.ClassType == b.ClassType
}
