package store

import (
	"context"

	"github.com/serenity-studio/yoga-scheduler/internal/models"
)

// Backend is the persistence boundary for reservations. Both modes (local
// document store, remote HTTP API) expose the same operations, and the
// business rules that must be atomic with a write live here:
//
//   - Create rejects a duplicate confirmed (email, date, classType) booking
//     before anything is written.
//   - Cancel enforces the status transition and the 24-hour cancellation
//     window before anything is written.
//
// The lifecycle usecases trust this boundary; the rules are checked exactly
// once.
type Backend interface {
	Create(ctx context.Context, r *models.Reservation) error

	// QueryByEmail matches the email case-insensitively and returns all
	// statuses, most recent booking date first. Empty result, nil error
	// means no reservations.
	QueryByEmail(ctx context.Context, email string) ([]models.Reservation, error)

	// Cancel transitions the reservation to cancelled and returns the
	// updated record.
	Cancel(ctx context.Context, id string) (*models.Reservation, error)

	// List returns the full collection, for export and availability counts.
	List(ctx context.Context) ([]models.Reservation, error)
}
