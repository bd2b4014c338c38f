package reservation

import (
	"context"

	"github.com/serenity-studio/yoga-scheduler/internal/apperr"
	domain "github.com/serenity-studio/yoga-scheduler/internal/domain/reservation"
	"github.com/serenity-studio/yoga-scheduler/internal/models"
	"github.com/serenity-studio/yoga-scheduler/internal/store"
	"github.com/serenity-studio/yoga-scheduler/internal/validators"
)

type SearchByEmail struct {
	backend store.Backend
}

func NewSearchByEmail(backend store.Backend) *SearchByEmail {
	return &SearchByEmail{backend: backend}
}

// Execute looks up reservations for one email, case-insensitively. The
// confirmation flow passes includeCancelled=false; the self-service "my
// reservations" view passes true so history stays visible. An empty result
// is a normal answer, not an error.
func (uc *SearchByEmail) Execute(
	ctx context.Context,
	email string,
	includeCancelled bool,
) ([]models.Reservation, error) {

	if !validators.IsValidEmail(email) {
		return nil, &apperr.ValidationError{
			Violations: []string{"有効なメールアドレスを入力してください"},
		}
	}

	all, err := uc.backend.QueryByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if includeCancelled {
		return all, nil
	}

	confirmed := make([]models.Reservation, 0, len(all))
	for _, r := range all {
		if r.Status == string(domain.StatusConfirmed) {
			confirmed = append(confirmed, r)
		}
	}
	return confirmed, nil
}

// List returns the whole collection, unfiltered.
func (uc *SearchByEmail) List(ctx context.Context) ([]models.Reservation, error) {
	return uc.backend.List(ctx)
}
