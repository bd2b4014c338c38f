package store

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/serenity-studio/yoga-scheduler/internal/models"
)

// Fallback composes the remote backend over the local one. A transport
// failure on the remote path is retried locally for that single call and
// logged, never surfaced; application errors from the remote are final.
type Fallback struct {
	remote Backend
	local  Backend
	logger *zap.Logger
}

func NewFallback(remote, local Backend, logger *zap.Logger) *Fallback {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Fallback{remote: remote, local: local, logger: logger}
}

func (f *Fallback) Create(ctx context.Context, r *models.Reservation) error {
	err := f.remote.Create(ctx, r)
	if !errors.Is(err, ErrRemoteUnavailable) {
		return err
	}

	f.logFallback("create", err)
	return f.local.Create(ctx, r)
}

func (f *Fallback) QueryByEmail(ctx context.Context, email string) ([]models.Reservation, error) {
	out, err := f.remote.QueryByEmail(ctx, email)
	if !errors.Is(err, ErrRemoteUnavailable) {
		return out, err
	}

	f.logFallback("queryByEmail", err)
	return f.local.QueryByEmail(ctx, email)
}

func (f *Fallback) Cancel(ctx context.Context, id string) (*models.Reservation, error) {
	out, err := f.remote.Cancel(ctx, id)
	if !errors.Is(err, ErrRemoteUnavailable) {
		return out, err
	}

	f.logFallback("cancel", err)
	return f.local.Cancel(ctx, id)
}

func (f *Fallback) List(ctx context.Context) ([]models.Reservation, error) {
	out, err := f.remote.List(ctx)
	if !errors.Is(err, ErrRemoteUnavailable) {
		return out, err
	}

	f.logFallback("list", err)
	return f.local.List(ctx)
}

func (f *Fallback) logFallback(op string, err error) {
	f.logger.Warn("remote backend unavailable, falling back to local store",
		zap.String("op", op),
		zap.Error(err),
	)
}

var _ Backend = (*Fallback)(nil)
