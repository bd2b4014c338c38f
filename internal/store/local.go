package store

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/serenity-studio/yoga-scheduler/internal/apperr"
	domain "github.com/serenity-studio/yoga-scheduler/internal/domain/reservation"
	"github.com/serenity-studio/yoga-scheduler/internal/models"
	"github.com/serenity-studio/yoga-scheduler/internal/store/kv"
	"github.com/serenity-studio/yoga-scheduler/internal/timezone"
)

// Local persists the whole collection as one JSON array in a kv.Store.
// Every operation is load → check → mutate → save under one mutex, so the
// dedup-then-insert and window-then-update sequences are serialized.
type Local struct {
	mu  sync.Mutex
	kv  kv.Store
	loc *time.Location
	now func() time.Time
}

func NewLocal(store kv.Store, tz string) *Local {
	loc := timezone.Location(tz)
	return &Local{
		kv:  store,
		loc: loc,
		now: func() time.Time { return time.Now().In(loc) },
	}
}

// WithClock overrides the cancellation-window clock. Test hook.
func (l *Local) WithClock(now func() time.Time) *Local {
	l.now = now
	return l
}

// --------------------------------------------------
// Collection I/O
// --------------------------------------------------

func (l *Local) load(ctx context.Context) ([]models.Reservation, error) {
	data, ok, err := l.kv.Load(ctx)
	if err != nil {
		return nil, apperr.Storage("load", err)
	}
	if !ok {
		return []models.Reservation{}, nil
	}

	var all []models.Reservation
	if err := json.Unmarshal(data, &all); err != nil {
		return nil, apperr.Storage("decode", err)
	}
	return all, nil
}

func (l *Local) save(ctx context.Context, all []models.Reservation) error {
	data, err := json.Marshal(all)
	if err != nil {
		return apperr.Storage("encode", err)
	}
	if err := l.kv.Save(ctx, data); err != nil {
		return apperr.Storage("save", err)
	}
	return nil
}

// --------------------------------------------------
// Create (dedup boundary)
// --------------------------------------------------

func (l *Local) Create(ctx context.Context, r *models.Reservation) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	all, err := l.load(ctx)
	if err != nil {
		return err
	}

	for i := range all {
		if all[i].Status != string(domain.StatusConfirmed) {
			continue
		}
		if domain.SameBooking(&all[i], r) {
			return &apperr.DuplicateError{
				Email:     r.Email,
				Date:      r.Date,
				ClassType: r.ClassType,
			}
		}
	}

	all = append(all, *r)
	return l.save(ctx, all)
}

// --------------------------------------------------
// Query
// --------------------------------------------------

func (l *Local) QueryByEmail(ctx context.Context, email string) ([]models.Reservation, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	all, err := l.load(ctx)
	if err != nil {
		return nil, err
	}

	matched := make([]models.Reservation, 0)
	for _, r := range all {
		if strings.EqualFold(r.Email, email) {
			matched = append(matched, r)
		}
	}

	sortByDateDesc(matched)
	return matched, nil
}

func (l *Local) List(ctx context.Context) ([]models.Reservation, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.load(ctx)
}

// --------------------------------------------------
// Cancel (window boundary)
// --------------------------------------------------

func (l *Local) Cancel(ctx context.Context, id string) (*models.Reservation, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	all, err := l.load(ctx)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i := range all {
		if all[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, &apperr.NotFoundError{ID: id}
	}

	if err := domain.Cancel(&all[idx], l.now()); err != nil {
		return nil, err
	}

	if err := l.save(ctx, all); err != nil {
		return nil, err
	}

	cancelled := all[idx]
	return &cancelled, nil
}

// Most recent booking date first; creation time breaks ties.
func sortByDateDesc(rs []models.Reservation) {
	sort.SliceStable(rs, func(i, j int) bool {
		if rs[i].Date != rs[j].Date {
			return rs[i].Date > rs[j].Date
		}
		return rs[i].CreatedAt.After(rs[j].CreatedAt)
	})
}

var _ Backend = (*Local)(nil)
