package reservation_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/serenity-studio/yoga-scheduler/internal/apperr"
	"github.com/serenity-studio/yoga-scheduler/internal/audit"
	domain "github.com/serenity-studio/yoga-scheduler/internal/domain/reservation"
	"github.com/serenity-studio/yoga-scheduler/internal/store"
	"github.com/serenity-studio/yoga-scheduler/internal/store/kv"
	ucReservation "github.com/serenity-studio/yoga-scheduler/internal/usecase/reservation"
)

// Monday 09:00 UTC.
var testNow = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return testNow }

type env struct {
	backend *store.Local
	create  *ucReservation.CreateReservation
	search  *ucReservation.SearchByEmail
	cancel  *ucReservation.CancelReservation
	export  *ucReservation.ExportCSV
	avail   *ucReservation.CheckAvailability
}

func newEnv() *env {
	backend := store.NewLocal(kv.NewMemory(), "UTC").WithClock(fixedClock)
	auditd := audit.NewDispatcher(nil)

	return &env{
		backend: backend,
		create:  ucReservation.NewCreateReservation(backend, auditd, "UTC", 0).WithClock(fixedClock),
		search:  ucReservation.NewSearchByEmail(backend),
		cancel:  ucReservation.NewCancelReservation(backend, auditd),
		export:  ucReservation.NewExportCSV(backend),
		avail:   ucReservation.NewCheckAvailability(backend),
	}
}

func validInput() ucReservation.CreateReservationInput {
	return ucReservation.CreateReservationInput{
		ClassType: "hatha",
		Date:      "2026-03-04", // Wednesday
		Time:      "10:00-11:00",
		Name:      "田中太郎",
		Email:     "alice@example.com",
		Phone:     "090-1234-5678",
		Notes:     "初回参加です",
	}
}

func TestCreateCollectsAllViolations(t *testing.T) {
	e := newEnv()

	_, err := e.create.Execute(context.Background(), ucReservation.CreateReservationInput{
		ClassType: "aerial",
		Date:      "2020-01-01",
		Time:      "",
		Name:      "X",
		Email:     "not-an-email",
		Phone:     "123",
	})

	ve, ok := apperr.AsValidation(err)
	require.True(t, ok, "want ValidationError, got %v", err)

	assert.Equal(t, []string{
		"無効なクラスタイプです",
		"過去の日付は予約できません",
		"時間を選択してください",
		"お名前を正しく入力してください",
		"有効なメールアドレスを入力してください",
		"電話番号を正しく入力してください",
	}, ve.Violations)
}

func TestCreateWeekdayRule(t *testing.T) {
	e := newEnv()

	in := validInput()
	in.Date = "2026-03-03" // Tuesday, no hatha

	_, err := e.create.Execute(context.Background(), in)
	ve, ok := apperr.AsValidation(err)
	require.True(t, ok, "want ValidationError, got %v", err)
	assert.Equal(t, []string{"ハタヨガは月・水・金 10:00-11:00のスケジュールです"}, ve.Violations)
}

func TestCreateDateLimits(t *testing.T) {
	e := newEnv()

	in := validInput()
	in.Date = "2026-07-15" // beyond today+3 months

	_, err := e.create.Execute(context.Background(), in)
	ve, ok := apperr.AsValidation(err)
	require.True(t, ok)
	assert.Contains(t, ve.Violations, "3ヶ月先までの予約が可能です")

	in.Date = "2026/03/04"
	_, err = e.create.Execute(context.Background(), in)
	ve, ok = apperr.AsValidation(err)
	require.True(t, ok)
	assert.Contains(t, ve.Violations, "日付形式が正しくありません（YYYY-MM-DD）")
}

func TestCreateThenSearchFidelity(t *testing.T) {
	e := newEnv()
	ctx := context.Background()

	in := validInput()
	created, err := e.create.Execute(ctx, in)
	require.NoError(t, err)

	assert.NotEmpty(t, created.ID)
	assert.Equal(t, string(domain.StatusConfirmed), created.Status)
	assert.Equal(t, testNow, created.CreatedAt)
	assert.Equal(t, "月・水・金 10:00-11:00", created.ScheduleLabel, "label defaults from the timetable")

	found, err := e.search.Execute(ctx, in.Email, true)
	require.NoError(t, err)
	require.Len(t, found, 1)

	got := found[0]
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, in.ClassType, got.ClassType)
	assert.Equal(t, in.Date, got.Date)
	assert.Equal(t, in.Time, got.Time)
	assert.Equal(t, in.Name, got.Name)
	assert.Equal(t, in.Email, got.Email)
	assert.Equal(t, in.Phone, got.Phone)
	assert.Equal(t, in.Notes, got.Notes)
}

// The walkthrough the booking widget exercises end to end.
func TestBookingScenario(t *testing.T) {
	e := newEnv()
	ctx := context.Background()

	in := validInput()
	in.Date = "2026-03-13" // Friday, 11 days out
	in.Time = "09:00-10:00"

	created, err := e.create.Execute(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusConfirmed), created.Status)

	// Identical triple while confirmed: rejected.
	_, err = e.create.Execute(ctx, in)
	assert.True(t, apperr.IsDuplicate(err), "want DuplicateError, got %v", err)

	// Session is far out, so cancellation goes through.
	cancelled, err := e.cancel.Execute(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCancelled), cancelled.Status)
	require.NotNil(t, cancelled.CancelledAt)

	// All-statuses view shows history; confirmed-only view is empty.
	all, err := e.search.Execute(ctx, in.Email, true)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, string(domain.StatusCancelled), all[0].Status)

	confirmed, err := e.search.Execute(ctx, in.Email, false)
	require.NoError(t, err)
	assert.Empty(t, confirmed)

	// The cancelled slot can be rebooked.
	_, err = e.create.Execute(ctx, in)
	assert.NoError(t, err)
}
