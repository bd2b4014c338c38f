package reservation

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/serenity-studio/yoga-scheduler/internal/apperr"
	"github.com/serenity-studio/yoga-scheduler/internal/audit"
	domain "github.com/serenity-studio/yoga-scheduler/internal/domain/reservation"
	"github.com/serenity-studio/yoga-scheduler/internal/models"
	"github.com/serenity-studio/yoga-scheduler/internal/schedule"
	"github.com/serenity-studio/yoga-scheduler/internal/store"
	"github.com/serenity-studio/yoga-scheduler/internal/timezone"
	"github.com/serenity-studio/yoga-scheduler/internal/validators"
)

// ======================================================
// INPUT
// ======================================================

type CreateReservationInput struct {
	ClassType     string
	ScheduleLabel string

	Date string // YYYY-MM-DD
	Time string // slot, e.g. "10:00-11:00"

	Name  string
	Email string
	Phone string
	Notes string
}

// ======================================================
// USE CASE
// ======================================================

type CreateReservation struct {
	backend store.Backend
	audit   *audit.Dispatcher

	tz      string
	latency time.Duration
	now     func() time.Time
}

func NewCreateReservation(
	backend store.Backend,
	auditd *audit.Dispatcher,
	tz string,
	latency time.Duration,
) *CreateReservation {
	return &CreateReservation{
		backend: backend,
		audit:   auditd,
		tz:      tz,
		latency: latency,
		now:     func() time.Time { return timezone.NowIn(tz) },
	}
}

// WithClock overrides the booking clock. Test hook.
func (uc *CreateReservation) WithClock(now func() time.Time) *CreateReservation {
	uc.now = now
	return uc
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateReservation) Execute(
	ctx context.Context,
	in CreateReservationInput,
) (*models.Reservation, error) {

	// --------------------------------------------------
	// 1. Validation, all rules reported together
	// --------------------------------------------------
	class, violations := uc.validate(in)
	if len(violations) > 0 {
		return nil, &apperr.ValidationError{Violations: violations}
	}

	// --------------------------------------------------
	// 2. Simulated backend latency, same async contract
	//    as the remote path (no lock held here)
	// --------------------------------------------------
	if uc.latency > 0 {
		time.Sleep(uc.latency)
	}

	// --------------------------------------------------
	// 3. Build and persist; dedup is the backend's job
	// --------------------------------------------------
	label := strings.TrimSpace(in.ScheduleLabel)
	if label == "" {
		label = class.Schedule
	}

	r := &models.Reservation{
		ID:            domain.NewID(),
		ClassType:     in.ClassType,
		ScheduleLabel: label,
		Date:          in.Date,
		Time:          in.Time,
		Name:          strings.TrimSpace(in.Name),
		Email:         strings.TrimSpace(in.Email),
		Phone:         strings.TrimSpace(in.Phone),
		Notes:         in.Notes,
		Status:        string(domain.InitialStatus()),
		CreatedAt:     uc.now(),
	}

	if err := uc.backend.Create(ctx, r); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		Action:    "reservation_created",
		ID:        r.ID,
		ClassType: r.ClassType,
		Date:      r.Date,
		Email:     r.Email,
	})

	return r, nil
}

// ======================================================
// VALIDATION
// ======================================================

func (uc *CreateReservation) validate(in CreateReservationInput) (schedule.Class, []string) {
	var violations []string

	class, classOK := schedule.ByType(strings.TrimSpace(in.ClassType))
	switch {
	case strings.TrimSpace(in.ClassType) == "":
		violations = append(violations, "クラスを選択してください")
	case !classOK:
		violations = append(violations, "無効なクラスタイプです")
	}

	switch date, err := timezone.ParseDate(uc.tz, in.Date); {
	case strings.TrimSpace(in.Date) == "":
		violations = append(violations, "日付を選択してください")
	case err != nil:
		violations = append(violations, "日付形式が正しくありません（YYYY-MM-DD）")
	default:
		today := timezone.Midnight(uc.now())
		if date.Before(today) {
			violations = append(violations, "過去の日付は予約できません")
		} else if date.After(today.AddDate(0, 3, 0)) {
			violations = append(violations, "3ヶ月先までの予約が可能です")
		} else if classOK && !class.HeldOn(date.Weekday()) {
			violations = append(violations,
				fmt.Sprintf("%sは%sのスケジュールです", class.Name, class.Schedule))
		}
	}

	switch {
	case strings.TrimSpace(in.Time) == "":
		violations = append(violations, "時間を選択してください")
	case classOK && !class.HasSlot(in.Time):
		violations = append(violations, "選択した時間はスケジュールにありません")
	}

	if !validators.IsValidName(in.Name) {
		violations = append(violations, "お名前を正しく入力してください")
	}
	if !validators.IsValidEmail(in.Email) {
		violations = append(violations, "有効なメールアドレスを入力してください")
	}
	if !validators.IsValidPhone(in.Phone) {
		violations = append(violations, "電話番号を正しく入力してください")
	}

	return class, violations
}
