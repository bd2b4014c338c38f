package reservation

import (
	"bytes"
	"context"
	"encoding/csv"
	"time"

	"github.com/serenity-studio/yoga-scheduler/internal/apperr"
	domain "github.com/serenity-studio/yoga-scheduler/internal/domain/reservation"
	"github.com/serenity-studio/yoga-scheduler/internal/schedule"
	"github.com/serenity-studio/yoga-scheduler/internal/store"
)

// Column order is fixed; downstream spreadsheets depend on it.
var csvHeader = []string{
	"id", "class", "schedule", "date",
	"name", "email", "phone", "notes",
	"status", "created_at",
}

type ExportCSV struct {
	backend store.Backend
}

func NewExportCSV(backend store.Backend) *ExportCSV {
	return &ExportCSV{backend: backend}
}

// Execute serializes the full collection. encoding/csv handles quoting
// (fields wrapped, embedded double quotes doubled).
func (uc *ExportCSV) Execute(ctx context.Context) ([]byte, error) {
	all, err := uc.backend.List(ctx)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(csvHeader); err != nil {
		return nil, apperr.Storage("export", err)
	}

	for _, r := range all {
		label := r.ClassType
		if class, ok := schedule.ByType(r.ClassType); ok {
			label = class.Name
		}

		record := []string{
			r.ID,
			label,
			r.ScheduleLabel,
			r.Date,
			r.Name,
			r.Email,
			r.Phone,
			r.Notes,
			domain.Status(r.Status).Label(),
			r.CreatedAt.Format(time.RFC3339),
		}
		if err := w.Write(record); err != nil {
			return nil, apperr.Storage("export", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, apperr.Storage("export", err)
	}
	return buf.Bytes(), nil
}
