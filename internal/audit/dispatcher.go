package audit

import (
	"go.uber.org/zap"
)

// Event records one reservation lifecycle action.
type Event struct {
	Action    string // reservation_created, reservation_cancelled
	ID        string
	ClassType string
	Date      string
	Email     string
}

// Dispatcher writes audit events off the request path. The queue is
// bounded; when it fills we drop the event rather than stall a booking.
type Dispatcher struct {
	logger *zap.Logger
	queue  chan Event
}

func NewDispatcher(logger *zap.Logger) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}

	d := &Dispatcher{
		logger: logger,
		queue:  make(chan Event, 100),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	for ev := range d.queue {
		d.logger.Info("audit",
			zap.String("action", ev.Action),
			zap.String("reservation_id", ev.ID),
			zap.String("class_type", ev.ClassType),
			zap.String("date", ev.Date),
			zap.String("email", ev.Email),
		)
	}
}

func (d *Dispatcher) Dispatch(ev Event) {
	select {
	case d.queue <- ev:
	default:
		d.logger.Warn("audit queue full, dropping event",
			zap.String("action", ev.Action),
		)
	}
}
