package models

import "time"

// Reservation is the persisted wire shape. Field names match the JSON
// document stored under the yoga_reservations key, so existing data files
// import cleanly.
type Reservation struct {
	ID string `json:"id"`

	ClassType     string `json:"classType"`
	ScheduleLabel string `json:"scheduleLabel,omitempty"`

	Date string `json:"date"` // YYYY-MM-DD
	Time string `json:"time"` // slot, e.g. "10:00-11:00"

	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
	Notes string `json:"notes,omitempty"`

	Status string `json:"status"`

	CreatedAt   time.Time  `json:"createdAt"`
	CancelledAt *time.Time `json:"cancelledAt,omitempty"`
}
