package schedule

import (
	"time"
)

// ===============================
// Class schedule table
// ===============================

// Class describes one recurring class on the studio timetable.
type Class struct {
	Type     string `json:"type"`
	Name     string `json:"name"` // display name shown on the site
	Schedule string `json:"schedule"`
	Duration int    `json:"duration"` // minutes
	Capacity int    `json:"capacity"`
	Level    string `json:"level"`

	Weekdays []time.Weekday `json:"-"`
	Slots    []string       `json:"slots"`
}

// The studio timetable is fixed; new class types extend this table.
var classes = []Class{
	{
		Type:     "hatha",
		Name:     "ハタヨガ",
		Schedule: "月・水・金 10:00-11:00",
		Duration: 60,
		Capacity: 12,
		Level:    "初心者〜中級者",
		Weekdays: []time.Weekday{time.Monday, time.Wednesday, time.Friday},
		Slots:    []string{"09:00-10:00", "10:00-11:00", "18:00-19:00", "19:00-20:00"},
	},
	{
		Type:     "power",
		Name:     "パワーヨガ",
		Schedule: "火・木・土 19:00-20:00",
		Duration: 60,
		Capacity: 10,
		Level:    "中級者〜上級者",
		Weekdays: []time.Weekday{time.Tuesday, time.Thursday, time.Saturday},
		Slots:    []string{"09:00-10:00", "10:00-11:00", "14:00-15:00", "18:00-19:00", "19:00-20:00"},
	},
	{
		Type:     "restorative",
		Name:     "リストラティブヨガ",
		Schedule: "日 17:00-18:30",
		Duration: 90,
		Capacity: 8,
		Level:    "すべてのレベル",
		Weekdays: []time.Weekday{time.Sunday},
		Slots:    []string{"10:00-11:00", "17:00-18:30"},
	},
}

func All() []Class {
	out := make([]Class, len(classes))
	copy(out, classes)
	return out
}

func ByType(classType string) (Class, bool) {
	for _, c := range classes {
		if c.Type == classType {
			return c, true
		}
	}
	return Class{}, false
}

// ByName resolves a class by its display name, for payloads that carry the
// Japanese label instead of the type key.
func ByName(name string) (Class, bool) {
	for _, c := range classes {
		if c.Name == name {
			return c, true
		}
	}
	return Class{}, false
}

// HeldOn reports whether the class runs on the given weekday.
func (c Class) HeldOn(day time.Weekday) bool {
	for _, d := range c.Weekdays {
		if d == day {
			return true
		}
	}
	return false
}

// HasSlot reports whether the time slot appears on the class timetable.
func (c Class) HasSlot(slot string) bool {
	for _, s := range c.Slots {
		if s == slot {
			return true
		}
	}
	return false
}

// SlotStart extracts the HH:MM start from a "HH:MM-HH:MM" slot. Returns
// false when the slot does not carry a parseable start.
func SlotStart(slot string) (string, bool) {
	if len(slot) < 5 {
		return "", false
	}
	start := slot[:5]
	if _, err := time.Parse("15:04", start); err != nil {
		return "", false
	}
	return start, true
}

// ScheduledStart is the fallback session start when a reservation carries no
// usable slot: the class's published start time.
func (c Class) ScheduledStart() (string, bool) {
	for i := 0; i+5 <= len(c.Schedule); i++ {
		if start, ok := SlotStart(c.Schedule[i:]); ok {
			return start, true
		}
	}
	return "", false
}
