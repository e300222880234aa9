package models

import "time"

// Reminder types.
const (
	ReminderHydration  = "hydration"
	ReminderWorkout    = "workout"
	ReminderSupplement = "supplement"
	ReminderStretching = "stretching"
	ReminderCustom     = "custom"
)

// Recurrence policies.
const (
	RecurrenceNone    = "none"
	RecurrenceDaily   = "daily"
	RecurrenceWeekly  = "weekly"
	RecurrenceMonthly = "monthly"
)

// Reminder represents a single scheduled notification.
type Reminder struct {
	ReminderID  int       `json:"id"`
	Type        string    `json:"type"`
	Title       string    `json:"title"`
	Message     string    `json:"message,omitempty"`
	Time        time.Time `json:"time"` // anchor date+time picked by the user
	Recurrence  string    `json:"recurrence"`
	DaysOfWeek  []int     `json:"days_of_week,omitempty"` // weekday indices 0 (Sunday) - 6, weekly only
	Enabled     bool      `json:"enabled"`
	NextTrigger time.Time `json:"next_trigger"`
	CreatedAt   time.Time `json:"created_at"`
}

// IsRecurring returns true if this reminder repeats after firing.
func (r *Reminder) IsRecurring() bool {
	return r.Recurrence != "" && r.Recurrence != RecurrenceNone
}

// FiresOn reports whether the reminder may fire on the given weekday.
// Non-weekly reminders fire on any day.
func (r *Reminder) FiresOn(day time.Weekday) bool {
	if r.Recurrence != RecurrenceWeekly {
		return true
	}
	for _, d := range r.DaysOfWeek {
		if time.Weekday(d) == day {
			return true
		}
	}
	return false
}

// ValidRecurrence reports whether s is a known recurrence policy.
func ValidRecurrence(s string) bool {
	switch s {
	case RecurrenceNone, RecurrenceDaily, RecurrenceWeekly, RecurrenceMonthly:
		return true
	}
	return false
}

// ValidReminderType reports whether s is a known reminder type.
func ValidReminderType(s string) bool {
	switch s {
	case ReminderHydration, ReminderWorkout, ReminderSupplement, ReminderStretching, ReminderCustom:
		return true
	}
	return false
}
