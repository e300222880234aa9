package models

import "time"

// HydrationSettings is a singleton row configuring the hydration feature.
// It is consumed by the API write path to seed recurring hydration
// reminders; the engine never reads it directly.
type HydrationSettings struct {
	DailyGoalML      int       `json:"daily_goal_ml"`
	GlassSizeML      int       `json:"glass_size_ml"`
	IntervalMinutes  int       `json:"interval_minutes"` // spacing between seeded reminders
	ActiveStartHour  int       `json:"active_start_hour"`
	ActiveEndHour    int       `json:"active_end_hour"`
	RemindersEnabled bool      `json:"reminders_enabled"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// DefaultHydrationSettings returns the out-of-box hydration configuration.
func DefaultHydrationSettings() *HydrationSettings {
	return &HydrationSettings{
		DailyGoalML:     2000,
		GlassSizeML:     250,
		IntervalMinutes: 120,
		ActiveStartHour: 8,
		ActiveEndHour:   22,
	}
}

// HydrationLog is one recorded drink.
type HydrationLog struct {
	LogID    int       `json:"id"`
	AmountML int       `json:"amount_ml"`
	LoggedAt time.Time `json:"logged_at"`
}
