package models

import "time"

// Weight units.
const (
	UnitKilograms = "kg"
	UnitPounds    = "lb"
)

// UserSettings is a singleton row of client-wide preferences.
type UserSettings struct {
	DisplayName         string    `json:"display_name,omitempty"`
	WeightUnit          string    `json:"weight_unit"`
	Timezone            string    `json:"timezone"`
	WeekStartsMonday    bool      `json:"week_starts_monday"`
	OnboardingCompleted bool      `json:"onboarding_completed"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// NewDefaultUserSettings creates settings with default values.
func NewDefaultUserSettings() *UserSettings {
	return &UserSettings{
		WeightUnit: UnitKilograms,
		Timezone:   "UTC",
		UpdatedAt:  time.Now(),
	}
}

// Location resolves the configured timezone, falling back to local time.
func (s *UserSettings) Location() *time.Location {
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}
