package models

import (
	"testing"
	"time"
)

func TestTelegramSettingsConfigured(t *testing.T) {
	tests := []struct {
		name     string
		settings *TelegramSettings
		want     bool
	}{
		{"nil", nil, false},
		{"disabled", &TelegramSettings{ChatID: 42}, false},
		{"no chat id", &TelegramSettings{Enabled: true}, false},
		{"configured", &TelegramSettings{Enabled: true, ChatID: 42}, true},
	}
	for _, tc := range tests {
		if got := tc.settings.Configured(); got != tc.want {
			t.Errorf("%s: Configured() = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestMotivationDue(t *testing.T) {
	morning := time.Date(2024, 1, 2, 8, 30, 0, 0, time.UTC)
	yesterday := morning.AddDate(0, 0, -1)
	earlierToday := morning.Add(-time.Hour)

	tests := []struct {
		name     string
		settings TelegramSettings
		now      time.Time
		want     bool
	}{
		{
			"disabled",
			TelegramSettings{DailyMotivationTime: "08:00"},
			morning, false,
		},
		{
			"due after configured hour",
			TelegramSettings{DailyMotivationEnabled: true, DailyMotivationTime: "08:00"},
			morning, true,
		},
		{
			"not yet the configured hour",
			TelegramSettings{DailyMotivationEnabled: true, DailyMotivationTime: "09:00"},
			morning, false,
		},
		{
			"already sent today",
			TelegramSettings{DailyMotivationEnabled: true, DailyMotivationTime: "08:00", LastMotivationalMessage: &earlierToday},
			morning, false,
		},
		{
			"sent yesterday",
			TelegramSettings{DailyMotivationEnabled: true, DailyMotivationTime: "08:00", LastMotivationalMessage: &yesterday},
			morning, true,
		},
		{
			"garbage time falls back to midnight",
			TelegramSettings{DailyMotivationEnabled: true, DailyMotivationTime: "not-a-time"},
			morning, true,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.settings.MotivationDue(tc.now); got != tc.want {
				t.Errorf("MotivationDue = %v, want %v", got, tc.want)
			}
		})
	}
}
