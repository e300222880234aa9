package models

import "time"

// TelegramSettings is a singleton row holding the notification relay
// configuration. The engine refuses to start until Enabled is set and a
// chat id is present.
type TelegramSettings struct {
	Enabled                 bool       `json:"enabled"`
	ChatID                  int64      `json:"chat_id"`
	BotToken                string     `json:"bot_token,omitempty"` // falls back to TELEGRAM_TOKEN env
	DailyMotivationEnabled  bool       `json:"daily_motivation_enabled"`
	DailyMotivationTime     string     `json:"daily_motivation_time"` // HH:MM
	LastMotivationalMessage *time.Time `json:"last_motivational_message,omitempty"`
	SetupCompleted          bool       `json:"setup_completed"`
	UpdatedAt               time.Time  `json:"updated_at"`
}

// Configured reports whether the relay can deliver at all.
func (s *TelegramSettings) Configured() bool {
	return s != nil && s.Enabled && s.ChatID != 0
}

// MotivationDue reports whether the daily motivational message should be
// sent at the given time: the configured hour has been reached and nothing
// was sent yet today (local calendar day, midnight to midnight).
func (s *TelegramSettings) MotivationDue(now time.Time) bool {
	if !s.DailyMotivationEnabled {
		return false
	}
	if s.LastMotivationalMessage != nil {
		last := s.LastMotivationalMessage.In(now.Location())
		if last.Year() == now.Year() && last.YearDay() == now.YearDay() {
			return false
		}
	}
	hour, minute := parseTimeString(s.DailyMotivationTime)
	target := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
	return !now.Before(target)
}

// parseTimeString parses "HH:MM" into hours and minutes.
func parseTimeString(timeStr string) (hour, min int) {
	t, err := time.Parse("15:04", timeStr)
	if err != nil {
		return 0, 0
	}
	return t.Hour(), t.Minute()
}
