package api

import (
	"log"
	"net/http"
	"time"

	"github.com/MatheusRocha-X/GymFlow-sub000/internal/models"
)

func (s *Server) getHydrationSettingsHandler(w http.ResponseWriter, r *http.Request) {
	settings, err := s.hydration.GetOrCreateSettings(r.Context())
	if err != nil {
		log.Printf("Failed to load hydration settings: %v", err)
		writeJSON(w, http.StatusInternalServerError, failure("failed to load hydration settings"))
		return
	}
	writeJSON(w, http.StatusOK, success(settings))
}

type hydrationSettingsRequest struct {
	DailyGoalML      int  `json:"daily_goal_ml"`
	GlassSizeML      int  `json:"glass_size_ml"`
	IntervalMinutes  int  `json:"interval_minutes"`
	ActiveStartHour  int  `json:"active_start_hour"`
	ActiveEndHour    int  `json:"active_end_hour"`
	RemindersEnabled bool `json:"reminders_enabled"`
}

func (r hydrationSettingsRequest) validate() string {
	if r.DailyGoalML <= 0 || r.GlassSizeML <= 0 {
		return "daily_goal_ml and glass_size_ml must be positive"
	}
	if r.IntervalMinutes < 15 {
		return "interval_minutes must be at least 15"
	}
	if r.ActiveStartHour < 0 || r.ActiveStartHour > 23 || r.ActiveEndHour < 0 || r.ActiveEndHour > 23 {
		return "active hours must be between 0 and 23"
	}
	if r.ActiveStartHour >= r.ActiveEndHour {
		return "active_start_hour must be before active_end_hour"
	}
	return ""
}

func (s *Server) updateHydrationSettingsHandler(w http.ResponseWriter, r *http.Request) {
	var req hydrationSettingsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, failure("invalid JSON body"))
		return
	}
	if msg := req.validate(); msg != "" {
		writeJSON(w, http.StatusBadRequest, failure(msg))
		return
	}

	settings, err := s.hydration.GetOrCreateSettings(r.Context())
	if err != nil {
		log.Printf("Failed to load hydration settings: %v", err)
		writeJSON(w, http.StatusInternalServerError, failure("failed to load hydration settings"))
		return
	}

	settings.DailyGoalML = req.DailyGoalML
	settings.GlassSizeML = req.GlassSizeML
	settings.IntervalMinutes = req.IntervalMinutes
	settings.ActiveStartHour = req.ActiveStartHour
	settings.ActiveEndHour = req.ActiveEndHour
	settings.RemindersEnabled = req.RemindersEnabled

	if err := s.hydration.UpdateSettings(r.Context(), settings); err != nil {
		log.Printf("Failed to update hydration settings: %v", err)
		writeJSON(w, http.StatusInternalServerError, failure("failed to update hydration settings"))
		return
	}

	if err := s.reseedHydrationReminders(r, settings); err != nil {
		log.Printf("Failed to reseed hydration reminders: %v", err)
		writeJSON(w, http.StatusInternalServerError, failure("failed to seed hydration reminders"))
		return
	}

	s.engine.Notify()
	writeJSON(w, http.StatusOK, success(settings))
}

// reseedHydrationReminders replaces all hydration reminders with a daily
// schedule spread across the active window at the configured interval.
func (s *Server) reseedHydrationReminders(r *http.Request, settings *models.HydrationSettings) error {
	if err := s.reminders.DeleteByType(r.Context(), models.ReminderHydration); err != nil {
		return err
	}
	if !settings.RemindersEnabled {
		return nil
	}

	now := time.Now()
	interval := time.Duration(settings.IntervalMinutes) * time.Minute
	slot := time.Date(now.Year(), now.Month(), now.Day(), settings.ActiveStartHour, 0, 0, 0, now.Location())
	end := time.Date(now.Year(), now.Month(), now.Day(), settings.ActiveEndHour, 0, 0, 0, now.Location())

	for ; !slot.After(end); slot = slot.Add(interval) {
		next := slot
		if !next.After(now) {
			next = next.AddDate(0, 0, 1)
		}
		reminder := &models.Reminder{
			Type:        models.ReminderHydration,
			Title:       "Time to hydrate",
			Message:     "Drink a glass of water 💧",
			Time:        slot,
			Recurrence:  models.RecurrenceDaily,
			Enabled:     true,
			NextTrigger: next,
		}
		if err := s.reminders.Create(r.Context(), reminder); err != nil {
			return err
		}
	}
	return nil
}

func (s *Server) listHydrationLogsHandler(w http.ResponseWriter, r *http.Request) {
	day := time.Now()
	if q := r.URL.Query().Get("date"); q != "" {
		parsed, err := time.ParseInLocation("2006-01-02", q, time.Local)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, failure("date must be YYYY-MM-DD"))
			return
		}
		day = parsed
	}
	from := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	to := from.AddDate(0, 0, 1)

	logs, err := s.hydration.ListLogs(r.Context(), from, to)
	if err != nil {
		log.Printf("Failed to list hydration logs: %v", err)
		writeJSON(w, http.StatusInternalServerError, failure("failed to list hydration logs"))
		return
	}

	total := 0
	for _, entry := range logs {
		total += entry.AmountML
	}
	writeJSON(w, http.StatusOK, success(map[string]any{
		"logs":     logs,
		"total_ml": total,
	}))
}

type hydrationLogRequest struct {
	AmountML int `json:"amount_ml"`
}

func (s *Server) addHydrationLogHandler(w http.ResponseWriter, r *http.Request) {
	var req hydrationLogRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, failure("invalid JSON body"))
		return
	}
	if req.AmountML <= 0 {
		writeJSON(w, http.StatusBadRequest, failure("amount_ml must be positive"))
		return
	}

	entry := &models.HydrationLog{AmountML: req.AmountML, LoggedAt: time.Now()}
	if err := s.hydration.AddLog(r.Context(), entry); err != nil {
		log.Printf("Failed to add hydration log: %v", err)
		writeJSON(w, http.StatusInternalServerError, failure("failed to add hydration log"))
		return
	}
	writeJSON(w, http.StatusCreated, success(entry))
}
