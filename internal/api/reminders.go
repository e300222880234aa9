package api

import (
	"log"
	"net/http"
	"time"

	"github.com/MatheusRocha-X/GymFlow-sub000/internal/models"
)

type reminderRequest struct {
	Type        string     `json:"type"`
	Title       string     `json:"title"`
	Message     string     `json:"message"`
	Time        time.Time  `json:"time"`
	Recurrence  string     `json:"recurrence"`
	DaysOfWeek  []int      `json:"days_of_week"`
	Enabled     *bool      `json:"enabled"`
	NextTrigger *time.Time `json:"next_trigger"`
}

// validate enforces the write-path invariants the engine relies on. The
// engine itself never re-validates what it reads.
func (r reminderRequest) validate() string {
	if r.Title == "" {
		return "title is required"
	}
	if r.Time.IsZero() {
		return "time is required"
	}
	if r.Type != "" && !models.ValidReminderType(r.Type) {
		return "unknown reminder type"
	}
	if r.Recurrence == "" || !models.ValidRecurrence(r.Recurrence) {
		return "recurrence must be one of: none, daily, weekly, monthly"
	}
	if r.Recurrence == models.RecurrenceWeekly {
		if len(r.DaysOfWeek) == 0 {
			return "weekly recurrence requires days_of_week"
		}
		for _, d := range r.DaysOfWeek {
			if d < 0 || d > 6 {
				return "days_of_week entries must be between 0 and 6"
			}
		}
	}
	return ""
}

func (r reminderRequest) apply(reminder *models.Reminder) {
	reminder.Type = r.Type
	if reminder.Type == "" {
		reminder.Type = models.ReminderCustom
	}
	reminder.Title = r.Title
	reminder.Message = r.Message
	reminder.Time = r.Time
	reminder.Recurrence = r.Recurrence
	if r.Recurrence == models.RecurrenceWeekly {
		reminder.DaysOfWeek = r.DaysOfWeek
	} else {
		reminder.DaysOfWeek = nil
	}
	reminder.Enabled = true
	if r.Enabled != nil {
		reminder.Enabled = *r.Enabled
	}
	// nextTrigger defaults to the anchor time on creation.
	reminder.NextTrigger = r.Time
	if r.NextTrigger != nil {
		reminder.NextTrigger = *r.NextTrigger
	}
}

func (s *Server) listRemindersHandler(w http.ResponseWriter, r *http.Request) {
	reminders, err := s.reminders.List(r.Context())
	if err != nil {
		log.Printf("Failed to list reminders: %v", err)
		writeJSON(w, http.StatusInternalServerError, failure("failed to list reminders"))
		return
	}
	writeJSON(w, http.StatusOK, success(reminders))
}

func (s *Server) createReminderHandler(w http.ResponseWriter, r *http.Request) {
	var req reminderRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, failure("invalid JSON body"))
		return
	}
	if msg := req.validate(); msg != "" {
		writeJSON(w, http.StatusBadRequest, failure(msg))
		return
	}

	reminder := &models.Reminder{}
	req.apply(reminder)
	if err := s.reminders.Create(r.Context(), reminder); err != nil {
		log.Printf("Failed to create reminder: %v", err)
		writeJSON(w, http.StatusInternalServerError, failure("failed to create reminder"))
		return
	}

	s.engine.Notify()
	writeJSON(w, http.StatusCreated, success(reminder))
}

func (s *Server) updateReminderHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, failure("invalid reminder id"))
		return
	}
	reminder, err := s.reminders.GetByID(r.Context(), id)
	if err != nil {
		writeJSON(w, http.StatusNotFound, failure("reminder not found"))
		return
	}

	var req reminderRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, failure("invalid JSON body"))
		return
	}
	if msg := req.validate(); msg != "" {
		writeJSON(w, http.StatusBadRequest, failure(msg))
		return
	}

	req.apply(reminder)
	if err := s.reminders.Update(r.Context(), reminder); err != nil {
		log.Printf("Failed to update reminder %d: %v", id, err)
		writeJSON(w, http.StatusInternalServerError, failure("failed to update reminder"))
		return
	}

	s.engine.Notify()
	writeJSON(w, http.StatusOK, success(reminder))
}

func (s *Server) deleteReminderHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, failure("invalid reminder id"))
		return
	}
	if err := s.reminders.Delete(r.Context(), id); err != nil {
		log.Printf("Failed to delete reminder %d: %v", id, err)
		writeJSON(w, http.StatusInternalServerError, failure("failed to delete reminder"))
		return
	}
	writeJSON(w, http.StatusOK, success(nil))
}
