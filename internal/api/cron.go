package api

import (
	"crypto/subtle"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/MatheusRocha-X/GymFlow-sub000/internal/engine"
)

// requireCronAuth guards the relay endpoints with the shared bearer
// secret. With no secret configured the relay is disabled outright.
func (s *Server) requireCronAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.cronSecret == "" {
			writeJSON(w, http.StatusNotFound, failure("cron relay is not configured"))
			return
		}

		token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || subtle.ConstantTimeCompare([]byte(token), []byte(s.cronSecret)) != 1 {
			writeJSON(w, http.StatusUnauthorized, failure("unauthorized"))
			return
		}
		next(w, r)
	}
}

// cronCheckRemindersHandler runs a single reminder evaluation cycle.
// External schedulers poll this when the app is deployed without the
// long-running engine loop.
func (s *Server) cronCheckRemindersHandler(w http.ResponseWriter, r *http.Request) {
	if err := s.engine.CheckReminders(r.Context(), time.Now()); err != nil {
		if errors.Is(err, engine.ErrNotConfigured) {
			writeJSON(w, http.StatusServiceUnavailable, failure("telegram is not configured"))
			return
		}
		log.Printf("Cron reminder check failed: %v", err)
		writeJSON(w, http.StatusInternalServerError, failure("reminder check failed"))
		return
	}
	writeJSON(w, http.StatusOK, success(nil))
}

func (s *Server) cronCheckMotivationHandler(w http.ResponseWriter, r *http.Request) {
	if err := s.engine.CheckMotivation(r.Context(), time.Now()); err != nil {
		if errors.Is(err, engine.ErrNotConfigured) {
			writeJSON(w, http.StatusServiceUnavailable, failure("telegram is not configured"))
			return
		}
		log.Printf("Cron motivation check failed: %v", err)
		writeJSON(w, http.StatusInternalServerError, failure("motivation check failed"))
		return
	}
	writeJSON(w, http.StatusOK, success(nil))
}
