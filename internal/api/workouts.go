package api

import (
	"log"
	"net/http"
	"time"

	"github.com/MatheusRocha-X/GymFlow-sub000/internal/models"
)

// ==================== Exercises ====================

func (s *Server) listExercisesHandler(w http.ResponseWriter, r *http.Request) {
	exercises, err := s.exercises.List(r.Context(), r.URL.Query().Get("category"))
	if err != nil {
		log.Printf("Failed to list exercises: %v", err)
		writeJSON(w, http.StatusInternalServerError, failure("failed to list exercises"))
		return
	}
	writeJSON(w, http.StatusOK, success(exercises))
}

type exerciseRequest struct {
	Name        string `json:"name"`
	Category    string `json:"category"`
	Equipment   string `json:"equipment"`
	Description string `json:"description"`
}

func (s *Server) createExerciseHandler(w http.ResponseWriter, r *http.Request) {
	var req exerciseRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, failure("invalid JSON body"))
		return
	}
	if req.Name == "" || req.Category == "" {
		writeJSON(w, http.StatusBadRequest, failure("name and category are required"))
		return
	}

	exercise := &models.Exercise{
		Name:        req.Name,
		Category:    req.Category,
		Equipment:   req.Equipment,
		Description: req.Description,
		IsCustom:    true,
	}
	if err := s.exercises.Create(r.Context(), exercise); err != nil {
		log.Printf("Failed to create exercise: %v", err)
		writeJSON(w, http.StatusInternalServerError, failure("failed to create exercise"))
		return
	}
	writeJSON(w, http.StatusCreated, success(exercise))
}

func (s *Server) getExerciseHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, failure("invalid exercise id"))
		return
	}
	exercise, err := s.exercises.GetByID(r.Context(), id)
	if err != nil {
		writeJSON(w, http.StatusNotFound, failure("exercise not found"))
		return
	}
	writeJSON(w, http.StatusOK, success(exercise))
}

func (s *Server) updateExerciseHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, failure("invalid exercise id"))
		return
	}
	exercise, err := s.exercises.GetByID(r.Context(), id)
	if err != nil {
		writeJSON(w, http.StatusNotFound, failure("exercise not found"))
		return
	}

	var req exerciseRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, failure("invalid JSON body"))
		return
	}
	if req.Name == "" || req.Category == "" {
		writeJSON(w, http.StatusBadRequest, failure("name and category are required"))
		return
	}

	exercise.Name = req.Name
	exercise.Category = req.Category
	exercise.Equipment = req.Equipment
	exercise.Description = req.Description
	if err := s.exercises.Update(r.Context(), exercise); err != nil {
		log.Printf("Failed to update exercise %d: %v", id, err)
		writeJSON(w, http.StatusInternalServerError, failure("failed to update exercise"))
		return
	}
	writeJSON(w, http.StatusOK, success(exercise))
}

func (s *Server) deleteExerciseHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, failure("invalid exercise id"))
		return
	}
	deleted, err := s.exercises.Delete(r.Context(), id)
	if err != nil {
		log.Printf("Failed to delete exercise %d: %v", id, err)
		writeJSON(w, http.StatusInternalServerError, failure("failed to delete exercise"))
		return
	}
	if !deleted {
		writeJSON(w, http.StatusForbidden, failure("only custom exercises can be deleted"))
		return
	}
	writeJSON(w, http.StatusOK, success(nil))
}

// ==================== Routines ====================

func (s *Server) listRoutinesHandler(w http.ResponseWriter, r *http.Request) {
	routines, err := s.routines.List(r.Context())
	if err != nil {
		log.Printf("Failed to list routines: %v", err)
		writeJSON(w, http.StatusInternalServerError, failure("failed to list routines"))
		return
	}
	writeJSON(w, http.StatusOK, success(routines))
}

type routineRequest struct {
	Name        string                   `json:"name"`
	Description string                   `json:"description"`
	Exercises   []models.RoutineExercise `json:"exercises"`
}

func (r routineRequest) validate() string {
	if r.Name == "" {
		return "name is required"
	}
	for _, ex := range r.Exercises {
		if ex.ExerciseID <= 0 {
			return "every routine entry needs an exercise_id"
		}
	}
	return ""
}

func (s *Server) createRoutineHandler(w http.ResponseWriter, r *http.Request) {
	var req routineRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, failure("invalid JSON body"))
		return
	}
	if msg := req.validate(); msg != "" {
		writeJSON(w, http.StatusBadRequest, failure(msg))
		return
	}

	routine := &models.Routine{
		Name:        req.Name,
		Description: req.Description,
		Exercises:   req.Exercises,
	}
	if err := s.routines.Create(r.Context(), routine); err != nil {
		log.Printf("Failed to create routine: %v", err)
		writeJSON(w, http.StatusInternalServerError, failure("failed to create routine"))
		return
	}
	writeJSON(w, http.StatusCreated, success(routine))
}

func (s *Server) getRoutineHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, failure("invalid routine id"))
		return
	}
	routine, err := s.routines.GetByID(r.Context(), id)
	if err != nil {
		writeJSON(w, http.StatusNotFound, failure("routine not found"))
		return
	}
	writeJSON(w, http.StatusOK, success(routine))
}

func (s *Server) updateRoutineHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, failure("invalid routine id"))
		return
	}
	routine, err := s.routines.GetByID(r.Context(), id)
	if err != nil {
		writeJSON(w, http.StatusNotFound, failure("routine not found"))
		return
	}

	var req routineRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, failure("invalid JSON body"))
		return
	}
	if msg := req.validate(); msg != "" {
		writeJSON(w, http.StatusBadRequest, failure(msg))
		return
	}

	routine.Name = req.Name
	routine.Description = req.Description
	routine.Exercises = req.Exercises
	if err := s.routines.Update(r.Context(), routine); err != nil {
		log.Printf("Failed to update routine %d: %v", id, err)
		writeJSON(w, http.StatusInternalServerError, failure("failed to update routine"))
		return
	}
	writeJSON(w, http.StatusOK, success(routine))
}

func (s *Server) deleteRoutineHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, failure("invalid routine id"))
		return
	}
	if err := s.routines.Delete(r.Context(), id); err != nil {
		log.Printf("Failed to delete routine %d: %v", id, err)
		writeJSON(w, http.StatusInternalServerError, failure("failed to delete routine"))
		return
	}
	writeJSON(w, http.StatusOK, success(nil))
}

// ==================== Sessions ====================

func (s *Server) listSessionsHandler(w http.ResponseWriter, r *http.Request) {
	sessions, err := s.sessions.List(r.Context(), 0)
	if err != nil {
		log.Printf("Failed to list sessions: %v", err)
		writeJSON(w, http.StatusInternalServerError, failure("failed to list sessions"))
		return
	}
	writeJSON(w, http.StatusOK, success(sessions))
}

type sessionRequest struct {
	RoutineID *int   `json:"routine_id"`
	Notes     string `json:"notes"`
}

func (s *Server) createSessionHandler(w http.ResponseWriter, r *http.Request) {
	var req sessionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, failure("invalid JSON body"))
		return
	}

	session := &models.WorkoutSession{
		RoutineID: req.RoutineID,
		Notes:     req.Notes,
		StartedAt: time.Now(),
	}
	if err := s.sessions.Create(r.Context(), session); err != nil {
		log.Printf("Failed to create session: %v", err)
		writeJSON(w, http.StatusInternalServerError, failure("failed to create session"))
		return
	}
	writeJSON(w, http.StatusCreated, success(session))
}

func (s *Server) getSessionHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, failure("invalid session id"))
		return
	}
	session, err := s.sessions.GetByID(r.Context(), id)
	if err != nil {
		writeJSON(w, http.StatusNotFound, failure("session not found"))
		return
	}
	writeJSON(w, http.StatusOK, success(session))
}

type sessionSetRequest struct {
	ExerciseID int     `json:"exercise_id"`
	SetNumber  int     `json:"set_number"`
	Reps       int     `json:"reps"`
	WeightKg   float64 `json:"weight_kg"`
}

func (s *Server) addSessionSetHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, failure("invalid session id"))
		return
	}

	var req sessionSetRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, failure("invalid JSON body"))
		return
	}
	if req.ExerciseID <= 0 {
		writeJSON(w, http.StatusBadRequest, failure("exercise_id is required"))
		return
	}

	session, err := s.sessions.GetByID(r.Context(), id)
	if err != nil {
		writeJSON(w, http.StatusNotFound, failure("session not found"))
		return
	}
	if session.IsCompleted() {
		writeJSON(w, http.StatusConflict, failure("session is already completed"))
		return
	}

	set := &models.SessionSet{
		ExerciseID: req.ExerciseID,
		SetNumber:  req.SetNumber,
		Reps:       req.Reps,
		WeightKg:   req.WeightKg,
	}
	if set.SetNumber <= 0 {
		set.SetNumber = len(session.Sets) + 1
	}
	if err := s.sessions.AddSet(r.Context(), id, set); err != nil {
		log.Printf("Failed to add set to session %d: %v", id, err)
		writeJSON(w, http.StatusInternalServerError, failure("failed to add set"))
		return
	}
	writeJSON(w, http.StatusCreated, success(set))
}

type completeSessionRequest struct {
	Notes string `json:"notes"`
}

func (s *Server) completeSessionHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, failure("invalid session id"))
		return
	}

	var req completeSessionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, failure("invalid JSON body"))
		return
	}

	session, err := s.sessions.GetByID(r.Context(), id)
	if err != nil {
		writeJSON(w, http.StatusNotFound, failure("session not found"))
		return
	}
	if session.IsCompleted() {
		writeJSON(w, http.StatusConflict, failure("session is already completed"))
		return
	}

	notes := session.Notes
	if req.Notes != "" {
		notes = req.Notes
	}
	if err := s.sessions.Complete(r.Context(), id, time.Now(), notes); err != nil {
		log.Printf("Failed to complete session %d: %v", id, err)
		writeJSON(w, http.StatusInternalServerError, failure("failed to complete session"))
		return
	}
	writeJSON(w, http.StatusOK, success(nil))
}

func (s *Server) deleteSessionHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, failure("invalid session id"))
		return
	}
	if err := s.sessions.Delete(r.Context(), id); err != nil {
		log.Printf("Failed to delete session %d: %v", id, err)
		writeJSON(w, http.StatusInternalServerError, failure("failed to delete session"))
		return
	}
	writeJSON(w, http.StatusOK, success(nil))
}
