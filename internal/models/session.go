package models

import "time"

// WorkoutSession is a logged workout. Sessions may be started from a routine
// or ad hoc; sets are appended while training and the session is closed with
// an explicit complete call.
type WorkoutSession struct {
	SessionID   int          `json:"id"`
	RoutineID   *int         `json:"routine_id,omitempty"`
	Notes       string       `json:"notes,omitempty"`
	StartedAt   time.Time    `json:"started_at"`
	CompletedAt *time.Time   `json:"completed_at,omitempty"`
	Sets        []SessionSet `json:"sets"`
}

// SessionSet is one performed set within a session.
type SessionSet struct {
	SetID      int     `json:"id"`
	ExerciseID int     `json:"exercise_id"`
	SetNumber  int     `json:"set_number"`
	Reps       int     `json:"reps"`
	WeightKg   float64 `json:"weight_kg,omitempty"`
}

// IsCompleted returns true once the session has been closed.
func (s *WorkoutSession) IsCompleted() bool {
	return s.CompletedAt != nil
}
