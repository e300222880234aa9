package models

import "time"

// Routine is a reusable workout template: an ordered list of exercises
// with target sets/reps.
type Routine struct {
	RoutineID   int               `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description,omitempty"`
	Exercises   []RoutineExercise `json:"exercises"`
	CreatedAt   time.Time         `json:"created_at"`
}

// RoutineExercise is one exercise slot inside a routine.
type RoutineExercise struct {
	ExerciseID  int `json:"exercise_id"`
	Position    int `json:"position"`
	Sets        int `json:"sets"`
	Reps        int `json:"reps"`
	RestSeconds int `json:"rest_seconds,omitempty"`
}
