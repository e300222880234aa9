package models

import "time"

// Exercise is an entry in the exercise library. The library ships seeded;
// rows created by the user are marked custom and are the only ones deletable.
type Exercise struct {
	ExerciseID  int       `json:"id"`
	Name        string    `json:"name"`
	Category    string    `json:"category"` // muscle group: chest, back, legs, ...
	Equipment   string    `json:"equipment,omitempty"`
	Description string    `json:"description,omitempty"`
	IsCustom    bool      `json:"is_custom"`
	CreatedAt   time.Time `json:"created_at"`
}
