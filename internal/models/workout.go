package models

import "time"

// Workout is a single training session. The ID is assigned by the storage
// engine on insert and never changes afterwards.
type Workout struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// WorkoutExercise is one exercise performed within a workout. Position is
// caller-supplied ordering within the workout; it is not validated for
// uniqueness or contiguity.
type WorkoutExercise struct {
	ID           int64  `json:"id"`
	WorkoutID    int64  `json:"workout_id"`
	ExerciseName string `json:"exercise_name"`
	Position     int    `json:"position"`
	Notes        string `json:"notes,omitempty"`
}
