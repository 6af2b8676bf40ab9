package models

import "time"

// ExerciseSet is one set of an exercise. WeightKg is nil for bodyweight
// movements; Rest is nil when no rest was recorded.
type ExerciseSet struct {
	ID                int64          `json:"id"`
	WorkoutExerciseID int64          `json:"workout_exercise_id"`
	SetOrder          int            `json:"set_order"`
	Reps              int            `json:"reps"`
	WeightKg          *float64       `json:"weight_kg,omitempty"`
	Rest              *time.Duration `json:"-"`
	RestSec           *int64         `json:"rest_sec,omitempty"`
	Type              SetType        `json:"set_type"`
}

// ExerciseSetRow is an exercise_sets row with column-typed fields: rest as
// integer seconds, set type as its stored string.
type ExerciseSetRow struct {
	ID                int64
	WorkoutExerciseID int64
	SetOrder          int
	Reps              int
	WeightKg          *float64
	RestSec           *int64
	SetType           string
}

// ToRow converts the set to its row representation. The Rest duration wins
// over RestSec when both are populated.
func (s ExerciseSet) ToRow() ExerciseSetRow {
	row := ExerciseSetRow{
		ID:                s.ID,
		WorkoutExerciseID: s.WorkoutExerciseID,
		SetOrder:          s.SetOrder,
		Reps:              s.Reps,
		WeightKg:          s.WeightKg,
		RestSec:           s.RestSec,
		SetType:           string(s.Type),
	}
	if s.Type == "" {
		row.SetType = string(SetTypeWorking)
	}
	if s.Rest != nil {
		sec := int64(s.Rest.Round(time.Second) / time.Second)
		row.RestSec = &sec
	}
	return row
}

// ToSet converts a row back to an ExerciseSet, restoring the typed rest
// duration and parsing the stored set type (unknown values read as working).
func (r ExerciseSetRow) ToSet() ExerciseSet {
	s := ExerciseSet{
		ID:                r.ID,
		WorkoutExerciseID: r.WorkoutExerciseID,
		SetOrder:          r.SetOrder,
		Reps:              r.Reps,
		WeightKg:          r.WeightKg,
		RestSec:           r.RestSec,
		Type:              ParseSetType(r.SetType),
	}
	if r.RestSec != nil {
		d := time.Duration(*r.RestSec) * time.Second
		s.Rest = &d
	}
	return s
}
