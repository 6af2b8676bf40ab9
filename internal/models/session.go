package models

import "time"

// ImportedSession is one training session parsed from a CSV export.
type ImportedSession struct {
	Name      string
	Date      time.Time
	Exercises []ImportedExercise
}

// ImportedExercise is one exercise within an imported session.
type ImportedExercise struct {
	Number int
	Name   string
	Notes  string
	Sets   []ImportedSet
}

// ImportedSet is one set line from a CSV export. Weight is nil when the
// export marks the set as bodyweight-only.
type ImportedSet struct {
	Number   int
	WeightKg *float64
	Reps     int
	RestSec  *int64
	IsWarmup bool
}
