package storage

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// likeEscaper quotes LIKE wildcards in user-supplied names so they match
// literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// ExerciseHistoryPoint is one workout's aggregate for a single exercise.
type ExerciseHistoryPoint struct {
	WorkoutID    int64     `json:"workout_id"`
	WorkoutName  string    `json:"workout_name"`
	Date         time.Time `json:"date"`
	ExerciseName string    `json:"exercise_name"`
	Sets         int       `json:"sets"`
	TotalReps    int       `json:"total_reps"`
	TopWeightKg  *float64  `json:"top_weight_kg"`
	TonnageKg    float64   `json:"tonnage_kg"`
}

// ExerciseHistory returns per-workout aggregates for exercises matching the
// given name (case-insensitive substring), oldest first, since the cutoff.
// Warmup sets are excluded from the aggregates.
func (db *DB) ExerciseHistory(ctx context.Context, name string, since time.Time) ([]ExerciseHistoryPoint, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT w.id, w.name, w.created_at, we.exercise_name,
		        COUNT(s.id),
		        COALESCE(SUM(s.reps), 0),
		        MAX(s.weight_kg),
		        COALESCE(SUM(s.reps * COALESCE(s.weight_kg, 0)), 0)
		 FROM exercise_sets s
		 JOIN workout_exercises we ON we.id = s.workout_exercise_id
		 JOIN workouts w ON w.id = we.workout_id
		 WHERE we.exercise_name LIKE '%' || ? || '%' ESCAPE '\'
		   AND w.created_at >= ?
		   AND s.set_type != 'warmup'
		 GROUP BY w.id, we.exercise_name
		 ORDER BY w.created_at ASC, w.id ASC`,
		likeEscaper.Replace(name), since.UTC())
	if err != nil {
		return nil, fmt.Errorf("querying exercise history: %w", err)
	}
	defer rows.Close()

	var result []ExerciseHistoryPoint
	for rows.Next() {
		var p ExerciseHistoryPoint
		if err := rows.Scan(&p.WorkoutID, &p.WorkoutName, &p.Date, &p.ExerciseName,
			&p.Sets, &p.TotalReps, &p.TopWeightKg, &p.TonnageKg); err != nil {
			return nil, fmt.Errorf("scanning exercise history: %w", err)
		}
		result = append(result, p)
	}
	return result, rows.Err()
}

// VolumePeriod is one week's training volume totals.
type VolumePeriod struct {
	Week      string  `json:"week"` // ISO year-week, e.g. "2026-07"
	Workouts  int     `json:"workouts"`
	Sets      int     `json:"sets"`
	TotalReps int     `json:"total_reps"`
	TonnageKg float64 `json:"tonnage_kg"`
}

// TrainingVolume returns per-week set, rep, and tonnage totals for workouts
// in [start, end), oldest week first. Warmup sets are excluded.
func (db *DB) TrainingVolume(ctx context.Context, start, end time.Time) ([]VolumePeriod, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT strftime('%Y-%W', w.created_at) AS week,
		        COUNT(DISTINCT w.id),
		        COUNT(s.id),
		        COALESCE(SUM(s.reps), 0),
		        COALESCE(SUM(s.reps * COALESCE(s.weight_kg, 0)), 0)
		 FROM workouts w
		 LEFT JOIN workout_exercises we ON we.workout_id = w.id
		 LEFT JOIN exercise_sets s ON s.workout_exercise_id = we.id AND s.set_type != 'warmup'
		 WHERE w.created_at >= ? AND w.created_at < ?
		 GROUP BY week
		 ORDER BY week ASC`,
		start.UTC(), end.UTC())
	if err != nil {
		return nil, fmt.Errorf("querying training volume: %w", err)
	}
	defer rows.Close()

	var result []VolumePeriod
	for rows.Next() {
		var p VolumePeriod
		if err := rows.Scan(&p.Week, &p.Workouts, &p.Sets, &p.TotalReps, &p.TonnageKg); err != nil {
			return nil, fmt.Errorf("scanning training volume: %w", err)
		}
		result = append(result, p)
	}
	return result, rows.Err()
}
