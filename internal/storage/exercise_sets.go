package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Tsames/lograt/internal/models"
)

// InsertExerciseSet inserts a single set and returns the engine-assigned ID.
func (db *DB) InsertExerciseSet(ctx context.Context, set models.ExerciseSet) (int64, error) {
	row := set.ToRow()
	res, err := db.conn.ExecContext(ctx,
		`INSERT INTO exercise_sets (workout_exercise_id, set_order, reps, weight_kg, rest_sec, set_type)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		row.WorkoutExerciseID, row.SetOrder, row.Reps, row.WeightKg, row.RestSec, row.SetType)
	if err != nil {
		return 0, fmt.Errorf("inserting exercise set: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading exercise set id: %w", err)
	}
	return id, nil
}

// InsertExerciseSets batch-inserts sets in a single statement. Returns the
// count inserted.
func (db *DB) InsertExerciseSets(ctx context.Context, sets []models.ExerciseSet) (int64, error) {
	return insertSets(ctx, db.conn, sets)
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func insertSets(ctx context.Context, ex execer, sets []models.ExerciseSet) (int64, error) {
	if len(sets) == 0 {
		return 0, nil
	}

	query := `INSERT INTO exercise_sets (workout_exercise_id, set_order, reps, weight_kg, rest_sec, set_type) VALUES `
	args := make([]any, 0, len(sets)*6)
	valueStrings := make([]string, 0, len(sets))

	for _, s := range sets {
		row := s.ToRow()
		valueStrings = append(valueStrings, "(?,?,?,?,?,?)")
		args = append(args, row.WorkoutExerciseID, row.SetOrder, row.Reps, row.WeightKg, row.RestSec, row.SetType)
	}

	query += strings.Join(valueStrings, ",")

	res, err := ex.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("inserting exercise sets: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("counting inserted sets: %w", err)
	}
	return n, nil
}

// GetExerciseSet retrieves a set by ID. Returns nil if no row exists.
func (db *DB) GetExerciseSet(ctx context.Context, id int64) (*models.ExerciseSet, error) {
	var row models.ExerciseSetRow
	err := db.conn.QueryRowContext(ctx,
		`SELECT id, workout_exercise_id, set_order, reps, weight_kg, rest_sec, set_type
		 FROM exercise_sets WHERE id = ?`, id).
		Scan(&row.ID, &row.WorkoutExerciseID, &row.SetOrder, &row.Reps, &row.WeightKg, &row.RestSec, &row.SetType)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying exercise set: %w", err)
	}
	set := row.ToSet()
	return &set, nil
}

// ListExerciseSets retrieves the sets of a workout exercise ordered by
// set order.
func (db *DB) ListExerciseSets(ctx context.Context, workoutExerciseID int64) ([]models.ExerciseSet, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, workout_exercise_id, set_order, reps, weight_kg, rest_sec, set_type
		 FROM exercise_sets
		 WHERE workout_exercise_id = ?
		 ORDER BY set_order ASC, id ASC`,
		workoutExerciseID)
	if err != nil {
		return nil, fmt.Errorf("querying exercise sets: %w", err)
	}
	defer rows.Close()

	return scanExerciseSets(rows)
}

// UpdateExerciseSet replaces the mutable columns of a set row by ID. The
// parent exercise ID is immutable.
func (db *DB) UpdateExerciseSet(ctx context.Context, set models.ExerciseSet) error {
	row := set.ToRow()
	_, err := db.conn.ExecContext(ctx,
		`UPDATE exercise_sets SET set_order = ?, reps = ?, weight_kg = ?, rest_sec = ?, set_type = ?
		 WHERE id = ?`,
		row.SetOrder, row.Reps, row.WeightKg, row.RestSec, row.SetType, row.ID)
	if err != nil {
		return fmt.Errorf("updating exercise set: %w", err)
	}
	return nil
}

// DeleteExerciseSet deletes a set by ID.
func (db *DB) DeleteExerciseSet(ctx context.Context, id int64) error {
	_, err := db.conn.ExecContext(ctx, `DELETE FROM exercise_sets WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting exercise set: %w", err)
	}
	return nil
}

// ClearExerciseSets deletes every set row.
func (db *DB) ClearExerciseSets(ctx context.Context) error {
	_, err := db.conn.ExecContext(ctx, `DELETE FROM exercise_sets`)
	if err != nil {
		return fmt.Errorf("clearing exercise sets: %w", err)
	}
	return nil
}

// ReplaceExerciseSets deletes the existing sets of a workout exercise and
// inserts the given ones in their place, in one transaction.
func (db *DB) ReplaceExerciseSets(ctx context.Context, workoutExerciseID int64, sets []models.ExerciseSet) error {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning set replace: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM exercise_sets WHERE workout_exercise_id = ?`, workoutExerciseID); err != nil {
		return fmt.Errorf("deleting old sets: %w", err)
	}

	stamped := make([]models.ExerciseSet, len(sets))
	copy(stamped, sets)
	for i := range stamped {
		stamped[i].WorkoutExerciseID = workoutExerciseID
	}
	if _, err := insertSets(ctx, tx, stamped); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing set replace: %w", err)
	}
	return nil
}

func scanExerciseSets(rows *sql.Rows) ([]models.ExerciseSet, error) {
	var result []models.ExerciseSet
	for rows.Next() {
		var row models.ExerciseSetRow
		if err := rows.Scan(&row.ID, &row.WorkoutExerciseID, &row.SetOrder, &row.Reps,
			&row.WeightKg, &row.RestSec, &row.SetType); err != nil {
			return nil, fmt.Errorf("scanning exercise set: %w", err)
		}
		result = append(result, row.ToSet())
	}
	return result, rows.Err()
}
