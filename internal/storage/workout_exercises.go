package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Tsames/lograt/internal/models"
)

// InsertWorkoutExercise inserts a workout exercise row and returns the
// engine-assigned ID.
func (db *DB) InsertWorkoutExercise(ctx context.Context, e models.WorkoutExercise) (int64, error) {
	res, err := db.conn.ExecContext(ctx,
		`INSERT INTO workout_exercises (workout_id, exercise_name, position, notes)
		 VALUES (?, ?, ?, ?)`,
		e.WorkoutID, e.ExerciseName, e.Position, e.Notes)
	if err != nil {
		return 0, fmt.Errorf("inserting workout exercise: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading workout exercise id: %w", err)
	}
	return id, nil
}

// GetWorkoutExercise retrieves a workout exercise by ID. Returns nil if no
// row exists.
func (db *DB) GetWorkoutExercise(ctx context.Context, id int64) (*models.WorkoutExercise, error) {
	var e models.WorkoutExercise
	err := db.conn.QueryRowContext(ctx,
		`SELECT id, workout_id, exercise_name, position, notes
		 FROM workout_exercises WHERE id = ?`, id).
		Scan(&e.ID, &e.WorkoutID, &e.ExerciseName, &e.Position, &e.Notes)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying workout exercise: %w", err)
	}
	return &e, nil
}

// ListWorkoutExercises retrieves the exercises of a workout ordered by
// position.
func (db *DB) ListWorkoutExercises(ctx context.Context, workoutID int64) ([]models.WorkoutExercise, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, workout_id, exercise_name, position, notes
		 FROM workout_exercises
		 WHERE workout_id = ?
		 ORDER BY position ASC, id ASC`,
		workoutID)
	if err != nil {
		return nil, fmt.Errorf("querying workout exercises: %w", err)
	}
	defer rows.Close()

	var result []models.WorkoutExercise
	for rows.Next() {
		var e models.WorkoutExercise
		if err := rows.Scan(&e.ID, &e.WorkoutID, &e.ExerciseName, &e.Position, &e.Notes); err != nil {
			return nil, fmt.Errorf("scanning workout exercise: %w", err)
		}
		result = append(result, e)
	}
	return result, rows.Err()
}

// UpdateWorkoutExercise replaces the mutable columns of a workout exercise
// row by ID. The parent workout ID is immutable.
func (db *DB) UpdateWorkoutExercise(ctx context.Context, e models.WorkoutExercise) error {
	_, err := db.conn.ExecContext(ctx,
		`UPDATE workout_exercises SET exercise_name = ?, position = ?, notes = ? WHERE id = ?`,
		e.ExerciseName, e.Position, e.Notes, e.ID)
	if err != nil {
		return fmt.Errorf("updating workout exercise: %w", err)
	}
	return nil
}

// DeleteWorkoutExercise deletes a workout exercise by ID.
func (db *DB) DeleteWorkoutExercise(ctx context.Context, id int64) error {
	_, err := db.conn.ExecContext(ctx, `DELETE FROM workout_exercises WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting workout exercise: %w", err)
	}
	return nil
}

// ClearWorkoutExercises deletes every workout exercise row.
func (db *DB) ClearWorkoutExercises(ctx context.Context) error {
	_, err := db.conn.ExecContext(ctx, `DELETE FROM workout_exercises`)
	if err != nil {
		return fmt.Errorf("clearing workout exercises: %w", err)
	}
	return nil
}
