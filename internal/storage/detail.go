package storage

import (
	"context"
	"fmt"

	"github.com/Tsames/lograt/internal/models"
)

// ExerciseDetail is a workout exercise with its sets.
type ExerciseDetail struct {
	models.WorkoutExercise
	Sets []models.ExerciseSet `json:"sets"`
}

// WorkoutDetail is a workout with its exercises and their sets.
type WorkoutDetail struct {
	models.Workout
	Exercises []ExerciseDetail `json:"exercises"`
}

// GetWorkoutDetail retrieves a workout with all its exercises and sets.
// Returns nil if the workout does not exist.
func (db *DB) GetWorkoutDetail(ctx context.Context, id int64) (*WorkoutDetail, error) {
	w, err := db.GetWorkout(ctx, id)
	if err != nil || w == nil {
		return nil, err
	}

	exercises, err := db.ListWorkoutExercises(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := &WorkoutDetail{Workout: *w}
	for _, e := range exercises {
		sets, err := db.ListExerciseSets(ctx, e.ID)
		if err != nil {
			return nil, err
		}
		detail.Exercises = append(detail.Exercises, ExerciseDetail{WorkoutExercise: e, Sets: sets})
	}
	return detail, nil
}

// SaveWorkoutDetail inserts a workout with all its exercises and sets in one
// transaction. Returns the new workout ID. IDs present on the input are
// ignored; the storage engine assigns fresh ones.
func (db *DB) SaveWorkoutDetail(ctx context.Context, detail WorkoutDetail) (int64, error) {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning workout save: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO workouts (name, created_at) VALUES (?, ?)`,
		detail.Name, detail.CreatedAt.UTC())
	if err != nil {
		return 0, fmt.Errorf("inserting workout: %w", err)
	}
	workoutID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading workout id: %w", err)
	}

	for _, e := range detail.Exercises {
		res, err := tx.ExecContext(ctx,
			`INSERT INTO workout_exercises (workout_id, exercise_name, position, notes)
			 VALUES (?, ?, ?, ?)`,
			workoutID, e.ExerciseName, e.Position, e.Notes)
		if err != nil {
			return 0, fmt.Errorf("inserting workout exercise: %w", err)
		}
		exerciseID, err := res.LastInsertId()
		if err != nil {
			return 0, fmt.Errorf("reading workout exercise id: %w", err)
		}

		sets := make([]models.ExerciseSet, len(e.Sets))
		copy(sets, e.Sets)
		for i := range sets {
			sets[i].WorkoutExerciseID = exerciseID
		}
		if _, err := insertSets(ctx, tx, sets); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing workout save: %w", err)
	}
	return workoutID, nil
}

// AddExerciseWithSets inserts an exercise and its sets in one transaction so
// a failed set insert cannot leave an orphaned exercise row. Returns the new
// exercise ID; WorkoutExerciseID on the input sets is ignored.
func (db *DB) AddExerciseWithSets(ctx context.Context, e models.WorkoutExercise, sets []models.ExerciseSet) (int64, error) {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning exercise add: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO workout_exercises (workout_id, exercise_name, position, notes)
		 VALUES (?, ?, ?, ?)`,
		e.WorkoutID, e.ExerciseName, e.Position, e.Notes)
	if err != nil {
		return 0, fmt.Errorf("inserting workout exercise: %w", err)
	}
	exerciseID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading workout exercise id: %w", err)
	}

	stamped := make([]models.ExerciseSet, len(sets))
	copy(stamped, sets)
	for i := range stamped {
		stamped[i].WorkoutExerciseID = exerciseID
	}
	if _, err := insertSets(ctx, tx, stamped); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing exercise add: %w", err)
	}
	return exerciseID, nil
}
