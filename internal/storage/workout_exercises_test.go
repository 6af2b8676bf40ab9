package storage

import (
	"context"
	"testing"
	"time"

	"github.com/Tsames/lograt/internal/models"
)

// TestWorkoutExerciseInsertGet verifies insert-then-read field equality.
func TestWorkoutExerciseInsertGet(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	wid := mustInsertWorkout(t, db, "Push Day", time.Now().UTC())

	id, err := db.InsertWorkoutExercise(ctx, models.WorkoutExercise{
		WorkoutID:    wid,
		ExerciseName: "Bench Press",
		Position:     2,
		Notes:        "pause reps",
	})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}

	e, err := db.GetWorkoutExercise(ctx, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if e == nil {
		t.Fatal("got nil exercise after insert")
	}
	if e.WorkoutID != wid || e.ExerciseName != "Bench Press" || e.Position != 2 || e.Notes != "pause reps" {
		t.Errorf("exercise = %+v", e)
	}
}

// TestGetWorkoutExerciseMissing verifies an absent row surfaces as nil.
func TestGetWorkoutExerciseMissing(t *testing.T) {
	db := openTestDB(t)

	e, err := db.GetWorkoutExercise(context.Background(), 42)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e != nil {
		t.Errorf("got %+v, want nil", e)
	}
}

// TestListWorkoutExercisesOrdering verifies per-workout listing ordered by
// position, and that duplicate positions are tolerated.
func TestListWorkoutExercisesOrdering(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	wid := mustInsertWorkout(t, db, "Full Body", time.Now().UTC())
	other := mustInsertWorkout(t, db, "Other", time.Now().UTC())

	mustInsertExercise(t, db, wid, "Row", 2)
	mustInsertExercise(t, db, wid, "Squat", 1)
	mustInsertExercise(t, db, wid, "Curl", 2) // duplicate position is legal
	mustInsertExercise(t, db, other, "Press", 1)

	got, err := db.ListWorkoutExercises(ctx, wid)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d exercises, want 3", len(got))
	}
	if got[0].ExerciseName != "Squat" {
		t.Errorf("first = %q, want Squat", got[0].ExerciseName)
	}
	if got[1].ExerciseName != "Row" || got[2].ExerciseName != "Curl" {
		t.Errorf("tie order = [%s %s], want insertion order [Row Curl]", got[1].ExerciseName, got[2].ExerciseName)
	}
}

// TestUpdateWorkoutExercise verifies whole-row replace of the mutable
// columns.
func TestUpdateWorkoutExercise(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	wid := mustInsertWorkout(t, db, "Upper", time.Now().UTC())
	id := mustInsertExercise(t, db, wid, "OHP", 1)

	err := db.UpdateWorkoutExercise(ctx, models.WorkoutExercise{
		ID: id, ExerciseName: "Seated OHP", Position: 3, Notes: "strict",
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	e, _ := db.GetWorkoutExercise(ctx, id)
	if e.ExerciseName != "Seated OHP" || e.Position != 3 || e.Notes != "strict" {
		t.Errorf("exercise = %+v", e)
	}
	if e.WorkoutID != wid {
		t.Errorf("workout_id changed to %d", e.WorkoutID)
	}
}

// TestDeleteAndClearWorkoutExercises verifies single delete and table clear,
// and that deleting an exercise cascades to its sets.
func TestDeleteAndClearWorkoutExercises(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	wid := mustInsertWorkout(t, db, "W", time.Now().UTC())

	id := mustInsertExercise(t, db, wid, "Dip", 1)
	keep := mustInsertExercise(t, db, wid, "Chin", 2)
	sid, _ := db.InsertExerciseSet(ctx, models.ExerciseSet{WorkoutExerciseID: id, SetOrder: 1, Reps: 10})

	if err := db.DeleteWorkoutExercise(ctx, id); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if e, _ := db.GetWorkoutExercise(ctx, id); e != nil {
		t.Error("deleted exercise still present")
	}
	if s, _ := db.GetExerciseSet(ctx, sid); s != nil {
		t.Error("set survived exercise delete")
	}
	if e, _ := db.GetWorkoutExercise(ctx, keep); e == nil {
		t.Error("unrelated exercise deleted")
	}

	if err := db.ClearWorkoutExercises(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	rest, _ := db.ListWorkoutExercises(ctx, wid)
	if len(rest) != 0 {
		t.Errorf("got %d exercises after clear, want 0", len(rest))
	}
}
