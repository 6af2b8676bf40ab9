package importer

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/Tsames/lograt/internal/models"
	"github.com/Tsames/lograt/internal/storage"
)

// Stats tracks import progress.
type Stats struct {
	SessionsImported  int
	SessionsSkipped   int
	ExercisesInserted int
	SetsInserted      int
}

// Importer reads session CSV exports and inserts workouts into the DB.
type Importer struct {
	db     *storage.DB
	log    *slog.Logger
	dryRun bool
}

// New creates a new Importer.
func New(db *storage.DB, log *slog.Logger, dryRun bool) *Importer {
	return &Importer{db: db, log: log, dryRun: dryRun}
}

// Import parses the CSV export and inserts each session as a workout with
// its exercises and sets. Sessions whose name and date already exist are
// skipped.
func (imp *Importer) Import(ctx context.Context, r io.Reader) (*Stats, error) {
	sessions, err := Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing export: %w", err)
	}

	stats := &Stats{}
	for _, session := range sessions {
		existing, err := imp.db.FindWorkout(ctx, session.Name, session.Date)
		if err != nil {
			return stats, fmt.Errorf("checking for duplicate session: %w", err)
		}
		if existing != nil {
			imp.log.Info("skipping duplicate session", "name", session.Name, "date", session.Date)
			stats.SessionsSkipped++
			continue
		}

		detail := sessionToDetail(session)

		var exercises, sets int
		for _, e := range detail.Exercises {
			exercises++
			sets += len(e.Sets)
		}

		if imp.dryRun {
			stats.SessionsImported++
			stats.ExercisesInserted += exercises
			stats.SetsInserted += sets
			continue
		}

		if _, err := imp.db.SaveWorkoutDetail(ctx, detail); err != nil {
			return stats, fmt.Errorf("inserting session %q: %w", session.Name, err)
		}
		stats.SessionsImported++
		stats.ExercisesInserted += exercises
		stats.SetsInserted += sets
	}

	return stats, nil
}

// sessionToDetail maps a parsed session to a storable workout. Warmup sets
// keep their exported numbering; set order within an exercise counts up from
// one across warmups then working sets.
func sessionToDetail(session models.ImportedSession) storage.WorkoutDetail {
	detail := storage.WorkoutDetail{
		Workout: models.Workout{Name: session.Name, CreatedAt: session.Date.UTC()},
	}

	for _, e := range session.Exercises {
		exercise := storage.ExerciseDetail{
			WorkoutExercise: models.WorkoutExercise{
				ExerciseName: e.Name,
				Position:     e.Number,
				Notes:        e.Notes,
			},
		}

		order := 0
		for _, set := range e.Sets {
			order++
			setType := models.SetTypeWorking
			if set.IsWarmup {
				setType = models.SetTypeWarmup
			}
			exercise.Sets = append(exercise.Sets, models.ExerciseSet{
				SetOrder: order,
				Reps:     set.Reps,
				WeightKg: set.WeightKg,
				RestSec:  set.RestSec,
				Type:     setType,
			})
		}

		detail.Exercises = append(detail.Exercises, exercise)
	}
	return detail
}
