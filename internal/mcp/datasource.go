package mcp

import (
	"context"
	"time"

	"github.com/Tsames/lograt/internal/models"
	"github.com/Tsames/lograt/internal/storage"
)

// DataSource abstracts the data layer for MCP tools. Both *storage.DB (local)
// and HTTPClient (remote via REST API) satisfy this interface.
type DataSource interface {
	ListWorkouts(ctx context.Context, limit int) ([]models.Workout, error)
	RecentWorkouts(ctx context.Context, since time.Time) ([]models.Workout, error)
	GetWorkoutDetail(ctx context.Context, id int64) (*storage.WorkoutDetail, error)
	ExerciseHistory(ctx context.Context, name string, since time.Time) ([]storage.ExerciseHistoryPoint, error)
	TrainingVolume(ctx context.Context, start, end time.Time) ([]storage.VolumePeriod, error)
}

// Compile-time check: *storage.DB satisfies DataSource.
var _ DataSource = (*storage.DB)(nil)
