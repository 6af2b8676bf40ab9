package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Tsames/lograt/internal/models"
)

// InsertWorkout inserts a workout row and returns the engine-assigned ID.
// Timestamps are stored as UTC text; binding a non-UTC value would make them
// compare lexicographically instead of by instant.
func (db *DB) InsertWorkout(ctx context.Context, name string, createdAt time.Time) (int64, error) {
	res, err := db.conn.ExecContext(ctx,
		`INSERT INTO workouts (name, created_at) VALUES (?, ?)`,
		name, createdAt.UTC())
	if err != nil {
		return 0, fmt.Errorf("inserting workout: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading workout id: %w", err)
	}
	return id, nil
}

// GetWorkout retrieves a single workout by ID. Returns nil if no row exists.
func (db *DB) GetWorkout(ctx context.Context, id int64) (*models.Workout, error) {
	var w models.Workout
	err := db.conn.QueryRowContext(ctx,
		`SELECT id, name, created_at FROM workouts WHERE id = ?`, id).
		Scan(&w.ID, &w.Name, &w.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying workout: %w", err)
	}
	return &w, nil
}

// ListWorkouts retrieves workouts, most recent first. A limit <= 0 means no
// limit.
func (db *DB) ListWorkouts(ctx context.Context, limit int) ([]models.Workout, error) {
	query := `SELECT id, name, created_at FROM workouts ORDER BY created_at DESC, id DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying workouts: %w", err)
	}
	defer rows.Close()

	return scanWorkouts(rows)
}

// RecentWorkouts retrieves workouts created at or after the cutoff, most
// recent first.
func (db *DB) RecentWorkouts(ctx context.Context, since time.Time) ([]models.Workout, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, name, created_at FROM workouts
		 WHERE created_at >= ?
		 ORDER BY created_at DESC, id DESC`,
		since.UTC())
	if err != nil {
		return nil, fmt.Errorf("querying recent workouts: %w", err)
	}
	defer rows.Close()

	return scanWorkouts(rows)
}

// FindWorkout retrieves a workout by exact name and creation time. Returns
// nil if none matches. Used for duplicate detection on import.
func (db *DB) FindWorkout(ctx context.Context, name string, createdAt time.Time) (*models.Workout, error) {
	var w models.Workout
	err := db.conn.QueryRowContext(ctx,
		`SELECT id, name, created_at FROM workouts WHERE name = ? AND created_at = ? LIMIT 1`,
		name, createdAt.UTC()).
		Scan(&w.ID, &w.Name, &w.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("finding workout: %w", err)
	}
	return &w, nil
}

// UpdateWorkout replaces the mutable columns of a workout row by ID.
func (db *DB) UpdateWorkout(ctx context.Context, w models.Workout) error {
	_, err := db.conn.ExecContext(ctx,
		`UPDATE workouts SET name = ?, created_at = ? WHERE id = ?`,
		w.Name, w.CreatedAt.UTC(), w.ID)
	if err != nil {
		return fmt.Errorf("updating workout: %w", err)
	}
	return nil
}

// DeleteWorkout deletes a workout by ID. Child exercises and sets go with it
// via the schema's cascades.
func (db *DB) DeleteWorkout(ctx context.Context, id int64) error {
	_, err := db.conn.ExecContext(ctx, `DELETE FROM workouts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting workout: %w", err)
	}
	return nil
}

// ClearWorkouts deletes every workout row.
func (db *DB) ClearWorkouts(ctx context.Context) error {
	_, err := db.conn.ExecContext(ctx, `DELETE FROM workouts`)
	if err != nil {
		return fmt.Errorf("clearing workouts: %w", err)
	}
	return nil
}

func scanWorkouts(rows *sql.Rows) ([]models.Workout, error) {
	var result []models.Workout
	for rows.Next() {
		var w models.Workout
		if err := rows.Scan(&w.ID, &w.Name, &w.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning workout: %w", err)
		}
		result = append(result, w)
	}
	return result, rows.Err()
}
