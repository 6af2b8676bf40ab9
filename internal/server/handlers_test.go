package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/Tsames/lograt/internal/models"
	"github.com/Tsames/lograt/internal/storage"
)

const testAPIKey = "test-key"

func newTestServer(t *testing.T) *Server {
	t.Helper()
	db, err := storage.Open(":memory:")
	if err != nil {
		t.Fatalf("opening test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return New(db, testAPIKey, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func doJSON(t *testing.T, s *Server, method, path string, body any, withKey bool) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encoding body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	if withKey {
		req.Header.Set("X-API-Key", testAPIKey)
	}
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func createWorkout(t *testing.T, s *Server, name string, createdAt time.Time) storage.WorkoutDetail {
	t.Helper()
	weight := 100.0
	payload := storage.WorkoutDetail{
		Workout: models.Workout{Name: name, CreatedAt: createdAt},
		Exercises: []storage.ExerciseDetail{
			{
				WorkoutExercise: models.WorkoutExercise{ExerciseName: "Squat", Position: 1},
				Sets: []models.ExerciseSet{
					{SetOrder: 1, Reps: 5, WeightKg: &weight, Type: models.SetTypeWorking},
				},
			},
		},
	}
	rec := doJSON(t, s, http.MethodPost, "/api/v1/workouts", payload, true)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var created storage.WorkoutDetail
	if err := json.NewDecoder(rec.Body).Decode(&created); err != nil {
		t.Fatalf("decoding created workout: %v", err)
	}
	return created
}

// TestCreateAndGetWorkout verifies the POST → GET round trip of a full
// workout payload.
func TestCreateAndGetWorkout(t *testing.T) {
	s := newTestServer(t)
	created := createWorkout(t, s, "Leg Day", time.Date(2026, 8, 25, 18, 0, 0, 0, time.UTC))

	if created.ID <= 0 {
		t.Fatalf("created id = %d, want > 0", created.ID)
	}
	if len(created.Exercises) != 1 || len(created.Exercises[0].Sets) != 1 {
		t.Fatalf("created detail = %+v", created)
	}

	rec := doJSON(t, s, http.MethodGet, "/api/v1/workouts/"+itoa(created.ID), nil, false)
	if rec.Code != http.StatusOK {
		t.Fatalf("get status = %d", rec.Code)
	}
	var got storage.WorkoutDetail
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Name != "Leg Day" || got.Exercises[0].ExerciseName != "Squat" {
		t.Errorf("got = %+v", got)
	}
}

// TestCreateWorkoutRequiresAPIKey verifies mutating routes reject missing and
// wrong keys.
func TestCreateWorkoutRequiresAPIKey(t *testing.T) {
	s := newTestServer(t)
	payload := storage.WorkoutDetail{Workout: models.Workout{Name: "X"}}

	rec := doJSON(t, s, http.MethodPost, "/api/v1/workouts", payload, false)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("missing key status = %d, want 401", rec.Code)
	}

	var buf bytes.Buffer
	json.NewEncoder(&buf).Encode(payload)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/workouts", &buf)
	req.Header.Set("X-API-Key", "wrong")
	rec2 := httptest.NewRecorder()
	s.ServeHTTP(rec2, req)
	if rec2.Code != http.StatusForbidden {
		t.Errorf("wrong key status = %d, want 403", rec2.Code)
	}
}

// TestCreateWorkoutValidation verifies bad payloads get a 400.
func TestCreateWorkoutValidation(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s, http.MethodPost, "/api/v1/workouts", storage.WorkoutDetail{}, true)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("empty name status = %d, want 400", rec.Code)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/workouts", bytes.NewBufferString("{not json"))
	req.Header.Set("X-API-Key", testAPIKey)
	rec2 := httptest.NewRecorder()
	s.ServeHTTP(rec2, req)
	if rec2.Code != http.StatusBadRequest {
		t.Errorf("bad json status = %d, want 400", rec2.Code)
	}
}

// TestGetWorkoutNotFound verifies a missing workout yields 404 and an invalid
// id yields 400.
func TestGetWorkoutNotFound(t *testing.T) {
	s := newTestServer(t)

	if rec := doJSON(t, s, http.MethodGet, "/api/v1/workouts/999", nil, false); rec.Code != http.StatusNotFound {
		t.Errorf("missing workout status = %d, want 404", rec.Code)
	}
	if rec := doJSON(t, s, http.MethodGet, "/api/v1/workouts/abc", nil, false); rec.Code != http.StatusBadRequest {
		t.Errorf("bad id status = %d, want 400", rec.Code)
	}
}

// TestListWorkoutsRecentAndLimit verifies the default recent window and the
// explicit limit parameter.
func TestListWorkoutsRecentAndLimit(t *testing.T) {
	s := newTestServer(t)
	now := time.Now().UTC()

	createWorkout(t, s, "old", now.AddDate(0, 0, -200))
	createWorkout(t, s, "recent A", now.AddDate(0, 0, -10))
	createWorkout(t, s, "recent B", now.AddDate(0, 0, -5))

	rec := doJSON(t, s, http.MethodGet, "/api/v1/workouts", nil, false)
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d", rec.Code)
	}
	var recent []models.Workout
	json.NewDecoder(rec.Body).Decode(&recent)
	if len(recent) != 2 {
		t.Errorf("recent count = %d, want 2 (default 90-day window)", len(recent))
	}

	rec2 := doJSON(t, s, http.MethodGet, "/api/v1/workouts?limit=1", nil, false)
	var limited []models.Workout
	json.NewDecoder(rec2.Body).Decode(&limited)
	if len(limited) != 1 || limited[0].Name != "recent B" {
		t.Errorf("limited = %+v, want just the newest", limited)
	}

	if rec3 := doJSON(t, s, http.MethodGet, "/api/v1/workouts?limit=nope", nil, false); rec3.Code != http.StatusBadRequest {
		t.Errorf("bad limit status = %d, want 400", rec3.Code)
	}

	// Explicit since widens the window past the default.
	since := now.AddDate(0, 0, -300).Format("2006-01-02")
	rec4 := doJSON(t, s, http.MethodGet, "/api/v1/workouts?since="+since, nil, false)
	var all []models.Workout
	json.NewDecoder(rec4.Body).Decode(&all)
	if len(all) != 3 {
		t.Errorf("since count = %d, want 3", len(all))
	}

	if rec5 := doJSON(t, s, http.MethodGet, "/api/v1/workouts?since=nope", nil, false); rec5.Code != http.StatusBadRequest {
		t.Errorf("bad since status = %d, want 400", rec5.Code)
	}
}

// TestListWorkoutsZoneOffsetPayload verifies a created_at carrying a zone
// offset filters by instant: 18:54+01:00 is 17:54Z, outside a window that
// starts 18:24Z.
func TestListWorkoutsZoneOffsetPayload(t *testing.T) {
	s := newTestServer(t)
	cet := time.FixedZone("CET", 3600)
	createWorkout(t, s, "evening", time.Date(2026, 8, 10, 18, 54, 0, 0, cet))

	rec := doJSON(t, s, http.MethodGet, "/api/v1/workouts?since=2026-08-10T18:24:00Z", nil, false)
	var after []models.Workout
	json.NewDecoder(rec.Body).Decode(&after)
	if len(after) != 0 {
		t.Errorf("workout at 17:54Z listed inside a window since 18:24Z: %+v", after)
	}

	rec2 := doJSON(t, s, http.MethodGet, "/api/v1/workouts?since=2026-08-10T17:00:00Z", nil, false)
	var before []models.Workout
	json.NewDecoder(rec2.Body).Decode(&before)
	if len(before) != 1 {
		t.Errorf("got %d workouts since 17:00Z, want 1", len(before))
	}
}

// TestTrainingVolumeEndOnly verifies a lone end parameter bounds the window
// instead of being ignored.
func TestTrainingVolumeEndOnly(t *testing.T) {
	s := newTestServer(t)
	createWorkout(t, s, "january", time.Date(2026, 1, 5, 18, 0, 0, 0, time.UTC))
	createWorkout(t, s, "today", time.Now().UTC())

	rec := doJSON(t, s, http.MethodGet, "/api/v1/stats/volume?end=2026-02-01", nil, false)
	if rec.Code != http.StatusOK {
		t.Fatalf("volume status = %d", rec.Code)
	}
	var periods []storage.VolumePeriod
	json.NewDecoder(rec.Body).Decode(&periods)
	if len(periods) != 1 {
		t.Fatalf("got %d periods, want only the january week", len(periods))
	}
	if periods[0].Workouts != 1 {
		t.Errorf("period = %+v, want 1 workout", periods[0])
	}
}

// TestUpdateAndDeleteWorkout verifies PUT replaces the row and DELETE removes
// it.
func TestUpdateAndDeleteWorkout(t *testing.T) {
	s := newTestServer(t)
	created := createWorkout(t, s, "before", time.Now().UTC())
	id := itoa(created.ID)

	rec := doJSON(t, s, http.MethodPut, "/api/v1/workouts/"+id, models.Workout{Name: "after"}, true)
	if rec.Code != http.StatusOK {
		t.Fatalf("update status = %d", rec.Code)
	}
	var updated models.Workout
	json.NewDecoder(rec.Body).Decode(&updated)
	if updated.Name != "after" {
		t.Errorf("updated name = %q, want after", updated.Name)
	}
	if updated.CreatedAt.IsZero() {
		t.Error("update zeroed created_at, want preserved")
	}

	if rec := doJSON(t, s, http.MethodPut, "/api/v1/workouts/999", models.Workout{Name: "x"}, true); rec.Code != http.StatusNotFound {
		t.Errorf("update missing status = %d, want 404", rec.Code)
	}

	if rec := doJSON(t, s, http.MethodDelete, "/api/v1/workouts/"+id, nil, true); rec.Code != http.StatusNoContent {
		t.Errorf("delete status = %d, want 204", rec.Code)
	}
	if rec := doJSON(t, s, http.MethodGet, "/api/v1/workouts/"+id, nil, false); rec.Code != http.StatusNotFound {
		t.Errorf("get after delete status = %d, want 404", rec.Code)
	}
}

// TestAddExerciseAndReplaceSets verifies the exercise append and set replace
// endpoints.
func TestAddExerciseAndReplaceSets(t *testing.T) {
	s := newTestServer(t)
	created := createWorkout(t, s, "Pull Day", time.Now().UTC())

	payload := storage.ExerciseDetail{
		WorkoutExercise: models.WorkoutExercise{ExerciseName: "Row", Position: 2},
		Sets: []models.ExerciseSet{
			{SetOrder: 1, Reps: 12, Type: models.SetTypeWorking},
		},
	}
	rec := doJSON(t, s, http.MethodPost, "/api/v1/workouts/"+itoa(created.ID)+"/exercises", payload, true)
	if rec.Code != http.StatusCreated {
		t.Fatalf("add exercise status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var exercise storage.ExerciseDetail
	json.NewDecoder(rec.Body).Decode(&exercise)
	if exercise.ID <= 0 || len(exercise.Sets) != 1 {
		t.Fatalf("exercise = %+v", exercise)
	}

	newSets := []models.ExerciseSet{
		{SetOrder: 1, Reps: 10, Type: models.SetTypeWorking},
		{SetOrder: 2, Reps: 8, Type: models.SetTypeFailure},
	}
	rec2 := doJSON(t, s, http.MethodPut, "/api/v1/exercises/"+itoa(exercise.ID)+"/sets", newSets, true)
	if rec2.Code != http.StatusOK {
		t.Fatalf("replace sets status = %d", rec2.Code)
	}
	var replaced []models.ExerciseSet
	json.NewDecoder(rec2.Body).Decode(&replaced)
	if len(replaced) != 2 || replaced[1].Type != models.SetTypeFailure {
		t.Errorf("replaced = %+v", replaced)
	}

	if rec := doJSON(t, s, http.MethodPost, "/api/v1/workouts/999/exercises", payload, true); rec.Code != http.StatusNotFound {
		t.Errorf("add to missing workout status = %d, want 404", rec.Code)
	}
	if rec := doJSON(t, s, http.MethodPut, "/api/v1/exercises/999/sets", newSets, true); rec.Code != http.StatusNotFound {
		t.Errorf("replace on missing exercise status = %d, want 404", rec.Code)
	}
}

// TestExerciseHistoryEndpoint verifies the history query and its required
// name parameter.
func TestExerciseHistoryEndpoint(t *testing.T) {
	s := newTestServer(t)
	createWorkout(t, s, "Leg Day", time.Now().UTC().AddDate(0, 0, -3))

	rec := doJSON(t, s, http.MethodGet, "/api/v1/exercises/history?name=squat", nil, false)
	if rec.Code != http.StatusOK {
		t.Fatalf("history status = %d", rec.Code)
	}
	var points []storage.ExerciseHistoryPoint
	json.NewDecoder(rec.Body).Decode(&points)
	if len(points) != 1 {
		t.Errorf("history points = %d, want 1", len(points))
	}

	if rec := doJSON(t, s, http.MethodGet, "/api/v1/exercises/history", nil, false); rec.Code != http.StatusBadRequest {
		t.Errorf("missing name status = %d, want 400", rec.Code)
	}
}

// TestHandleMeDefault verifies the /api/v1/me endpoint returns the dev user
// identity when no Tailscale client is attached.
func TestHandleMeDefault(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s, http.MethodGet, "/api/v1/me", nil, false)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var info UserInfo
	if err := json.NewDecoder(rec.Body).Decode(&info); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if info.Login != "local" {
		t.Errorf("login = %q, want %q", info.Login, "local")
	}
}

// TestHandleMeWithContextIdentity verifies the handler echoes an identity
// already present in the request context.
func TestHandleMeWithContextIdentity(t *testing.T) {
	s := &Server{}
	req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
	ctx := context.WithValue(req.Context(), userInfoKey, UserInfo{Login: "alice@example.com", DisplayName: "Alice"})
	req = req.WithContext(ctx)
	rec := httptest.NewRecorder()

	s.handleMe(rec, req)

	var info UserInfo
	if err := json.NewDecoder(rec.Body).Decode(&info); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if info.Login != "alice@example.com" || info.DisplayName != "Alice" {
		t.Errorf("info = %+v", info)
	}
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
