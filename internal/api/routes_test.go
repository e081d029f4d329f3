package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"alcyxob/workout-tracker/internal/api"
	"alcyxob/workout-tracker/internal/repository/memory"
	"alcyxob/workout-tracker/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	goleak.VerifyTestMain(m)
}

// testStorage satisfies storage.FileStorage without talking to S3.
type testStorage struct{}

func (testStorage) GeneratePresignedUploadURL(_ context.Context, objectKey, _ string, _ time.Duration) (string, error) {
	return "https://storage.test/upload/" + objectKey, nil
}

func (testStorage) GeneratePresignedDownloadURL(_ context.Context, objectKey string, _ time.Duration) (string, error) {
	return "https://storage.test/get/" + objectKey, nil
}

func (testStorage) DeleteObject(context.Context, string) error { return nil }

// newTestRouter wires the full route table over an in-memory store, the same
// shape main() builds over MongoDB.
func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()

	store := memory.NewStore()
	catalogService := service.NewCatalogService(store.Exercises(), store.Links(), testStorage{}, 15*time.Minute)
	templateService := service.NewTemplateService(
		store.Templates(), store.Links(), store.TargetSets(), store.SetRecords(), store)
	eventService := service.NewEventService(
		store.Events(), store.Templates(), store.Links(), store.TargetSets(), store.SetRecords(), store)
	linkService := service.NewLinkService(
		store.Links(), store.Exercises(), store.Templates(), store.Events(),
		store.TargetSets(), store.SetRecords(), store)

	router := gin.New()
	api.SetupRoutes(router, catalogService, templateService, eventService, linkService)
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func decodeJSON[T any](t *testing.T, recorder *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &out), "body: %s", recorder.Body.String())
	return out
}

func createExercise(t *testing.T, router *gin.Engine, name, category, muscleGroup string) api.ExerciseResponse {
	t.Helper()
	recorder := doJSON(t, router, http.MethodPost, "/api/v1/exercises", gin.H{
		"name": name, "category": category, "muscleGroup": muscleGroup,
	})
	require.Equal(t, http.StatusCreated, recorder.Code, "body: %s", recorder.Body.String())
	return decodeJSON[api.ExerciseResponse](t, recorder)
}

func createTemplate(t *testing.T, router *gin.Engine, title, category string) api.TemplateResponse {
	t.Helper()
	recorder := doJSON(t, router, http.MethodPost, "/api/v1/templates", gin.H{
		"title": title, "category": category,
	})
	require.Equal(t, http.StatusCreated, recorder.Code, "body: %s", recorder.Body.String())
	return decodeJSON[api.TemplateResponse](t, recorder)
}

func TestPing(t *testing.T) {
	router := newTestRouter(t)

	recorder := doJSON(t, router, http.MethodGet, "/ping", nil)
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "pong")
}

func TestExerciseEndpoints(t *testing.T) {
	router := newTestRouter(t)

	created := createExercise(t, router, "Bench Press", "resistance", "chest")
	assert.Equal(t, "resistance", created.Category)
	assert.Equal(t, "resistance", created.SetType)
	assert.False(t, created.HasDemoVideo)

	// Duplicate name conflicts and does not write.
	recorder := doJSON(t, router, http.MethodPost, "/api/v1/exercises", gin.H{
		"name": "Bench Press", "category": "resistance",
	})
	assert.Equal(t, http.StatusConflict, recorder.Code)

	// Missing required fields fail binding.
	recorder = doJSON(t, router, http.MethodPost, "/api/v1/exercises", gin.H{"category": "resistance"})
	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	// Unknown enum values are a validation error, not a 500.
	recorder = doJSON(t, router, http.MethodPost, "/api/v1/exercises", gin.H{
		"name": "Mystery Move", "category": "yoga",
	})
	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	recorder = doJSON(t, router, http.MethodGet, "/api/v1/exercises?category=resistance", nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	listed := decodeJSON[[]api.ExerciseResponse](t, recorder)
	require.Len(t, listed, 1)
	assert.Equal(t, created.ID, listed[0].ID)

	// Malformed and unknown IDs.
	recorder = doJSON(t, router, http.MethodGet, "/api/v1/exercises/not-an-id", nil)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	recorder = doJSON(t, router, http.MethodGet, "/api/v1/exercises/652f1f77bcf86cd799439011", nil)
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestExerciseDelete_ConflictWhileReferenced(t *testing.T) {
	router := newTestRouter(t)

	exercise := createExercise(t, router, "Back Squat", "resistance", "legs")
	template := createTemplate(t, router, "Leg Day", "resistance")

	recorder := doJSON(t, router, http.MethodPost, "/api/v1/templates/"+template.ID+"/exercises", gin.H{
		"exerciseId": exercise.ID,
	})
	require.Equal(t, http.StatusCreated, recorder.Code, "body: %s", recorder.Body.String())
	link := decodeJSON[api.LinkResponse](t, recorder)

	recorder = doJSON(t, router, http.MethodDelete, "/api/v1/exercises/"+exercise.ID, nil)
	assert.Equal(t, http.StatusConflict, recorder.Code)

	recorder = doJSON(t, router, http.MethodDelete, "/api/v1/links/"+link.ID, nil)
	require.Equal(t, http.StatusNoContent, recorder.Code)
	recorder = doJSON(t, router, http.MethodDelete, "/api/v1/exercises/"+exercise.ID, nil)
	assert.Equal(t, http.StatusNoContent, recorder.Code)
}

func TestTemplateReorder(t *testing.T) {
	router := newTestRouter(t)

	createTemplate(t, router, "A", "resistance")
	createTemplate(t, router, "B", "resistance")
	createTemplate(t, router, "C", "resistance")

	// to: 0 must bind (regression guard for the pointer field).
	recorder := doJSON(t, router, http.MethodPost, "/api/v1/templates/reorder", gin.H{
		"from": []int{2}, "to": 0,
	})
	require.Equal(t, http.StatusNoContent, recorder.Code, "body: %s", recorder.Body.String())

	recorder = doJSON(t, router, http.MethodGet, "/api/v1/templates", nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	listed := decodeJSON[[]api.TemplateResponse](t, recorder)
	require.Len(t, listed, 3)
	assert.Equal(t, "C", listed[0].Title)
	assert.Equal(t, "A", listed[1].Title)

	// Out-of-range indices are the caller's error.
	recorder = doJSON(t, router, http.MethodPost, "/api/v1/templates/reorder", gin.H{
		"from": []int{9}, "to": 0,
	})
	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	// Category edits lock once exercises are attached.
	recorder = doJSON(t, router, http.MethodGet, "/api/v1/templates", nil)
	listed = decodeJSON[[]api.TemplateResponse](t, recorder)
	exercise := createExercise(t, router, "Bench Press", "resistance", "chest")
	recorder = doJSON(t, router, http.MethodPost, "/api/v1/templates/"+listed[0].ID+"/exercises", gin.H{
		"exerciseId": exercise.ID,
	})
	require.Equal(t, http.StatusCreated, recorder.Code)
	recorder = doJSON(t, router, http.MethodPut, "/api/v1/templates/"+listed[0].ID, gin.H{
		"title": "C", "category": "cardio",
	})
	assert.Equal(t, http.StatusConflict, recorder.Code)
}

func TestEventCalendarQueries(t *testing.T) {
	router := newTestRouter(t)

	recorder := doJSON(t, router, http.MethodPost, "/api/v1/events", gin.H{
		"title": "Thursday Session", "date": "2025-11-20",
	})
	require.Equal(t, http.StatusCreated, recorder.Code, "body: %s", recorder.Body.String())
	created := decodeJSON[api.EventResponse](t, recorder)
	assert.Equal(t, "2025-11-20", created.Date)
	assert.Equal(t, "Thursday Session", created.DisplayTitle)

	recorder = doJSON(t, router, http.MethodPost, "/api/v1/events", gin.H{"date": "2025-11-21"})
	require.Equal(t, http.StatusCreated, recorder.Code)
	untitled := decodeJSON[api.EventResponse](t, recorder)
	assert.Equal(t, "Untitled Workout", untitled.DisplayTitle)

	// Single-day query.
	recorder = doJSON(t, router, http.MethodGet, "/api/v1/events?day=2025-11-20", nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	onDay := decodeJSON[[]api.EventResponse](t, recorder)
	require.Len(t, onDay, 1)
	assert.Equal(t, created.ID, onDay[0].ID)

	// Range query groups by day.
	recorder = doJSON(t, router, http.MethodGet, "/api/v1/events?from=2025-11-20&to=2025-11-21", nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	grouped := decodeJSON[map[string][]api.EventResponse](t, recorder)
	assert.Len(t, grouped["2025-11-20"], 1)
	assert.Len(t, grouped["2025-11-21"], 1)

	// Inverted range and bad dates.
	recorder = doJSON(t, router, http.MethodGet, "/api/v1/events?from=2025-11-21&to=2025-11-20", nil)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	recorder = doJSON(t, router, http.MethodGet, "/api/v1/events?day=yesterday", nil)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	recorder = doJSON(t, router, http.MethodGet, "/api/v1/events", nil)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestScheduleFromTemplate(t *testing.T) {
	router := newTestRouter(t)

	template := createTemplate(t, router, "Push Day", "resistance")

	recorder := doJSON(t, router, http.MethodPost, "/api/v1/events/from-template", gin.H{
		"templateId": template.ID, "date": "2025-11-20",
	})
	require.Equal(t, http.StatusCreated, recorder.Code, "body: %s", recorder.Body.String())
	event := decodeJSON[api.EventResponse](t, recorder)
	assert.Equal(t, "Push Day", event.DisplayTitle, "title resolves through the template")
	assert.Equal(t, template.ID, event.TemplateID)
	assert.Empty(t, event.Title)

	// Unknown template is a 404.
	recorder = doJSON(t, router, http.MethodPost, "/api/v1/events/from-template", gin.H{
		"templateId": "652f1f77bcf86cd799439011", "date": "2025-11-20",
	})
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestLinkSetFlow(t *testing.T) {
	router := newTestRouter(t)

	exercise := createExercise(t, router, "Bench Press", "resistance", "chest")
	template := createTemplate(t, router, "Push Day", "resistance")

	recorder := doJSON(t, router, http.MethodPost, "/api/v1/templates/"+template.ID+"/exercises", gin.H{
		"exerciseId": exercise.ID,
	})
	require.Equal(t, http.StatusCreated, recorder.Code)
	link := decodeJSON[api.LinkResponse](t, recorder)

	// Plan two sets, then reconcile: the actual list grows to match.
	for i := 0; i < 2; i++ {
		recorder = doJSON(t, router, http.MethodPost, "/api/v1/links/"+link.ID+"/target-sets", gin.H{
			"weight": 100, "reps": 5,
		})
		require.Equal(t, http.StatusCreated, recorder.Code, "body: %s", recorder.Body.String())
	}
	recorder = doJSON(t, router, http.MethodPost, "/api/v1/links/"+link.ID+"/sync", nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	synced := decodeJSON[api.LinkResponse](t, recorder)
	require.Len(t, synced.TargetSets, 2)
	require.Len(t, synced.Sets, 2)

	// Remove the first row; one row of each list remains.
	recorder = doJSON(t, router, http.MethodDelete, "/api/v1/links/"+link.ID+"/sets/0", nil)
	require.Equal(t, http.StatusNoContent, recorder.Code)
	recorder = doJSON(t, router, http.MethodGet, "/api/v1/links/"+link.ID, nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	detail := decodeJSON[api.LinkResponse](t, recorder)
	assert.Len(t, detail.TargetSets, 1)
	assert.Len(t, detail.Sets, 1)

	// Out-of-range position and junk position.
	recorder = doJSON(t, router, http.MethodDelete, "/api/v1/links/"+link.ID+"/sets/5", nil)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	recorder = doJSON(t, router, http.MethodDelete, "/api/v1/links/"+link.ID+"/sets/first", nil)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	// Completion toggle round-trips.
	recorder = doJSON(t, router, http.MethodPost, "/api/v1/links/"+link.ID+"/toggle-completed", nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	toggled := decodeJSON[api.LinkResponse](t, recorder)
	assert.True(t, toggled.IsCompleted)
}
