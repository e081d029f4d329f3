package service_test

import (
	"context"
	"testing"
	"time"

	"alcyxob/workout-tracker/internal/domain"
	"alcyxob/workout-tracker/internal/repository/memory"
	"alcyxob/workout-tracker/internal/service"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// fakeStorage is an in-memory FileStorage double. URLs are deterministic so
// tests can assert on them.
type fakeStorage struct {
	deleted []string
}

func (f *fakeStorage) GeneratePresignedUploadURL(_ context.Context, objectKey, _ string, _ time.Duration) (string, error) {
	return "https://storage.test/upload/" + objectKey, nil
}

func (f *fakeStorage) GeneratePresignedDownloadURL(_ context.Context, objectKey string, _ time.Duration) (string, error) {
	return "https://storage.test/get/" + objectKey, nil
}

func (f *fakeStorage) DeleteObject(_ context.Context, objectKey string) error {
	f.deleted = append(f.deleted, objectKey)
	return nil
}

// fixture wires every service over one shared in-memory store, the same
// shape main() wires over MongoDB.
type fixture struct {
	store     *memory.Store
	storage   *fakeStorage
	catalog   service.CatalogService
	seeds     service.SeedService
	templates service.TemplateService
	events    service.EventService
	links     service.LinkService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := memory.NewStore()
	storage := &fakeStorage{}
	return &fixture{
		store:   store,
		storage: storage,
		catalog: service.NewCatalogService(store.Exercises(), store.Links(), storage, 15*time.Minute),
		seeds:   service.NewSeedService(store.Exercises(), store.AppState(), store),
		templates: service.NewTemplateService(
			store.Templates(), store.Links(), store.TargetSets(), store.SetRecords(), store),
		events: service.NewEventService(
			store.Events(), store.Templates(), store.Links(), store.TargetSets(), store.SetRecords(), store),
		links: service.NewLinkService(
			store.Links(), store.Exercises(), store.Templates(), store.Events(),
			store.TargetSets(), store.SetRecords(), store),
	}
}

func (f *fixture) mustCreateExercise(t *testing.T, name string, category domain.ExerciseCategory, group *domain.MuscleGroup, bodyweight bool) *domain.Exercise {
	t.Helper()
	exercise, err := f.catalog.CreateExercise(context.Background(), name, category, group, bodyweight)
	require.NoError(t, err)
	return exercise
}

func (f *fixture) mustCreateTemplate(t *testing.T, title string, category domain.WorkoutCategory) *domain.WorkoutTemplate {
	t.Helper()
	template, err := f.templates.CreateTemplate(context.Background(), title, category)
	require.NoError(t, err)
	return template
}

func (f *fixture) mustAttach(t *testing.T, owner domain.LinkOwner, exerciseID primitive.ObjectID) *domain.WorkoutExerciseLink {
	t.Helper()
	link, err := f.links.AttachExercise(context.Background(), owner, exerciseID)
	require.NoError(t, err)
	return link
}

func groupPtr(g domain.MuscleGroup) *domain.MuscleGroup { return &g }

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}
