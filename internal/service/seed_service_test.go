package service_test

import (
	"context"
	"testing"

	"alcyxob/workout-tracker/internal/domain"
	"alcyxob/workout-tracker/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedIfEmpty_SeedsExactlyOnce(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.seeds.SeedIfEmpty(ctx))
	require.NoError(t, f.seeds.SeedIfEmpty(ctx)) // Second call is a no-op.

	all, err := f.catalog.ListExercises(ctx)
	require.NoError(t, err)
	assert.Len(t, all, len(service.DefaultCatalog()))
	assert.Len(t, all, 25)
}

func TestSeedIfEmpty_LeavesUserRowsAlone(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// The user created an exercise before seeding ever ran (e.g. the flag
	// write failed on a previous start).
	f.mustCreateExercise(t, "My Special Movement", domain.CategoryResistance, nil, false)

	require.NoError(t, f.seeds.SeedIfEmpty(ctx))

	all, err := f.catalog.ListExercises(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1, "non-empty catalog must not be seeded")

	// The probe marked the catalog seeded; emptying it later does not bring
	// the defaults back.
	require.NoError(t, f.catalog.DeleteExercise(ctx, all[0].ID))
	require.NoError(t, f.seeds.SeedIfEmpty(ctx))

	all, err = f.catalog.ListExercises(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestDefaultCatalog_Shape(t *testing.T) {
	seen := make(map[string]bool)
	for _, e := range service.DefaultCatalog() {
		assert.False(t, seen[e.Name], "duplicate default name %q", e.Name)
		seen[e.Name] = true
		assert.True(t, e.Category.Valid(), "%q has invalid category", e.Name)
		if e.MuscleGroup != nil {
			assert.True(t, e.MuscleGroup.Valid(), "%q has invalid muscle group", e.Name)
		}
	}
}
