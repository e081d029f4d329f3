package memory_test

import (
	"context"
	"errors"
	"sort"
	"testing"

	"alcyxob/workout-tracker/internal/domain"
	"alcyxob/workout-tracker/internal/repository"
	"alcyxob/workout-tracker/internal/repository/memory"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newExercise(name string) *domain.Exercise {
	return &domain.Exercise{Name: name, Category: domain.CategoryResistance}
}

func TestExerciseRepo_CRUDAndSorting(t *testing.T) {
	store := memory.NewStore()
	repo := store.Exercises()
	ctx := context.Background()

	names := make([]string, 0, 20)
	seen := make(map[string]bool)
	for len(names) < 20 {
		name := gofakeit.AppName()
		if seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)

		id, err := repo.Create(ctx, newExercise(name))
		require.NoError(t, err)
		require.False(t, id.IsZero())
	}

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, len(names))

	sort.Strings(names)
	for i, exercise := range all {
		assert.Equal(t, names[i], exercise.Name, "listing is name-sorted")
		assert.False(t, exercise.CreatedAt.IsZero())
	}

	_, err = repo.Create(ctx, newExercise(names[0]))
	assert.ErrorIs(t, err, repository.ErrDuplicateName)

	first := all[0]
	first.Name = "zzz " + first.Name
	require.NoError(t, repo.Update(ctx, &first))
	reloaded, err := repo.GetByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, first.Name, reloaded.Name)

	require.NoError(t, repo.Delete(ctx, first.ID))
	_, err = repo.GetByID(ctx, first.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, first.ID), repository.ErrNotFound)
}

func TestStore_TransactionRollsBackEverything(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	exerciseID, err := store.Exercises().Create(ctx, newExercise("Bench Press"))
	require.NoError(t, err)

	boom := errors.New("boom")
	err = store.WithTransaction(ctx, func(ctx context.Context) error {
		if _, err := store.Exercises().Create(ctx, newExercise("Back Squat")); err != nil {
			return err
		}
		if err := store.Exercises().Delete(ctx, exerciseID); err != nil {
			return err
		}
		if err := store.AppState().MarkCatalogSeeded(ctx); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	// Every write inside the failed transaction is undone.
	all, err := store.Exercises().GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "Bench Press", all[0].Name)

	seeded, err := store.AppState().IsCatalogSeeded(ctx)
	require.NoError(t, err)
	assert.False(t, seeded)
}

func TestStore_TransactionCommitsOnSuccess(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	err := store.WithTransaction(ctx, func(ctx context.Context) error {
		_, err := store.Exercises().Create(ctx, newExercise(gofakeit.AppName()))
		return err
	})
	require.NoError(t, err)

	hasRows, err := store.Exercises().Any(ctx)
	require.NoError(t, err)
	assert.True(t, hasRows)
}
