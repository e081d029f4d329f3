package memory

import (
	"context"
	"errors"
	"sort"
	"time"

	"alcyxob/workout-tracker/internal/domain"
	"alcyxob/workout-tracker/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type exerciseRepo struct {
	store *Store
}

// Exercises returns the exercise repository view of the store.
func (s *Store) Exercises() repository.ExerciseRepository {
	return &exerciseRepo{store: s}
}

func (r *exerciseRepo) Create(ctx context.Context, exercise *domain.Exercise) (primitive.ObjectID, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if exercise.Name == "" || !exercise.Category.Valid() {
		return primitive.NilObjectID, errors.New("exercise name and a valid category are required")
	}
	for _, existing := range r.store.exercises {
		if existing.Name == exercise.Name {
			return primitive.NilObjectID, repository.ErrDuplicateName
		}
	}

	exercise.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	exercise.CreatedAt = now
	exercise.UpdatedAt = now

	r.store.exercises[exercise.ID] = *exercise
	return exercise.ID, nil
}

func (r *exerciseRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Exercise, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	exercise, ok := r.store.exercises[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &exercise, nil
}

func (r *exerciseRepo) GetByName(ctx context.Context, name string) (*domain.Exercise, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, exercise := range r.store.exercises {
		if exercise.Name == name {
			found := exercise
			return &found, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *exerciseRepo) GetAll(ctx context.Context) ([]domain.Exercise, error) {
	return r.collect(func(domain.Exercise) bool { return true })
}

func (r *exerciseRepo) GetByCategory(ctx context.Context, category domain.ExerciseCategory) ([]domain.Exercise, error) {
	return r.collect(func(e domain.Exercise) bool { return e.Category == category })
}

func (r *exerciseRepo) GetByMuscleGroup(ctx context.Context, group domain.MuscleGroup) ([]domain.Exercise, error) {
	return r.collect(func(e domain.Exercise) bool {
		return e.MuscleGroup != nil && *e.MuscleGroup == group
	})
}

func (r *exerciseRepo) collect(keep func(domain.Exercise) bool) ([]domain.Exercise, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	exercises := make([]domain.Exercise, 0)
	for _, exercise := range r.store.exercises {
		if keep(exercise) {
			exercises = append(exercises, exercise)
		}
	}
	sort.Slice(exercises, func(i, j int) bool { return exercises[i].Name < exercises[j].Name })
	return exercises, nil
}

func (r *exerciseRepo) Any(ctx context.Context) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return len(r.store.exercises) > 0, nil
}

func (r *exerciseRepo) Update(ctx context.Context, exercise *domain.Exercise) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if exercise.ID == primitive.NilObjectID {
		return errors.New("exercise ID is required for update")
	}
	if exercise.Name == "" || !exercise.Category.Valid() {
		return errors.New("exercise name and a valid category are required")
	}

	stored, ok := r.store.exercises[exercise.ID]
	if !ok {
		return repository.ErrNotFound
	}
	for id, other := range r.store.exercises {
		if id != exercise.ID && other.Name == exercise.Name {
			return repository.ErrDuplicateName
		}
	}

	stored.Name = exercise.Name
	stored.Category = exercise.Category
	stored.MuscleGroup = exercise.MuscleGroup
	stored.IsBodyweight = exercise.IsBodyweight
	stored.DemoVideoKey = exercise.DemoVideoKey
	stored.UpdatedAt = time.Now().UTC()

	r.store.exercises[exercise.ID] = stored
	return nil
}

func (r *exerciseRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.exercises[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.store.exercises, id)
	return nil
}
