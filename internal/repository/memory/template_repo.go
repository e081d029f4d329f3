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

type templateRepo struct {
	store *Store
}

// Templates returns the workout template repository view of the store.
func (s *Store) Templates() repository.TemplateRepository {
	return &templateRepo{store: s}
}

func (r *templateRepo) Create(ctx context.Context, template *domain.WorkoutTemplate) (primitive.ObjectID, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if template.Title == "" || !template.Category.Valid() {
		return primitive.NilObjectID, errors.New("template title and a valid category are required")
	}

	template.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	template.CreatedAt = now
	template.UpdatedAt = now

	r.store.templates[template.ID] = *template
	return template.ID, nil
}

func (r *templateRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.WorkoutTemplate, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	template, ok := r.store.templates[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &template, nil
}

func (r *templateRepo) GetAll(ctx context.Context) ([]domain.WorkoutTemplate, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	templates := make([]domain.WorkoutTemplate, 0, len(r.store.templates))
	for _, template := range r.store.templates {
		templates = append(templates, template)
	}
	sort.Slice(templates, func(i, j int) bool { return templates[i].Order < templates[j].Order })
	return templates, nil
}

func (r *templateRepo) Count(ctx context.Context) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return int64(len(r.store.templates)), nil
}

func (r *templateRepo) Update(ctx context.Context, template *domain.WorkoutTemplate) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if template.ID == primitive.NilObjectID {
		return errors.New("template ID is required for update")
	}
	if template.Title == "" || !template.Category.Valid() {
		return errors.New("template title and a valid category are required")
	}

	stored, ok := r.store.templates[template.ID]
	if !ok {
		return repository.ErrNotFound
	}

	stored.Title = template.Title
	stored.Category = template.Category
	stored.Order = template.Order
	stored.UpdatedAt = time.Now().UTC()

	r.store.templates[template.ID] = stored
	return nil
}

func (r *templateRepo) UpdateOrders(ctx context.Context, orders []repository.OrderUpdate) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, o := range orders {
		if _, ok := r.store.templates[o.ID]; !ok {
			return repository.ErrUpdateFailed
		}
	}
	now := time.Now().UTC()
	for _, o := range orders {
		stored := r.store.templates[o.ID]
		stored.Order = o.Order
		stored.UpdatedAt = now
		r.store.templates[o.ID] = stored
	}
	return nil
}

func (r *templateRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.templates[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.store.templates, id)
	return nil
}
