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

type linkRepo struct {
	store *Store
}

// Links returns the workout exercise link repository view of the store.
func (s *Store) Links() repository.LinkRepository {
	return &linkRepo{store: s}
}

func (r *linkRepo) Create(ctx context.Context, link *domain.WorkoutExerciseLink) (primitive.ObjectID, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if link.ExerciseID == primitive.NilObjectID || link.Owner.ID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("link requires exerciseId and an owner")
	}
	if link.Owner.Kind != domain.OwnerTemplate && link.Owner.Kind != domain.OwnerEvent {
		return primitive.NilObjectID, errors.New("link owner kind must be template or event")
	}

	link.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	link.CreatedAt = now
	link.UpdatedAt = now
	if link.TargetMode == "" {
		link.TargetMode = domain.TargetSimple
	}

	r.store.links[link.ID] = *link
	return link.ID, nil
}

func (r *linkRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.WorkoutExerciseLink, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	link, ok := r.store.links[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &link, nil
}

func (r *linkRepo) GetByOwner(ctx context.Context, owner domain.LinkOwner) ([]domain.WorkoutExerciseLink, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	links := make([]domain.WorkoutExerciseLink, 0)
	for _, link := range r.store.links {
		if link.Owner == owner {
			links = append(links, link)
		}
	}
	sort.Slice(links, func(i, j int) bool { return links[i].Order < links[j].Order })
	return links, nil
}

func (r *linkRepo) CountByOwner(ctx context.Context, owner domain.LinkOwner) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var count int64
	for _, link := range r.store.links {
		if link.Owner == owner {
			count++
		}
	}
	return count, nil
}

func (r *linkRepo) CountByExercise(ctx context.Context, exerciseID primitive.ObjectID) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var count int64
	for _, link := range r.store.links {
		if link.ExerciseID == exerciseID {
			count++
		}
	}
	return count, nil
}

func (r *linkRepo) Update(ctx context.Context, link *domain.WorkoutExerciseLink) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if link.ID == primitive.NilObjectID {
		return errors.New("link ID is required for update")
	}

	stored, ok := r.store.links[link.ID]
	if !ok {
		return repository.ErrNotFound
	}

	stored.Order = link.Order
	stored.Notes = link.Notes
	stored.TargetMode = link.TargetMode
	stored.TargetNote = link.TargetNote
	stored.IsCompleted = link.IsCompleted
	stored.UpdatedAt = time.Now().UTC()

	r.store.links[link.ID] = stored
	return nil
}

func (r *linkRepo) UpdateOrders(ctx context.Context, orders []repository.OrderUpdate) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, o := range orders {
		if _, ok := r.store.links[o.ID]; !ok {
			return repository.ErrUpdateFailed
		}
	}
	now := time.Now().UTC()
	for _, o := range orders {
		stored := r.store.links[o.ID]
		stored.Order = o.Order
		stored.UpdatedAt = now
		r.store.links[o.ID] = stored
	}
	return nil
}

func (r *linkRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.links[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.store.links, id)
	return nil
}

func (r *linkRepo) DeleteByOwner(ctx context.Context, owner domain.LinkOwner) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for id, link := range r.store.links {
		if link.Owner == owner {
			delete(r.store.links, id)
		}
	}
	return nil
}
