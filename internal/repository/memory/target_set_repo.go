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

type targetSetRepo struct {
	store *Store
}

// TargetSets returns the target set repository view of the store.
func (s *Store) TargetSets() repository.TargetSetRepository {
	return &targetSetRepo{store: s}
}

func (r *targetSetRepo) Create(ctx context.Context, target *domain.TargetSet) (primitive.ObjectID, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if target.LinkID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("target set requires linkId")
	}

	target.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	target.CreatedAt = now
	target.UpdatedAt = now

	r.store.targetSets[target.ID] = *target
	return target.ID, nil
}

func (r *targetSetRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.TargetSet, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	target, ok := r.store.targetSets[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &target, nil
}

func (r *targetSetRepo) GetByLinkID(ctx context.Context, linkID primitive.ObjectID) ([]domain.TargetSet, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	targets := make([]domain.TargetSet, 0)
	for _, target := range r.store.targetSets {
		if target.LinkID == linkID {
			targets = append(targets, target)
		}
	}
	sort.Slice(targets, func(i, j int) bool { return targets[i].Order < targets[j].Order })
	return targets, nil
}

func (r *targetSetRepo) CountByLinkID(ctx context.Context, linkID primitive.ObjectID) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var count int64
	for _, target := range r.store.targetSets {
		if target.LinkID == linkID {
			count++
		}
	}
	return count, nil
}

func (r *targetSetRepo) Update(ctx context.Context, target *domain.TargetSet) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if target.ID == primitive.NilObjectID {
		return errors.New("target set ID is required for update")
	}

	stored, ok := r.store.targetSets[target.ID]
	if !ok {
		return repository.ErrNotFound
	}

	stored.Order = target.Order
	stored.Weight = target.Weight
	stored.Reps = target.Reps
	stored.RPE = target.RPE
	stored.Duration = target.Duration
	stored.Distance = target.Distance
	stored.Resistance = target.Resistance
	stored.HeartRate = target.HeartRate
	stored.UpdatedAt = time.Now().UTC()

	r.store.targetSets[target.ID] = stored
	return nil
}

func (r *targetSetRepo) UpdateOrders(ctx context.Context, orders []repository.OrderUpdate) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, o := range orders {
		if _, ok := r.store.targetSets[o.ID]; !ok {
			return repository.ErrUpdateFailed
		}
	}
	now := time.Now().UTC()
	for _, o := range orders {
		stored := r.store.targetSets[o.ID]
		stored.Order = o.Order
		stored.UpdatedAt = now
		r.store.targetSets[o.ID] = stored
	}
	return nil
}

func (r *targetSetRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.targetSets[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.store.targetSets, id)
	return nil
}

func (r *targetSetRepo) DeleteByLinkID(ctx context.Context, linkID primitive.ObjectID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for id, target := range r.store.targetSets {
		if target.LinkID == linkID {
			delete(r.store.targetSets, id)
		}
	}
	return nil
}
