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

type eventRepo struct {
	store *Store
}

// Events returns the workout event repository view of the store.
func (s *Store) Events() repository.EventRepository {
	return &eventRepo{store: s}
}

func (r *eventRepo) Create(ctx context.Context, event *domain.WorkoutEvent) (primitive.ObjectID, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if event.Date.IsZero() {
		return primitive.NilObjectID, errors.New("event date is required")
	}

	event.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	event.CreatedAt = now
	event.UpdatedAt = now

	r.store.events[event.ID] = *event
	return event.ID, nil
}

func (r *eventRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.WorkoutEvent, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	event, ok := r.store.events[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &event, nil
}

func (r *eventRepo) GetByDay(ctx context.Context, day time.Time) ([]domain.WorkoutEvent, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	events := make([]domain.WorkoutEvent, 0)
	for _, event := range r.store.events {
		if event.Date.Equal(day) {
			events = append(events, event)
		}
	}
	sort.Slice(events, func(i, j int) bool { return events[i].Order < events[j].Order })
	return events, nil
}

func (r *eventRepo) GetBetween(ctx context.Context, from, to time.Time) ([]domain.WorkoutEvent, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	events := make([]domain.WorkoutEvent, 0)
	for _, event := range r.store.events {
		if !event.Date.Before(from) && event.Date.Before(to) {
			events = append(events, event)
		}
	}
	sort.Slice(events, func(i, j int) bool {
		if !events[i].Date.Equal(events[j].Date) {
			return events[i].Date.Before(events[j].Date)
		}
		return events[i].Order < events[j].Order
	})
	return events, nil
}

func (r *eventRepo) CountByDay(ctx context.Context, day time.Time) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var count int64
	for _, event := range r.store.events {
		if event.Date.Equal(day) {
			count++
		}
	}
	return count, nil
}

func (r *eventRepo) Update(ctx context.Context, event *domain.WorkoutEvent) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if event.ID == primitive.NilObjectID {
		return errors.New("event ID is required for update")
	}
	if event.Date.IsZero() {
		return errors.New("event date is required")
	}

	stored, ok := r.store.events[event.ID]
	if !ok {
		return repository.ErrNotFound
	}

	stored.Title = event.Title
	stored.Date = event.Date
	stored.StartTime = event.StartTime
	stored.Notes = event.Notes
	stored.Order = event.Order
	stored.TemplateID = event.TemplateID
	stored.UpdatedAt = time.Now().UTC()

	r.store.events[event.ID] = stored
	return nil
}

func (r *eventRepo) UpdateOrders(ctx context.Context, orders []repository.OrderUpdate) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, o := range orders {
		if _, ok := r.store.events[o.ID]; !ok {
			return repository.ErrUpdateFailed
		}
	}
	now := time.Now().UTC()
	for _, o := range orders {
		stored := r.store.events[o.ID]
		stored.Order = o.Order
		stored.UpdatedAt = now
		r.store.events[o.ID] = stored
	}
	return nil
}

func (r *eventRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.events[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.store.events, id)
	return nil
}
