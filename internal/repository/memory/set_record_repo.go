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

type setRecordRepo struct {
	store *Store
}

// SetRecords returns the set record repository view of the store.
func (s *Store) SetRecords() repository.SetRecordRepository {
	return &setRecordRepo{store: s}
}

func (r *setRecordRepo) Create(ctx context.Context, record *domain.SetRecord) (primitive.ObjectID, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if record.LinkID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("set record requires linkId")
	}
	if record.Date.IsZero() {
		return primitive.NilObjectID, errors.New("set record requires a date")
	}

	record.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	record.CreatedAt = now
	record.UpdatedAt = now

	r.store.setRecords[record.ID] = *record
	return record.ID, nil
}

func (r *setRecordRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.SetRecord, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	record, ok := r.store.setRecords[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &record, nil
}

func (r *setRecordRepo) GetByLinkID(ctx context.Context, linkID primitive.ObjectID) ([]domain.SetRecord, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	records := make([]domain.SetRecord, 0)
	for _, record := range r.store.setRecords {
		if record.LinkID == linkID {
			records = append(records, record)
		}
	}
	sort.Slice(records, func(i, j int) bool { return records[i].Order < records[j].Order })
	return records, nil
}

func (r *setRecordRepo) CountByLinkID(ctx context.Context, linkID primitive.ObjectID) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var count int64
	for _, record := range r.store.setRecords {
		if record.LinkID == linkID {
			count++
		}
	}
	return count, nil
}

func (r *setRecordRepo) Update(ctx context.Context, record *domain.SetRecord) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if record.ID == primitive.NilObjectID {
		return errors.New("set record ID is required for update")
	}

	stored, ok := r.store.setRecords[record.ID]
	if !ok {
		return repository.ErrNotFound
	}

	stored.Date = record.Date
	stored.Order = record.Order
	stored.IsTracked = record.IsTracked
	stored.Weight = record.Weight
	stored.Reps = record.Reps
	stored.RPE = record.RPE
	stored.Duration = record.Duration
	stored.Distance = record.Distance
	stored.Resistance = record.Resistance
	stored.HeartRate = record.HeartRate
	stored.UpdatedAt = time.Now().UTC()

	r.store.setRecords[record.ID] = stored
	return nil
}

func (r *setRecordRepo) UpdateOrders(ctx context.Context, orders []repository.OrderUpdate) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, o := range orders {
		if _, ok := r.store.setRecords[o.ID]; !ok {
			return repository.ErrUpdateFailed
		}
	}
	now := time.Now().UTC()
	for _, o := range orders {
		stored := r.store.setRecords[o.ID]
		stored.Order = o.Order
		stored.UpdatedAt = now
		r.store.setRecords[o.ID] = stored
	}
	return nil
}

func (r *setRecordRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.setRecords[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.store.setRecords, id)
	return nil
}

func (r *setRecordRepo) DeleteByLinkID(ctx context.Context, linkID primitive.ObjectID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for id, record := range r.store.setRecords {
		if record.LinkID == linkID {
			delete(r.store.setRecords, id)
		}
	}
	return nil
}
