package memory

import (
	"context"

	"alcyxob/workout-tracker/internal/repository"
)

type appStateRepo struct {
	store *Store
}

// AppState returns the application state repository view of the store.
func (s *Store) AppState() repository.AppStateRepository {
	return &appStateRepo{store: s}
}

func (r *appStateRepo) IsCatalogSeeded(ctx context.Context) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.store.catalogSeeded, nil
}

func (r *appStateRepo) MarkCatalogSeeded(ctx context.Context) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.catalogSeeded = true
	return nil
}
