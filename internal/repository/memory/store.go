// Package memory holds in-memory implementations of the repository
// interfaces. They mirror the MongoDB implementations' observable behavior
// (id assignment, timestamps, sort orders, sentinel errors) and back the
// service and handler tests, so no database is needed to run them.
package memory

import (
	"context"
	"sync"

	"alcyxob/workout-tracker/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Store is the shared backing state of all in-memory repositories. One Store
// plays the role of one database: repositories created from it see the same
// data, and WithTransaction snapshots and restores all of it at once.
type Store struct {
	mu   sync.Mutex
	txMu sync.Mutex

	exercises     map[primitive.ObjectID]domain.Exercise
	templates     map[primitive.ObjectID]domain.WorkoutTemplate
	events        map[primitive.ObjectID]domain.WorkoutEvent
	links         map[primitive.ObjectID]domain.WorkoutExerciseLink
	targetSets    map[primitive.ObjectID]domain.TargetSet
	setRecords    map[primitive.ObjectID]domain.SetRecord
	catalogSeeded bool
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		exercises:  make(map[primitive.ObjectID]domain.Exercise),
		templates:  make(map[primitive.ObjectID]domain.WorkoutTemplate),
		events:     make(map[primitive.ObjectID]domain.WorkoutEvent),
		links:      make(map[primitive.ObjectID]domain.WorkoutExerciseLink),
		targetSets: make(map[primitive.ObjectID]domain.TargetSet),
		setRecords: make(map[primitive.ObjectID]domain.SetRecord),
	}
}

type storeSnapshot struct {
	exercises     map[primitive.ObjectID]domain.Exercise
	templates     map[primitive.ObjectID]domain.WorkoutTemplate
	events        map[primitive.ObjectID]domain.WorkoutEvent
	links         map[primitive.ObjectID]domain.WorkoutExerciseLink
	targetSets    map[primitive.ObjectID]domain.TargetSet
	setRecords    map[primitive.ObjectID]domain.SetRecord
	catalogSeeded bool
}

func cloneMap[K comparable, V any](src map[K]V) map[K]V {
	dst := make(map[K]V, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

func (s *Store) snapshot() storeSnapshot {
	return storeSnapshot{
		exercises:     cloneMap(s.exercises),
		templates:     cloneMap(s.templates),
		events:        cloneMap(s.events),
		links:         cloneMap(s.links),
		targetSets:    cloneMap(s.targetSets),
		setRecords:    cloneMap(s.setRecords),
		catalogSeeded: s.catalogSeeded,
	}
}

func (s *Store) restore(sn storeSnapshot) {
	s.exercises = sn.exercises
	s.templates = sn.templates
	s.events = sn.events
	s.links = sn.links
	s.targetSets = sn.targetSets
	s.setRecords = sn.setRecords
	s.catalogSeeded = sn.catalogSeeded
}

// WithTransaction implements repository.TxRunner. Transactions serialize on
// the store; fn's repository calls write directly, and a returned error
// rolls the whole store back to the pre-transaction snapshot.
func (s *Store) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.Lock()
	sn := s.snapshot()
	s.mu.Unlock()

	if err := fn(ctx); err != nil {
		s.mu.Lock()
		s.restore(sn)
		s.mu.Unlock()
		return err
	}
	return nil
}
