package repository

import (
	"alcyxob/workout-tracker/internal/domain" // Import our defined domain models
	"context"                                 // Standard for request-scoped deadlines, cancellation signals, etc.
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive" // For using ObjectIDs
)

// Error constants for repository layer (optional but good practice)
var (
	ErrNotFound      = RepositoryError("not found")
	ErrDuplicateName = RepositoryError("duplicate name")
	ErrUpdateFailed  = RepositoryError("update failed")
	ErrDeleteFailed  = RepositoryError("delete failed")
	// Add more specific errors as needed
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// OrderUpdate carries one id -> order assignment of a bulk reorder write.
type OrderUpdate struct {
	ID    primitive.ObjectID
	Order int
}

// TxRunner executes fn inside a single transaction. Every read and write fn
// performs through the ctx it receives joins that transaction; if fn returns
// an error the transaction is aborted and no write survives.
type TxRunner interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// ExerciseRepository defines the interface for interacting with catalog exercises.
type ExerciseRepository interface {
	Create(ctx context.Context, exercise *domain.Exercise) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Exercise, error)
	GetByName(ctx context.Context, name string) (*domain.Exercise, error) // Byte-exact name match
	GetAll(ctx context.Context) ([]domain.Exercise, error)                // Sorted by name
	GetByCategory(ctx context.Context, category domain.ExerciseCategory) ([]domain.Exercise, error)
	GetByMuscleGroup(ctx context.Context, group domain.MuscleGroup) ([]domain.Exercise, error)
	Any(ctx context.Context) (bool, error) // Existence probe with a fetch limit of one
	Update(ctx context.Context, exercise *domain.Exercise) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// TemplateRepository defines the interface for interacting with workout templates.
type TemplateRepository interface {
	Create(ctx context.Context, template *domain.WorkoutTemplate) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.WorkoutTemplate, error)
	GetAll(ctx context.Context) ([]domain.WorkoutTemplate, error) // Sorted by order
	Count(ctx context.Context) (int64, error)
	Update(ctx context.Context, template *domain.WorkoutTemplate) error
	UpdateOrders(ctx context.Context, orders []OrderUpdate) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// EventRepository defines the interface for interacting with workout events.
// Day parameters must already be truncated to UTC midnight (domain.DayOf).
type EventRepository interface {
	Create(ctx context.Context, event *domain.WorkoutEvent) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.WorkoutEvent, error)
	GetByDay(ctx context.Context, day time.Time) ([]domain.WorkoutEvent, error) // Sorted by order
	GetBetween(ctx context.Context, from, to time.Time) ([]domain.WorkoutEvent, error)
	CountByDay(ctx context.Context, day time.Time) (int64, error)
	Update(ctx context.Context, event *domain.WorkoutEvent) error
	UpdateOrders(ctx context.Context, orders []OrderUpdate) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// LinkRepository defines the interface for interacting with workout exercise links.
type LinkRepository interface {
	Create(ctx context.Context, link *domain.WorkoutExerciseLink) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.WorkoutExerciseLink, error)
	GetByOwner(ctx context.Context, owner domain.LinkOwner) ([]domain.WorkoutExerciseLink, error) // Sorted by order
	CountByOwner(ctx context.Context, owner domain.LinkOwner) (int64, error)
	CountByExercise(ctx context.Context, exerciseID primitive.ObjectID) (int64, error) // Across templates and events
	Update(ctx context.Context, link *domain.WorkoutExerciseLink) error
	UpdateOrders(ctx context.Context, orders []OrderUpdate) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	DeleteByOwner(ctx context.Context, owner domain.LinkOwner) error
}

// TargetSetRepository defines the interface for interacting with planned target sets.
type TargetSetRepository interface {
	Create(ctx context.Context, target *domain.TargetSet) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.TargetSet, error)
	GetByLinkID(ctx context.Context, linkID primitive.ObjectID) ([]domain.TargetSet, error) // Sorted by order
	CountByLinkID(ctx context.Context, linkID primitive.ObjectID) (int64, error)
	Update(ctx context.Context, target *domain.TargetSet) error
	UpdateOrders(ctx context.Context, orders []OrderUpdate) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	DeleteByLinkID(ctx context.Context, linkID primitive.ObjectID) error
}

// SetRecordRepository defines the interface for interacting with performed sets.
type SetRecordRepository interface {
	Create(ctx context.Context, record *domain.SetRecord) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.SetRecord, error)
	GetByLinkID(ctx context.Context, linkID primitive.ObjectID) ([]domain.SetRecord, error) // Sorted by order
	CountByLinkID(ctx context.Context, linkID primitive.ObjectID) (int64, error)
	Update(ctx context.Context, record *domain.SetRecord) error
	UpdateOrders(ctx context.Context, orders []OrderUpdate) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	DeleteByLinkID(ctx context.Context, linkID primitive.ObjectID) error
}

// AppStateRepository persists small one-off application flags.
type AppStateRepository interface {
	IsCatalogSeeded(ctx context.Context) (bool, error)
	MarkCatalogSeeded(ctx context.Context) error
}
