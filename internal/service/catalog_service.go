package service

import (
	"alcyxob/workout-tracker/internal/domain"
	"alcyxob/workout-tracker/internal/repository"
	"alcyxob/workout-tracker/internal/storage"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrExerciseNotFound  = errors.New("exercise not found")
	ErrExerciseNameTaken = errors.New("an exercise with this name already exists")
	ErrExerciseInUse     = errors.New("exercise is referenced by workout entries and cannot be deleted")
	ErrNoDemoVideo       = errors.New("exercise has no demo video")
	ErrValidationFailed  = errors.New("validation failed")
)

// CatalogService manages the exercise catalog: the flat registry of movements
// every template and event links into.
type CatalogService interface {
	CreateExercise(ctx context.Context, name string, category domain.ExerciseCategory, muscleGroup *domain.MuscleGroup, isBodyweight bool) (*domain.Exercise, error)
	GetExerciseByID(ctx context.Context, exerciseID primitive.ObjectID) (*domain.Exercise, error)
	ListExercises(ctx context.Context) ([]domain.Exercise, error)
	ListExercisesByCategory(ctx context.Context, category domain.ExerciseCategory) ([]domain.Exercise, error)
	ListExercisesByMuscleGroup(ctx context.Context, group domain.MuscleGroup) ([]domain.Exercise, error)
	UpdateExercise(ctx context.Context, exerciseID primitive.ObjectID, name string, category domain.ExerciseCategory, muscleGroup *domain.MuscleGroup, isBodyweight bool) (*domain.Exercise, error)
	DeleteExercise(ctx context.Context, exerciseID primitive.ObjectID) error

	// Demo media: clients upload/view exercise demo videos directly against
	// object storage via presigned URLs.
	RequestDemoUploadURL(ctx context.Context, exerciseID primitive.ObjectID, contentType string) (string, error)
	GetDemoVideoURL(ctx context.Context, exerciseID primitive.ObjectID) (string, error)
	ClearDemoVideo(ctx context.Context, exerciseID primitive.ObjectID) error
}

// --- Service Implementation ---

type catalogService struct {
	exerciseRepo  repository.ExerciseRepository
	linkRepo      repository.LinkRepository
	fileStorage   storage.FileStorage
	presignExpiry time.Duration
}

// NewCatalogService creates a new instance of catalogService.
func NewCatalogService(exerciseRepo repository.ExerciseRepository, linkRepo repository.LinkRepository, fileStorage storage.FileStorage, presignExpiry time.Duration) CatalogService {
	return &catalogService{
		exerciseRepo:  exerciseRepo,
		linkRepo:      linkRepo,
		fileStorage:   fileStorage,
		presignExpiry: presignExpiry,
	}
}

// validateExerciseInput checks the user-supplied exercise fields.
func validateExerciseInput(name string, category domain.ExerciseCategory, muscleGroup *domain.MuscleGroup) error {
	errs := validation.Errors{
		"name": validation.Validate(name, validation.Required, validation.Length(1, 100)),
		"category": validation.Validate(string(category), validation.Required, validation.By(func(interface{}) error {
			if !category.Valid() {
				return errors.New("must be one of resistance, cardio, bodyweight, other")
			}
			return nil
		})),
	}
	if muscleGroup != nil && !muscleGroup.Valid() {
		errs["muscleGroup"] = errors.New("unknown muscle group")
	}
	if err := errs.Filter(); err != nil {
		return fmt.Errorf("%w: %v", ErrValidationFailed, err)
	}
	return nil
}

// CreateExercise adds a new exercise to the catalog. Names are unique,
// compared byte-for-byte: "Pull Up" and "pull up" are two different entries.
func (s *catalogService) CreateExercise(ctx context.Context, name string, category domain.ExerciseCategory, muscleGroup *domain.MuscleGroup, isBodyweight bool) (*domain.Exercise, error) {
	// 1. Validate input
	if err := validateExerciseInput(name, category, muscleGroup); err != nil {
		return nil, err
	}

	// 2. Pre-check the name. The unique index backs this up, so a racing
	// insert still cannot slip a duplicate through.
	_, err := s.exerciseRepo.GetByName(ctx, name)
	if err == nil {
		return nil, ErrExerciseNameTaken
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	// 3. Create
	exercise := &domain.Exercise{
		Name:         name,
		Category:     category,
		MuscleGroup:  muscleGroup,
		IsBodyweight: isBodyweight,
	}
	exerciseID, err := s.exerciseRepo.Create(ctx, exercise)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateName) {
			return nil, ErrExerciseNameTaken
		}
		return nil, err
	}

	// Fetch again so repository-populated fields come back too.
	return s.exerciseRepo.GetByID(ctx, exerciseID)
}

// GetExerciseByID retrieves a single exercise.
func (s *catalogService) GetExerciseByID(ctx context.Context, exerciseID primitive.ObjectID) (*domain.Exercise, error) {
	exercise, err := s.exerciseRepo.GetByID(ctx, exerciseID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExerciseNotFound
		}
		return nil, err
	}
	return exercise, nil
}

// ListExercises returns the whole catalog sorted by name.
func (s *catalogService) ListExercises(ctx context.Context) ([]domain.Exercise, error) {
	return s.exerciseRepo.GetAll(ctx)
}

// ListExercisesByCategory returns one category of the catalog sorted by name.
func (s *catalogService) ListExercisesByCategory(ctx context.Context, category domain.ExerciseCategory) ([]domain.Exercise, error) {
	if !category.Valid() {
		return nil, fmt.Errorf("%w: unknown category %q", ErrValidationFailed, category)
	}
	return s.exerciseRepo.GetByCategory(ctx, category)
}

// ListExercisesByMuscleGroup returns one muscle group of the catalog sorted by name.
func (s *catalogService) ListExercisesByMuscleGroup(ctx context.Context, group domain.MuscleGroup) ([]domain.Exercise, error) {
	if !group.Valid() {
		return nil, fmt.Errorf("%w: unknown muscle group %q", ErrValidationFailed, group)
	}
	return s.exerciseRepo.GetByMuscleGroup(ctx, group)
}

// UpdateExercise edits an existing catalog entry. The same name-uniqueness
// rule applies, excluding the exercise itself.
func (s *catalogService) UpdateExercise(ctx context.Context, exerciseID primitive.ObjectID, name string, category domain.ExerciseCategory, muscleGroup *domain.MuscleGroup, isBodyweight bool) (*domain.Exercise, error) {
	// 1. Validate input
	if err := validateExerciseInput(name, category, muscleGroup); err != nil {
		return nil, err
	}
	if exerciseID == primitive.NilObjectID {
		return nil, fmt.Errorf("%w: exercise ID is required", ErrValidationFailed)
	}

	// 2. Load the current entry
	existing, err := s.exerciseRepo.GetByID(ctx, exerciseID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExerciseNotFound
		}
		return nil, err
	}

	// 3. Name collision check against everyone else
	if other, err := s.exerciseRepo.GetByName(ctx, name); err == nil && other.ID != exerciseID {
		return nil, ErrExerciseNameTaken
	} else if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	// 4. Apply and persist
	existing.Name = name
	existing.Category = category
	existing.MuscleGroup = muscleGroup
	existing.IsBodyweight = isBodyweight

	if err := s.exerciseRepo.Update(ctx, existing); err != nil {
		if errors.Is(err, repository.ErrDuplicateName) {
			return nil, ErrExerciseNameTaken
		}
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExerciseNotFound
		}
		return nil, err
	}
	return existing, nil
}

// DeleteExercise removes a catalog entry. Deletion is refused while any
// workout entry (template- or event-owned) still references the exercise, so
// no link is ever left pointing at a missing exercise.
func (s *catalogService) DeleteExercise(ctx context.Context, exerciseID primitive.ObjectID) error {
	if exerciseID == primitive.NilObjectID {
		return fmt.Errorf("%w: exercise ID is required", ErrValidationFailed)
	}

	exercise, err := s.exerciseRepo.GetByID(ctx, exerciseID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrExerciseNotFound
		}
		return err
	}

	refs, err := s.linkRepo.CountByExercise(ctx, exerciseID)
	if err != nil {
		return err
	}
	if refs > 0 {
		return fmt.Errorf("%w: %d reference(s)", ErrExerciseInUse, refs)
	}

	if err := s.exerciseRepo.Delete(ctx, exerciseID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrExerciseNotFound
		}
		return err
	}

	// The catalog row is gone; a leftover demo object is only wasted space.
	if exercise.DemoVideoKey != "" && s.fileStorage != nil {
		_ = s.fileStorage.DeleteObject(ctx, exercise.DemoVideoKey)
	}
	return nil
}

// RequestDemoUploadURL reserves an object key for the exercise's demo video
// and returns a presigned PUT URL the client uploads against directly.
func (s *catalogService) RequestDemoUploadURL(ctx context.Context, exerciseID primitive.ObjectID, contentType string) (string, error) {
	if !strings.HasPrefix(contentType, "video/") {
		return "", fmt.Errorf("%w: content type must be video/*", ErrValidationFailed)
	}

	exercise, err := s.exerciseRepo.GetByID(ctx, exerciseID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrExerciseNotFound
		}
		return "", err
	}

	// Re-uploads overwrite in place: the key is stable per exercise once set.
	objectKey := exercise.DemoVideoKey
	if objectKey == "" {
		objectKey = "exercise-demos/" + uuid.NewString()
	}

	uploadURL, err := s.fileStorage.GeneratePresignedUploadURL(ctx, objectKey, contentType, s.presignExpiry)
	if err != nil {
		return "", fmt.Errorf("generating upload URL: %w", err)
	}

	if exercise.DemoVideoKey != objectKey {
		exercise.DemoVideoKey = objectKey
		if err := s.exerciseRepo.Update(ctx, exercise); err != nil {
			return "", err
		}
	}
	return uploadURL, nil
}

// GetDemoVideoURL returns a presigned GET URL for the exercise's demo video.
func (s *catalogService) GetDemoVideoURL(ctx context.Context, exerciseID primitive.ObjectID) (string, error) {
	exercise, err := s.exerciseRepo.GetByID(ctx, exerciseID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrExerciseNotFound
		}
		return "", err
	}
	if exercise.DemoVideoKey == "" {
		return "", ErrNoDemoVideo
	}

	downloadURL, err := s.fileStorage.GeneratePresignedDownloadURL(ctx, exercise.DemoVideoKey, s.presignExpiry)
	if err != nil {
		return "", fmt.Errorf("generating download URL: %w", err)
	}
	return downloadURL, nil
}

// ClearDemoVideo removes the exercise's demo video from storage and clears
// the key.
func (s *catalogService) ClearDemoVideo(ctx context.Context, exerciseID primitive.ObjectID) error {
	exercise, err := s.exerciseRepo.GetByID(ctx, exerciseID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrExerciseNotFound
		}
		return err
	}
	if exercise.DemoVideoKey == "" {
		return ErrNoDemoVideo
	}

	if err := s.fileStorage.DeleteObject(ctx, exercise.DemoVideoKey); err != nil {
		return fmt.Errorf("deleting demo object: %w", err)
	}

	exercise.DemoVideoKey = ""
	return s.exerciseRepo.Update(ctx, exercise)
}
