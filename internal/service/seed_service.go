package service

import (
	"alcyxob/workout-tracker/internal/domain"
	"alcyxob/workout-tracker/internal/repository"
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
)

// SeedService populates the exercise catalog with the built-in default list
// on first launch.
type SeedService interface {
	// SeedIfEmpty is safe to call on every startup. It inserts the default
	// catalog only when the catalog has never been seeded AND is empty, and
	// records a persistent flag once it has nothing left to do.
	SeedIfEmpty(ctx context.Context) error
}

type seedService struct {
	exerciseRepo repository.ExerciseRepository
	appStateRepo repository.AppStateRepository
	tx           repository.TxRunner
}

// NewSeedService creates a new instance of seedService.
func NewSeedService(exerciseRepo repository.ExerciseRepository, appStateRepo repository.AppStateRepository, tx repository.TxRunner) SeedService {
	return &seedService{
		exerciseRepo: exerciseRepo,
		appStateRepo: appStateRepo,
		tx:           tx,
	}
}

func (s *seedService) SeedIfEmpty(ctx context.Context) error {
	// 1. Persistent flag: the cheap fast path on every start after the first.
	seeded, err := s.appStateRepo.IsCatalogSeeded(ctx)
	if err != nil {
		return fmt.Errorf("reading catalog seed flag: %w", err)
	}
	if seeded {
		return nil
	}

	// 2. Existence probe. The user may already have created exercises before
	// the flag got written (or the flag write failed last time); a non-empty
	// catalog is never touched.
	hasAny, err := s.exerciseRepo.Any(ctx)
	if err != nil {
		return fmt.Errorf("probing catalog: %w", err)
	}
	if hasAny {
		if err := s.appStateRepo.MarkCatalogSeeded(ctx); err != nil {
			return fmt.Errorf("marking catalog seeded: %w", err)
		}
		return nil
	}

	// 3. Insert the defaults and set the flag, all or nothing. If this fails
	// the flag stays unset and the next startup retries.
	err = s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		for _, seed := range DefaultCatalog() {
			exercise := seed
			if _, err := s.exerciseRepo.Create(ctx, &exercise); err != nil {
				return fmt.Errorf("seeding %q: %w", seed.Name, err)
			}
		}
		return s.appStateRepo.MarkCatalogSeeded(ctx)
	})
	if err != nil {
		return err
	}

	log.WithField("count", len(DefaultCatalog())).Info("exercise catalog seeded with defaults")
	return nil
}

func mg(g domain.MuscleGroup) *domain.MuscleGroup { return &g }

// DefaultCatalog returns the built-in exercise list inserted on first launch.
// A fresh slice every call; callers may mutate their copy freely.
func DefaultCatalog() []domain.Exercise {
	return []domain.Exercise{
		// Chest
		{Name: "Bench Press", Category: domain.CategoryResistance, MuscleGroup: mg(domain.MuscleChest)},
		{Name: "Incline Dumbbell Press", Category: domain.CategoryResistance, MuscleGroup: mg(domain.MuscleChest)},
		{Name: "Push-Up", Category: domain.CategoryResistance, MuscleGroup: mg(domain.MuscleChest), IsBodyweight: true},
		// Shoulders
		{Name: "Overhead Press", Category: domain.CategoryResistance, MuscleGroup: mg(domain.MuscleShoulders)},
		{Name: "Lateral Raise", Category: domain.CategoryResistance, MuscleGroup: mg(domain.MuscleShoulders)},
		{Name: "Face Pull", Category: domain.CategoryResistance, MuscleGroup: mg(domain.MuscleShoulders)},
		// Legs
		{Name: "Back Squat", Category: domain.CategoryResistance, MuscleGroup: mg(domain.MuscleLegs)},
		{Name: "Romanian Deadlift", Category: domain.CategoryResistance, MuscleGroup: mg(domain.MuscleLegs)},
		{Name: "Leg Press", Category: domain.CategoryResistance, MuscleGroup: mg(domain.MuscleLegs)},
		{Name: "Walking Lunge", Category: domain.CategoryResistance, MuscleGroup: mg(domain.MuscleLegs), IsBodyweight: true},
		// Back
		{Name: "Deadlift", Category: domain.CategoryResistance, MuscleGroup: mg(domain.MuscleBack)},
		{Name: "Barbell Row", Category: domain.CategoryResistance, MuscleGroup: mg(domain.MuscleBack)},
		{Name: "Lat Pulldown", Category: domain.CategoryResistance, MuscleGroup: mg(domain.MuscleBack)},
		{Name: "Seated Cable Row", Category: domain.CategoryResistance, MuscleGroup: mg(domain.MuscleBack)},
		{Name: "Pull-Up", Category: domain.CategoryResistance, MuscleGroup: mg(domain.MuscleBack), IsBodyweight: true},
		// Biceps
		{Name: "Barbell Curl", Category: domain.CategoryResistance, MuscleGroup: mg(domain.MuscleBiceps)},
		{Name: "Hammer Curl", Category: domain.CategoryResistance, MuscleGroup: mg(domain.MuscleBiceps)},
		// Triceps
		{Name: "Triceps Pushdown", Category: domain.CategoryResistance, MuscleGroup: mg(domain.MuscleTriceps)},
		{Name: "Overhead Triceps Extension", Category: domain.CategoryResistance, MuscleGroup: mg(domain.MuscleTriceps)},
		// Abs
		{Name: "Plank", Category: domain.CategoryBodyweight, MuscleGroup: mg(domain.MuscleAbs), IsBodyweight: true},
		{Name: "Hanging Leg Raise", Category: domain.CategoryBodyweight, MuscleGroup: mg(domain.MuscleAbs), IsBodyweight: true},
		{Name: "Crunch", Category: domain.CategoryBodyweight, MuscleGroup: mg(domain.MuscleAbs), IsBodyweight: true},
		// Cardio
		{Name: "Treadmill Run", Category: domain.CategoryCardio},
		{Name: "Stationary Bike", Category: domain.CategoryCardio},
		{Name: "Rowing Machine", Category: domain.CategoryCardio},
	}
}
