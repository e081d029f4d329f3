// internal/domain/exercise.go
package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ExerciseCategory classifies how an exercise is performed and logged.
type ExerciseCategory string

const (
	CategoryResistance ExerciseCategory = "resistance"
	CategoryCardio     ExerciseCategory = "cardio"
	CategoryBodyweight ExerciseCategory = "bodyweight"
	CategoryOther      ExerciseCategory = "other"
)

// Valid reports whether c is one of the known categories.
func (c ExerciseCategory) Valid() bool {
	switch c {
	case CategoryResistance, CategoryCardio, CategoryBodyweight, CategoryOther:
		return true
	}
	return false
}

// MuscleGroup is the optional sub-category of an exercise.
type MuscleGroup string

const (
	MuscleChest     MuscleGroup = "chest"
	MuscleShoulders MuscleGroup = "shoulders"
	MuscleLegs      MuscleGroup = "legs"
	MuscleBack      MuscleGroup = "back"
	MuscleBiceps    MuscleGroup = "biceps"
	MuscleTriceps   MuscleGroup = "triceps"
	MuscleAbs       MuscleGroup = "abs"
)

// Valid reports whether m is one of the known muscle groups.
func (m MuscleGroup) Valid() bool {
	switch m {
	case MuscleChest, MuscleShoulders, MuscleLegs, MuscleBack, MuscleBiceps, MuscleTriceps, MuscleAbs:
		return true
	}
	return false
}

// Exercise is a single entry in the exercise catalog.
type Exercise struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"` // Unique across the catalog, compared byte-for-byte ("Pull Up" != "pull up")
	Category     ExerciseCategory   `bson:"category" json:"category"`
	MuscleGroup  *MuscleGroup       `bson:"muscleGroup,omitempty" json:"muscleGroup,omitempty"` // e.g., "chest", "legs" (pointer for nullability)
	IsBodyweight bool               `bson:"isBodyweight" json:"isBodyweight"`
	DemoVideoKey string             `bson:"demoVideoKey,omitempty" json:"-"` // S3 object key of the demo video - internal use
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// SetType returns the type new set records of this exercise are logged with.
func (e *Exercise) SetType() SetType {
	switch {
	case e.Category == CategoryCardio:
		return SetTypeCardio
	case e.Category == CategoryBodyweight || e.IsBodyweight:
		return SetTypeBodyweight
	default:
		return SetTypeResistance
	}
}
