// internal/domain/template.go
package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WorkoutCategory groups saved workouts in the template list.
type WorkoutCategory string

const (
	WorkoutResistance WorkoutCategory = "resistance"
	WorkoutCardio     WorkoutCategory = "cardio"
	WorkoutOther      WorkoutCategory = "other"
)

// Valid reports whether c is one of the known workout categories.
func (c WorkoutCategory) Valid() bool {
	switch c {
	case WorkoutResistance, WorkoutCardio, WorkoutOther:
		return true
	}
	return false
}

// WorkoutTemplate is a reusable workout blueprint. Its exercises are linked
// via WorkoutExerciseLinks pointing to THIS template's ID. The category is
// frozen once the template has exercises, since the exercise picker filters
// by it.
type WorkoutTemplate struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title     string             `bson:"title" json:"title"` // e.g., "Push Day", "5k Intervals"
	Category  WorkoutCategory    `bson:"category" json:"category"`
	Order     int                `bson:"order" json:"order"` // Position in the saved workout list
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}
