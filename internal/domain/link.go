// internal/domain/link.go
package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OwnerKind discriminates which kind of entity owns a link.
type OwnerKind string

const (
	OwnerTemplate OwnerKind = "template"
	OwnerEvent    OwnerKind = "event"
)

// LinkOwner identifies the single owner of a workout exercise link as a
// kind + id pair. A link belongs to exactly one template or one event.
type LinkOwner struct {
	Kind OwnerKind          `bson:"kind" json:"kind"`
	ID   primitive.ObjectID `bson:"id" json:"id"`
}

// TemplateOwner builds the owner reference for a template.
func TemplateOwner(id primitive.ObjectID) LinkOwner {
	return LinkOwner{Kind: OwnerTemplate, ID: id}
}

// EventOwner builds the owner reference for an event.
func EventOwner(id primitive.ObjectID) LinkOwner {
	return LinkOwner{Kind: OwnerEvent, ID: id}
}

// TargetMode selects how targets are expressed for a link.
type TargetMode string

const (
	TargetSimple   TargetMode = "simple"   // Free-text target note
	TargetAdvanced TargetMode = "advanced" // Structured per-set targets
)

// Valid reports whether m is one of the known target modes.
func (m TargetMode) Valid() bool {
	return m == TargetSimple || m == TargetAdvanced
}

// WorkoutExerciseLink places one exercise into a template or an event.
// Target sets and set records are linked via their LinkID pointing to THIS
// link's ID; deleting the link deletes both lists.
type WorkoutExerciseLink struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ExerciseID  primitive.ObjectID `bson:"exerciseId" json:"exerciseId"`
	Owner       LinkOwner          `bson:"owner" json:"owner"`
	Order       int                `bson:"order" json:"order"` // Position within the owner's exercise list
	Notes       string             `bson:"notes,omitempty" json:"notes,omitempty"`
	TargetMode  TargetMode         `bson:"targetMode" json:"targetMode"`
	TargetNote  string             `bson:"targetNote,omitempty" json:"targetNote,omitempty"` // e.g., "3x8, last set to failure"
	IsCompleted bool               `bson:"isCompleted" json:"isCompleted"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}
