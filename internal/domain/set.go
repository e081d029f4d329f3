// internal/domain/set.go
package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SetType determines which attributes of a set are meaningful.
type SetType string

const (
	SetTypeResistance SetType = "resistance"
	SetTypeCardio     SetType = "cardio"
	SetTypeBodyweight SetType = "bodyweight"
)

// SetAttribute names one loggable attribute of a set.
type SetAttribute string

const (
	AttrWeight     SetAttribute = "weight"
	AttrReps       SetAttribute = "reps"
	AttrRPE        SetAttribute = "rpe"
	AttrDuration   SetAttribute = "duration"
	AttrDistance   SetAttribute = "distance"
	AttrResistance SetAttribute = "resistance"
	AttrHeartRate  SetAttribute = "heartRate"
)

// RelevantAttributes returns the attributes logged for a set type, in display
// order. Unknown types get an empty list.
func RelevantAttributes(t SetType) []SetAttribute {
	switch t {
	case SetTypeResistance:
		return []SetAttribute{AttrWeight, AttrReps, AttrRPE}
	case SetTypeCardio:
		return []SetAttribute{AttrDuration, AttrDistance, AttrHeartRate, AttrResistance}
	case SetTypeBodyweight:
		return []SetAttribute{AttrReps, AttrRPE}
	}
	return nil
}

// TargetSet is one planned set of a workout exercise (advanced target mode).
// All metric fields are optional; an empty target is a valid placeholder.
type TargetSet struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	LinkID primitive.ObjectID `bson:"linkId" json:"linkId"` // Owning workout exercise link
	Order  int                `bson:"order" json:"order"`   // Position within the link's target list

	Weight     *float64 `bson:"weight,omitempty" json:"weight,omitempty"` // kg
	Reps       *int     `bson:"reps,omitempty" json:"reps,omitempty"`
	RPE        *float64 `bson:"rpe,omitempty" json:"rpe,omitempty"`           // Rate of perceived exertion, 1-10
	Duration   *float64 `bson:"duration,omitempty" json:"duration,omitempty"` // seconds
	Distance   *float64 `bson:"distance,omitempty" json:"distance,omitempty"` // meters
	Resistance *float64 `bson:"resistance,omitempty" json:"resistance,omitempty"`
	HeartRate  *int     `bson:"heartRate,omitempty" json:"heartRate,omitempty"` // bpm

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// SetRecord is one actually performed (or pending) set of a workout exercise.
// The Target* fields echo the plan at the time the set was created, so the
// record stays meaningful if targets change later.
type SetRecord struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	LinkID    primitive.ObjectID `bson:"linkId" json:"linkId"` // Owning workout exercise link
	Type      SetType            `bson:"type" json:"type"`
	Date      time.Time          `bson:"date" json:"date"` // When the set was (or is to be) performed
	Order     int                `bson:"order" json:"order"`
	IsTracked bool               `bson:"isTracked" json:"isTracked"` // Counted toward history/progress

	Weight     *float64 `bson:"weight,omitempty" json:"weight,omitempty"`
	Reps       *int     `bson:"reps,omitempty" json:"reps,omitempty"`
	RPE        *float64 `bson:"rpe,omitempty" json:"rpe,omitempty"`
	Duration   *float64 `bson:"duration,omitempty" json:"duration,omitempty"`
	Distance   *float64 `bson:"distance,omitempty" json:"distance,omitempty"`
	Resistance *float64 `bson:"resistance,omitempty" json:"resistance,omitempty"`
	HeartRate  *int     `bson:"heartRate,omitempty" json:"heartRate,omitempty"`

	TargetWeight     *float64 `bson:"targetWeight,omitempty" json:"targetWeight,omitempty"`
	TargetReps       *int     `bson:"targetReps,omitempty" json:"targetReps,omitempty"`
	TargetRPE        *float64 `bson:"targetRpe,omitempty" json:"targetRpe,omitempty"`
	TargetDuration   *float64 `bson:"targetDuration,omitempty" json:"targetDuration,omitempty"`
	TargetDistance   *float64 `bson:"targetDistance,omitempty" json:"targetDistance,omitempty"`
	TargetResistance *float64 `bson:"targetResistance,omitempty" json:"targetResistance,omitempty"`
	TargetHeartRate  *int     `bson:"targetHeartRate,omitempty" json:"targetHeartRate,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// CopyTargets fills the Target* echo fields from a planned target set.
func (s *SetRecord) CopyTargets(t *TargetSet) {
	if t == nil {
		return
	}
	s.TargetWeight = t.Weight
	s.TargetReps = t.Reps
	s.TargetRPE = t.RPE
	s.TargetDuration = t.Duration
	s.TargetDistance = t.Distance
	s.TargetResistance = t.Resistance
	s.TargetHeartRate = t.HeartRate
}
