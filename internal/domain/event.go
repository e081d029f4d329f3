// internal/domain/event.go
package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DefaultWorkoutTitle is shown when neither the event nor its template has a title.
const DefaultWorkoutTitle = "Untitled Workout"

// WorkoutEvent is a workout scheduled (or performed) on a calendar day.
// Events own their exercise links outright; a template reference, when
// present, is live (no copied snapshot) and only consulted for display.
type WorkoutEvent struct {
	ID         primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Title      string              `bson:"title,omitempty" json:"title,omitempty"` // Optional; see DisplayTitle
	Date       time.Time           `bson:"date" json:"date"`                       // UTC midnight of the day the event belongs to
	StartTime  *time.Time          `bson:"startTime,omitempty" json:"startTime,omitempty"` // Optional exact start moment (pointer for nullability)
	Notes      string              `bson:"notes,omitempty" json:"notes,omitempty"`
	Order      int                 `bson:"order" json:"order"` // Position within its day
	TemplateID *primitive.ObjectID `bson:"templateId,omitempty" json:"templateId,omitempty"` // Template the event was scheduled from, if any
	CreatedAt  time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time           `bson:"updatedAt" json:"updatedAt"`
}

// DisplayTitle resolves the title shown for the event: its own title, else
// the referenced template's title, else DefaultWorkoutTitle. template is the
// resolved reference and may be nil (no reference, or the template was
// deleted since).
func (e *WorkoutEvent) DisplayTitle(template *WorkoutTemplate) string {
	if e.Title != "" {
		return e.Title
	}
	if template != nil && template.Title != "" {
		return template.Title
	}
	return DefaultWorkoutTitle
}

// DayOf truncates t to UTC midnight, the granularity events are grouped by.
func DayOf(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
