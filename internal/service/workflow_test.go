package service_test

import (
	"context"
	"testing"

	"alcyxob/workout-tracker/internal/domain"
	"alcyxob/workout-tracker/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Walks the whole planning-to-logging flow: build a template, schedule it,
// work through the event's sets, then throw the event away and check the
// template never noticed.
func TestPlanScheduleLogDeleteFlow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	bench := f.mustCreateExercise(t, "Bench Press", domain.CategoryResistance, groupPtr(domain.MuscleChest), false)
	template := f.mustCreateTemplate(t, "Push Day", domain.WorkoutResistance)
	templateLink := f.mustAttach(t, domain.TemplateOwner(template.ID), bench.ID)

	for i := 0; i < 3; i++ {
		_, err := f.links.AddTargetSet(ctx, templateLink.ID, service.SetMetrics{
			Weight: floatPtr(100), Reps: intPtr(5),
		})
		require.NoError(t, err)
	}

	event, err := f.events.ScheduleFromTemplate(ctx, template.ID, day(2025, 11, 20), nil)
	require.NoError(t, err)

	// The event's exercise list starts empty and independent of the template's.
	eventDetails, err := f.links.ListLinks(ctx, domain.EventOwner(event.ID))
	require.NoError(t, err)
	assert.Empty(t, eventDetails)

	eventLink := f.mustAttach(t, domain.EventOwner(event.ID), bench.ID)
	for i := 0; i < 3; i++ {
		_, err := f.links.AddTargetSet(ctx, eventLink.ID, service.SetMetrics{
			Weight: floatPtr(100), Reps: intPtr(5),
		})
		require.NoError(t, err)
	}
	detail, err := f.links.SyncSetCounts(ctx, eventLink.ID)
	require.NoError(t, err)
	require.Len(t, detail.Sets, 3)

	// Log the actuals and check off the exercise.
	for _, rec := range detail.Sets {
		_, err := f.links.UpdateSetRecord(ctx, rec.ID, service.SetMetrics{
			Weight: floatPtr(100), Reps: intPtr(5), RPE: floatPtr(7.5),
		}, boolPtr(true))
		require.NoError(t, err)
	}
	_, err = f.links.ToggleLinkCompleted(ctx, eventLink.ID)
	require.NoError(t, err)

	require.NoError(t, f.events.DeleteEvent(ctx, event.ID))

	// The event's data is gone without a trace.
	_, err = f.links.GetLinkByID(ctx, eventLink.ID)
	assert.ErrorIs(t, err, service.ErrLinkNotFound)
	records, err := f.store.SetRecords().CountByLinkID(ctx, eventLink.ID)
	require.NoError(t, err)
	assert.Zero(t, records)

	// The template and its plan are untouched.
	templateDetail, err := f.links.GetLinkByID(ctx, templateLink.ID)
	require.NoError(t, err)
	assert.Len(t, templateDetail.TargetSets, 3)
	assert.Empty(t, templateDetail.Sets)
	assert.False(t, templateDetail.Link.IsCompleted)
}
