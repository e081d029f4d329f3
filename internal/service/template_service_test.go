package service_test

import (
	"context"
	"testing"

	"alcyxob/workout-tracker/internal/domain"
	"alcyxob/workout-tracker/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCreateTemplate_AppendsAtEnd(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	a := f.mustCreateTemplate(t, "Push Day", domain.WorkoutResistance)
	b := f.mustCreateTemplate(t, "Pull Day", domain.WorkoutResistance)
	c := f.mustCreateTemplate(t, "Intervals", domain.WorkoutCardio)

	assert.Equal(t, 0, a.Order)
	assert.Equal(t, 1, b.Order)
	assert.Equal(t, 2, c.Order)

	all, err := f.templates.ListTemplates(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Push Day", all[0].Title)
	assert.Equal(t, "Intervals", all[2].Title)
}

func TestUpdateTemplate_CategoryLockedOnceLinked(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	template := f.mustCreateTemplate(t, "Push Day", domain.WorkoutResistance)

	// No exercises yet: category is free to change.
	updated, err := f.templates.UpdateTemplate(ctx, template.ID, "Push Day", domain.WorkoutOther)
	require.NoError(t, err)
	assert.Equal(t, domain.WorkoutOther, updated.Category)

	exercise := f.mustCreateExercise(t, "Bench Press", domain.CategoryResistance, groupPtr(domain.MuscleChest), false)
	f.mustAttach(t, domain.TemplateOwner(template.ID), exercise.ID)

	_, err = f.templates.UpdateTemplate(ctx, template.ID, "Push Day", domain.WorkoutResistance)
	assert.ErrorIs(t, err, service.ErrTemplateCategoryLocked)

	// Title edits keeping the category stay allowed.
	updated, err = f.templates.UpdateTemplate(ctx, template.ID, "Push Day v2", domain.WorkoutOther)
	require.NoError(t, err)
	assert.Equal(t, "Push Day v2", updated.Title)
}

func TestDeleteTemplate_CascadesAndReindexes(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	bench := f.mustCreateExercise(t, "Bench Press", domain.CategoryResistance, groupPtr(domain.MuscleChest), false)
	squat := f.mustCreateExercise(t, "Back Squat", domain.CategoryResistance, groupPtr(domain.MuscleLegs), false)

	doomed := f.mustCreateTemplate(t, "Doomed", domain.WorkoutResistance)
	survivor := f.mustCreateTemplate(t, "Survivor", domain.WorkoutResistance)

	// K=2 links, each with M=2 target sets and M=2 set records.
	var linkIDs []primitive.ObjectID
	for _, ex := range []*domain.Exercise{bench, squat} {
		link := f.mustAttach(t, domain.TemplateOwner(doomed.ID), ex.ID)
		linkIDs = append(linkIDs, link.ID)
		for i := 0; i < 2; i++ {
			_, err := f.links.AddTargetSet(ctx, link.ID, service.SetMetrics{})
			require.NoError(t, err)
			_, err = f.links.AddSet(ctx, link.ID)
			require.NoError(t, err)
		}
	}

	// An event scheduled from the template, and a link on the survivor, must
	// both outlive the delete.
	event, err := f.events.ScheduleFromTemplate(ctx, doomed.ID, day(2025, 11, 20), nil)
	require.NoError(t, err)
	survivorLink := f.mustAttach(t, domain.TemplateOwner(survivor.ID), bench.ID)

	require.NoError(t, f.templates.DeleteTemplate(ctx, doomed.ID))

	// Template, links, targets and sets are all gone.
	_, err = f.templates.GetTemplateByID(ctx, doomed.ID)
	assert.ErrorIs(t, err, service.ErrTemplateNotFound)
	remaining, err := f.store.Links().GetByOwner(ctx, domain.TemplateOwner(doomed.ID))
	require.NoError(t, err)
	assert.Empty(t, remaining)
	for _, id := range linkIDs {
		targets, err := f.store.TargetSets().CountByLinkID(ctx, id)
		require.NoError(t, err)
		assert.Zero(t, targets)
		records, err := f.store.SetRecords().CountByLinkID(ctx, id)
		require.NoError(t, err)
		assert.Zero(t, records)
	}

	// Survivor closed the gap to order 0 and kept its link.
	all, err := f.templates.ListTemplates(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "Survivor", all[0].Title)
	assert.Equal(t, 0, all[0].Order)
	_, err = f.links.GetLinkByID(ctx, survivorLink.ID)
	require.NoError(t, err)

	// The event survives; its title falls back to the placeholder.
	view, err := f.events.GetEventByID(ctx, event.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultWorkoutTitle, view.DisplayTitle)
}

func TestReorderTemplates_DenseOrders(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for _, title := range []string{"A", "B", "C", "D"} {
		f.mustCreateTemplate(t, title, domain.WorkoutResistance)
	}

	// Move A and C, as a block, before D.
	require.NoError(t, f.templates.ReorderTemplates(ctx, []int{0, 2}, 3))

	all, err := f.templates.ListTemplates(ctx)
	require.NoError(t, err)
	titles := make([]string, len(all))
	for i, tmpl := range all {
		titles[i] = tmpl.Title
		assert.Equal(t, i, tmpl.Order, "orders must be dense 0..N-1")
	}
	assert.Equal(t, []string{"B", "A", "C", "D"}, titles)
}

func TestReorderTemplates_OutOfRangeRejected(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.mustCreateTemplate(t, "A", domain.WorkoutResistance)
	f.mustCreateTemplate(t, "B", domain.WorkoutResistance)

	assert.ErrorIs(t, f.templates.ReorderTemplates(ctx, []int{5}, 0), domain.ErrIndexOutOfRange)
	assert.ErrorIs(t, f.templates.ReorderTemplates(ctx, []int{0}, 7), domain.ErrIndexOutOfRange)
	assert.ErrorIs(t, f.templates.ReorderTemplates(ctx, []int{0, 0}, 1), domain.ErrIndexOutOfRange)

	// Nothing moved.
	all, err := f.templates.ListTemplates(ctx)
	require.NoError(t, err)
	assert.Equal(t, "A", all[0].Title)
	assert.Equal(t, "B", all[1].Title)
}

func TestReorderTemplatesInCategory_PersistsAndKeepsOtherSlots(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// Interleaved categories: R0 C0 R1 C1 R2.
	f.mustCreateTemplate(t, "R0", domain.WorkoutResistance)
	f.mustCreateTemplate(t, "C0", domain.WorkoutCardio)
	f.mustCreateTemplate(t, "R1", domain.WorkoutResistance)
	f.mustCreateTemplate(t, "C1", domain.WorkoutCardio)
	f.mustCreateTemplate(t, "R2", domain.WorkoutResistance)

	// In the resistance-only view [R0 R1 R2], move R0 to the end.
	require.NoError(t, f.templates.ReorderTemplatesInCategory(ctx, domain.WorkoutResistance, []int{0}, 3))

	all, err := f.templates.ListTemplates(ctx)
	require.NoError(t, err)
	titles := make([]string, len(all))
	for i, tmpl := range all {
		titles[i] = tmpl.Title
		assert.Equal(t, i, tmpl.Order)
	}
	// Resistance templates rotated across their own slots; cardio kept
	// positions 1 and 3.
	assert.Equal(t, []string{"R1", "C0", "R2", "C1", "R0"}, titles)
}
