package service_test

import (
	"context"
	"testing"

	"alcyxob/workout-tracker/internal/domain"
	"alcyxob/workout-tracker/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }
func boolPtr(v bool) *bool        { return &v }

func TestAttachExercise_AppendsPerOwner(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	bench := f.mustCreateExercise(t, "Bench Press", domain.CategoryResistance, groupPtr(domain.MuscleChest), false)
	squat := f.mustCreateExercise(t, "Back Squat", domain.CategoryResistance, groupPtr(domain.MuscleLegs), false)
	template := f.mustCreateTemplate(t, "Push Day", domain.WorkoutResistance)
	event, err := f.events.CreateEvent(ctx, "Session", day(2025, 11, 20), nil, "")
	require.NoError(t, err)

	a := f.mustAttach(t, domain.TemplateOwner(template.ID), bench.ID)
	b := f.mustAttach(t, domain.TemplateOwner(template.ID), squat.ID)
	c := f.mustAttach(t, domain.EventOwner(event.ID), bench.ID)

	assert.Equal(t, 0, a.Order)
	assert.Equal(t, 1, b.Order)
	assert.Equal(t, 0, c.Order, "each owner numbers its own list")
	assert.Equal(t, domain.TargetSimple, a.TargetMode)
	assert.False(t, a.IsCompleted)

	// Same exercise twice in one list is allowed.
	again := f.mustAttach(t, domain.TemplateOwner(template.ID), bench.ID)
	assert.Equal(t, 2, again.Order)

	details, err := f.links.ListLinks(ctx, domain.TemplateOwner(template.ID))
	require.NoError(t, err)
	require.Len(t, details, 3)
	assert.Equal(t, "Bench Press", details[0].Exercise.Name)
	assert.Equal(t, "Back Squat", details[1].Exercise.Name)
}

func TestSyncSetCounts_AppendsToTheShorterSide(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	bench := f.mustCreateExercise(t, "Bench Press", domain.CategoryResistance, groupPtr(domain.MuscleChest), false)
	template := f.mustCreateTemplate(t, "Push Day", domain.WorkoutResistance)
	link := f.mustAttach(t, domain.TemplateOwner(template.ID), bench.ID)

	// Three targets, no sets.
	var targetIDs []string
	for i := 0; i < 3; i++ {
		target, err := f.links.AddTargetSet(ctx, link.ID, service.SetMetrics{
			Weight: floatPtr(100), Reps: intPtr(5 + i),
		})
		require.NoError(t, err)
		targetIDs = append(targetIDs, target.ID.Hex())
	}

	detail, err := f.links.SyncSetCounts(ctx, link.ID)
	require.NoError(t, err)
	require.Len(t, detail.TargetSets, 3)
	require.Len(t, detail.Sets, 3)

	// Existing targets untouched, new records echo their position's plan.
	for i, rec := range detail.Sets {
		assert.Equal(t, targetIDs[i], detail.TargetSets[i].ID.Hex())
		assert.Equal(t, i, rec.Order)
		assert.Equal(t, domain.SetTypeResistance, rec.Type)
		require.NotNil(t, rec.TargetReps)
		assert.Equal(t, 5+i, *rec.TargetReps)
		assert.Nil(t, rec.Reps, "actuals start empty")
	}

	// Now the sets side is longer: two extra sets, then sync grows targets.
	_, err = f.links.AddSet(ctx, link.ID)
	require.NoError(t, err)
	_, err = f.links.AddSet(ctx, link.ID)
	require.NoError(t, err)

	detail, err = f.links.SyncSetCounts(ctx, link.ID)
	require.NoError(t, err)
	assert.Len(t, detail.TargetSets, 5)
	assert.Len(t, detail.Sets, 5)
	assert.Nil(t, detail.TargetSets[4].Weight, "padding targets are empty placeholders")

	// Equal counts: a further sync is a no-op.
	again, err := f.links.SyncSetCounts(ctx, link.ID)
	require.NoError(t, err)
	assert.Len(t, again.TargetSets, 5)
	assert.Len(t, again.Sets, 5)
}

func TestAddSet_TypesAndDatesFromContext(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	run := f.mustCreateExercise(t, "Treadmill Run", domain.CategoryCardio, nil, false)
	event, err := f.events.CreateEvent(ctx, "Session", day(2025, 11, 20), nil, "")
	require.NoError(t, err)
	link := f.mustAttach(t, domain.EventOwner(event.ID), run.ID)

	target, err := f.links.AddTargetSet(ctx, link.ID, service.SetMetrics{Duration: floatPtr(600)})
	require.NoError(t, err)
	_ = target

	record, err := f.links.AddSet(ctx, link.ID)
	require.NoError(t, err)

	assert.Equal(t, domain.SetTypeCardio, record.Type, "cardio exercise yields a cardio set")
	assert.Equal(t, day(2025, 11, 20), record.Date, "event-owned sets carry the event's day")
	assert.Equal(t, 0, record.Order)
	require.NotNil(t, record.TargetDuration)
	assert.Equal(t, float64(600), *record.TargetDuration)

	// A second add has no target at position 1 to copy.
	second, err := f.links.AddSet(ctx, link.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, second.Order)
	assert.Nil(t, second.TargetDuration)
}

func TestUpdateSetRecord_ActualsAndTracking(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	bench := f.mustCreateExercise(t, "Bench Press", domain.CategoryResistance, groupPtr(domain.MuscleChest), false)
	template := f.mustCreateTemplate(t, "Push Day", domain.WorkoutResistance)
	link := f.mustAttach(t, domain.TemplateOwner(template.ID), bench.ID)

	record, err := f.links.AddSet(ctx, link.ID)
	require.NoError(t, err)
	assert.False(t, record.IsTracked)

	updated, err := f.links.UpdateSetRecord(ctx, record.ID, service.SetMetrics{
		Weight: floatPtr(102.5), Reps: intPtr(5), RPE: floatPtr(8),
	}, boolPtr(true))
	require.NoError(t, err)
	require.NotNil(t, updated.Weight)
	assert.Equal(t, 102.5, *updated.Weight)
	assert.True(t, updated.IsTracked)

	// nil isTracked leaves the flag alone.
	updated, err = f.links.UpdateSetRecord(ctx, record.ID, service.SetMetrics{Weight: floatPtr(105)}, nil)
	require.NoError(t, err)
	assert.True(t, updated.IsTracked)
}

func TestRemoveSetAt_DeletesPairAndReindexes(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	bench := f.mustCreateExercise(t, "Bench Press", domain.CategoryResistance, groupPtr(domain.MuscleChest), false)
	template := f.mustCreateTemplate(t, "Push Day", domain.WorkoutResistance)
	link := f.mustAttach(t, domain.TemplateOwner(template.ID), bench.ID)

	for i := 0; i < 3; i++ {
		_, err := f.links.AddTargetSet(ctx, link.ID, service.SetMetrics{Reps: intPtr(5 + i)})
		require.NoError(t, err)
		_, err = f.links.AddSet(ctx, link.ID)
		require.NoError(t, err)
	}

	require.NoError(t, f.links.RemoveSetAt(ctx, link.ID, 1))

	detail, err := f.links.GetLinkByID(ctx, link.ID)
	require.NoError(t, err)
	require.Len(t, detail.TargetSets, 2)
	require.Len(t, detail.Sets, 2)
	for i := range detail.Sets {
		assert.Equal(t, i, detail.Sets[i].Order)
		assert.Equal(t, i, detail.TargetSets[i].Order)
	}
	// Positions 0 and 2 survive; the middle row is gone.
	assert.Equal(t, 5, *detail.TargetSets[0].Reps)
	assert.Equal(t, 7, *detail.TargetSets[1].Reps)

	assert.ErrorIs(t, f.links.RemoveSetAt(ctx, link.ID, 2), domain.ErrIndexOutOfRange)
	assert.ErrorIs(t, f.links.RemoveSetAt(ctx, link.ID, -1), domain.ErrIndexOutOfRange)
}

func TestDeleteLink_CascadesAndClosesOwnersList(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	bench := f.mustCreateExercise(t, "Bench Press", domain.CategoryResistance, groupPtr(domain.MuscleChest), false)
	squat := f.mustCreateExercise(t, "Back Squat", domain.CategoryResistance, groupPtr(domain.MuscleLegs), false)
	template := f.mustCreateTemplate(t, "Push Day", domain.WorkoutResistance)

	doomed := f.mustAttach(t, domain.TemplateOwner(template.ID), bench.ID)
	survivor := f.mustAttach(t, domain.TemplateOwner(template.ID), squat.ID)

	_, err := f.links.AddTargetSet(ctx, doomed.ID, service.SetMetrics{})
	require.NoError(t, err)
	_, err = f.links.AddSet(ctx, doomed.ID)
	require.NoError(t, err)

	require.NoError(t, f.links.DeleteLink(ctx, doomed.ID))

	_, err = f.links.GetLinkByID(ctx, doomed.ID)
	assert.ErrorIs(t, err, service.ErrLinkNotFound)
	targets, err := f.store.TargetSets().CountByLinkID(ctx, doomed.ID)
	require.NoError(t, err)
	assert.Zero(t, targets)
	records, err := f.store.SetRecords().CountByLinkID(ctx, doomed.ID)
	require.NoError(t, err)
	assert.Zero(t, records)

	details, err := f.links.ListLinks(ctx, domain.TemplateOwner(template.ID))
	require.NoError(t, err)
	require.Len(t, details, 1)
	assert.Equal(t, survivor.ID, details[0].Link.ID)
	assert.Equal(t, 0, details[0].Link.Order)
}

func TestReorderTargetSets_MovesBlock(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	bench := f.mustCreateExercise(t, "Bench Press", domain.CategoryResistance, groupPtr(domain.MuscleChest), false)
	template := f.mustCreateTemplate(t, "Push Day", domain.WorkoutResistance)
	link := f.mustAttach(t, domain.TemplateOwner(template.ID), bench.ID)

	for i := 0; i < 4; i++ {
		_, err := f.links.AddTargetSet(ctx, link.ID, service.SetMetrics{Reps: intPtr(i)})
		require.NoError(t, err)
	}

	// Move the last target to the front.
	require.NoError(t, f.links.ReorderTargetSets(ctx, link.ID, []int{3}, 0))

	detail, err := f.links.GetLinkByID(ctx, link.ID)
	require.NoError(t, err)
	reps := make([]int, len(detail.TargetSets))
	for i, target := range detail.TargetSets {
		reps[i] = *target.Reps
		assert.Equal(t, i, target.Order)
	}
	assert.Equal(t, []int{3, 0, 1, 2}, reps)
}

func TestReorderLinksInCategory_KeepsOtherCategoriesSlots(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	bench := f.mustCreateExercise(t, "Bench Press", domain.CategoryResistance, groupPtr(domain.MuscleChest), false)
	squat := f.mustCreateExercise(t, "Back Squat", domain.CategoryResistance, groupPtr(domain.MuscleLegs), false)
	run := f.mustCreateExercise(t, "Treadmill Run", domain.CategoryCardio, nil, false)
	row := f.mustCreateExercise(t, "Rowing Machine", domain.CategoryCardio, nil, false)

	event, err := f.events.CreateEvent(ctx, "Mixed Session", day(2025, 11, 20), nil, "")
	require.NoError(t, err)
	owner := domain.EventOwner(event.ID)

	// Full list: bench, run, squat, row.
	for _, ex := range []*domain.Exercise{bench, run, squat, row} {
		f.mustAttach(t, owner, ex.ID)
	}

	// In the resistance view [bench, squat], swap the two.
	require.NoError(t, f.links.ReorderLinksInCategory(ctx, owner, domain.CategoryResistance, []int{1}, 0))

	details, err := f.links.ListLinks(ctx, owner)
	require.NoError(t, err)
	names := make([]string, len(details))
	for i, d := range details {
		names[i] = d.Exercise.Name
		assert.Equal(t, i, d.Link.Order)
	}
	// Resistance entries swapped within slots 0 and 2; cardio kept 1 and 3.
	assert.Equal(t, []string{"Back Squat", "Treadmill Run", "Bench Press", "Rowing Machine"}, names)
}

func TestUpdateLink_TargetModeSwitchKeepsBothSides(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	bench := f.mustCreateExercise(t, "Bench Press", domain.CategoryResistance, groupPtr(domain.MuscleChest), false)
	template := f.mustCreateTemplate(t, "Push Day", domain.WorkoutResistance)
	link := f.mustAttach(t, domain.TemplateOwner(template.ID), bench.ID)

	_, err := f.links.AddTargetSet(ctx, link.ID, service.SetMetrics{Reps: intPtr(5)})
	require.NoError(t, err)

	updated, err := f.links.UpdateLink(ctx, link.ID, "pause at the bottom", domain.TargetAdvanced, "3x5 @ RPE 8")
	require.NoError(t, err)
	assert.Equal(t, domain.TargetAdvanced, updated.TargetMode)

	// Back to simple: the structured targets are retained, just inactive.
	updated, err = f.links.UpdateLink(ctx, link.ID, "pause at the bottom", domain.TargetSimple, "3x5 @ RPE 8")
	require.NoError(t, err)
	assert.Equal(t, domain.TargetSimple, updated.TargetMode)
	assert.Equal(t, "3x5 @ RPE 8", updated.TargetNote)

	detail, err := f.links.GetLinkByID(ctx, link.ID)
	require.NoError(t, err)
	assert.Len(t, detail.TargetSets, 1)

	_, err = f.links.UpdateLink(ctx, link.ID, "", domain.TargetMode("freestyle"), "")
	assert.ErrorIs(t, err, service.ErrValidationFailed)
}

func TestToggleLinkCompleted(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	bench := f.mustCreateExercise(t, "Bench Press", domain.CategoryResistance, groupPtr(domain.MuscleChest), false)
	event, err := f.events.CreateEvent(ctx, "Session", day(2025, 11, 20), nil, "")
	require.NoError(t, err)
	link := f.mustAttach(t, domain.EventOwner(event.ID), bench.ID)

	toggled, err := f.links.ToggleLinkCompleted(ctx, link.ID)
	require.NoError(t, err)
	assert.True(t, toggled.IsCompleted)

	toggled, err = f.links.ToggleLinkCompleted(ctx, link.ID)
	require.NoError(t, err)
	assert.False(t, toggled.IsCompleted)
}
