package reminder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"familyhub-backend/internal/model"
)

func TestClassify_Buckets(t *testing.T) {
	ref := monday(14, 0, 0)

	instances := []Instance{
		{ID: "taken", Timestamp: monday(8, 0, 0), Taken: true},
		{ID: "due", Timestamp: monday(13, 0, 0)},
		{ID: "upcoming", Timestamp: monday(20, 0, 0)},
		{ID: "missed", Timestamp: monday(7, 0, 0)},
	}

	b := Classify(ref, instances)

	require.Len(t, b.Taken, 1)
	require.Len(t, b.Due, 1)
	require.Len(t, b.Upcoming, 1)
	require.Len(t, b.Missed, 1)
	assert.Equal(t, "taken", b.Taken[0].ID)
	assert.Equal(t, "due", b.Due[0].ID)
	assert.Equal(t, "upcoming", b.Upcoming[0].ID)
	assert.Equal(t, "missed", b.Missed[0].ID)
}

// Exactly six hours overdue is still due; one second past the window is missed.
func TestClassify_GraceBoundary(t *testing.T) {
	eightAM := Instance{ID: "r", Timestamp: monday(8, 0, 0)}

	atBoundary := Classify(monday(14, 0, 0), []Instance{eightAM})
	assert.Len(t, atBoundary.Due, 1)
	assert.Empty(t, atBoundary.Missed)

	pastBoundary := Classify(monday(14, 0, 1), []Instance{eightAM})
	assert.Empty(t, pastBoundary.Due)
	assert.Len(t, pastBoundary.Missed, 1)
}

// Taken wins over every time-based bucket.
func TestClassify_TakenWins(t *testing.T) {
	longPast := Instance{ID: "r", Timestamp: monday(0, 30, 0), Taken: true}
	b := Classify(monday(23, 0, 0), []Instance{longPast})
	assert.Len(t, b.Taken, 1)
	assert.Empty(t, b.Missed)
}

// The four buckets partition the resolver's output: every instance lands in
// exactly one bucket, none in two.
func TestClassify_ExhaustivePartition(t *testing.T) {
	meds := []model.Medication{
		ibuprofen(
			weeklySchedule(schedID, "06:00", []int{1}),
			weeklySchedule(schedID2, "08:30", []int{1}),
		),
		{
			ID:   medID2,
			Name: "Vitamin D",
			Schedules: []model.Schedule{
				{ID: schedID, Time: "13:45", DaysOfWeek: []int{1}, Active: true},
				{ID: schedID2, Time: "21:00", DaysOfWeek: []int{1}, Active: true},
			},
		},
	}
	logs := []model.IntakeLog{
		{MedicationID: medID, Timestamp: monday(8, 50, 0), Taken: true},
	}

	ref := monday(14, 0, 0)
	resolved := Resolve(ref, meds, logs)
	require.Len(t, resolved, 4)

	b := Classify(ref, resolved)
	seen := make(map[string]int)
	for _, bucket := range [][]Instance{b.Due, b.Upcoming, b.Taken, b.Missed} {
		for _, inst := range bucket {
			seen[inst.ID]++
		}
	}

	assert.Len(t, seen, len(resolved))
	for _, inst := range resolved {
		assert.Equal(t, 1, seen[inst.ID], "instance %s must land in exactly one bucket", inst.ID)
	}
}
