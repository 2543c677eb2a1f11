package allocator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jakechorley/semester-planner/pkg/core/model"
)

func TestComputeStatistics(t *testing.T) {
	e := newTestEntities(10)
	addSubject(&e, model.Subject{ID: "S1", Name: "Ethics", RequiredBlocks: 4, RoomType: model.RoomTheory, Spread: true},
		model.Lecturer{ID: "L1", Name: "Ada", Priority: 9})
	addSubject(&e, model.Subject{ID: "S2", RequiredBlocks: 2, RoomType: model.RoomPractical},
		model.Lecturer{ID: "L2", Priority: 1, Availability: model.NewSlotSet(slot(3, model.Friday, model.Afternoon))})

	outcome := runPhases(t, e)
	stats := outcome.Stats

	require.Len(t, stats.Subjects, 2)
	ethics := stats.Subjects[0]
	assert.Equal(t, "S1", ethics.SubjectID)
	assert.Equal(t, 4, ethics.Scheduled)
	assert.Equal(t, 0, ethics.Shortfall())
	// Spread targets at 20, 40, 60 and 80 are two weeks apart
	assert.InDelta(t, 20.0, ethics.AverageGap, 1e-9)
	assert.InDelta(t, 2.0, ethics.AverageGapWeeks, 1e-9)

	practical := stats.Subjects[1]
	assert.Equal(t, 1, practical.Scheduled)
	assert.Equal(t, 1, practical.Shortfall())
	assert.Zero(t, practical.AverageGap)

	require.Len(t, stats.Lecturers, 2)
	assert.False(t, stats.Lecturers[0].Constrained)
	assert.Equal(t, 4, stats.Lecturers[0].Blocks)
	assert.True(t, stats.Lecturers[1].Constrained)
	assert.Equal(t, 1, stats.Lecturers[1].AvailableSlots)

	require.Len(t, stats.Rooms, 2)
	assert.Equal(t, "P1", stats.Rooms[0].RoomID)
	assert.InDelta(t, 0.01, stats.Rooms[0].Utilization, 1e-9)
	assert.Equal(t, "T1", stats.Rooms[1].RoomID)
	assert.InDelta(t, 0.04, stats.Rooms[1].Utilization, 1e-9)

	assert.Equal(t, map[string]int{PhasePriority: 1, PhaseSpread: 4}, stats.Phases)
	assert.Equal(t, 6, stats.TotalRequired)
	assert.Equal(t, 5, stats.TotalScheduled)
}

func TestAverageGap_UsesChronologicalOrder(t *testing.T) {
	h := model.Horizon{Weeks: 4, DaysPerWeek: 5, PeriodsPerDay: 2}
	blocks := []model.ScheduledBlock{
		{Slot: slot(4, model.Monday, model.Morning)},
		{Slot: slot(1, model.Monday, model.Morning)},
		{Slot: slot(2, model.Monday, model.Morning)},
	}

	gap, weeks := averageGap(h, blocks)
	assert.InDelta(t, 15.0, gap, 1e-9)
	assert.InDelta(t, 1.5, weeks, 1e-9)
}
