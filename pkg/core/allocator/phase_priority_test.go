package allocator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jakechorley/semester-planner/pkg/core/model"
)

func TestAllocate_PriorityLecturerWithinAvailability(t *testing.T) {
	e := newTestEntities(15)
	addSubject(&e,
		model.Subject{ID: "S1", RequiredBlocks: 2, RoomType: model.RoomTheory},
		model.Lecturer{ID: "L1", Priority: 1, Availability: model.NewSlotSet(
			slot(1, model.Monday, model.Morning),
			slot(2, model.Monday, model.Morning),
		)},
	)

	outcome := runPhases(t, e)

	require.Len(t, outcome.Blocks, 2)
	assert.Equal(t, slot(1, model.Monday, model.Morning), outcome.Blocks[0].Slot)
	assert.Equal(t, slot(2, model.Monday, model.Morning), outcome.Blocks[1].Slot)
	assert.Equal(t, 1, outcome.Blocks[0].BlockIndex)
	assert.Equal(t, 2, outcome.Blocks[1].BlockIndex)
	assert.Equal(t, PhasePriority, outcome.Blocks[0].Phase)
	assert.True(t, outcome.Success)
}

func TestPriorityPhase_RankThenIDOrder(t *testing.T) {
	only := model.NewSlotSet(slot(1, model.Monday, model.Morning))

	e := newTestEntities(2)
	addSubject(&e, model.Subject{ID: "S-b", RequiredBlocks: 1, RoomType: model.RoomTheory},
		model.Lecturer{ID: "LB", Priority: 1, Availability: only})
	addSubject(&e, model.Subject{ID: "S-a", RequiredBlocks: 1, RoomType: model.RoomTheory},
		model.Lecturer{ID: "LA", Priority: 1, Availability: only})
	addSubject(&e, model.Subject{ID: "S-0", RequiredBlocks: 1, RoomType: model.RoomTheory},
		model.Lecturer{ID: "L0", Priority: 2, Availability: only})

	outcome := runPhases(t, e, &PriorityPhase{})

	// One theory room and one group: only the first lecturer processed gets the slot
	require.Len(t, outcome.Blocks, 1)
	assert.Equal(t, "LA", outcome.Blocks[0].LecturerID)
}

func TestPriorityPhase_TopNLimit(t *testing.T) {
	e := newTestEntities(2)
	e.PriorityLecturers = 2
	e.Rooms = append(e.Rooms, model.Room{ID: "T2", RoomType: model.RoomTheory}, model.Room{ID: "T3", RoomType: model.RoomTheory})
	for _, l := range []model.Lecturer{
		{ID: "L1", Priority: 3},
		{ID: "L2", Priority: 1},
		{ID: "L3", Priority: 2},
	} {
		l.Availability = model.NewSlotSet(slot(1, model.Tuesday, model.Morning))
		addSubject(&e, model.Subject{ID: "S" + l.ID, RequiredBlocks: 1, RoomType: model.RoomTheory}, l)
	}
	// Separate groups so the lecturers do not compete for one
	e.Groups = []model.StudentGroup{
		{ID: "G1", SubjectIDs: []string{"SL1"}},
		{ID: "G2", SubjectIDs: []string{"SL2"}},
		{ID: "G3", SubjectIDs: []string{"SL3"}},
	}

	outcome := runPhases(t, e, &PriorityPhase{})

	lecturers := make([]string, 0, len(outcome.Blocks))
	for _, b := range outcome.Blocks {
		lecturers = append(lecturers, b.LecturerID)
	}
	assert.Equal(t, []string{"L2", "L3"}, lecturers, "only the two best-ranked lecturers are processed, best first")
}

func TestPriorityPhase_IgnoresLecturersBeyondCutoff(t *testing.T) {
	e := newTestEntities(2)
	addSubject(&e, model.Subject{ID: "S1", RequiredBlocks: 1, RoomType: model.RoomTheory},
		model.Lecturer{ID: "L1", Priority: 6, Availability: model.NewSlotSet(slot(2, model.Friday, model.Afternoon))})

	outcome := runPhases(t, e, &PriorityPhase{})
	assert.Empty(t, outcome.Blocks)

	// Beyond the cutoff the lecturer is unconstrained, so the remainder pass may use any slot
	outcome = runPhases(t, e)
	require.Len(t, outcome.Blocks, 1)
	assert.Equal(t, slot(1, model.Monday, model.Morning), outcome.Blocks[0].Slot)
}

func TestPriorityPhase_PicksLowestIDRoomAndGroup(t *testing.T) {
	e := newTestEntities(1)
	e.Rooms = []model.Room{
		{ID: "T9", RoomType: model.RoomTheory},
		{ID: "T2", RoomType: model.RoomTheory},
		{ID: "P1", RoomType: model.RoomPractical},
	}
	addSubject(&e, model.Subject{ID: "S1", RequiredBlocks: 1, RoomType: model.RoomTheory},
		model.Lecturer{ID: "L1", Priority: 1, Availability: model.NewSlotSet(slot(1, model.Monday, model.Morning))})
	e.Groups = []model.StudentGroup{
		{ID: "G7", SubjectIDs: []string{"S1"}},
		{ID: "G3", SubjectIDs: []string{"S1"}},
	}

	outcome := runPhases(t, e, &PriorityPhase{})

	require.Len(t, outcome.Blocks, 1)
	assert.Equal(t, "T2", outcome.Blocks[0].RoomID)
	assert.Equal(t, "G3", outcome.Blocks[0].GroupID)
}

func TestAllocate_ConstrainedLecturerNeverLeavesAvailability(t *testing.T) {
	e := newTestEntities(4)
	addSubject(&e, model.Subject{ID: "S1", RequiredBlocks: 3, RoomType: model.RoomTheory, Spread: true},
		model.Lecturer{ID: "L1", Priority: 2, Availability: model.NewSlotSet(slot(3, model.Wednesday, model.Afternoon))})

	outcome := runPhases(t, e)

	require.Len(t, outcome.Blocks, 1)
	assert.Equal(t, slot(3, model.Wednesday, model.Afternoon), outcome.Blocks[0].Slot)
	assert.False(t, outcome.Success)
	assert.Equal(t, []model.CapacityWarning{{SubjectID: "S1", Required: 3, Scheduled: 1}}, outcome.Warnings)
}

func TestAllocate_PriorityLecturerWithoutAvailabilityIsUnconstrained(t *testing.T) {
	e := newTestEntities(2)
	addSubject(&e, model.Subject{ID: "S1", RequiredBlocks: 2, RoomType: model.RoomTheory},
		model.Lecturer{ID: "L1", Priority: 1})

	outcome := runPhases(t, e)

	require.Len(t, outcome.Blocks, 2)
	assert.Equal(t, []model.Slot{
		slot(1, model.Monday, model.Morning),
		slot(1, model.Monday, model.Afternoon),
	}, slotsOf(outcome.Blocks))
	assert.Equal(t, PhaseRemainder, outcome.Blocks[0].Phase)
	assert.True(t, outcome.Success)

	require.Len(t, outcome.Stats.Lecturers, 1)
	assert.False(t, outcome.Stats.Lecturers[0].Constrained)
	assert.Equal(t, 0, outcome.Stats.Lecturers[0].AvailableSlots)
}
