package allocator

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jakechorley/semester-planner/pkg/core/model"
)

func slot(week int, day model.Weekday, period model.Period) model.Slot {
	return model.Slot{Week: week, Day: day, Period: period}
}

// newTestEntities returns a horizon of the given number of full weeks with one theory room,
// one practical room and no subjects
func newTestEntities(weeks int) model.Entities {
	return model.Entities{
		Horizon:           model.Horizon{Weeks: weeks, DaysPerWeek: 5, PeriodsPerDay: 2},
		PriorityCutoff:    5,
		PriorityLecturers: 5,
		Rooms: []model.Room{
			{ID: "T1", RoomType: model.RoomTheory, Capacity: 50},
			{ID: "P1", RoomType: model.RoomPractical, Capacity: 20},
		},
	}
}

// addSubject registers a subject with its lecturer and adds it to group G1
func addSubject(e *model.Entities, subject model.Subject, lecturer model.Lecturer) {
	lecturer.SubjectID = subject.ID
	e.Subjects = append(e.Subjects, subject)
	e.Lecturers = append(e.Lecturers, lecturer)

	for i := range e.Groups {
		if e.Groups[i].ID == "G1" {
			e.Groups[i].SubjectIDs = append(e.Groups[i].SubjectIDs, subject.ID)
			return
		}
	}
	e.Groups = append(e.Groups, model.StudentGroup{ID: "G1", SubjectIDs: []string{subject.ID}})
}

func runPhases(t *testing.T, e model.Entities, phases ...Phase) *AllocationOutcome {
	t.Helper()
	outcome, err := Allocate(context.Background(), AllocationConfig{Entities: e, Phases: phases})
	require.NoError(t, err)
	require.Empty(t, outcome.Violations)
	return outcome
}

func blocksFor(outcome *AllocationOutcome, subjectID string) []model.ScheduledBlock {
	var out []model.ScheduledBlock
	for _, b := range outcome.Blocks {
		if b.SubjectID == subjectID {
			out = append(out, b)
		}
	}
	return out
}

func slotsOf(blocks []model.ScheduledBlock) []model.Slot {
	out := make([]model.Slot, len(blocks))
	for i, b := range blocks {
		out[i] = b.Slot
	}
	return out
}
