package allocator

import (
	"fmt"
	"slices"

	"github.com/jakechorley/semester-planner/pkg/core/model"
)

// Check names used in schedule violations
const (
	CheckConflict     = "Conflict"
	CheckBlockIndex   = "BlockIndex"
	CheckAvailability = "Availability"
	CheckAssignment   = "Assignment"
	CheckHorizon      = "Horizon"
)

// ScheduleViolation describes a block that breaks a schedule invariant
type ScheduleViolation struct {
	Check       string
	SubjectID   string
	Slot        model.Slot
	Description string
}

// ValidateSchedule checks the committed blocks against the schedule invariants.
// An empty result means the schedule is valid.
func ValidateSchedule(state *ScheduleState) []ScheduleViolation {
	var violations []ScheduleViolation
	violations = append(violations, validateConflicts(state)...)
	violations = append(violations, validateBlockIndices(state)...)
	violations = append(violations, validateAssignments(state)...)
	return violations
}

// validateConflicts compares every pair of blocks sharing a slot
func validateConflicts(state *ScheduleState) []ScheduleViolation {
	var violations []ScheduleViolation

	for i := 0; i < len(state.Blocks); i++ {
		a := state.Blocks[i]
		for j := i + 1; j < len(state.Blocks); j++ {
			b := state.Blocks[j]
			if a.Slot != b.Slot {
				continue
			}
			for _, clash := range []struct {
				resource string
				x, y     string
			}{
				{"lecturer", a.LecturerID, b.LecturerID},
				{"room", a.RoomID, b.RoomID},
				{"group", a.GroupID, b.GroupID},
			} {
				if clash.x == clash.y {
					violations = append(violations, ScheduleViolation{
						Check:     CheckConflict,
						SubjectID: b.SubjectID,
						Slot:      b.Slot,
						Description: fmt.Sprintf("%s %s is booked for both %s #%d and %s #%d",
							clash.resource, clash.x, a.SubjectID, a.BlockIndex, b.SubjectID, b.BlockIndex),
					})
				}
			}
		}
	}

	return violations
}

// validateBlockIndices checks that each subject uses exactly 1..k with k <= required
func validateBlockIndices(state *ScheduleState) []ScheduleViolation {
	var violations []ScheduleViolation

	indices := make(map[string][]int)
	for _, b := range state.Blocks {
		indices[b.SubjectID] = append(indices[b.SubjectID], b.BlockIndex)
	}

	for _, subject := range state.Subjects {
		used := indices[subject.ID]
		slices.Sort(used)

		for i, idx := range used {
			if idx != i+1 {
				violations = append(violations, ScheduleViolation{
					Check:       CheckBlockIndex,
					SubjectID:   subject.ID,
					Description: fmt.Sprintf("subject %s block indices %v are not 1..%d", subject.ID, used, len(used)),
				})
				break
			}
		}

		if len(used) > subject.RequiredBlocks {
			violations = append(violations, ScheduleViolation{
				Check:       CheckBlockIndex,
				SubjectID:   subject.ID,
				Description: fmt.Sprintf("subject %s has %d blocks but requires only %d", subject.ID, len(used), subject.RequiredBlocks),
			})
		}
	}

	return violations
}

// validateAssignments checks each block's slot, lecturer, room and group individually
func validateAssignments(state *ScheduleState) []ScheduleViolation {
	var violations []ScheduleViolation

	rooms := make(map[string]*model.Room, len(state.Rooms))
	for _, r := range state.Rooms {
		rooms[r.ID] = r
	}

	for _, b := range state.Blocks {
		violation := func(check, format string, args ...any) {
			violations = append(violations, ScheduleViolation{
				Check:       check,
				SubjectID:   b.SubjectID,
				Slot:        b.Slot,
				Description: fmt.Sprintf(format, args...),
			})
		}

		if !state.Horizon.Contains(b.Slot) {
			violation(CheckHorizon, "%s is outside the horizon", b)
		}

		subject := state.Subject(b.SubjectID)
		if subject == nil {
			violation(CheckAssignment, "%s references an unknown subject", b)
			continue
		}

		lecturer := state.LecturerFor(subject.ID)
		switch {
		case lecturer == nil || lecturer.ID != b.LecturerID:
			violation(CheckAssignment, "%s is not taught by the subject's lecturer", b)
		case state.IsConstrained(lecturer) && !lecturer.Availability.Has(b.Slot):
			violation(CheckAvailability, "%s is outside lecturer %s's availability", b, lecturer.ID)
		}

		if room, ok := rooms[b.RoomID]; !ok || room.RoomType != subject.RoomType {
			violation(CheckAssignment, "%s uses a room that is not of type %s", b, subject.RoomType)
		}

		if !slices.ContainsFunc(state.groupsBySubject[subject.ID], func(g *model.StudentGroup) bool { return g.ID == b.GroupID }) {
			violation(CheckAssignment, "%s uses group %s which does not attend the subject", b, b.GroupID)
		}
	}

	return violations
}
