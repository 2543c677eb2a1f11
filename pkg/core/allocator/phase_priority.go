package allocator

import (
	"cmp"
	"slices"

	"go.uber.org/zap"

	"github.com/jakechorley/semester-planner/pkg/core/model"
)

// PriorityPhase schedules the most important lecturers' subjects strictly inside their availability
type PriorityPhase struct{}

func (p *PriorityPhase) Name() string {
	return PhasePriority
}

func (p *PriorityPhase) Run(state *ScheduleState) error {
	for _, lecturer := range priorityLecturers(state) {
		subject := state.Subject(lecturer.SubjectID)
		if subject == nil {
			continue
		}

		for _, slot := range lecturer.Availability.Sorted() {
			if state.Remaining(subject) == 0 {
				break
			}
			if !state.Horizon.Contains(slot) {
				continue
			}
			if _, err := state.tryPlace(subject, slot, p.Name()); err != nil {
				return err
			}
		}

		state.logger.Debug("Priority lecturer processed",
			zap.String("lecturer", lecturer.ID),
			zap.Int("priority", lecturer.Priority),
			zap.String("subject", subject.ID),
			zap.Int("scheduled", state.Scheduled(subject.ID)),
			zap.Int("required", subject.RequiredBlocks))
	}
	return nil
}

// priorityLecturers returns the lecturers ranked within the cutoff, ordered by
// rank then id, limited to the configured count
func priorityLecturers(state *ScheduleState) []*model.Lecturer {
	var ranked []*model.Lecturer
	for _, l := range state.Lecturers {
		if l.Priority <= state.PriorityCutoff {
			ranked = append(ranked, l)
		}
	}

	slices.SortFunc(ranked, func(a, b *model.Lecturer) int {
		if c := cmp.Compare(a.Priority, b.Priority); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})

	if len(ranked) > state.PriorityLecturers {
		ranked = ranked[:state.PriorityLecturers]
	}
	return ranked
}
