package allocator

import (
	"slices"

	"github.com/samber/lo"

	"github.com/jakechorley/semester-planner/pkg/core/model"
)

// SubjectStats compares what a subject received with what it needed
type SubjectStats struct {
	SubjectID string
	Name      string
	Required  int
	Scheduled int
	Spread    bool

	// AverageGap is the mean distance, in slot index, between chronologically consecutive blocks.
	// Zero when fewer than two blocks were scheduled.
	AverageGap float64

	// AverageGapWeeks is the same distance measured in weeks
	AverageGapWeeks float64
}

// Shortfall is the number of blocks the subject is missing
func (s SubjectStats) Shortfall() int {
	return max(s.Required-s.Scheduled, 0)
}

// LecturerStats summarises a lecturer's teaching load
type LecturerStats struct {
	LecturerID  string
	Name        string
	SubjectID   string
	Priority    int
	Constrained bool

	// AvailableSlots is the size of the resolved availability; zero means unrestricted
	AvailableSlots int
	Blocks         int
}

// RoomStats summarises how much a room is used
type RoomStats struct {
	RoomID   string
	Name     string
	RoomType model.RoomType
	Blocks   int

	// Utilization is Blocks divided by the number of slots in the horizon
	Utilization float64
}

// Statistics is derived from a finished schedule
type Statistics struct {
	Subjects  []SubjectStats
	Lecturers []LecturerStats
	Rooms     []RoomStats

	// Phases counts committed blocks per phase name
	Phases map[string]int

	TotalRequired  int
	TotalScheduled int
}

// ComputeStatistics derives per-subject, per-lecturer, per-room and per-phase figures
func ComputeStatistics(state *ScheduleState) Statistics {
	bySubject := lo.GroupBy(state.Blocks, func(b model.ScheduledBlock) string { return b.SubjectID })
	byLecturer := lo.CountValuesBy(state.Blocks, func(b model.ScheduledBlock) string { return b.LecturerID })
	byRoom := lo.CountValuesBy(state.Blocks, func(b model.ScheduledBlock) string { return b.RoomID })

	stats := Statistics{
		Phases:         lo.CountValuesBy(state.Blocks, func(b model.ScheduledBlock) string { return b.Phase }),
		TotalRequired:  lo.SumBy(state.Subjects, func(s *model.Subject) int { return s.RequiredBlocks }),
		TotalScheduled: len(state.Blocks),
	}

	for _, subject := range state.Subjects {
		blocks := bySubject[subject.ID]
		gap, gapWeeks := averageGap(state.Horizon, blocks)
		stats.Subjects = append(stats.Subjects, SubjectStats{
			SubjectID:       subject.ID,
			Name:            subject.Name,
			Required:        subject.RequiredBlocks,
			Scheduled:       len(blocks),
			Spread:          subject.Spread,
			AverageGap:      gap,
			AverageGapWeeks: gapWeeks,
		})
	}

	for _, lecturer := range state.Lecturers {
		stats.Lecturers = append(stats.Lecturers, LecturerStats{
			LecturerID:     lecturer.ID,
			Name:           lecturer.Name,
			SubjectID:      lecturer.SubjectID,
			Priority:       lecturer.Priority,
			Constrained:    state.IsConstrained(lecturer),
			AvailableSlots: lecturer.Availability.Len(),
			Blocks:         byLecturer[lecturer.ID],
		})
	}

	size := float64(state.Horizon.Size())
	for _, room := range state.Rooms {
		count := byRoom[room.ID]
		stats.Rooms = append(stats.Rooms, RoomStats{
			RoomID:      room.ID,
			Name:        room.Name,
			RoomType:    room.RoomType,
			Blocks:      count,
			Utilization: float64(count) / size,
		})
	}

	return stats
}

// averageGap returns the mean distance between consecutive blocks in slot index and in weeks
func averageGap(h model.Horizon, blocks []model.ScheduledBlock) (float64, float64) {
	if len(blocks) < 2 {
		return 0, 0
	}

	indices := lo.Map(blocks, func(b model.ScheduledBlock, _ int) int { return h.Index(b.Slot) })
	weeks := lo.Map(blocks, func(b model.ScheduledBlock, _ int) int { return b.Slot.Week })
	slices.Sort(indices)
	slices.Sort(weeks)

	span := float64(indices[len(indices)-1] - indices[0])
	weekSpan := float64(weeks[len(weeks)-1] - weeks[0])
	n := float64(len(blocks) - 1)
	return span / n, weekSpan / n
}
