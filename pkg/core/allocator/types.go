package allocator

import (
	"cmp"
	"slices"

	"go.uber.org/zap"

	"github.com/jakechorley/semester-planner/pkg/core/model"
)

// ScheduleState is the allocation context of one run.
// It is created by Allocate, threaded through every phase by reference and discarded on return.
type ScheduleState struct {
	Horizon model.Horizon

	// Slots is every published slot in canonical order
	Slots []model.Slot

	// PriorityCutoff is the largest priority rank whose lecturers are bound to their availability
	PriorityCutoff int

	// PriorityLecturers is the number of lecturers the priority phase processes
	PriorityLecturers int

	// Subjects sorted by id
	Subjects []*model.Subject

	// Lecturers sorted by id
	Lecturers []*model.Lecturer

	// Rooms sorted by id
	Rooms []*model.Room

	// Registry holds every booking committed so far
	Registry *Registry

	// Blocks in commit order
	Blocks []model.ScheduledBlock

	subjectByID       map[string]*model.Subject
	lecturerBySubject map[string]*model.Lecturer
	roomsByType       map[model.RoomType][]*model.Room
	groupsBySubject   map[string][]*model.StudentGroup
	scheduled         map[string]int
	logger            *zap.Logger
}

// placement is a feasible lecturer, room and group combination for one slot
type placement struct {
	lecturer *model.Lecturer
	room     *model.Room
	group    *model.StudentGroup
}

func newScheduleState(entities model.Entities, logger *zap.Logger) *ScheduleState {
	state := &ScheduleState{
		Horizon:           entities.Horizon,
		Slots:             entities.Horizon.Slots(),
		PriorityCutoff:    entities.PriorityCutoff,
		PriorityLecturers: entities.PriorityLecturers,
		Registry:          NewRegistry(),
		subjectByID:       make(map[string]*model.Subject, len(entities.Subjects)),
		lecturerBySubject: make(map[string]*model.Lecturer, len(entities.Lecturers)),
		roomsByType:       make(map[model.RoomType][]*model.Room),
		groupsBySubject:   make(map[string][]*model.StudentGroup),
		scheduled:         make(map[string]int, len(entities.Subjects)),
		logger:            logger,
	}

	for _, s := range entities.Subjects {
		subject := &s
		state.Subjects = append(state.Subjects, subject)
		state.subjectByID[s.ID] = subject
	}
	slices.SortFunc(state.Subjects, func(a, b *model.Subject) int { return cmp.Compare(a.ID, b.ID) })

	for _, l := range entities.Lecturers {
		lecturer := &l
		state.Lecturers = append(state.Lecturers, lecturer)
		state.lecturerBySubject[l.SubjectID] = lecturer
	}
	slices.SortFunc(state.Lecturers, func(a, b *model.Lecturer) int { return cmp.Compare(a.ID, b.ID) })

	for _, r := range entities.Rooms {
		room := &r
		state.Rooms = append(state.Rooms, room)
		state.roomsByType[r.RoomType] = append(state.roomsByType[r.RoomType], room)
	}
	slices.SortFunc(state.Rooms, func(a, b *model.Room) int { return cmp.Compare(a.ID, b.ID) })
	for _, rooms := range state.roomsByType {
		slices.SortFunc(rooms, func(a, b *model.Room) int { return cmp.Compare(a.ID, b.ID) })
	}

	for _, g := range entities.Groups {
		group := &g
		for _, subjectID := range g.SubjectIDs {
			state.groupsBySubject[subjectID] = append(state.groupsBySubject[subjectID], group)
		}
	}
	for _, groups := range state.groupsBySubject {
		slices.SortFunc(groups, func(a, b *model.StudentGroup) int { return cmp.Compare(a.ID, b.ID) })
	}

	return state
}

// Subject returns the subject with the given id, or nil
func (s *ScheduleState) Subject(id string) *model.Subject {
	return s.subjectByID[id]
}

// LecturerFor returns the lecturer teaching the subject, or nil
func (s *ScheduleState) LecturerFor(subjectID string) *model.Lecturer {
	return s.lecturerBySubject[subjectID]
}

// Scheduled returns the number of blocks committed for a subject
func (s *ScheduleState) Scheduled(subjectID string) int {
	return s.scheduled[subjectID]
}

// Remaining returns the number of blocks a subject still needs
func (s *ScheduleState) Remaining(subject *model.Subject) int {
	return max(subject.RequiredBlocks-s.scheduled[subject.ID], 0)
}

// IsConstrained applies the run's priority cutoff to the lecturer
func (s *ScheduleState) IsConstrained(l *model.Lecturer) bool {
	return l.Constrained(s.PriorityCutoff)
}

// LecturerAvailable reports whether the lecturer may teach at the slot and is not yet booked there
func (s *ScheduleState) LecturerAvailable(l *model.Lecturer, slot model.Slot) bool {
	if !s.Registry.LecturerFree(l.ID, slot) {
		return false
	}
	return !s.IsConstrained(l) || l.Availability.Has(slot)
}

// findPlacement returns the lecturer, lowest-id free room and lowest-id free eligible group for
// the subject at the slot. The per-resource checks pick the candidates; IsFree confirms the combination.
func (s *ScheduleState) findPlacement(subject *model.Subject, slot model.Slot) (placement, bool) {
	lecturer := s.lecturerBySubject[subject.ID]
	if lecturer == nil || !s.LecturerAvailable(lecturer, slot) {
		return placement{}, false
	}

	var room *model.Room
	for _, candidate := range s.roomsByType[subject.RoomType] {
		if s.Registry.RoomFree(candidate.ID, slot) {
			room = candidate
			break
		}
	}
	if room == nil {
		return placement{}, false
	}

	var group *model.StudentGroup
	for _, candidate := range s.groupsBySubject[subject.ID] {
		if s.Registry.GroupFree(candidate.ID, slot) {
			group = candidate
			break
		}
	}
	if group == nil || !s.Registry.IsFree(lecturer.ID, room.ID, group.ID, slot) {
		return placement{}, false
	}

	return placement{lecturer: lecturer, room: room, group: group}, true
}

// commit books the placement and records the block under the subject's next block index
func (s *ScheduleState) commit(subject *model.Subject, p placement, slot model.Slot, phase string) error {
	block := model.ScheduledBlock{
		SubjectID:  subject.ID,
		LecturerID: p.lecturer.ID,
		RoomID:     p.room.ID,
		GroupID:    p.group.ID,
		Slot:       slot,
		BlockIndex: s.scheduled[subject.ID] + 1,
		Phase:      phase,
	}

	if err := s.Registry.Commit(block); err != nil {
		return err
	}

	s.Blocks = append(s.Blocks, block)
	s.scheduled[subject.ID] = block.BlockIndex

	s.logger.Debug("Committed block",
		zap.String("phase", phase),
		zap.String("subject", block.SubjectID),
		zap.Int("block_index", block.BlockIndex),
		zap.Stringer("slot", slot),
		zap.String("lecturer", block.LecturerID),
		zap.String("room", block.RoomID),
		zap.String("group", block.GroupID))

	return nil
}

// tryPlace commits the subject at the slot when a placement exists
func (s *ScheduleState) tryPlace(subject *model.Subject, slot model.Slot, phase string) (bool, error) {
	p, ok := s.findPlacement(subject, slot)
	if !ok {
		return false, nil
	}
	if err := s.commit(subject, p, slot, phase); err != nil {
		return false, err
	}
	return true, nil
}
