package allocator

import "github.com/jakechorley/semester-planner/pkg/core/model"

// occupancy is the key of a busy entry: one resource at one slot
type occupancy struct {
	id   string
	slot model.Slot
}

// Registry tracks which lecturers, rooms and groups are already booked.
// It is the only gatekeeper for conflict freedom and is not safe for concurrent use.
type Registry struct {
	lecturers map[occupancy]struct{}
	rooms     map[occupancy]struct{}
	groups    map[occupancy]struct{}
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		lecturers: make(map[occupancy]struct{}),
		rooms:     make(map[occupancy]struct{}),
		groups:    make(map[occupancy]struct{}),
	}
}

func (r *Registry) LecturerFree(lecturerID string, slot model.Slot) bool {
	_, busy := r.lecturers[occupancy{lecturerID, slot}]
	return !busy
}

func (r *Registry) RoomFree(roomID string, slot model.Slot) bool {
	_, busy := r.rooms[occupancy{roomID, slot}]
	return !busy
}

func (r *Registry) GroupFree(groupID string, slot model.Slot) bool {
	_, busy := r.groups[occupancy{groupID, slot}]
	return !busy
}

// IsFree reports whether the lecturer, room and group are all free at the slot
func (r *Registry) IsFree(lecturerID, roomID, groupID string, slot model.Slot) bool {
	return r.LecturerFree(lecturerID, slot) && r.RoomFree(roomID, slot) && r.GroupFree(groupID, slot)
}

// Commit books the block's lecturer, room and group at its slot.
// Callers must check IsFree first; a double booking returns a *model.ConflictError
// and leaves the registry unchanged.
func (r *Registry) Commit(block model.ScheduledBlock) error {
	switch {
	case !r.LecturerFree(block.LecturerID, block.Slot):
		return &model.ConflictError{Resource: "lecturer", ID: block.LecturerID, Slot: block.Slot}
	case !r.RoomFree(block.RoomID, block.Slot):
		return &model.ConflictError{Resource: "room", ID: block.RoomID, Slot: block.Slot}
	case !r.GroupFree(block.GroupID, block.Slot):
		return &model.ConflictError{Resource: "group", ID: block.GroupID, Slot: block.Slot}
	}

	r.lecturers[occupancy{block.LecturerID, block.Slot}] = struct{}{}
	r.rooms[occupancy{block.RoomID, block.Slot}] = struct{}{}
	r.groups[occupancy{block.GroupID, block.Slot}] = struct{}{}
	return nil
}

