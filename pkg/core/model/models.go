package model

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

// RoomType is the kind of room a subject needs
type RoomType string

const (
	RoomTheory    RoomType = "theory"
	RoomPractical RoomType = "practical"
)

// Valid reports whether t is a known room type
func (t RoomType) Valid() bool {
	return t == RoomTheory || t == RoomPractical
}

// ParseRoomType converts a string to a RoomType
func ParseRoomType(s string) (RoomType, error) {
	t := RoomType(s)
	if !t.Valid() {
		return "", &ConfigError{Field: "room type", Value: s, Reason: "must be theory or practical"}
	}
	return t, nil
}

// Pattern grants the listed periods on each day, for every week the expression selects
type Pattern struct {
	Weeks string
	Days  map[Weekday][]Period
}

// Exception is a point override on one day of one week
type Exception struct {
	Week   int
	Day    Weekday
	Remove []Period
	Add    []Period
}

// Blackout removes both periods for every listed day in the week range.
// An empty Days list means every teaching day.
type Blackout struct {
	FromWeek int
	ToWeek   int
	Days     []Weekday
}

// AvailabilityRules is the declarative availability of a lecturer.
// Explicit holds the legacy list of individually granted slots.
type AvailabilityRules struct {
	Patterns   []Pattern
	Exceptions []Exception
	Blackouts  []Blackout
	Explicit   []Slot
}

// Subject is a course that needs a fixed number of blocks
type Subject struct {
	ID             string   `validate:"required"`
	Name           string
	RequiredBlocks int      `validate:"min=1"`
	RoomType       RoomType `validate:"required"`
	Spread         bool
	MixingGroup    string
}

// Lecturer teaches exactly one subject.
// Availability is filled by the availability resolver; empty means always available.
type Lecturer struct {
	ID           string `validate:"required"`
	Name         string
	SubjectID    string `validate:"required"`
	Priority     int    `validate:"min=1"`
	Rules        AvailabilityRules
	Availability SlotSet
}

// Constrained reports whether the lecturer may only teach inside their resolved availability.
// Lecturers ranked beyond the cutoff, or with no availability at all, can teach at any slot.
func (l *Lecturer) Constrained(cutoff int) bool {
	return l.Priority <= cutoff && l.Availability.Len() > 0
}

// Room is a bookable room. Capacity is informational only.
type Room struct {
	ID       string   `validate:"required"`
	Name     string
	RoomType RoomType `validate:"required"`
	Capacity int      `validate:"min=0"`
	Number   string
}

// StudentGroup attends the listed subjects
type StudentGroup struct {
	ID         string `validate:"required"`
	Name       string
	SubjectIDs []string
}

// Attends reports whether the group takes the subject
func (g StudentGroup) Attends(subjectID string) bool {
	return slices.Contains(g.SubjectIDs, subjectID)
}

// ScheduledBlock is one committed teaching session
type ScheduledBlock struct {
	SubjectID  string
	LecturerID string
	RoomID     string
	GroupID    string
	Slot       Slot
	BlockIndex int
	// Phase names the allocation phase that committed the block
	Phase string
}

func (b ScheduledBlock) String() string {
	return fmt.Sprintf("%s #%d at %s (lecturer %s, room %s, group %s)",
		b.SubjectID, b.BlockIndex, b.Slot, b.LecturerID, b.RoomID, b.GroupID)
}

// SortBlocks orders blocks chronologically, then by subject and block index
func SortBlocks(blocks []ScheduledBlock) {
	slices.SortFunc(blocks, func(a, b ScheduledBlock) int {
		if c := a.Slot.Compare(b.Slot); c != 0 {
			return c
		}
		if c := strings.Compare(a.SubjectID, b.SubjectID); c != 0 {
			return c
		}
		return cmp.Compare(a.BlockIndex, b.BlockIndex)
	})
}

const (
	DefaultPriorityCutoff    = 5
	DefaultPriorityLecturers = 5
	DefaultDaysPerWeek       = 5
	DefaultPeriodsPerDay     = 2
)

// Entities is the complete input of one allocation run
type Entities struct {
	Horizon Horizon

	// PriorityCutoff is the largest priority rank still treated as a priority lecturer
	PriorityCutoff int `validate:"min=0"`

	// PriorityLecturers is how many priority lecturers the priority phase processes
	PriorityLecturers int `validate:"min=0"`

	Subjects  []Subject      `validate:"dive"`
	Lecturers []Lecturer     `validate:"dive"`
	Rooms     []Room         `validate:"dive"`
	Groups    []StudentGroup `validate:"dive"`
}

// ApplyDefaults fills unset priority settings and horizon dimensions.
// Weeks has no default.
func (e *Entities) ApplyDefaults() {
	if e.Horizon.DaysPerWeek == 0 {
		e.Horizon.DaysPerWeek = DefaultDaysPerWeek
	}
	if e.Horizon.PeriodsPerDay == 0 {
		e.Horizon.PeriodsPerDay = DefaultPeriodsPerDay
	}
	if e.PriorityCutoff == 0 {
		e.PriorityCutoff = DefaultPriorityCutoff
	}
	if e.PriorityLecturers == 0 {
		e.PriorityLecturers = DefaultPriorityLecturers
	}
}

// Subject looks up a subject by id
func (e *Entities) Subject(id string) (Subject, bool) {
	for _, s := range e.Subjects {
		if s.ID == id {
			return s, true
		}
	}
	return Subject{}, false
}

// Lecturer looks up a lecturer by id
func (e *Entities) Lecturer(id string) (Lecturer, bool) {
	for _, l := range e.Lecturers {
		if l.ID == id {
			return l, true
		}
	}
	return Lecturer{}, false
}

// TotalRequiredBlocks sums RequiredBlocks across all subjects
func (e *Entities) TotalRequiredBlocks() int {
	total := 0
	for _, s := range e.Subjects {
		total += s.RequiredBlocks
	}
	return total
}
