package model

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

// Weekday is a teaching day. Declaration order is the canonical ordering.
type Weekday int

const (
	Monday Weekday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
)

// AllWeekdays lists every teaching day in canonical order
var AllWeekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday}

var weekdayNames = [...]string{"Mon", "Tue", "Wed", "Thu", "Fri"}
var weekdayLongNames = [...]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"}

func (d Weekday) String() string {
	if !d.Valid() {
		return fmt.Sprintf("Weekday(%d)", int(d))
	}
	return weekdayNames[d]
}

// Valid reports whether d is one of the five teaching days
func (d Weekday) Valid() bool {
	return d >= Monday && d <= Friday
}

// ParseWeekday accepts short ("Mon") or long ("Monday") names, case-insensitively
func ParseWeekday(s string) (Weekday, error) {
	name := strings.TrimSpace(s)
	for i := range weekdayNames {
		if strings.EqualFold(name, weekdayNames[i]) || strings.EqualFold(name, weekdayLongNames[i]) {
			return Weekday(i), nil
		}
	}
	return 0, &ConfigError{Field: "day", Value: s, Reason: "unknown weekday"}
}

// WeekdayFromNumber converts a 1-based day number (1 = Monday) to a Weekday
func WeekdayFromNumber(n int) (Weekday, error) {
	d := Weekday(n - 1)
	if !d.Valid() {
		return 0, &ConfigError{Field: "day", Value: fmt.Sprint(n), Reason: "day number must be between 1 and 5"}
	}
	return d, nil
}

// Period is a half-day. Morning sorts before afternoon.
type Period int

const (
	Morning Period = iota
	Afternoon
)

// AllPeriods lists both periods in canonical order
var AllPeriods = []Period{Morning, Afternoon}

func (p Period) String() string {
	switch p {
	case Morning:
		return "morning"
	case Afternoon:
		return "afternoon"
	default:
		return fmt.Sprintf("Period(%d)", int(p))
	}
}

// Valid reports whether p is morning or afternoon
func (p Period) Valid() bool {
	return p == Morning || p == Afternoon
}

// ParsePeriod parses "morning" or "afternoon"
func ParsePeriod(s string) (Period, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "morning":
		return Morning, nil
	case "afternoon":
		return Afternoon, nil
	}
	return 0, &ConfigError{Field: "period", Value: s, Reason: "period must be morning or afternoon"}
}

// Slot is one half-day scheduling unit. Weeks are numbered from 1.
type Slot struct {
	Week   int
	Day    Weekday
	Period Period
}

// Compare orders slots by week, then day, then period
func (s Slot) Compare(other Slot) int {
	if c := cmp.Compare(s.Week, other.Week); c != 0 {
		return c
	}
	if c := cmp.Compare(s.Day, other.Day); c != 0 {
		return c
	}
	return cmp.Compare(s.Period, other.Period)
}

// Before reports whether s is chronologically earlier than other
func (s Slot) Before(other Slot) bool {
	return s.Compare(other) < 0
}

func (s Slot) String() string {
	return fmt.Sprintf("W%d %s %s", s.Week, s.Day, s.Period)
}

// SlotSet is an unordered set of slots
type SlotSet map[Slot]struct{}

// NewSlotSet builds a set containing the given slots
func NewSlotSet(slots ...Slot) SlotSet {
	set := make(SlotSet, len(slots))
	for _, s := range slots {
		set[s] = struct{}{}
	}
	return set
}

func (ss SlotSet) Add(s Slot) {
	ss[s] = struct{}{}
}

func (ss SlotSet) Remove(s Slot) {
	delete(ss, s)
}

func (ss SlotSet) Has(s Slot) bool {
	_, ok := ss[s]
	return ok
}

func (ss SlotSet) Len() int {
	return len(ss)
}

// Clone returns an independent copy of the set
func (ss SlotSet) Clone() SlotSet {
	out := make(SlotSet, len(ss))
	for s := range ss {
		out[s] = struct{}{}
	}
	return out
}

// Sorted returns the slots in canonical chronological order
func (ss SlotSet) Sorted() []Slot {
	out := make([]Slot, 0, len(ss))
	for s := range ss {
		out = append(out, s)
	}
	slices.SortFunc(out, Slot.Compare)
	return out
}
