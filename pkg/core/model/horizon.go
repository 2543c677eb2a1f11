package model

import "fmt"

// Horizon describes the published slots of a semester
type Horizon struct {
	Weeks         int `validate:"min=1"`
	DaysPerWeek   int `validate:"min=1,max=5"`
	PeriodsPerDay int `validate:"min=1,max=2"`
}

// Validate checks the horizon dimensions
func (h Horizon) Validate() error {
	if h.Weeks < 1 {
		return &ConfigError{Field: "weeks", Value: fmt.Sprint(h.Weeks), Reason: "must be at least 1"}
	}
	if h.DaysPerWeek < 1 || h.DaysPerWeek > len(AllWeekdays) {
		return &ConfigError{Field: "days_per_week", Value: fmt.Sprint(h.DaysPerWeek), Reason: "must be between 1 and 5"}
	}
	if h.PeriodsPerDay < 1 || h.PeriodsPerDay > len(AllPeriods) {
		return &ConfigError{Field: "timeslots_per_day", Value: fmt.Sprint(h.PeriodsPerDay), Reason: "must be 1 or 2"}
	}
	return nil
}

// Size is the number of slots in the horizon
func (h Horizon) Size() int {
	return h.Weeks * h.DaysPerWeek * h.PeriodsPerDay
}

// Days returns the teaching days used by the horizon
func (h Horizon) Days() []Weekday {
	return AllWeekdays[:h.DaysPerWeek]
}

// Periods returns the periods used by the horizon
func (h Horizon) Periods() []Period {
	return AllPeriods[:h.PeriodsPerDay]
}

func (h Horizon) HasWeek(week int) bool {
	return week >= 1 && week <= h.Weeks
}

func (h Horizon) HasDay(d Weekday) bool {
	return d >= Monday && int(d) < h.DaysPerWeek
}

func (h Horizon) HasPeriod(p Period) bool {
	return p >= Morning && int(p) < h.PeriodsPerDay
}

// Contains reports whether the slot is published by the horizon
func (h Horizon) Contains(s Slot) bool {
	return h.HasWeek(s.Week) && h.HasDay(s.Day) && h.HasPeriod(s.Period)
}

// Index returns the chronological offset of s, or -1 if s is outside the horizon
func (h Horizon) Index(s Slot) int {
	if !h.Contains(s) {
		return -1
	}
	return ((s.Week-1)*h.DaysPerWeek+int(s.Day))*h.PeriodsPerDay + int(s.Period)
}

// SlotAt is the inverse of Index
func (h Horizon) SlotAt(i int) Slot {
	perWeek := h.DaysPerWeek * h.PeriodsPerDay
	return Slot{
		Week:   i/perWeek + 1,
		Day:    Weekday((i % perWeek) / h.PeriodsPerDay),
		Period: Period(i % h.PeriodsPerDay),
	}
}

// Slots enumerates every slot in canonical chronological order
func (h Horizon) Slots() []Slot {
	slots := make([]Slot, 0, h.Size())
	for week := 1; week <= h.Weeks; week++ {
		for _, day := range h.Days() {
			for _, period := range h.Periods() {
				slots = append(slots, Slot{Week: week, Day: day, Period: period})
			}
		}
	}
	return slots
}
