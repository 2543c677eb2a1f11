package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/teambition/rrule-go"

	"github.com/jakechorley/semester-planner/pkg/core/model"
)

var rruleDays = map[model.Weekday]string{
	model.Monday:    "MO",
	model.Tuesday:   "TU",
	model.Wednesday: "WE",
	model.Thursday:  "TH",
	model.Friday:    "FR",
}

// Calendar maps horizon slots onto calendar dates
type Calendar struct {
	horizon model.Horizon
	dates   []time.Time
}

// DefaultRule returns a weekly rule covering the horizon's teaching days
func DefaultRule(h model.Horizon) string {
	days := make([]string, 0, h.DaysPerWeek)
	for _, d := range h.Days() {
		days = append(days, rruleDays[d])
	}
	return "FREQ=WEEKLY;BYDAY=" + strings.Join(days, ",")
}

// New expands the teaching-day rule from start. The rule must produce every teaching day of
// every horizon week in order; INTERVAL can be used to skip whole weeks.
// An empty rule uses DefaultRule.
func New(h model.Horizon, start time.Time, rule string) (*Calendar, error) {
	if rule == "" {
		rule = DefaultRule(h)
	}

	opt, err := rrule.StrToROption(rule)
	if err != nil {
		return nil, fmt.Errorf("invalid teaching day rule: %w", err)
	}

	needed := h.Weeks * h.DaysPerWeek
	opt.Dtstart = time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	if opt.Count == 0 || opt.Count > needed {
		opt.Count = needed
	}

	r, err := rrule.NewRRule(*opt)
	if err != nil {
		return nil, fmt.Errorf("invalid teaching day rule: %w", err)
	}

	dates := r.All()
	if len(dates) < needed {
		return nil, fmt.Errorf("teaching day rule yields %d days but the horizon needs %d", len(dates), needed)
	}

	for i, date := range dates {
		want := h.Days()[i%h.DaysPerWeek]
		if toWeekday(date.Weekday()) != want {
			return nil, fmt.Errorf("teaching day %d falls on %s, expected %s", i+1, date.Format("Mon 2006-01-02"), want)
		}
	}

	return &Calendar{horizon: h, dates: dates}, nil
}

// Date returns the calendar date of the slot's day
func (c *Calendar) Date(slot model.Slot) (time.Time, error) {
	if !c.horizon.Contains(slot) {
		return time.Time{}, fmt.Errorf("slot %s is outside the horizon", slot)
	}
	return c.dates[(slot.Week-1)*c.horizon.DaysPerWeek+int(slot.Day)], nil
}

// WeekStart returns the date of the first teaching day of the week
func (c *Calendar) WeekStart(week int) (time.Time, error) {
	return c.Date(model.Slot{Week: week, Day: model.Monday, Period: model.Morning})
}

func toWeekday(d time.Weekday) model.Weekday {
	// time.Weekday starts on Sunday
	return model.Weekday((int(d) + 6) % 7)
}
