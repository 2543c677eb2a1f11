package availability

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/jakechorley/semester-planner/pkg/core/model"
)

// Resolve turns declarative availability rules into the concrete set of granted slots.
//
// The layers are applied in a fixed order:
//  1. patterns (and legacy explicit slots), union only
//  2. every exception's removals, in list order
//  3. every exception's additions, in list order
//  4. blackouts, which are terminal
func Resolve(h model.Horizon, rules model.AvailabilityRules) (model.SlotSet, error) {
	granted := model.NewSlotSet()

	for i, p := range rules.Patterns {
		weeks, err := ParseWeeks(p.Weeks, h.Weeks)
		if err != nil {
			return nil, fmt.Errorf("patterns[%d]: %w", i, err)
		}
		for _, day := range slices.Sorted(maps.Keys(p.Days)) {
			periods := p.Days[day]
			if err := checkDayPeriods(h, day, periods); err != nil {
				return nil, fmt.Errorf("patterns[%d]: %w", i, err)
			}
			for _, week := range weeks {
				for _, period := range periods {
					granted.Add(model.Slot{Week: week, Day: day, Period: period})
				}
			}
		}
	}

	for i, s := range rules.Explicit {
		if !h.Contains(s) {
			return nil, fmt.Errorf("explicit[%d]: %w", i, &model.ConfigError{Field: "slot", Value: s.String(), Reason: "outside the horizon"})
		}
		granted.Add(s)
	}

	for i, ex := range rules.Exceptions {
		if err := checkException(h, ex); err != nil {
			return nil, fmt.Errorf("exceptions[%d]: %w", i, err)
		}
	}
	for _, ex := range rules.Exceptions {
		for _, period := range ex.Remove {
			granted.Remove(model.Slot{Week: ex.Week, Day: ex.Day, Period: period})
		}
	}
	for _, ex := range rules.Exceptions {
		for _, period := range ex.Add {
			granted.Add(model.Slot{Week: ex.Week, Day: ex.Day, Period: period})
		}
	}

	for i, b := range rules.Blackouts {
		from, to := b.FromWeek, b.ToWeek
		if from > to {
			from, to = to, from
		}
		if !h.HasWeek(from) || !h.HasWeek(to) {
			return nil, fmt.Errorf("blackouts[%d]: %w", i, &model.ConfigError{
				Field:  "blackout weeks",
				Value:  fmt.Sprintf("%d-%d", b.FromWeek, b.ToWeek),
				Reason: fmt.Sprintf("outside weeks 1-%d", h.Weeks),
			})
		}
		days := b.Days
		if len(days) == 0 {
			days = h.Days()
		}
		for _, day := range days {
			if !h.HasDay(day) {
				return nil, fmt.Errorf("blackouts[%d]: %w", i, &model.ConfigError{Field: "blackout day", Value: day.String(), Reason: "not a teaching day"})
			}
			for week := from; week <= to; week++ {
				for _, period := range model.AllPeriods {
					granted.Remove(model.Slot{Week: week, Day: day, Period: period})
				}
			}
		}
	}

	return granted, nil
}

func checkDayPeriods(h model.Horizon, day model.Weekday, periods []model.Period) error {
	if !h.HasDay(day) {
		return &model.ConfigError{Field: "day", Value: day.String(), Reason: fmt.Sprintf("horizon has %d teaching days", h.DaysPerWeek)}
	}
	for _, p := range periods {
		if !h.HasPeriod(p) {
			return &model.ConfigError{Field: "period", Value: p.String(), Reason: fmt.Sprintf("horizon has %d periods per day", h.PeriodsPerDay)}
		}
	}
	return nil
}

func checkException(h model.Horizon, ex model.Exception) error {
	if !h.HasWeek(ex.Week) {
		return &model.ConfigError{Field: "exception week", Value: fmt.Sprint(ex.Week), Reason: fmt.Sprintf("outside weeks 1-%d", h.Weeks)}
	}
	if err := checkDayPeriods(h, ex.Day, ex.Remove); err != nil {
		return err
	}
	return checkDayPeriods(h, ex.Day, ex.Add)
}

// ResolveLecturers resolves every lecturer's rules concurrently.
// The returned slice is a copy in input order with Availability filled in.
func ResolveLecturers(ctx context.Context, h model.Horizon, lecturers []model.Lecturer) ([]model.Lecturer, error) {
	resolved := make([]model.Lecturer, len(lecturers))
	g, ctx := errgroup.WithContext(ctx)

	for i, lecturer := range lecturers {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			slots, err := Resolve(h, lecturer.Rules)
			if err != nil {
				return fmt.Errorf("lecturer %s availability: %w", lecturer.ID, err)
			}
			lecturer.Availability = slots
			resolved[i] = lecturer
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return resolved, nil
}
