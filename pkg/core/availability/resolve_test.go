package availability

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jakechorley/semester-planner/pkg/core/model"
)

var horizon = model.Horizon{Weeks: 15, DaysPerWeek: 5, PeriodsPerDay: 2}

func slot(week int, day model.Weekday, period model.Period) model.Slot {
	return model.Slot{Week: week, Day: day, Period: period}
}

func TestResolve_PatternExceptionBlackout(t *testing.T) {
	rules := model.AvailabilityRules{
		Patterns: []model.Pattern{
			{Weeks: "1-5", Days: map[model.Weekday][]model.Period{model.Monday: {model.Morning}}},
		},
		Exceptions: []model.Exception{
			{Week: 3, Day: model.Monday, Remove: []model.Period{model.Morning}},
		},
		Blackouts: []model.Blackout{
			{FromWeek: 4, ToWeek: 4},
		},
	}

	got, err := Resolve(horizon, rules)
	require.NoError(t, err)

	assert.Equal(t, []model.Slot{
		slot(1, model.Monday, model.Morning),
		slot(2, model.Monday, model.Morning),
		slot(5, model.Monday, model.Morning),
	}, got.Sorted())
}

func TestResolve_PatternsComposeByUnion(t *testing.T) {
	rules := model.AvailabilityRules{
		Patterns: []model.Pattern{
			{Weeks: "1-2", Days: map[model.Weekday][]model.Period{model.Tuesday: {model.Morning}}},
			{Weeks: "2", Days: map[model.Weekday][]model.Period{model.Tuesday: {model.Afternoon}}},
			{Weeks: "1", Days: map[model.Weekday][]model.Period{model.Tuesday: {}}},
		},
	}

	got, err := Resolve(horizon, rules)
	require.NoError(t, err)

	assert.ElementsMatch(t, []model.Slot{
		slot(1, model.Tuesday, model.Morning),
		slot(2, model.Tuesday, model.Morning),
		slot(2, model.Tuesday, model.Afternoon),
	}, got.Sorted(), "an empty period list must not clear earlier grants")
}

func TestResolve_RemovesBeforeAdds(t *testing.T) {
	// The add in the first exception survives the remove in the second,
	// because all removes run before any add.
	rules := model.AvailabilityRules{
		Exceptions: []model.Exception{
			{Week: 2, Day: model.Wednesday, Add: []model.Period{model.Afternoon}},
			{Week: 2, Day: model.Wednesday, Remove: []model.Period{model.Afternoon}},
		},
	}

	got, err := Resolve(horizon, rules)
	require.NoError(t, err)
	assert.True(t, got.Has(slot(2, model.Wednesday, model.Afternoon)))
}

func TestResolve_BlackoutIsTerminal(t *testing.T) {
	rules := model.AvailabilityRules{
		Patterns: []model.Pattern{
			{Weeks: "1-3", Days: map[model.Weekday][]model.Period{
				model.Monday: {model.Morning, model.Afternoon},
				model.Friday: {model.Morning},
			}},
		},
		Exceptions: []model.Exception{
			{Week: 2, Day: model.Friday, Add: []model.Period{model.Afternoon}},
		},
		Blackouts: []model.Blackout{
			{FromWeek: 2, ToWeek: 2, Days: []model.Weekday{model.Friday}},
		},
	}

	got, err := Resolve(horizon, rules)
	require.NoError(t, err)

	assert.False(t, got.Has(slot(2, model.Friday, model.Morning)))
	assert.False(t, got.Has(slot(2, model.Friday, model.Afternoon)), "exception add cannot restore a blacked-out slot")
	assert.True(t, got.Has(slot(2, model.Monday, model.Morning)), "blackout only covers the listed days")
	assert.True(t, got.Has(slot(3, model.Friday, model.Morning)))
}

func TestResolve_ReversedBlackoutRangeIsNormalised(t *testing.T) {
	rules := model.AvailabilityRules{
		Patterns:  []model.Pattern{{Weeks: "1-4", Days: map[model.Weekday][]model.Period{model.Monday: {model.Morning}}}},
		Blackouts: []model.Blackout{{FromWeek: 3, ToWeek: 2}},
	}

	got, err := Resolve(horizon, rules)
	require.NoError(t, err)
	assert.Equal(t, []model.Slot{slot(1, model.Monday, model.Morning), slot(4, model.Monday, model.Morning)}, got.Sorted())
}

func TestResolve_ExplicitSlotsUnionWithPatterns(t *testing.T) {
	rules := model.AvailabilityRules{
		Patterns: []model.Pattern{{Weeks: "1", Days: map[model.Weekday][]model.Period{model.Monday: {model.Morning}}}},
		Explicit: []model.Slot{slot(3, model.Thursday, model.Afternoon), slot(1, model.Monday, model.Morning)},
		Exceptions: []model.Exception{
			{Week: 3, Day: model.Thursday, Remove: []model.Period{model.Afternoon}},
		},
	}

	got, err := Resolve(horizon, rules)
	require.NoError(t, err)
	assert.Equal(t, []model.Slot{slot(1, model.Monday, model.Morning)}, got.Sorted(),
		"explicit slots are subject to exceptions like pattern grants")
}

func TestResolve_ExceptionsAreIdempotent(t *testing.T) {
	base := model.AvailabilityRules{
		Patterns: []model.Pattern{
			{Weeks: "1-6", Days: map[model.Weekday][]model.Period{
				model.Monday:   {model.Morning, model.Afternoon},
				model.Thursday: {model.Afternoon},
			}},
		},
		Exceptions: []model.Exception{
			{Week: 2, Day: model.Monday, Remove: []model.Period{model.Morning}},
			{Week: 3, Day: model.Tuesday, Add: []model.Period{model.Morning}},
			{Week: 5, Day: model.Thursday, Remove: []model.Period{model.Afternoon}, Add: []model.Period{model.Morning}},
		},
		Blackouts: []model.Blackout{{FromWeek: 6, ToWeek: 6, Days: []model.Weekday{model.Monday}}},
	}

	doubled := base
	doubled.Exceptions = append(append([]model.Exception{}, base.Exceptions...), base.Exceptions...)

	once, err := Resolve(horizon, base)
	require.NoError(t, err)
	twice, err := Resolve(horizon, doubled)
	require.NoError(t, err)

	assert.Equal(t, once.Sorted(), twice.Sorted())
}

func TestResolve_PatternGrantsSubsetBeforeOverrides(t *testing.T) {
	patterns := []model.Pattern{
		{Weeks: "1-3,8", Days: map[model.Weekday][]model.Period{model.Monday: {model.Morning}}},
		{Weeks: "2-9", Days: map[model.Weekday][]model.Period{model.Wednesday: {model.Afternoon}}},
	}

	patternsOnly, err := Resolve(horizon, model.AvailabilityRules{Patterns: patterns})
	require.NoError(t, err)

	withAdds, err := Resolve(horizon, model.AvailabilityRules{
		Patterns:   patterns,
		Exceptions: []model.Exception{{Week: 12, Day: model.Friday, Add: []model.Period{model.Morning}}},
	})
	require.NoError(t, err)

	for s := range patternsOnly {
		assert.True(t, withAdds.Has(s), "pattern grant %s missing", s)
	}
	assert.Equal(t, patternsOnly.Len()+1, withAdds.Len())
}

func TestResolve_ConfigErrors(t *testing.T) {
	h := model.Horizon{Weeks: 10, DaysPerWeek: 4, PeriodsPerDay: 2}

	tests := []struct {
		name  string
		rules model.AvailabilityRules
	}{
		{
			name:  "malformed week expression",
			rules: model.AvailabilityRules{Patterns: []model.Pattern{{Weeks: "1-x", Days: map[model.Weekday][]model.Period{model.Monday: {model.Morning}}}}},
		},
		{
			name:  "day outside horizon",
			rules: model.AvailabilityRules{Patterns: []model.Pattern{{Weeks: "1", Days: map[model.Weekday][]model.Period{model.Friday: {model.Morning}}}}},
		},
		{
			name:  "exception week outside horizon",
			rules: model.AvailabilityRules{Exceptions: []model.Exception{{Week: 11, Day: model.Monday, Add: []model.Period{model.Morning}}}},
		},
		{
			name:  "blackout beyond horizon",
			rules: model.AvailabilityRules{Blackouts: []model.Blackout{{FromWeek: 8, ToWeek: 12}}},
		},
		{
			name:  "explicit slot outside horizon",
			rules: model.AvailabilityRules{Explicit: []model.Slot{{Week: 0, Day: model.Monday, Period: model.Morning}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Resolve(h, tt.rules)
			var cfgErr *model.ConfigError
			assert.ErrorAs(t, err, &cfgErr)
		})
	}
}

func TestResolve_ReportsEarliestInvalidDay(t *testing.T) {
	h := model.Horizon{Weeks: 4, DaysPerWeek: 3, PeriodsPerDay: 2}
	rules := model.AvailabilityRules{Patterns: []model.Pattern{{
		Weeks: "1",
		Days: map[model.Weekday][]model.Period{
			model.Friday:   {model.Morning},
			model.Monday:   {model.Morning},
			model.Thursday: {model.Afternoon},
		},
	}}}

	for range 20 {
		_, err := Resolve(h, rules)
		var cfgErr *model.ConfigError
		require.ErrorAs(t, err, &cfgErr)
		assert.Equal(t, "Thu", cfgErr.Value)
	}
}

func TestResolveLecturers_PreservesOrder(t *testing.T) {
	lecturers := []model.Lecturer{
		{ID: "L1", SubjectID: "S1", Priority: 1, Rules: model.AvailabilityRules{
			Explicit: []model.Slot{slot(1, model.Monday, model.Morning)},
		}},
		{ID: "L2", SubjectID: "S2", Priority: 9},
		{ID: "L3", SubjectID: "S3", Priority: 2, Rules: model.AvailabilityRules{
			Patterns: []model.Pattern{{Weeks: "2", Days: map[model.Weekday][]model.Period{model.Friday: {model.Afternoon}}}},
		}},
	}

	resolved, err := ResolveLecturers(context.Background(), horizon, lecturers)
	require.NoError(t, err)
	require.Len(t, resolved, 3)

	assert.Equal(t, "L1", resolved[0].ID)
	assert.True(t, resolved[0].Availability.Has(slot(1, model.Monday, model.Morning)))
	assert.Equal(t, 0, resolved[1].Availability.Len())
	assert.True(t, resolved[2].Availability.Has(slot(2, model.Friday, model.Afternoon)))
	assert.Nil(t, lecturers[0].Availability, "input must not be mutated")
}

func TestResolveLecturers_ReportsFailingLecturer(t *testing.T) {
	lecturers := []model.Lecturer{
		{ID: "L1", Rules: model.AvailabilityRules{Patterns: []model.Pattern{{Weeks: "20"}}}},
	}

	_, err := ResolveLecturers(context.Background(), horizon, lecturers)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "lecturer L1")

	var cfgErr *model.ConfigError
	assert.ErrorAs(t, err, &cfgErr)
}
