package input

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"slices"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/jakechorley/semester-planner/pkg/core/model"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Default rooms generated when the input file does not list any
const (
	DefaultTheoryRooms  = 10
	DefaultRoomCapacity = 50
)

// Load reads a YAML or JSON input file into an entity set.
// Availability rules are converted but not resolved.
func Load(path string) (*model.Entities, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read input file: %w", err)
	}

	entities, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return entities, nil
}

// Parse decodes input data into an entity set
func Parse(data []byte) (*model.Entities, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &model.ConfigError{Field: "input", Reason: err.Error()}
	}

	if err := validate.Struct(&doc); err != nil {
		var validationErrs validator.ValidationErrors
		if !errors.As(err, &validationErrs) {
			return nil, fmt.Errorf("input validation failed: %w", err)
		}
		errs := make([]error, 0, len(validationErrs))
		for _, fe := range validationErrs {
			errs = append(errs, &model.ConfigError{
				Field:  fe.Namespace(),
				Value:  fmt.Sprint(fe.Value()),
				Reason: fmt.Sprintf("failed %q constraint", fe.Tag()),
			})
		}
		return nil, errors.Join(errs...)
	}

	return doc.toEntities()
}

func (d *document) toEntities() (*model.Entities, error) {
	entities := &model.Entities{
		Horizon: model.Horizon{
			Weeks:         d.Configuration.Weeks,
			DaysPerWeek:   d.Configuration.DaysPerWeek,
			PeriodsPerDay: d.Configuration.TimeslotsPerDay,
		},
		PriorityCutoff:    d.Configuration.PriorityCutoff,
		PriorityLecturers: d.Configuration.PriorityLecturers,
	}
	entities.ApplyDefaults()

	for _, s := range d.Subjects {
		roomType, err := model.ParseRoomType(s.RoomType)
		if err != nil {
			return nil, fmt.Errorf("subject %s: %w", s.ID, err)
		}
		entities.Subjects = append(entities.Subjects, model.Subject{
			ID:             s.ID,
			Name:           s.Name,
			RequiredBlocks: s.BlocksRequired,
			RoomType:       roomType,
			Spread:         s.Spread,
			MixingGroup:    s.MixingGroup,
		})
	}

	for _, l := range d.Lecturers {
		rules, err := l.Availability.toRules()
		if err != nil {
			return nil, fmt.Errorf("lecturer %s: %w", l.ID, err)
		}
		entities.Lecturers = append(entities.Lecturers, model.Lecturer{
			ID:        l.ID,
			Name:      l.Name,
			SubjectID: l.SubjectID,
			Priority:  l.Priority,
			Rules:     rules,
		})
	}

	if len(d.Rooms) == 0 {
		entities.Rooms = DefaultRooms()
	}
	for _, r := range d.Rooms {
		roomType, err := model.ParseRoomType(r.RoomType)
		if err != nil {
			return nil, fmt.Errorf("room %s: %w", r.ID, err)
		}
		entities.Rooms = append(entities.Rooms, model.Room{
			ID:       r.ID,
			Name:     r.Name,
			RoomType: roomType,
			Capacity: r.Capacity,
			Number:   r.Number,
		})
	}

	for _, g := range d.StudentGroups {
		entities.Groups = append(entities.Groups, model.StudentGroup{
			ID:         g.ID,
			Name:       g.Name,
			SubjectIDs: g.SubjectIDs,
		})
	}

	return entities, nil
}

// DefaultRooms returns ten theory rooms T1..T10 and one practical room P1
func DefaultRooms() []model.Room {
	rooms := make([]model.Room, 0, DefaultTheoryRooms+1)
	for i := 1; i <= DefaultTheoryRooms; i++ {
		rooms = append(rooms, model.Room{
			ID:       fmt.Sprintf("T%d", i),
			Name:     fmt.Sprintf("Theory Room %d", i),
			RoomType: model.RoomTheory,
			Capacity: DefaultRoomCapacity,
			Number:   fmt.Sprint(i),
		})
	}
	return append(rooms, model.Room{
		ID:       "P1",
		Name:     "Practical Room",
		RoomType: model.RoomPractical,
		Capacity: DefaultRoomCapacity,
		Number:   "101",
	})
}

func (a availability) toRules() (model.AvailabilityRules, error) {
	var rules model.AvailabilityRules

	for i, t := range a.Triples {
		day, err := model.WeekdayFromNumber(t.Day)
		if err != nil {
			return rules, fmt.Errorf("availability[%d]: %w", i, err)
		}
		period, err := model.ParsePeriod(t.Period)
		if err != nil {
			return rules, fmt.Errorf("availability[%d]: %w", i, err)
		}
		rules.Explicit = append(rules.Explicit, model.Slot{Week: t.Week, Day: day, Period: period})
	}

	for i, p := range a.Patterns {
		days := make(map[model.Weekday][]model.Period, len(p.Days))
		for _, name := range slices.Sorted(maps.Keys(p.Days)) {
			periods := p.Days[name]
			day, err := model.ParseWeekday(name)
			if err != nil {
				return rules, fmt.Errorf("patterns[%d]: %w", i, err)
			}
			parsed, err := parsePeriods(periods)
			if err != nil {
				return rules, fmt.Errorf("patterns[%d] %s: %w", i, name, err)
			}
			days[day] = parsed
		}
		rules.Patterns = append(rules.Patterns, model.Pattern{Weeks: p.Weeks, Days: days})
	}

	for i, ex := range a.Exceptions {
		day, err := model.ParseWeekday(ex.Day)
		if err != nil {
			return rules, fmt.Errorf("exceptions[%d]: %w", i, err)
		}
		remove, err := parsePeriods(ex.Remove)
		if err != nil {
			return rules, fmt.Errorf("exceptions[%d] remove: %w", i, err)
		}
		add, err := parsePeriods(ex.Add)
		if err != nil {
			return rules, fmt.Errorf("exceptions[%d] add: %w", i, err)
		}
		rules.Exceptions = append(rules.Exceptions, model.Exception{Week: ex.Week, Day: day, Remove: remove, Add: add})
	}

	for i, b := range a.Blackouts {
		var days []model.Weekday
		for _, name := range b.Days {
			day, err := model.ParseWeekday(name)
			if err != nil {
				return rules, fmt.Errorf("blackouts[%d]: %w", i, err)
			}
			days = append(days, day)
		}
		rules.Blackouts = append(rules.Blackouts, model.Blackout{FromWeek: b.FromWeek, ToWeek: b.ToWeek, Days: days})
	}

	return rules, nil
}

func parsePeriods(names []string) ([]model.Period, error) {
	periods := make([]model.Period, 0, len(names))
	for _, name := range names {
		p, err := model.ParsePeriod(name)
		if err != nil {
			return nil, err
		}
		periods = append(periods, p)
	}
	return periods, nil
}
