package input

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// document mirrors the on-disk input file. JSON files decode through the same
// structs because yaml.v3 accepts JSON documents.
type document struct {
	Configuration configuration `yaml:"configuration"`
	Subjects      []subject     `yaml:"subjects" validate:"required,dive"`
	Lecturers     []lecturer    `yaml:"lecturers" validate:"required,dive"`
	Rooms         []room        `yaml:"rooms,omitempty" validate:"dive"`
	StudentGroups []group       `yaml:"student_groups" validate:"dive"`
}

type configuration struct {
	Weeks             int `yaml:"weeks" validate:"min=1"`
	DaysPerWeek       int `yaml:"days_per_week,omitempty" validate:"omitempty,min=1,max=5"`
	TimeslotsPerDay   int `yaml:"timeslots_per_day,omitempty" validate:"omitempty,min=1,max=2"`
	PriorityCutoff    int `yaml:"priority_cutoff,omitempty" validate:"min=0"`
	PriorityLecturers int `yaml:"priority_lecturers,omitempty" validate:"min=0"`
}

type subject struct {
	ID             string `yaml:"id" validate:"required"`
	Name           string `yaml:"name"`
	BlocksRequired int    `yaml:"blocks_required" validate:"min=1"`
	RoomType       string `yaml:"room_type" validate:"required"`
	Spread         bool   `yaml:"spread"`
	MixingGroup    string `yaml:"mixing_group,omitempty"`
}

type lecturer struct {
	ID           string       `yaml:"id" validate:"required"`
	Name         string       `yaml:"name"`
	SubjectID    string       `yaml:"subject_id" validate:"required"`
	Priority     int          `yaml:"priority" validate:"min=1"`
	Availability availability `yaml:"availability,omitempty"`
}

type room struct {
	ID       string `yaml:"id" validate:"required"`
	Name     string `yaml:"name"`
	RoomType string `yaml:"room_type" validate:"required"`
	Capacity int    `yaml:"capacity" validate:"min=0"`
	Number   string `yaml:"room_number,omitempty"`
}

type group struct {
	ID         string   `yaml:"id" validate:"required"`
	Name       string   `yaml:"name"`
	SubjectIDs []string `yaml:"subject_ids"`
}

type pattern struct {
	Weeks string              `yaml:"weeks"`
	Days  map[string][]string `yaml:"days"`
}

type exception struct {
	Week   int      `yaml:"week"`
	Day    string   `yaml:"day"`
	Remove []string `yaml:"remove,omitempty"`
	Add    []string `yaml:"add,omitempty"`
}

type blackout struct {
	FromWeek int      `yaml:"from_week"`
	ToWeek   int      `yaml:"to_week"`
	Days     []string `yaml:"days,omitempty"`
}

// triple is one legacy [week, day, period] entry with day numbered 1..5
type triple struct {
	Week   int
	Day    int
	Period string
}

// availability accepts either the legacy list of triples or the
// patterns/exceptions/blackouts mapping
type availability struct {
	Triples    []triple
	Patterns   []pattern
	Exceptions []exception
	Blackouts  []blackout
}

func (a *availability) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.SequenceNode:
		for i, item := range value.Content {
			var raw []yaml.Node
			if err := item.Decode(&raw); err != nil || len(raw) != 3 {
				return fmt.Errorf("line %d: availability[%d] must be [week, day, period]", item.Line, i)
			}
			var t triple
			if err := raw[0].Decode(&t.Week); err != nil {
				return fmt.Errorf("line %d: availability[%d] week must be an integer", item.Line, i)
			}
			if err := raw[1].Decode(&t.Day); err != nil {
				return fmt.Errorf("line %d: availability[%d] day must be an integer", item.Line, i)
			}
			if err := raw[2].Decode(&t.Period); err != nil {
				return fmt.Errorf("line %d: availability[%d] period must be a string", item.Line, i)
			}
			a.Triples = append(a.Triples, t)
		}
		return nil

	case yaml.MappingNode:
		// Decode through an alias type to avoid recursing into this method
		type rules struct {
			Patterns   []pattern   `yaml:"patterns"`
			Exceptions []exception `yaml:"exceptions"`
			Blackouts  []blackout  `yaml:"blackouts"`
		}
		var r rules
		if err := value.Decode(&r); err != nil {
			return err
		}
		a.Patterns, a.Exceptions, a.Blackouts = r.Patterns, r.Exceptions, r.Blackouts
		return nil

	case yaml.ScalarNode:
		if value.Tag == "!!null" {
			return nil
		}
	}

	return fmt.Errorf("line %d: availability must be a list of [week, day, period] or a mapping of patterns, exceptions and blackouts", value.Line)
}
