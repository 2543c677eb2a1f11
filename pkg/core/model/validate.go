package model

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// ValidateEntities checks an entity set before allocation.
// Every finding is reported; the result joins *ConfigError and *ReferentialError values.
func ValidateEntities(e *Entities) error {
	if err := e.Horizon.Validate(); err != nil {
		return err
	}

	var errs []error

	// Struct tag validation
	if err := validate.Struct(e); err != nil {
		var validationErrs validator.ValidationErrors
		if !errors.As(err, &validationErrs) {
			return fmt.Errorf("entity validation failed: %w", err)
		}
		for _, fe := range validationErrs {
			errs = append(errs, &ConfigError{
				Field:  fe.Namespace(),
				Value:  fmt.Sprint(fe.Value()),
				Reason: fmt.Sprintf("failed %q constraint", fe.Tag()),
			})
		}
	}

	subjects := make(map[string]Subject, len(e.Subjects))
	mixingRoomTypes := make(map[string]RoomType)
	for _, s := range e.Subjects {
		if _, dup := subjects[s.ID]; dup {
			errs = append(errs, &ReferentialError{Entity: "subject", ID: s.ID, Reason: "duplicate id"})
			continue
		}
		subjects[s.ID] = s

		if !s.RoomType.Valid() {
			errs = append(errs, &ConfigError{Field: fmt.Sprintf("subject %s room type", s.ID), Value: string(s.RoomType), Reason: "must be theory or practical"})
		}
		if s.MixingGroup != "" {
			if existing, ok := mixingRoomTypes[s.MixingGroup]; ok && existing != s.RoomType {
				errs = append(errs, &ConfigError{
					Field:  fmt.Sprintf("subject %s mixing group", s.ID),
					Value:  s.MixingGroup,
					Reason: fmt.Sprintf("mixes room types %s and %s", existing, s.RoomType),
				})
			} else {
				mixingRoomTypes[s.MixingGroup] = s.RoomType
			}
		}
	}

	lecturerIDs := make(map[string]bool, len(e.Lecturers))
	lecturerCount := make(map[string]int, len(e.Subjects))
	for _, l := range e.Lecturers {
		if lecturerIDs[l.ID] {
			errs = append(errs, &ReferentialError{Entity: "lecturer", ID: l.ID, Reason: "duplicate id"})
			continue
		}
		lecturerIDs[l.ID] = true

		if _, ok := subjects[l.SubjectID]; !ok {
			errs = append(errs, &ReferentialError{Entity: "lecturer", ID: l.ID, Reason: fmt.Sprintf("references unknown subject %q", l.SubjectID)})
			continue
		}
		lecturerCount[l.SubjectID]++
	}

	for _, s := range e.Subjects {
		switch n := lecturerCount[s.ID]; {
		case n == 0:
			errs = append(errs, &ReferentialError{Entity: "subject", ID: s.ID, Reason: "has no lecturer"})
		case n > 1:
			errs = append(errs, &ReferentialError{Entity: "subject", ID: s.ID, Reason: fmt.Sprintf("has %d lecturers, expected exactly one", n)})
		}
	}

	roomIDs := make(map[string]bool, len(e.Rooms))
	for _, r := range e.Rooms {
		if roomIDs[r.ID] {
			errs = append(errs, &ReferentialError{Entity: "room", ID: r.ID, Reason: "duplicate id"})
		}
		roomIDs[r.ID] = true
		if !r.RoomType.Valid() {
			errs = append(errs, &ConfigError{Field: fmt.Sprintf("room %s room type", r.ID), Value: string(r.RoomType), Reason: "must be theory or practical"})
		}
	}

	groupIDs := make(map[string]bool, len(e.Groups))
	for _, g := range e.Groups {
		if groupIDs[g.ID] {
			errs = append(errs, &ReferentialError{Entity: "group", ID: g.ID, Reason: "duplicate id"})
		}
		groupIDs[g.ID] = true
		for _, sid := range g.SubjectIDs {
			if _, ok := subjects[sid]; !ok {
				errs = append(errs, &ReferentialError{Entity: "group", ID: g.ID, Reason: fmt.Sprintf("references unknown subject %q", sid)})
			}
		}
	}

	return errors.Join(errs...)
}
