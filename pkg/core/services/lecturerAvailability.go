package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/jakechorley/semester-planner/pkg/core/model"
)

// AvailableSlot is one resolved slot, dated when a semester start is configured
type AvailableSlot struct {
	Slot model.Slot
	Date time.Time
}

// LecturerAvailabilityResult holds a lecturer's resolved availability
type LecturerAvailabilityResult struct {
	Lecturer    model.Lecturer
	Constrained bool
	Slots       []AvailableSlot
}

// LecturerAvailability resolves one lecturer's declared rules into concrete slots
func LecturerAvailability(ctx context.Context, logger *zap.Logger, inputPath, lecturerID string, calOpts CalendarOptions) (*LecturerAvailabilityResult, error) {
	entities, err := loadEntities(ctx, logger, inputPath)
	if err != nil {
		return nil, err
	}

	lecturer, ok := entities.Lecturer(lecturerID)
	if !ok {
		return nil, &model.ReferentialError{Entity: "lecturer", ID: lecturerID, Reason: "not found in input"}
	}

	cal, err := buildCalendar(entities.Horizon, calOpts)
	if err != nil {
		return nil, err
	}

	result := &LecturerAvailabilityResult{
		Lecturer:    lecturer,
		Constrained: lecturer.Constrained(entities.PriorityCutoff),
	}
	for _, slot := range lecturer.Availability.Sorted() {
		available := AvailableSlot{Slot: slot}
		if cal != nil {
			available.Date, err = cal.Date(slot)
			if err != nil {
				return nil, fmt.Errorf("failed to date slot %s: %w", slot, err)
			}
		}
		result.Slots = append(result.Slots, available)
	}

	logger.Debug("Resolved lecturer availability",
		zap.String("lecturer_id", lecturerID),
		zap.Int("slots", len(result.Slots)),
		zap.Bool("constrained", result.Constrained))

	return result, nil
}
