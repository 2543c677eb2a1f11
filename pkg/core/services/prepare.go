package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/jakechorley/semester-planner/pkg/core/availability"
	"github.com/jakechorley/semester-planner/pkg/core/calendar"
	"github.com/jakechorley/semester-planner/pkg/core/input"
	"github.com/jakechorley/semester-planner/pkg/core/model"
)

// CalendarOptions maps horizon weeks onto real dates. A zero Start disables dating.
type CalendarOptions struct {
	Start time.Time
	Rule  string
}

// loadEntities loads the input file, validates it and resolves every lecturer's availability
func loadEntities(ctx context.Context, logger *zap.Logger, inputPath string) (*model.Entities, error) {
	logger.Debug("Loading input", zap.String("path", inputPath))
	entities, err := input.Load(inputPath)
	if err != nil {
		return nil, err
	}

	if err := model.ValidateEntities(entities); err != nil {
		return nil, fmt.Errorf("invalid input: %w", err)
	}

	logger.Debug("Input validated",
		zap.Int("subjects", len(entities.Subjects)),
		zap.Int("lecturers", len(entities.Lecturers)),
		zap.Int("rooms", len(entities.Rooms)),
		zap.Int("groups", len(entities.Groups)))

	lecturers, err := availability.ResolveLecturers(ctx, entities.Horizon, entities.Lecturers)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve availability: %w", err)
	}
	entities.Lecturers = lecturers

	return entities, nil
}

func buildCalendar(h model.Horizon, opts CalendarOptions) (*calendar.Calendar, error) {
	if opts.Start.IsZero() {
		return nil, nil
	}
	cal, err := calendar.New(h, opts.Start, opts.Rule)
	if err != nil {
		return nil, fmt.Errorf("failed to build teaching calendar: %w", err)
	}
	return cal, nil
}
