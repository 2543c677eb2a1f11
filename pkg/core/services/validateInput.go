package services

import (
	"context"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/jakechorley/semester-planner/pkg/core/model"
)

// InputSummary describes a validated input document
type InputSummary struct {
	Entities *model.Entities
	// HorizonSlots is the number of half-day slots in the semester
	HorizonSlots  int
	TotalRequired int
	// Constrained lecturers only teach inside their resolved availability
	Constrained int
}

// ValidateInput loads, validates and resolves the input without allocating
func ValidateInput(ctx context.Context, logger *zap.Logger, inputPath string) (*InputSummary, error) {
	entities, err := loadEntities(ctx, logger, inputPath)
	if err != nil {
		return nil, err
	}

	constrained := lo.CountBy(entities.Lecturers, func(l model.Lecturer) bool {
		return l.Constrained(entities.PriorityCutoff)
	})

	summary := &InputSummary{
		Entities:      entities,
		HorizonSlots:  entities.Horizon.Size(),
		TotalRequired: entities.TotalRequiredBlocks(),
		Constrained:   constrained,
	}

	logger.Info("Input is valid",
		zap.String("path", inputPath),
		zap.Int("blocks_required", summary.TotalRequired),
		zap.Int("horizon_slots", summary.HorizonSlots))

	return summary, nil
}
