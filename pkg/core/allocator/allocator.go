package allocator

import (
	"context"
	"fmt"
	"slices"

	"go.uber.org/zap"

	"github.com/jakechorley/semester-planner/pkg/core/model"
)

// AllocationConfig contains everything one allocation run needs
type AllocationConfig struct {
	// Entities is the validated input. Lecturer availability must already be resolved.
	Entities model.Entities

	// Phases overrides the pipeline; nil runs DefaultPhases
	Phases []Phase

	// Logger receives per-commit debug logs; nil disables logging
	Logger *zap.Logger
}

// AllocationOutcome is the immutable result of an allocation run
type AllocationOutcome struct {
	// Blocks in commit order
	Blocks []model.ScheduledBlock

	// Stats summarises the schedule per subject, lecturer, room and phase
	Stats Statistics

	// Warnings lists every subject that ended under-allocated, in subject id order
	Warnings []model.CapacityWarning

	// Violations lists invariant breaches found in the final schedule; always empty unless
	// a phase is defective
	Violations []ScheduleViolation

	// Success is true when every subject received all of its required blocks
	Success bool
}

// Allocate builds a schedule by running each phase in order over a fresh allocation context.
// Identical input always yields an identical schedule.
func Allocate(ctx context.Context, config AllocationConfig) (*AllocationOutcome, error) {
	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	entities := config.Entities
	entities.ApplyDefaults()
	if err := entities.Horizon.Validate(); err != nil {
		return nil, err
	}

	phases := config.Phases
	if phases == nil {
		phases = DefaultPhases()
	}

	state := newScheduleState(entities, logger)

	for _, phase := range phases {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		before := len(state.Blocks)
		if err := phase.Run(state); err != nil {
			return nil, fmt.Errorf("%s phase failed: %w", phase.Name(), err)
		}

		logger.Debug("Phase complete",
			zap.String("phase", phase.Name()),
			zap.Int("committed", len(state.Blocks)-before),
			zap.Int("total_blocks", len(state.Blocks)))
	}

	return buildOutcome(state), nil
}

// buildOutcome snapshots the final state
func buildOutcome(state *ScheduleState) *AllocationOutcome {
	outcome := &AllocationOutcome{
		Blocks: slices.Clone(state.Blocks),
	}

	for _, subject := range state.Subjects {
		if scheduled := state.Scheduled(subject.ID); scheduled < subject.RequiredBlocks {
			outcome.Warnings = append(outcome.Warnings, model.CapacityWarning{
				SubjectID: subject.ID,
				Required:  subject.RequiredBlocks,
				Scheduled: scheduled,
			})
		}
	}

	outcome.Stats = ComputeStatistics(state)
	outcome.Violations = ValidateSchedule(state)
	outcome.Success = len(outcome.Warnings) == 0

	return outcome
}
