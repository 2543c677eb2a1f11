package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jakechorley/semester-planner/pkg/core/allocator"
	"github.com/jakechorley/semester-planner/pkg/core/calendar"
	"github.com/jakechorley/semester-planner/pkg/core/model"
	"github.com/jakechorley/semester-planner/pkg/db"
	"github.com/jakechorley/semester-planner/pkg/export"
	"github.com/jakechorley/semester-planner/pkg/metrics"
)

// GenerateOptions controls a planner run
type GenerateOptions struct {
	InputPath string
	// DryRun skips persistence
	DryRun bool
	// ExportDir receives the schedule and statistics CSVs; empty disables export
	ExportDir   string
	MetricsFile string
	Calendar    CalendarOptions
}

// GenerateResult represents the result of a planner run
type GenerateResult struct {
	RunID     string
	Entities  *model.Entities
	Outcome   *allocator.AllocationOutcome
	Calendar  *calendar.Calendar
	Exported  *export.Files
	Persisted bool
}

// GenerateSchedule loads and validates the input, resolves availability, allocates every block
// and then records, exports and persists the run. A nil store or recorder is skipped.
func GenerateSchedule(ctx context.Context, store db.RunStore, recorder *metrics.Recorder, logger *zap.Logger, opts GenerateOptions) (*GenerateResult, error) {
	entities, err := loadEntities(ctx, logger, opts.InputPath)
	if err != nil {
		return nil, err
	}

	cal, err := buildCalendar(entities.Horizon, opts.Calendar)
	if err != nil {
		return nil, err
	}

	started := time.Now()
	outcome, err := allocator.Allocate(ctx, allocator.AllocationConfig{
		Entities: *entities,
		Logger:   logger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to allocate schedule: %w", err)
	}
	elapsed := time.Since(started)

	result := &GenerateResult{
		RunID:    uuid.New().String(),
		Entities: entities,
		Outcome:  outcome,
		Calendar: cal,
	}

	logger.Info("Allocation complete",
		zap.String("run_id", result.RunID),
		zap.Int("blocks_scheduled", outcome.Stats.TotalScheduled),
		zap.Int("blocks_required", outcome.Stats.TotalRequired),
		zap.Int("warnings", len(outcome.Warnings)),
		zap.Duration("elapsed", elapsed))

	for _, w := range outcome.Warnings {
		logger.Warn("Subject under-allocated",
			zap.String("subject_id", w.SubjectID),
			zap.Int("required", w.Required),
			zap.Int("scheduled", w.Scheduled))
	}

	if len(outcome.Violations) > 0 {
		for _, v := range outcome.Violations {
			logger.Error("Schedule violation", zap.String("check", v.Check), zap.String("description", v.Description))
		}
		return nil, fmt.Errorf("allocated schedule has %d violations", len(outcome.Violations))
	}

	if recorder != nil {
		recorder.ObserveRun(outcome, elapsed)
		if opts.MetricsFile != "" {
			if err := recorder.WriteTextfile(opts.MetricsFile); err != nil {
				return nil, err
			}
			logger.Debug("Metrics written", zap.String("path", opts.MetricsFile))
		}
	}

	if opts.ExportDir != "" {
		files, err := export.ExportOutcome(opts.ExportDir, result.RunID, outcome, cal)
		if err != nil {
			return nil, fmt.Errorf("failed to export schedule: %w", err)
		}
		result.Exported = &files
		logger.Info("Schedule exported", zap.String("schedule", files.Schedule), zap.String("statistics", files.Statistics))
	}

	if opts.DryRun || store == nil {
		logger.Info("Skipping persistence", zap.Bool("dry_run", opts.DryRun))
		return result, nil
	}

	run := &db.Run{
		ID:              result.RunID,
		CreatedAt:       time.Now().UTC(),
		InputPath:       opts.InputPath,
		Weeks:           entities.Horizon.Weeks,
		BlocksRequired:  outcome.Stats.TotalRequired,
		BlocksScheduled: outcome.Stats.TotalScheduled,
		Success:         outcome.Success,
	}

	blocks := make([]db.Block, 0, len(outcome.Blocks))
	for _, b := range outcome.Blocks {
		blocks = append(blocks, db.BlockFromModel(run.ID, b))
	}

	if err := store.InsertRun(ctx, run, blocks); err != nil {
		return nil, fmt.Errorf("failed to insert run: %w", err)
	}
	result.Persisted = true

	logger.Debug("Run persisted", zap.String("run_id", run.ID), zap.Int("blocks", len(blocks)))

	return result, nil
}
