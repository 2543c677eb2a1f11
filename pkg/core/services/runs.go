package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jakechorley/semester-planner/pkg/core/model"
	"github.com/jakechorley/semester-planner/pkg/db"
)

// RunDetail is a persisted run with its blocks restored to the domain model
type RunDetail struct {
	Run    db.Run
	Blocks []model.ScheduledBlock
}

// ListRuns returns every persisted run, newest first
func ListRuns(ctx context.Context, store db.RunStore, logger *zap.Logger) ([]db.Run, error) {
	runs, err := store.GetRuns(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch runs: %w", err)
	}
	logger.Debug("Fetched runs", zap.Int("count", len(runs)))
	return runs, nil
}

// ShowRun loads a single run and its schedule
func ShowRun(ctx context.Context, store db.RunStore, logger *zap.Logger, runID string) (*RunDetail, error) {
	runs, err := store.GetRuns(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch runs: %w", err)
	}

	var detail *RunDetail
	for _, r := range runs {
		if r.ID == runID {
			detail = &RunDetail{Run: r}
			break
		}
	}
	if detail == nil {
		return nil, fmt.Errorf("run %s not found", runID)
	}

	blocks, err := store.GetBlocks(ctx, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch blocks: %w", err)
	}

	for _, b := range blocks {
		block, err := b.ToModel()
		if err != nil {
			return nil, err
		}
		detail.Blocks = append(detail.Blocks, block)
	}
	model.SortBlocks(detail.Blocks)

	logger.Debug("Loaded run", zap.String("run_id", runID), zap.Int("blocks", len(detail.Blocks)))

	return detail, nil
}
