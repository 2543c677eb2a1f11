package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jakechorley/semester-planner/pkg/db"
)

// InsertRun inserts a run and all of its blocks in one transaction
func (d *DB) InsertRun(ctx context.Context, run *db.Run, blocks []db.Block) error {
	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO allocation_run (id, created_at, input_path, weeks, blocks_required, blocks_scheduled, success)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, run.ID, run.CreatedAt.UTC(), run.InputPath, run.Weeks, run.BlocksRequired, run.BlocksScheduled, run.Success)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	rows := make([][]any, 0, len(blocks))
	for _, b := range blocks {
		rows = append(rows, []any{run.ID, b.SubjectID, b.LecturerID, b.RoomID, b.GroupID, b.Week, b.Day, b.Period, b.BlockIndex, b.Phase})
	}

	_, err = tx.CopyFrom(ctx,
		pgx.Identifier{"scheduled_block"},
		[]string{"run_id", "subject_id", "lecturer_id", "room_id", "group_id", "week", "day", "period", "block_index", "phase"},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return fmt.Errorf("failed to insert blocks: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetRuns retrieves all runs, newest first
func (d *DB) GetRuns(ctx context.Context) ([]db.Run, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, created_at, input_path, weeks, blocks_required, blocks_scheduled, success
		FROM allocation_run
		ORDER BY created_at DESC, id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []db.Run
	for rows.Next() {
		var r db.Run
		if err := rows.Scan(&r.ID, &r.CreatedAt, &r.InputPath, &r.Weeks, &r.BlocksRequired, &r.BlocksScheduled, &r.Success); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		r.CreatedAt = r.CreatedAt.UTC()
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating runs: %w", err)
	}

	return runs, nil
}

// GetBlocks retrieves the blocks of a run ordered by week, subject and block index.
// Days and periods are stored as names, so callers needing slot order use model.SortBlocks.
func (d *DB) GetBlocks(ctx context.Context, runID string) ([]db.Block, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT run_id, subject_id, lecturer_id, room_id, group_id, week, day, period, block_index, phase
		FROM scheduled_block
		WHERE run_id = $1
		ORDER BY week, subject_id, block_index
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query blocks: %w", err)
	}
	defer rows.Close()

	var blocks []db.Block
	for rows.Next() {
		var b db.Block
		if err := rows.Scan(&b.RunID, &b.SubjectID, &b.LecturerID, &b.RoomID, &b.GroupID, &b.Week, &b.Day, &b.Period, &b.BlockIndex, &b.Phase); err != nil {
			return nil, fmt.Errorf("failed to scan block: %w", err)
		}
		blocks = append(blocks, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating blocks: %w", err)
	}

	return blocks, nil
}
