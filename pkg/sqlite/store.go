package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // pure go sqlite driver

	"github.com/jakechorley/semester-planner/pkg/db"
)

// DefaultPath is used when no DSN is configured
const DefaultPath = "data/semester-planner.db"

// DB persists allocation runs in a local SQLite file
type DB struct {
	conn *sql.DB
}

// NewDB opens (or creates) the SQLite database at path and ensures the schema exists
func NewDB(ctx context.Context, path string) (*DB, error) {
	if path == "" {
		path = DefaultPath
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil && !errors.Is(err, os.ErrExist) {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite: %w", err)
	}
	d := &DB{conn: conn}
	if err := d.createSchema(ctx); err != nil {
		_ = conn.Close()
		return nil, err
	}
	return d, nil
}

func (d *DB) createSchema(ctx context.Context) error {
	statements := []string{
		`PRAGMA foreign_keys = ON`,
		`CREATE TABLE IF NOT EXISTS allocation_run (
			id TEXT PRIMARY KEY,
			created_at INTEGER NOT NULL,
			input_path TEXT NOT NULL,
			weeks INTEGER NOT NULL,
			blocks_required INTEGER NOT NULL,
			blocks_scheduled INTEGER NOT NULL,
			success INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS scheduled_block (
			run_id TEXT NOT NULL REFERENCES allocation_run(id) ON DELETE CASCADE,
			subject_id TEXT NOT NULL,
			lecturer_id TEXT NOT NULL,
			room_id TEXT NOT NULL,
			group_id TEXT NOT NULL,
			week INTEGER NOT NULL,
			day TEXT NOT NULL,
			period TEXT NOT NULL,
			block_index INTEGER NOT NULL,
			phase TEXT NOT NULL,
			PRIMARY KEY (run_id, subject_id, block_index)
		)`,
	}
	for _, stmt := range statements {
		if _, err := d.conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}
	return nil
}

// Close closes the underlying connection
func (d *DB) Close() error {
	return d.conn.Close()
}

// InsertRun inserts a run and all of its blocks in one transaction
func (d *DB) InsertRun(ctx context.Context, run *db.Run, blocks []db.Block) error {
	tx, err := d.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO allocation_run (id, created_at, input_path, weeks, blocks_required, blocks_scheduled, success)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, run.ID, run.CreatedAt.UTC().UnixNano(), run.InputPath, run.Weeks, run.BlocksRequired, run.BlocksScheduled, run.Success)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO scheduled_block (run_id, subject_id, lecturer_id, room_id, group_id, week, day, period, block_index, phase)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare block insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, b := range blocks {
		if _, err := stmt.ExecContext(ctx, run.ID, b.SubjectID, b.LecturerID, b.RoomID, b.GroupID, b.Week, b.Day, b.Period, b.BlockIndex, b.Phase); err != nil {
			return fmt.Errorf("failed to insert block %s #%d: %w", b.SubjectID, b.BlockIndex, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetRuns retrieves all runs, newest first
func (d *DB) GetRuns(ctx context.Context) ([]db.Run, error) {
	rows, err := d.conn.QueryContext(ctx, `
		SELECT id, created_at, input_path, weeks, blocks_required, blocks_scheduled, success
		FROM allocation_run
		ORDER BY created_at DESC, id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var runs []db.Run
	for rows.Next() {
		var r db.Run
		var createdAt int64
		if err := rows.Scan(&r.ID, &createdAt, &r.InputPath, &r.Weeks, &r.BlocksRequired, &r.BlocksScheduled, &r.Success); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		r.CreatedAt = time.Unix(0, createdAt).UTC()
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
	rows, err := d.conn.QueryContext(ctx, `
		SELECT run_id, subject_id, lecturer_id, room_id, group_id, week, day, period, block_index, phase
		FROM scheduled_block
		WHERE run_id = ?
		ORDER BY week, subject_id, block_index
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query blocks: %w", err)
	}
	defer func() { _ = rows.Close() }()

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
