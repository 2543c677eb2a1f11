package db

import "context"

// RunStore defines the interface for persisting allocation runs
type RunStore interface {
	// InsertRun stores the run and its blocks atomically
	InsertRun(ctx context.Context, run *Run, blocks []Block) error
	GetRuns(ctx context.Context) ([]Run, error)
	GetBlocks(ctx context.Context, runID string) ([]Block, error)
}

// Database defines the interface for all database operations.
// Both postgres.DB and sqlite.DB implement this interface.
type Database interface {
	RunStore
	Close() error
}
