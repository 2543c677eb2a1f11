package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jakechorley/semester-planner/pkg/db"
)

const sampleInput = `
configuration:
  weeks: 2
  days_per_week: 5
  timeslots_per_day: 2
subjects:
  - {id: S1, name: Anatomy, blocks_required: 3, room_type: theory}
  - {id: S2, name: Ethics, blocks_required: 2, room_type: theory, spread: true}
lecturers:
  - id: L1
    name: Dr. Early
    subject_id: S1
    priority: 1
    availability:
      patterns:
        - weeks: "1"
          days: {Mon: [morning], Tue: [morning], Wed: [morning]}
  - {id: L2, name: Dr. Late, subject_id: S2, priority: 6}
student_groups:
  - {id: G1, name: Year 1, subject_ids: [S1, S2]}
`

func writeInput(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "semester.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// mockRunStore implements db.RunStore
type mockRunStore struct {
	runs           []db.Run
	blocks         map[string][]db.Block
	insertedRun    *db.Run
	insertedBlocks []db.Block
	insertErr      error
	getRunsErr     error
	getBlocksErr   error
}

func (m *mockRunStore) InsertRun(ctx context.Context, run *db.Run, blocks []db.Block) error {
	if m.insertErr != nil {
		return m.insertErr
	}
	m.insertedRun = run
	m.insertedBlocks = blocks
	return nil
}

func (m *mockRunStore) GetRuns(ctx context.Context) ([]db.Run, error) {
	if m.getRunsErr != nil {
		return nil, m.getRunsErr
	}
	return m.runs, nil
}

func (m *mockRunStore) GetBlocks(ctx context.Context, runID string) ([]db.Block, error) {
	if m.getBlocksErr != nil {
		return nil, m.getBlocksErr
	}
	return m.blocks[runID], nil
}
