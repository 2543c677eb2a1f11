package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jakechorley/semester-planner/pkg/core/model"
)

func TestValidateInput_Summary(t *testing.T) {
	path := writeInput(t, sampleInput)

	summary, err := ValidateInput(context.Background(), zap.NewNop(), path)
	require.NoError(t, err)

	assert.Equal(t, 20, summary.HorizonSlots)
	assert.Equal(t, 5, summary.TotalRequired)
	assert.Equal(t, 1, summary.Constrained)
	assert.Equal(t, 3, summary.Entities.Lecturers[0].Availability.Len())
}

func TestValidateInput_BadAvailability(t *testing.T) {
	path := writeInput(t, `
configuration: {weeks: 2, days_per_week: 5, timeslots_per_day: 2}
subjects:
  - {id: S1, name: Anatomy, blocks_required: 1, room_type: theory}
lecturers:
  - id: L1
    name: Dr. Typo
    subject_id: S1
    priority: 1
    availability:
      patterns:
        - weeks: "1-9"
          days: {Mon: [morning]}
student_groups:
  - {id: G1, name: Year 1, subject_ids: [S1]}
`)

	_, err := ValidateInput(context.Background(), zap.NewNop(), path)
	require.Error(t, err)

	var cfgErr *model.ConfigError
	assert.ErrorAs(t, err, &cfgErr)
	assert.Contains(t, err.Error(), "L1")
}
