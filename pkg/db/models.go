package db

import (
	"fmt"
	"time"

	"github.com/jakechorley/semester-planner/pkg/core/model"
)

// Run is one persisted allocation run
type Run struct {
	ID              string
	CreatedAt       time.Time
	InputPath       string
	Weeks           int
	BlocksRequired  int
	BlocksScheduled int
	Success         bool
}

// Block is a persisted scheduled block. Day and period are stored by name.
type Block struct {
	RunID      string
	SubjectID  string
	LecturerID string
	RoomID     string
	GroupID    string
	Week       int
	Day        string
	Period     string
	BlockIndex int
	Phase      string
}

// BlockFromModel converts a scheduled block for storage under a run
func BlockFromModel(runID string, b model.ScheduledBlock) Block {
	return Block{
		RunID:      runID,
		SubjectID:  b.SubjectID,
		LecturerID: b.LecturerID,
		RoomID:     b.RoomID,
		GroupID:    b.GroupID,
		Week:       b.Slot.Week,
		Day:        b.Slot.Day.String(),
		Period:     b.Slot.Period.String(),
		BlockIndex: b.BlockIndex,
		Phase:      b.Phase,
	}
}

// ToModel converts a stored block back into a scheduled block
func (b Block) ToModel() (model.ScheduledBlock, error) {
	day, err := model.ParseWeekday(b.Day)
	if err != nil {
		return model.ScheduledBlock{}, fmt.Errorf("block %s #%d: %w", b.SubjectID, b.BlockIndex, err)
	}
	period, err := model.ParsePeriod(b.Period)
	if err != nil {
		return model.ScheduledBlock{}, fmt.Errorf("block %s #%d: %w", b.SubjectID, b.BlockIndex, err)
	}
	return model.ScheduledBlock{
		SubjectID:  b.SubjectID,
		LecturerID: b.LecturerID,
		RoomID:     b.RoomID,
		GroupID:    b.GroupID,
		Slot:       model.Slot{Week: b.Week, Day: day, Period: period},
		BlockIndex: b.BlockIndex,
		Phase:      b.Phase,
	}, nil
}
