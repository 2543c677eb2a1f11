package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/jakechorley/semester-planner/pkg/core/allocator"
	"github.com/jakechorley/semester-planner/pkg/core/calendar"
	"github.com/jakechorley/semester-planner/pkg/core/model"
)

const dateLayout = "2006-01-02"

// ScheduleRow is one scheduled block as written to the schedule CSV
type ScheduleRow struct {
	Week       int    `csv:"week"`
	Day        string `csv:"day"`
	Period     string `csv:"period"`
	Date       string `csv:"date"`
	SubjectID  string `csv:"subject"`
	LecturerID string `csv:"lecturer"`
	RoomID     string `csv:"room"`
	GroupID    string `csv:"group"`
	BlockIndex int    `csv:"block_index"`
	Phase      string `csv:"phase"`
}

// SubjectRow is the per-subject summary written to the statistics CSV
type SubjectRow struct {
	SubjectID       string  `csv:"subject"`
	Name            string  `csv:"name"`
	Required        int     `csv:"required"`
	Scheduled       int     `csv:"scheduled"`
	Shortfall       int     `csv:"shortfall"`
	Spread          bool    `csv:"spread"`
	AverageGap      float64 `csv:"average_gap_slots"`
	AverageGapWeeks float64 `csv:"average_gap_weeks"`
}

// ScheduleRows converts blocks to CSV rows. Dates are left empty when cal is nil.
func ScheduleRows(blocks []model.ScheduledBlock, cal *calendar.Calendar) ([]*ScheduleRow, error) {
	rows := make([]*ScheduleRow, 0, len(blocks))
	for _, b := range blocks {
		row := &ScheduleRow{
			Week:       b.Slot.Week,
			Day:        b.Slot.Day.String(),
			Period:     b.Slot.Period.String(),
			SubjectID:  b.SubjectID,
			LecturerID: b.LecturerID,
			RoomID:     b.RoomID,
			GroupID:    b.GroupID,
			BlockIndex: b.BlockIndex,
			Phase:      b.Phase,
		}
		if cal != nil {
			date, err := cal.Date(b.Slot)
			if err != nil {
				return nil, fmt.Errorf("failed to date block %s: %w", b, err)
			}
			row.Date = date.Format(dateLayout)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// SubjectRows converts subject statistics to CSV rows
func SubjectRows(stats allocator.Statistics) []*SubjectRow {
	rows := make([]*SubjectRow, 0, len(stats.Subjects))
	for _, s := range stats.Subjects {
		rows = append(rows, &SubjectRow{
			SubjectID:       s.SubjectID,
			Name:            s.Name,
			Required:        s.Required,
			Scheduled:       s.Scheduled,
			Shortfall:       s.Shortfall(),
			Spread:          s.Spread,
			AverageGap:      s.AverageGap,
			AverageGapWeeks: s.AverageGapWeeks,
		})
	}
	return rows
}

// WriteSchedule writes the schedule CSV to w
func WriteSchedule(w io.Writer, blocks []model.ScheduledBlock, cal *calendar.Calendar) error {
	rows, err := ScheduleRows(blocks, cal)
	if err != nil {
		return err
	}
	if err := gocsv.Marshal(&rows, w); err != nil {
		return fmt.Errorf("failed to write schedule csv: %w", err)
	}
	return nil
}

// WriteStatistics writes the per-subject statistics CSV to w
func WriteStatistics(w io.Writer, stats allocator.Statistics) error {
	rows := SubjectRows(stats)
	if err := gocsv.Marshal(&rows, w); err != nil {
		return fmt.Errorf("failed to write statistics csv: %w", err)
	}
	return nil
}

// Files holds the paths written by ExportOutcome
type Files struct {
	Schedule   string
	Statistics string
}

// ExportOutcome writes <name>_schedule.csv and <name>_stats.csv into dir
func ExportOutcome(dir, name string, outcome *allocator.AllocationOutcome, cal *calendar.Calendar) (Files, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Files{}, fmt.Errorf("failed to create export directory: %w", err)
	}

	files := Files{
		Schedule:   filepath.Join(dir, name+"_schedule.csv"),
		Statistics: filepath.Join(dir, name+"_stats.csv"),
	}

	if err := writeFile(files.Schedule, func(w io.Writer) error {
		return WriteSchedule(w, outcome.Blocks, cal)
	}); err != nil {
		return Files{}, err
	}

	if err := writeFile(files.Statistics, func(w io.Writer) error {
		return WriteStatistics(w, outcome.Stats)
	}); err != nil {
		return Files{}, err
	}

	return files, nil
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	return nil
}
