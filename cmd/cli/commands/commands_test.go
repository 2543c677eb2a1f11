package commands

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jakechorley/semester-planner/internal/config"
	"github.com/jakechorley/semester-planner/pkg/core/allocator"
	"github.com/jakechorley/semester-planner/pkg/core/model"
	"github.com/jakechorley/semester-planner/pkg/core/services"
)

func TestShortfallColor(t *testing.T) {
	tests := []struct {
		name      string
		required  int
		scheduled int
		expected  string
	}{
		{"complete", 4, 4, colorGreen},
		{"partial", 4, 2, colorYellow},
		{"nothing placed", 4, 0, colorRed},
		{"nothing required", 0, 0, colorGreen},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, shortfallColor(tt.required, tt.scheduled))
		})
	}
}

func TestPrintStatistics(t *testing.T) {
	stats := allocator.Statistics{
		Subjects: []allocator.SubjectStats{
			{SubjectID: "S1", Name: "Anatomy", Required: 3, Scheduled: 3, Spread: true, AverageGapWeeks: 2.5},
		},
		Lecturers: []allocator.LecturerStats{
			{LecturerID: "L1", Name: "Dr. Early", Priority: 1, Constrained: true, Blocks: 3},
		},
		Rooms: []allocator.RoomStats{
			{RoomID: "T1", RoomType: model.RoomTheory, Blocks: 3, Utilization: 0.15},
			{RoomID: "P1", RoomType: model.RoomPractical},
		},
		Phases: map[string]int{allocator.PhasePriority: 3},
	}

	var buf bytes.Buffer
	printStatistics(&buf, stats)
	out := buf.String()

	assert.Contains(t, out, "Anatomy")
	assert.Contains(t, out, "2.5w")
	assert.Contains(t, out, "yes")
	assert.Contains(t, out, "15.0%")
	assert.Contains(t, out, "unused")
	assert.Contains(t, out, "priority      3")
	assert.Contains(t, out, "remainder     0")
}

func TestPrintAvailability(t *testing.T) {
	result := &services.LecturerAvailabilityResult{
		Lecturer:    model.Lecturer{ID: "L1", Name: "Dr. Early", SubjectID: "S1", Priority: 1},
		Constrained: true,
		Slots: []services.AvailableSlot{
			{Slot: model.Slot{Week: 1, Day: model.Monday, Period: model.Morning}, Date: time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)},
			{Slot: model.Slot{Week: 2, Day: model.Friday, Period: model.Afternoon}, Date: time.Date(2025, 9, 12, 0, 0, 0, 0, time.UTC)},
		},
	}

	var buf bytes.Buffer
	printAvailability(&buf, result)
	out := buf.String()

	assert.Contains(t, out, "2 available slots")
	assert.Contains(t, out, "Week 1")
	assert.Contains(t, out, "Week 2")
	assert.Contains(t, out, "2025-09-12")
}

func TestPrintAvailability_Unconstrained(t *testing.T) {
	result := &services.LecturerAvailabilityResult{
		Lecturer: model.Lecturer{ID: "L2", Name: "Dr. Late", SubjectID: "S2", Priority: 7},
	}

	var buf bytes.Buffer
	printAvailability(&buf, result)

	assert.Contains(t, buf.String(), "Unconstrained")
	assert.NotContains(t, buf.String(), "available slots")
}

func TestInputPath(t *testing.T) {
	app := &AppContext{Cfg: &config.Config{InputPath: "configured.yaml"}}

	assert.Equal(t, "configured.yaml", app.inputPath(""))
	assert.Equal(t, "override.yaml", app.inputPath("override.yaml"))
}

func TestCalendarOptions(t *testing.T) {
	app := &AppContext{Cfg: &config.Config{SemesterStart: "2025-09-01", TeachingDaysRule: "FREQ=WEEKLY;BYDAY=MO,TU"}}

	opts, err := app.calendarOptions()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC), opts.Start)
	assert.Equal(t, "FREQ=WEEKLY;BYDAY=MO,TU", opts.Rule)

	app.Cfg = &config.Config{}
	opts, err = app.calendarOptions()
	require.NoError(t, err)
	assert.True(t, opts.Start.IsZero())
}

func TestListRuns_WithoutStore(t *testing.T) {
	app := &AppContext{Cfg: &config.Config{}, Logger: zap.NewNop(), Ctx: context.Background()}

	cmd := ListRunsCmd(app)
	err := cmd.RunE(cmd, nil)
	assert.ErrorIs(t, err, errNoStore)

	cmd = ShowRunCmd(app)
	err = cmd.RunE(cmd, []string{"run-1"})
	assert.ErrorIs(t, err, errNoStore)
}

func newTestRoot(calls *[]string) *cobra.Command {
	root := &cobra.Command{Use: "planner"}

	var name string
	greet := &cobra.Command{
		Use:   "greet <id>",
		Short: "Record a greeting",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			*calls = append(*calls, args[0]+":"+name)
			return nil
		},
	}
	greet.Flags().StringVar(&name, "name", "anon", "Name")

	root.AddCommand(greet, InteractiveCmd())
	return root
}

func TestRunSession(t *testing.T) {
	var calls []string
	root := newTestRoot(&calls)
	commands := siblingCommands(root)

	require.Contains(t, commands, "greet")
	assert.NotContains(t, commands, "interactive")

	in := strings.NewReader("greet a --name bob\n\ngreet b\ngreet\nbogus\nhelp\nexit\ngreet never\n")
	var out bytes.Buffer

	require.NoError(t, runSession(in, &out, commands))

	// Flags are reset between commands
	assert.Equal(t, []string{"a:bob", "b:anon"}, calls)
	assert.Contains(t, out.String(), "Unknown command: bogus")
	assert.Contains(t, out.String(), "Error:")
	assert.Contains(t, out.String(), "Record a greeting")
	assert.Contains(t, out.String(), "Goodbye!")
}
