package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/semester-planner/pkg/core/allocator"
	"github.com/jakechorley/semester-planner/pkg/core/services"
)

const (
	colorReset  = "\033[0m"
	colorGreen  = "\033[32m"
	colorRed    = "\033[31m"
	colorYellow = "\033[33m"
	colorDim    = "\033[2m"
)

// GenerateCmd creates the generate command
func GenerateCmd(app *AppContext) *cobra.Command {
	var (
		input   string
		csvDir  string
		dryRun  bool
		noStats bool
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Allocate every teaching block for the semester",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			calOpts, err := app.calendarOptions()
			if err != nil {
				return err
			}

			exportDir := app.Cfg.ExportDir
			if csvDir != "" {
				exportDir = csvDir
			}

			opts := services.GenerateOptions{
				InputPath:   app.inputPath(input),
				DryRun:      dryRun,
				ExportDir:   exportDir,
				MetricsFile: app.Cfg.MetricsFile,
				Calendar:    calOpts,
			}

			app.Logger.Debug("generate command",
				zap.String("input", opts.InputPath),
				zap.Bool("dry_run", dryRun),
				zap.String("export_dir", exportDir))

			result, err := services.GenerateSchedule(app.Ctx, app.runStore(), app.Metrics, app.Logger, opts)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if result.Outcome.Success {
				fmt.Fprintf(out, "\n✓ Schedule generated: %d of %d blocks allocated\n\n",
					result.Outcome.Stats.TotalScheduled, result.Outcome.Stats.TotalRequired)
			} else {
				fmt.Fprintf(out, "\n⚠️  Schedule incomplete: %d of %d blocks allocated\n\n",
					result.Outcome.Stats.TotalScheduled, result.Outcome.Stats.TotalRequired)
			}

			fmt.Fprintf(out, "Run ID: %s\n", result.RunID)
			if result.Persisted {
				fmt.Fprintln(out, "Saved to run store")
			}
			if result.Exported != nil {
				fmt.Fprintf(out, "Schedule CSV:   %s\n", result.Exported.Schedule)
				fmt.Fprintf(out, "Statistics CSV: %s\n", result.Exported.Statistics)
			}
			fmt.Fprintln(out)

			if !noStats {
				printStatistics(out, result.Outcome.Stats)
			}

			for _, w := range result.Outcome.Warnings {
				fmt.Fprintf(out, "%s⚠️  %s%s\n", colorYellow, w, colorReset)
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "Input file (defaults to inputPath from config)")
	cmd.Flags().StringVar(&csvDir, "csv", "", "Directory for CSV export (defaults to exportDir from config)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Run without saving to the run store")
	cmd.Flags().BoolVar(&noStats, "no-stats", false, "Skip the statistics tables")

	return cmd
}

// shortfallColor picks the colour for a subject row: green when complete, red when nothing was placed
func shortfallColor(required, scheduled int) string {
	switch {
	case scheduled >= required:
		return colorGreen
	case scheduled == 0:
		return colorRed
	default:
		return colorYellow
	}
}

func printStatistics(w io.Writer, stats allocator.Statistics) {
	fmt.Fprintln(w, "Subjects")
	fmt.Fprintf(w, "  %-10s %-24s %9s %9s %10s\n", "ID", "Name", "Required", "Scheduled", "Avg gap")
	for _, s := range stats.Subjects {
		gap := "-"
		if s.Spread && s.Scheduled > 1 {
			gap = fmt.Sprintf("%.1fw", s.AverageGapWeeks)
		}
		fmt.Fprintf(w, "  %s%-10s %-24s %9d %9d %10s%s\n",
			shortfallColor(s.Required, s.Scheduled), s.SubjectID, s.Name, s.Required, s.Scheduled, gap, colorReset)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Lecturers")
	fmt.Fprintf(w, "  %-10s %-24s %8s %11s %7s\n", "ID", "Name", "Priority", "Constrained", "Blocks")
	for _, l := range stats.Lecturers {
		constrained := "no"
		if l.Constrained {
			constrained = "yes"
		}
		fmt.Fprintf(w, "  %-10s %-24s %8d %11s %7d\n", l.LecturerID, l.Name, l.Priority, constrained, l.Blocks)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Rooms")
	for _, r := range stats.Rooms {
		if r.Blocks == 0 {
			fmt.Fprintf(w, "  %s%-10s %-10s unused%s\n", colorDim, r.RoomID, r.RoomType, colorReset)
			continue
		}
		fmt.Fprintf(w, "  %-10s %-10s %4d blocks %5.1f%%\n", r.RoomID, r.RoomType, r.Blocks, r.Utilization*100)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Phases")
	for _, phase := range []string{allocator.PhasePriority, allocator.PhaseSpread, allocator.PhaseMixing, allocator.PhaseRemainder} {
		fmt.Fprintf(w, "  %-10s %4d\n", phase, stats.Phases[phase])
	}
	fmt.Fprintln(w)
}
