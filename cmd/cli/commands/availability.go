package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/semester-planner/pkg/core/services"
)

// AvailabilityCmd creates the availability command
func AvailabilityCmd(app *AppContext) *cobra.Command {
	var input string

	cmd := &cobra.Command{
		Use:   "availability <lecturer_id>",
		Short: "Show a lecturer's resolved availability",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lecturerID := args[0]
			app.Logger.Debug("availability command", zap.String("lecturer_id", lecturerID))

			calOpts, err := app.calendarOptions()
			if err != nil {
				return err
			}

			result, err := services.LecturerAvailability(app.Ctx, app.Logger, app.inputPath(input), lecturerID, calOpts)
			if err != nil {
				return err
			}

			printAvailability(cmd.OutOrStdout(), result)
			return nil
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "Input file (defaults to inputPath from config)")

	return cmd
}

func printAvailability(w io.Writer, result *services.LecturerAvailabilityResult) {
	l := result.Lecturer
	fmt.Fprintf(w, "\n%s (%s) teaches %s, priority %d\n", l.Name, l.ID, l.SubjectID, l.Priority)

	if !result.Constrained {
		fmt.Fprintf(w, "%sUnconstrained: may teach at any free slot%s\n\n", colorDim, colorReset)
		if len(result.Slots) == 0 {
			return
		}
	}

	fmt.Fprintf(w, "%d available slots:\n", len(result.Slots))
	week := 0
	for _, s := range result.Slots {
		if s.Slot.Week != week {
			week = s.Slot.Week
			fmt.Fprintf(w, "  Week %d\n", week)
		}
		if s.Date.IsZero() {
			fmt.Fprintf(w, "    %s %s\n", s.Slot.Day, s.Slot.Period)
			continue
		}
		fmt.Fprintf(w, "    %s %-9s %s\n", s.Slot.Day, s.Slot.Period, s.Date.Format("2006-01-02"))
	}
	fmt.Fprintln(w)
}
