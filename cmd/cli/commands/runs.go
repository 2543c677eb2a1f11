package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jakechorley/semester-planner/pkg/core/services"
)

// ListRunsCmd creates the listRuns command
func ListRunsCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "listRuns",
		Short: "List persisted allocation runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store := app.runStore()
			if store == nil {
				return errNoStore
			}

			runs, err := services.ListRuns(app.Ctx, store, app.Logger)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(runs) == 0 {
				fmt.Fprintln(out, "No runs found")
				return nil
			}

			fmt.Fprintf(out, "\nFound %d runs:\n\n", len(runs))
			for _, r := range runs {
				status := colorGreen + "complete" + colorReset
				if !r.Success {
					status = colorYellow + "incomplete" + colorReset
				}
				fmt.Fprintf(out, "- %s  %s  %3d/%-3d blocks  %2d weeks  %s  %s\n",
					r.ID, r.CreatedAt.Format("2006-01-02 15:04"), r.BlocksScheduled, r.BlocksRequired, r.Weeks, status, r.InputPath)
			}
			fmt.Fprintln(out)

			return nil
		},
	}
}

// ShowRunCmd creates the showRun command
func ShowRunCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "showRun <run_id>",
		Short: "Show the schedule of a persisted run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store := app.runStore()
			if store == nil {
				return errNoStore
			}

			detail, err := services.ShowRun(app.Ctx, store, app.Logger, args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "\nRun %s (%s)\n", detail.Run.ID, detail.Run.CreatedAt.Format("2006-01-02 15:04"))
			fmt.Fprintf(out, "Input: %s\n", detail.Run.InputPath)
			fmt.Fprintf(out, "Blocks: %d of %d\n\n", detail.Run.BlocksScheduled, detail.Run.BlocksRequired)

			week := 0
			for _, b := range detail.Blocks {
				if b.Slot.Week != week {
					week = b.Slot.Week
					fmt.Fprintf(out, "Week %d\n", week)
				}
				fmt.Fprintf(out, "  %s %-9s %-8s #%-3d %-8s %-8s %-8s %s%s%s\n",
					b.Slot.Day, b.Slot.Period, b.SubjectID, b.BlockIndex, b.LecturerID, b.RoomID, b.GroupID, colorDim, b.Phase, colorReset)
			}
			fmt.Fprintln(out)

			return nil
		},
	}
}
