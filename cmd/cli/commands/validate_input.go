package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jakechorley/semester-planner/pkg/core/services"
)

// ValidateInputCmd creates the validateInput command
func ValidateInputCmd(app *AppContext) *cobra.Command {
	var input string

	cmd := &cobra.Command{
		Use:   "validateInput",
		Short: "Check the input file and resolve availability without allocating",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			summary, err := services.ValidateInput(app.Ctx, app.Logger, app.inputPath(input))
			if err != nil {
				return err
			}

			e := summary.Entities
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "\n✓ Input is valid\n\n")
			fmt.Fprintf(out, "Horizon:   %d weeks x %d days x %d periods (%d slots)\n",
				e.Horizon.Weeks, e.Horizon.DaysPerWeek, e.Horizon.PeriodsPerDay, summary.HorizonSlots)
			fmt.Fprintf(out, "Subjects:  %d (%d blocks required)\n", len(e.Subjects), summary.TotalRequired)
			fmt.Fprintf(out, "Lecturers: %d (%d constrained, priority cutoff %d)\n",
				len(e.Lecturers), summary.Constrained, e.PriorityCutoff)
			fmt.Fprintf(out, "Rooms:     %d\n", len(e.Rooms))
			fmt.Fprintf(out, "Groups:    %d\n\n", len(e.Groups))

			if summary.TotalRequired > summary.HorizonSlots*len(e.Rooms) {
				fmt.Fprintf(out, "%s⚠️  More blocks are required than there are room slots%s\n\n", colorYellow, colorReset)
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "Input file (defaults to inputPath from config)")

	return cmd
}
