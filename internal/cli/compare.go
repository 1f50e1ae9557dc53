package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/piwi3910/sectionsheets/internal/engine"
)

func newCompareCmd() *cobra.Command {
	var layout layoutFlags

	cmd := &cobra.Command{
		Use:   "compare <rooms-file>",
		Short: "Compare sheet usage across what-if scenarios",
		Long: `Plan the same rooms under the current settings and a few alternatives
(the next larger title block, the next coarser scale, no clearance) and print
one line per scenario.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			settings, err := layout.resolveSettings(ctx, cmd)
			if err != nil {
				return err
			}
			rooms, err := loadRooms(ctx, args[0], layout.height)
			if err != nil {
				return err
			}

			results := engine.CompareScenarios(engine.BuildDefaultScenarios(settings), rooms)

			widths := []int{22, 8, 8, 10, 10}
			printRow(out, widths, StyleTitle, "Scenario", "Sheets", "Placed", "Unplaced", "Usage")
			for _, r := range results {
				if r.Err != nil {
					printWarning(out, "%s: %v", r.Scenario.Name, r.Err)
					continue
				}
				printRow(out, widths, StyleValue,
					r.Scenario.Name,
					fmt.Sprintf("%d", r.SheetsUsed),
					fmt.Sprintf("%d", r.PlacedCount),
					fmt.Sprintf("%d", r.UnplacedCount),
					fmt.Sprintf("%.1f%%", r.Efficiency),
				)
			}
			return nil
		},
	}

	layout.register(cmd)
	return cmd
}
