package cli

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/piwi3910/sectionsheets/internal/engine"
	"github.com/piwi3910/sectionsheets/internal/model"
)

// derivedSection is the JSON shape printed by the derive command.
type derivedSection struct {
	Name     string               `json:"name"`
	RoomID   string               `json:"room_id"`
	Room     string               `json:"room"`
	Spec     model.SectionBoxSpec `json:"spec"`
	Viewport [2]float64           `json:"viewport"`
}

func newDeriveCmd() *cobra.Command {
	var layout layoutFlags

	cmd := &cobra.Command{
		Use:   "derive <rooms-file>",
		Short: "Print the section boxes derived for each room as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			settings, err := layout.resolveSettings(ctx, cmd)
			if err != nil {
				return err
			}
			rooms, err := loadRooms(ctx, args[0], layout.height)
			if err != nil {
				return err
			}

			planner := engine.NewPlanner(settings, nil)
			sections, failures := planner.DeriveAll(rooms)
			for _, f := range failures {
				logger.Warn(f.String())
			}

			out := make([]derivedSection, 0, len(sections))
			for _, s := range sections {
				out = append(out, derivedSection{
					Name:     s.Name,
					RoomID:   s.RoomID,
					Room:     s.RoomName,
					Spec:     s.Spec,
					Viewport: [2]float64{s.Rect.Width, s.Rect.Height},
				})
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(out)
		},
	}

	layout.register(cmd)
	return cmd
}
