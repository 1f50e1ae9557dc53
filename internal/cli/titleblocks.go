package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/piwi3910/sectionsheets/internal/model"
	"github.com/piwi3910/sectionsheets/internal/project"
)

func newTitleBlocksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "titleblocks",
		Short: "List available title blocks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listTitleBlocks(cmd)
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "add <file.json>",
		Short: "Add a custom title block to the user library",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return addTitleBlock(cmd, args[0])
		},
	})

	return cmd
}

func listTitleBlocks(cmd *cobra.Command) error {
	out := cmd.OutOrStdout()
	logger := loggerFromContext(cmd.Context())

	blocks, err := project.LoadCustomTitleBlocks(project.DefaultTitleBlocksPath())
	if err != nil {
		logger.Warn("ignoring custom title blocks", "error", err)
	} else {
		model.CustomTitleBlocks = blocks
	}

	widths := []int{18, 16, 10, 10}
	printRow(out, widths, StyleTitle, "Name", "Paper (mm)", "Title", "Source")
	for _, tb := range model.AllTitleBlocks() {
		source := "custom"
		if tb.IsBuiltIn {
			source = "built-in"
		}
		printRow(out, widths, StyleValue,
			tb.Name,
			fmt.Sprintf("%.0f x %.0f", tb.Width, tb.Height),
			fmt.Sprintf("%.0f", tb.TitleAllowance),
			StyleDim.Render(source),
		)
	}
	return nil
}

// addTitleBlock imports a title block and stores it in the user library,
// replacing any custom block with the same name.
func addTitleBlock(cmd *cobra.Command, path string) error {
	tb, err := project.ImportTitleBlock(path)
	if err != nil {
		return err
	}

	libPath := project.DefaultTitleBlocksPath()
	blocks, err := project.LoadCustomTitleBlocks(libPath)
	if err != nil {
		return err
	}

	replaced := false
	for i := range blocks {
		if blocks[i].Name == tb.Name {
			blocks[i] = tb
			replaced = true
		}
	}
	if !replaced {
		blocks = append(blocks, tb)
	}
	if err := project.SaveCustomTitleBlocks(libPath, blocks); err != nil {
		return err
	}

	printSuccess(cmd.OutOrStdout(), "Saved title block %s (%.0f x %.0f mm)", StyleNumber.Render(tb.Name), tb.Width, tb.Height)
	printFile(cmd.OutOrStdout(), libPath)
	return nil
}
