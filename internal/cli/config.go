package cli

import (
	"os"
	"strconv"

	"github.com/spf13/cobra"

	apperrors "github.com/piwi3910/sectionsheets/internal/errors"
	"github.com/piwi3910/sectionsheets/internal/model"
	"github.com/piwi3910/sectionsheets/internal/project"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage settings files and application configuration",
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write a settings file with the default values",
		Long:  `Write the default layout settings to path (sectionsheets.toml when omitted). The format follows the file extension: .json, .toml, .yaml or .yml.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "sectionsheets.toml"
			if len(args) == 1 {
				path = args[0]
			}
			if _, err := os.Stat(path); err == nil && !force {
				return apperrors.New(apperrors.ErrCodeInvalidInput, "%s already exists (use --force to overwrite)", path)
			}
			if err := project.SaveSettings(path, model.DefaultSettings()); err != nil {
				return err
			}
			printSuccess(cmd.OutOrStdout(), "Wrote default settings")
			printFile(cmd.OutOrStdout(), path)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the saved application defaults",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := project.LoadAppConfig(project.DefaultConfigPath())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			printKeyValue(out, "config", project.DefaultConfigPath())
			printKeyValue(out, "title block", cfg.DefaultTitleBlock)
			printKeyValue(out, "scale", formatFloat(cfg.DefaultScale))
			printKeyValue(out, "offset", formatFloat(cfg.DefaultOffset))
			printKeyValue(out, "padding", formatFloat(cfg.DefaultPadding))
			printKeyValue(out, "margin", formatFloat(cfg.DefaultMargin))
			printKeyValue(out, "gap", formatFloat(cfg.DefaultGap))
			printKeyValue(out, "sheet prefix", cfg.DefaultSheetPrefix)
			for _, p := range cfg.RecentInputs {
				printInfo(out, "recent: %s", p)
			}
			return nil
		},
	}

	exportCmd := &cobra.Command{
		Use:   "export <backup.json>",
		Short: "Back up the application config and custom title blocks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := project.LoadAppConfig(project.DefaultConfigPath())
			if err != nil {
				return err
			}
			blocks, err := project.LoadCustomTitleBlocks(project.DefaultTitleBlocksPath())
			if err != nil {
				return err
			}
			if err := project.ExportAllData(args[0], cfg, blocks); err != nil {
				return err
			}
			printSuccess(cmd.OutOrStdout(), "Exported config and %d custom title block(s)", len(blocks))
			printFile(cmd.OutOrStdout(), args[0])
			return nil
		},
	}

	importCmd := &cobra.Command{
		Use:   "import <backup.json>",
		Short: "Restore the application config and custom title blocks from a backup",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := project.ImportAllData(args[0])
			if err != nil {
				return err
			}
			if err := project.SaveAppConfig(project.DefaultConfigPath(), data.Config); err != nil {
				return err
			}
			if err := project.SaveCustomTitleBlocks(project.DefaultTitleBlocksPath(), data.TitleBlocks); err != nil {
				return err
			}
			loggerFromContext(cmd.Context()).Info("restored backup", "version", data.Version, "created", data.CreatedAt)
			printSuccess(cmd.OutOrStdout(), "Imported config and %d custom title block(s)", len(data.TitleBlocks))
			return nil
		},
	}

	cmd.AddCommand(initCmd, showCmd, exportCmd, importCmd)
	return cmd
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
