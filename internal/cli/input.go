package cli

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	apperrors "github.com/piwi3910/sectionsheets/internal/errors"
	"github.com/piwi3910/sectionsheets/internal/importer"
	"github.com/piwi3910/sectionsheets/internal/model"
	"github.com/piwi3910/sectionsheets/internal/project"
)

// layoutFlags are the settings flags shared by plan, derive and compare.
type layoutFlags struct {
	config      string
	titleBlock  string
	scale       float64
	offset      float64
	padding     float64
	margin      float64
	gap         float64
	phase       string
	sheetPrefix string
	height      float64
}

func (f *layoutFlags) register(cmd *cobra.Command) {
	defaults := model.DefaultSettings()
	cmd.Flags().StringVarP(&f.config, "config", "c", "", "settings file (.json, .toml, .yaml)")
	cmd.Flags().StringVarP(&f.titleBlock, "title-block", "t", defaults.TitleBlock, "title block name")
	cmd.Flags().Float64VarP(&f.scale, "scale", "s", defaults.Scale, "view scale denominator (20 = 1:20)")
	cmd.Flags().Float64Var(&f.offset, "offset", defaults.Offset, "clearance around each room in model units")
	cmd.Flags().Float64Var(&f.padding, "padding", defaults.Padding, "paper padding added to each viewport")
	cmd.Flags().Float64Var(&f.margin, "margin", defaults.Margin, "sheet edge margin")
	cmd.Flags().Float64Var(&f.gap, "gap", defaults.Gap, "space between viewports")
	cmd.Flags().StringVar(&f.phase, "phase", "", "only include rooms in this phase")
	cmd.Flags().StringVar(&f.sheetPrefix, "sheet-prefix", defaults.SheetPrefix, "sheet number prefix")
	cmd.Flags().Float64Var(&f.height, "height", 3000, "room height for DXF input")
}

// resolveSettings builds the run settings. A --config file replaces the saved
// application defaults; explicitly set flags override both. Custom title
// blocks from the user library are loaded so --title-block can name them.
func (f *layoutFlags) resolveSettings(ctx context.Context, cmd *cobra.Command) (model.Settings, error) {
	logger := loggerFromContext(ctx)

	blocks, err := project.LoadCustomTitleBlocks(project.DefaultTitleBlocksPath())
	if err != nil {
		logger.Warn("ignoring custom title blocks", "error", err)
	} else {
		model.CustomTitleBlocks = blocks
	}

	settings := model.DefaultSettings()
	if f.config != "" {
		settings, err = project.LoadSettings(f.config)
		if err != nil {
			return model.Settings{}, err
		}
		logger.Debug("loaded settings", "path", f.config)
	} else if cfg, err := project.LoadAppConfig(project.DefaultConfigPath()); err == nil {
		cfg.ApplyToSettings(&settings)
	} else {
		logger.Warn("ignoring application config", "error", err)
	}

	flags := cmd.Flags()
	if flags.Changed("title-block") {
		settings.TitleBlock = f.titleBlock
	}
	if flags.Changed("scale") {
		settings.Scale = f.scale
	}
	if flags.Changed("offset") {
		settings.Offset = f.offset
	}
	if flags.Changed("padding") {
		settings.Padding = f.padding
	}
	if flags.Changed("margin") {
		settings.Margin = f.margin
	}
	if flags.Changed("gap") {
		settings.Gap = f.gap
	}
	if flags.Changed("phase") {
		settings.Phase = f.phase
	}
	if flags.Changed("sheet-prefix") {
		settings.SheetPrefix = f.sheetPrefix
	}

	if _, ok := model.LookupTitleBlock(settings.TitleBlock); !ok {
		return model.Settings{}, apperrors.New(apperrors.ErrCodeInvalidConfig,
			"unknown title block %q (available: %s)", settings.TitleBlock, strings.Join(model.TitleBlockNames(), ", "))
	}
	return settings, settings.Validate()
}

// loadRooms imports rooms from path, choosing the reader by extension.
// Import warnings are logged; row errors are logged and skipped unless no
// room could be read at all.
func loadRooms(ctx context.Context, path string, height float64) ([]model.Room, error) {
	logger := loggerFromContext(ctx)

	var result importer.ImportResult
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".txt":
		result = importer.ImportCSV(path)
	case ".xlsx":
		result = importer.ImportExcel(path)
	case ".dxf":
		result = importer.ImportDXF(path, height)
	default:
		return nil, apperrors.New(apperrors.ErrCodeInvalidFormat, "unsupported input %q (want .csv, .xlsx or .dxf)", path)
	}

	for _, w := range result.Warnings {
		logger.Debug(w)
	}
	for _, e := range result.Errors {
		logger.Warn(e)
	}
	if len(result.Rooms) == 0 {
		if len(result.Errors) > 0 {
			return nil, apperrors.New(apperrors.ErrCodeInvalidInput, "%s: %s", path, result.Errors[0])
		}
		return nil, apperrors.New(apperrors.ErrCodeInvalidInput, "%s: no rooms found", path)
	}

	logger.Info("loaded rooms", "path", path, "count", len(result.Rooms))
	return result.Rooms, nil
}
