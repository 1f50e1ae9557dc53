package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/piwi3910/sectionsheets/internal/engine"
	apperrors "github.com/piwi3910/sectionsheets/internal/errors"
	"github.com/piwi3910/sectionsheets/internal/export"
	"github.com/piwi3910/sectionsheets/internal/model"
	"github.com/piwi3910/sectionsheets/internal/project"
)

const maxRecentInputs = 10

type planOptions struct {
	layout  layoutFlags
	out     string
	formats []string
}

func newPlanCmd() *cobra.Command {
	var opts planOptions

	cmd := &cobra.Command{
		Use:   "plan <rooms-file>",
		Short: "Derive room sections and lay them out on sheets",
		Long: `Derive a vertical and a horizontal section for every room and pack the
viewports onto numbered sheets.

Input may be CSV, Excel (.xlsx) or DXF. Output files are written to --out and
named after the input file.`,
		Example: `  sectionsheets plan rooms.csv
  sectionsheets plan rooms.xlsx --scale 50 --title-block A1 --format pdf,xlsx
  sectionsheets plan plan.dxf --height 2700 -o build/`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlan(cmd.Context(), cmd, args[0], &opts)
		},
	}

	opts.layout.register(cmd)
	cmd.Flags().StringVarP(&opts.out, "out", "o", ".", "output directory")
	cmd.Flags().StringSliceVarP(&opts.formats, "format", "f", nil, "output formats: json, pdf, xlsx, dxf (default from app config)")

	return cmd
}

func runPlan(ctx context.Context, cmd *cobra.Command, input string, opts *planOptions) error {
	logger := loggerFromContext(ctx)
	out := cmd.OutOrStdout()

	settings, err := opts.layout.resolveSettings(ctx, cmd)
	if err != nil {
		return err
	}
	appCfg, cfgErr := project.LoadAppConfig(project.DefaultConfigPath())
	if cfgErr != nil {
		appCfg = model.DefaultAppConfig()
	}
	formats := opts.formats
	if len(formats) == 0 {
		formats = appCfg.OutputFormats
	}
	if err := validateFormats(formats); err != nil {
		return err
	}

	rooms, err := loadRooms(ctx, input, opts.layout.height)
	if err != nil {
		return err
	}

	prog := newProgress(logger)
	var tracer engine.Tracer
	if logger.GetLevel() <= charmlog.DebugLevel {
		tracer = engine.NewLogTracer(logger)
	}
	planner := engine.NewPlanner(settings, tracer)
	plan, err := planner.Plan(rooms)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("planned %d section(s) on %d sheet(s)", len(plan.Sections), len(plan.Sheets)))

	for _, f := range plan.Failures {
		logger.Warn(f.String())
	}

	paths, err := writeOutputs(opts.out, input, formats, plan, planner.TitleBlock)
	if err != nil {
		return err
	}

	printSuccess(out, "%d viewport(s) on %d sheet(s), %s",
		plan.PlacedCount(), len(plan.Sheets), StyleNumber.Render(fmt.Sprintf("%.1f%%", plan.Efficiency())))
	if n := len(plan.Failures); n > 0 {
		printWarning(out, "%d failure(s), see the log or the Failures sheet", n)
	}
	for _, p := range paths {
		printFile(out, p)
	}

	if cfgErr == nil {
		if abs, err := filepath.Abs(input); err == nil {
			appCfg.AddRecentInput(abs, maxRecentInputs)
			if err := project.SaveAppConfig(project.DefaultConfigPath(), appCfg); err != nil {
				logger.Debug("could not record recent input", "error", err)
			}
		}
	}
	return nil
}

var exporters = map[string]func(path string, plan model.PlanResult, tb model.TitleBlock) error{
	"json": func(path string, plan model.PlanResult, _ model.TitleBlock) error {
		return export.ExportJSON(path, plan)
	},
	"pdf": export.ExportPDF,
	"xlsx": func(path string, plan model.PlanResult, _ model.TitleBlock) error {
		return export.ExportScheduleXLSX(path, plan)
	},
	"dxf": export.ExportDXF,
}

func validateFormats(formats []string) error {
	if len(formats) == 0 {
		return apperrors.New(apperrors.ErrCodeInvalidConfig, "no output formats selected")
	}
	for _, f := range formats {
		if _, ok := exporters[strings.ToLower(f)]; !ok {
			return apperrors.New(apperrors.ErrCodeInvalidFormat, "unknown output format %q", f)
		}
	}
	return nil
}

// writeOutputs writes one file per format as <dir>/<input-stem>-sections.<ext>.
func writeOutputs(dir, input string, formats []string, plan model.PlanResult, tb model.TitleBlock) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	stem := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))

	var paths []string
	for _, f := range formats {
		ext := strings.ToLower(f)
		path := filepath.Join(dir, stem+"-sections."+ext)
		if ext != "json" && len(plan.Sheets) == 0 {
			continue
		}
		if err := exporters[ext](path, plan, tb); err != nil {
			return paths, fmt.Errorf("write %s: %w", ext, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
