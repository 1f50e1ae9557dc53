package cli

import (
	"context"
	"fmt"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  string
	date    string
)

// SetVersion sets the version information displayed by --version.
// It is called by the main package with values injected via ldflags.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the sectionsheets CLI and returns an error if any command fails.
func Execute(ctx context.Context) error {
	return newRootCmd().ExecuteContext(ctx)
}

// newRootCmd builds the command tree. Logs go to stderr at info level, or
// debug level with --verbose.
func newRootCmd() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:           "sectionsheets",
		Short:         "Lay out room sections on drawing sheets",
		Long:          `sectionsheets derives a vertical and a horizontal section box for every room in a plan and packs the resulting viewports onto numbered title-block sheets.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(cmd.ErrOrStderr(), level))
			cmd.SetContext(ctx)
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("sectionsheets %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.SetErr(os.Stderr)

	root.AddCommand(newPlanCmd())
	root.AddCommand(newDeriveCmd())
	root.AddCommand(newCompareCmd())
	root.AddCommand(newTitleBlocksCmd())
	root.AddCommand(newConfigCmd())

	return root
}
