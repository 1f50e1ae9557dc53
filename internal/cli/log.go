// Package cli implements the sectionsheets command-line interface.
//
// Commands read a room list (CSV, Excel or DXF), derive a vertical and a
// horizontal section per room and pack the section viewports onto numbered
// sheets. The CLI is built using cobra and logs through charmbracelet/log.
//
// # Commands
//
//   - plan: derive, pack and export sheets (JSON, PDF, XLSX, DXF)
//   - derive: print the section boxes as JSON
//   - compare: run what-if scenarios and print one line per scenario
//   - titleblocks: list built-in and custom title blocks
//   - config: write, export and import configuration files
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging, which also
// turns on per-viewport placement tracing. Loggers are passed through
// context.Context.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger builds the command logger. Lines carry a wall-clock time with
// hundredths so that import, packing and export steps can be told apart.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress times one pipeline stage, such as importing rooms or writing a
// sheet set.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done reports the stage at info level with its duration in milliseconds.
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

type ctxKey int

const loggerKey ctxKey = 0

// withLogger stores the command logger for the planner and exporters.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext returns the command logger. Tests that call a command
// helper directly get log.Default().
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
