// Package cli implements the kintree command-line interface.
//
// Commands read people from a JSON file, a SQLite database or a MongoDB
// collection, build the couple forest and lay it out. The CLI is built on
// cobra and logs through charmbracelet/log.
//
// # Commands
//
//   - layout: Compute a layout and write it as JSON
//   - render: Generate SVG, PNG, PDF, JSON or DOT output
//   - relations, search: Query the relationship index
//   - view: Browse the tree in the terminal
//   - serve: Expose the tree over HTTP
//   - import: Copy people between stores
//   - cache: Manage the local layout cache
//
// # Logging
//
// The --verbose (-v) flag enables debug logging, which also routes pipeline,
// cache and server hooks through the logger.
package cli

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a logger with short timestamps ("14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress logs completion of an operation along with its elapsed time.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg with the elapsed time rounded to the millisecond,
// e.g. "Rendered 3 artifacts (12ms)".
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}
