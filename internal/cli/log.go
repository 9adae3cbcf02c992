// Package cli implements the giftring command-line interface.
//
// This package provides commands for drawing constraint-respecting pairings
// from a roster file, validating rosters, rendering constraint graphs, and
// delivering results as padded archives, an interactive reveal, or a claim
// server. The CLI is built using cobra and supports verbose logging via the
// charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - draw: Compute a pairing and write per-participant archives
//   - check: Validate a roster and probe feasibility without output
//   - graph: Render the allowed-edge graph or result ring via Graphviz
//   - reveal: Interactively reveal one assignment at a time
//   - serve: Deliver assignments over HTTP with one-time claim codes
//   - history: Inspect recorded draws
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging.
package cli

import (
	"io"

	"github.com/charmbracelet/log"
)

// newLogger creates a new logger with timestamp formatting.
// The logger writes to w and filters messages at the specified level.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}
