// Package logging configures launcher diagnostics. The child process owns
// stdout for the duration of a run, so launcher output goes exclusively to
// stderr and stays quiet unless debug mode is on.
package logging

import (
	"os"

	"github.com/charmbracelet/log"
)

// NewLogger creates the launcher's stderr logger
func NewLogger(debug bool) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: false,
		Prefix:          "adsb-launch",
	})

	if debug {
		logger.SetLevel(log.DebugLevel)
	} else {
		logger.SetLevel(log.WarnLevel)
	}

	return logger
}
