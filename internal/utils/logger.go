// Package utils holds small helpers shared across the application.
package utils

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// NewLogger creates a new [log.Logger] with timestamps enabled, writing
// to the given writer (defaults to [os.Stderr]).  Components derive
// child loggers from it with With.
func NewLogger(w io.Writer) *log.Logger {
	if w == nil {
		w = os.Stderr
	}
	opts := log.Options{ReportTimestamp: true}
	return log.NewWithOptions(w, opts)
}
