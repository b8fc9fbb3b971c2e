// Package logging builds the diagnostic logger shared by every command
package logging

import (
	"io"

	"github.com/charmbracelet/log"
	bkIO "github.com/relpub/relpub/internal/io"
)

// New returns a logger writing to w. Terminals get the human readable
// formatter, anything else (CI logs, files) gets logfmt.
func New(w io.Writer, debug bool) *log.Logger {
	level := log.InfoLevel
	if debug {
		level = log.DebugLevel
	}

	formatter := log.LogfmtFormatter
	if bkIO.IsTerminal(w) {
		formatter = log.TextFormatter
	}

	return log.NewWithOptions(w, log.Options{
		Level:     level,
		Prefix:    "relpub",
		Formatter: formatter,
	})
}

// Discard returns a logger that drops everything
func Discard() *log.Logger {
	return log.New(io.Discard)
}
