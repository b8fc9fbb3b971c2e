// Package io answers questions about the process's standard streams
package io

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

// IsTerminal reports whether w is a terminal. Writers that are not files,
// such as buffers in tests, are never terminals.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// InActions reports whether the process runs as a GitHub Actions step
func InActions() bool {
	return os.Getenv("GITHUB_ACTIONS") == "true"
}
