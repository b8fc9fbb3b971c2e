package testutil

import (
	"strings"
	"testing"

	bkErrors "github.com/relpub/relpub/internal/errors"
)

// AssertErrorContains checks if an error contains expected text
func AssertErrorContains(t *testing.T, err error, expected string) {
	t.Helper()

	if err == nil {
		t.Errorf("Expected an error containing %q, but got nil", expected)
		return
	}

	if !strings.Contains(err.Error(), expected) {
		t.Errorf("Expected error to contain %q, got %q", expected, err.Error())
	}
}

// AssertExitCode checks the exit code a fatal error maps to
func AssertExitCode(t *testing.T, err error, expected int) {
	t.Helper()

	if got := bkErrors.GetExitCodeForError(err); got != expected {
		t.Errorf("Expected exit code %d for %v, got %d", expected, err, got)
	}
}

// AssertLines checks output line by line, ignoring a trailing newline
func AssertLines(t *testing.T, output string, expected ...string) {
	t.Helper()

	got := strings.Split(strings.TrimRight(output, "\n"), "\n")
	if len(got) != len(expected) {
		t.Errorf("Expected %d lines, got %d:\n%s", len(expected), len(got), output)
		return
	}
	for i := range expected {
		if got[i] != expected[i] {
			t.Errorf("Line %d: expected %q, got %q", i+1, expected[i], got[i])
		}
	}
}
