package errors

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"
)

func TestHandler(t *testing.T) {
	t.Parallel()

	t.Run("handles nil error", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		exitCode := -1

		NewHandler().
			WithWriter(&buf).
			WithExitFunc(func(code int) { exitCode = code }).
			Handle(nil)

		if buf.Len() > 0 {
			t.Errorf("expected no output for nil error, got: %q", buf.String())
		}
		if exitCode != -1 {
			t.Errorf("exit func should not be called for nil error, got: %d", exitCode)
		}
	})

	t.Run("formats different error types", func(t *testing.T) {
		t.Parallel()

		testCases := []struct {
			name           string
			err            error
			expectedPrefix string
			expectedCode   int
		}{
			{"validation error", NewValidationError(nil, "Invalid input"), "Validation Error:", ExitCodeValidationError},
			{"API error", NewAPIError(nil, "API request failed"), "API Error:", ExitCodeAPIError},
			{"not found error", NewResourceNotFoundError(nil, "release not found"), "Not Found:", ExitCodeNotFoundError},
			{"auth error", NewAuthenticationError(nil, "bad credentials"), "Authentication Error:", ExitCodeAuthError},
			{"config error", NewConfigurationError(nil, "GITHUB_REPOSITORY is not set"), "Configuration Error:", ExitCodeConfigError},
			{"simple error", fmt.Errorf("simple error"), "Error:", ExitCodeGenericError},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				t.Parallel()

				var buf bytes.Buffer
				var exitCode int

				NewHandler().
					WithWriter(&buf).
					WithExitFunc(func(code int) { exitCode = code }).
					Handle(tc.err)

				if !strings.HasPrefix(buf.String(), tc.expectedPrefix) {
					t.Errorf("expected output to start with %q, got: %q", tc.expectedPrefix, buf.String())
				}
				if exitCode != tc.expectedCode {
					t.Errorf("expected exit code %d, got: %d", tc.expectedCode, exitCode)
				}
			})
		}
	})

	t.Run("annotates for GitHub Actions", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		NewHandler().
			WithWriter(&buf).
			WithExitFunc(func(int) {}).
			WithAnnotate(true).
			Handle(NewResourceNotFoundError(nil, "no release for tag v1.0.0", "Create the release first"))

		want := "::error::Not Found: no release for tag v1.0.0%0ATip: Create the release first\n"
		if buf.String() != want {
			t.Errorf("got %q, want %q", buf.String(), want)
		}
	})

	t.Run("includes every suggestion in verbose mode", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		NewHandler().
			WithWriter(&buf).
			WithExitFunc(func(int) {}).
			WithVerbose(true).
			Handle(NewValidationError(nil, "Invalid codec", "Use br", "Use gz"))

		for _, s := range []string{"Use br", "Use gz"} {
			if !strings.Contains(buf.String(), s) {
				t.Errorf("expected output to contain suggestion %q, got: %q", s, buf.String())
			}
		}
	})

	t.Run("names the category once", func(t *testing.T) {
		t.Parallel()

		for _, verbose := range []bool{false, true} {
			var buf bytes.Buffer
			NewHandler().
				WithWriter(&buf).
				WithExitFunc(func(int) {}).
				WithVerbose(verbose).
				WithAnnotate(true).
				Handle(NewValidationError(nil, "--artifact is required", "Pass --artifact"))

			if !strings.HasPrefix(buf.String(), "::error::Validation Error: --artifact is required%0A") {
				t.Errorf("verbose=%t: unexpected annotation %q", verbose, buf.String())
			}
			if strings.Contains(strings.ToLower(buf.String()), "validation error: validation error") {
				t.Errorf("verbose=%t: category repeated in %q", verbose, buf.String())
			}
		}
	})

	t.Run("includes one suggestion in non-verbose mode", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		NewHandler().
			WithWriter(&buf).
			WithExitFunc(func(int) {}).
			Handle(NewValidationError(nil, "Invalid codec", "Use br", "Use gz"))

		if !strings.Contains(buf.String(), "Tip: Use br") {
			t.Errorf("expected first suggestion, got: %q", buf.String())
		}
		if strings.Contains(buf.String(), "Use gz") {
			t.Errorf("expected second suggestion to be omitted, got: %q", buf.String())
		}
	})

	t.Run("adds operation without mutating the original", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		original := NewAPIError(nil, "upload failed").(*Error)

		NewHandler().
			WithWriter(&buf).
			WithExitFunc(func(int) {}).
			HandleWithDetails(original, "relpub")

		if !strings.Contains(buf.String(), "upload failed (during: relpub)") {
			t.Errorf("expected operation in output, got: %q", buf.String())
		}
		if original.Details != "upload failed" {
			t.Errorf("original error was modified: %q", original.Details)
		}
	})

	t.Run("prints warnings", func(t *testing.T) {
		t.Parallel()

		var plain, annotated bytes.Buffer
		NewHandler().WithWriter(&plain).PrintWarning("codec %s skipped", "br")
		NewHandler().WithWriter(&annotated).WithAnnotate(true).PrintWarning("codec %s skipped", "br")

		if plain.String() != "Warning: codec br skipped\n" {
			t.Errorf("unexpected warning %q", plain.String())
		}
		if annotated.String() != "::warning::codec br skipped\n" {
			t.Errorf("unexpected annotated warning %q", annotated.String())
		}
	})
}

func TestGetExitCodeForError(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name         string
		err          error
		expectedCode int
	}{
		{"nil error", nil, ExitCodeSuccess},
		{"validation error", NewValidationError(nil, ""), ExitCodeValidationError},
		{"API error", NewAPIError(nil, ""), ExitCodeAPIError},
		{"not found error", NewResourceNotFoundError(nil, ""), ExitCodeNotFoundError},
		{"permission error", NewPermissionDeniedError(nil, ""), ExitCodePermissionError},
		{"internal error", NewInternalError(nil, ""), ExitCodeInternalError},
		{"canceled context", fmt.Errorf("reading artifact: %w", context.Canceled), ExitCodeUserAbortedError},
		{"user aborted", NewUserAbortedError(context.Canceled, "resolving release: interrupted"), ExitCodeUserAbortedError},
		{"API error caused by cancellation", NewAPIError(context.Canceled, "uploading"), ExitCodeUserAbortedError},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if code := GetExitCodeForError(tc.err); code != tc.expectedCode {
				t.Errorf("expected exit code %d, got: %d", tc.expectedCode, code)
			}
		})
	}
}

func TestEscapeAnnotation(t *testing.T) {
	t.Parallel()

	got := escapeAnnotation("100% done\r\nnext")
	if got != "100%25 done%0D%0Anext" {
		t.Errorf("escapeAnnotation() = %q", got)
	}
}
