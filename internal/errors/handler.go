package errors

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// Exit codes for different error types
const (
	ExitCodeSuccess          = 0
	ExitCodeGenericError     = 1
	ExitCodeValidationError  = 2
	ExitCodeAPIError         = 3
	ExitCodeNotFoundError    = 4
	ExitCodePermissionError  = 5
	ExitCodeConfigError      = 6
	ExitCodeAuthError        = 7
	ExitCodeInternalError    = 8
	ExitCodeUserAbortedError = 130 // Same as Ctrl+C in bash
)

// Handler processes fatal errors and formats them for the CI log
type Handler struct {
	// Writer is where error messages will be written
	Writer io.Writer
	// ExitFunc is called with the exit code derived from the error category
	ExitFunc func(int)
	// Verbose includes every suggestion instead of only the first one
	Verbose bool
	// Annotate renders the message as a GitHub Actions workflow command
	Annotate bool
}

func NewHandler() *Handler {
	return &Handler{
		Writer:   os.Stderr,
		ExitFunc: os.Exit,
	}
}

func (h *Handler) WithWriter(w io.Writer) *Handler {
	h.Writer = w
	return h
}

func (h *Handler) WithExitFunc(f func(int)) *Handler {
	h.ExitFunc = f
	return h
}

func (h *Handler) WithVerbose(v bool) *Handler {
	h.Verbose = v
	return h
}

func (h *Handler) WithAnnotate(v bool) *Handler {
	h.Annotate = v
	return h
}

// Handle writes the error and calls ExitFunc with its exit code
func (h *Handler) Handle(err error) {
	if err == nil {
		return
	}

	exitCode := getExitCode(err)
	fmt.Fprintln(h.Writer, h.formatError(err))

	if h.ExitFunc != nil {
		h.ExitFunc(exitCode)
	}
}

func getExitCode(err error) int {
	switch {
	case IsUserAborted(err), errors.Is(err, context.Canceled):
		return ExitCodeUserAbortedError
	case IsValidationError(err):
		return ExitCodeValidationError
	case IsAuthenticationError(err):
		return ExitCodeAuthError
	case IsPermissionDeniedError(err):
		return ExitCodePermissionError
	case IsNotFound(err):
		return ExitCodeNotFoundError
	case IsAPIError(err):
		return ExitCodeAPIError
	case IsConfigurationError(err):
		return ExitCodeConfigError
	case errors.Is(err, ErrInternal):
		return ExitCodeInternalError
	default:
		return ExitCodeGenericError
	}
}

func (h *Handler) formatError(err error) string {
	prefix := "Error:"
	message := err.Error()

	var cliErr *Error
	if errors.As(err, &cliErr) {
		if cliErr.Category != nil {
			prefix = getCategoryPrefix(cliErr.Category)
		}

		// the prefix already names the category
		message = cliErr.message()
		if h.Verbose {
			message += cliErr.suggestionList()
		} else if len(cliErr.Suggestions) > 0 {
			message = fmt.Sprintf("%s\nTip: %s", message, cliErr.Suggestions[0])
		}
	}

	if h.Annotate {
		return "::error::" + escapeAnnotation(prefix+" "+message)
	}
	return fmt.Sprintf("%s %s", prefix, message)
}

// escapeAnnotation encodes the characters GitHub Actions treats specially in
// workflow command data so multi-line messages stay a single annotation.
func escapeAnnotation(s string) string {
	return strings.NewReplacer("%", "%25", "\r", "%0D", "\n", "%0A").Replace(s)
}

func getCategoryPrefix(category error) string {
	switch category {
	case ErrValidation:
		return "Validation Error:"
	case ErrAPI:
		return "API Error:"
	case ErrResourceNotFound:
		return "Not Found:"
	case ErrPermissionDenied:
		return "Permission Denied:"
	case ErrConfiguration:
		return "Configuration Error:"
	case ErrAuthentication:
		return "Authentication Error:"
	case ErrUserAborted:
		return "Aborted:"
	case ErrInternal:
		return "Internal Error:"
	default:
		return "Error:"
	}
}

// HandleWithDetails adds the operation to the error details before handling it.
// The original error is left untouched.
func (h *Handler) HandleWithDetails(err error, operation string) {
	if err == nil {
		return
	}
	if operation == "" {
		h.Handle(err)
		return
	}

	var cliErr *Error
	if !errors.As(err, &cliErr) {
		h.Handle(NewError(err, nil, fmt.Sprintf("failed during: %s", operation)))
		return
	}

	contextual := &Error{
		Original:    cliErr.Original,
		Category:    cliErr.Category,
		Details:     cliErr.Details,
		Suggestions: append([]string(nil), cliErr.Suggestions...),
	}
	if contextual.Details == "" {
		contextual.Details = fmt.Sprintf("failed during: %s", operation)
	} else {
		contextual.Details = fmt.Sprintf("%s (during: %s)", contextual.Details, operation)
	}
	h.Handle(contextual)
}

// PrintWarning prints a warning, as a workflow annotation when annotating
func (h *Handler) PrintWarning(format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)
	if h.Annotate {
		fmt.Fprintf(h.Writer, "::warning::%s\n", escapeAnnotation(message))
		return
	}
	fmt.Fprintf(h.Writer, "Warning: %s\n", message)
}

// GetExitCodeForError returns the exit code for a given error
func GetExitCodeForError(err error) int {
	if err == nil {
		return ExitCodeSuccess
	}
	return getExitCode(err)
}
