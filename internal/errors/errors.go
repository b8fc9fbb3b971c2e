package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Categories used to classify every fatal error the CLI can return
var (
	// ErrConfiguration indicates missing or malformed environment or flag values
	ErrConfiguration = errors.New("configuration error")

	// ErrValidation indicates invalid input from the user
	ErrValidation = errors.New("validation error")

	// ErrAPI indicates an error from the GitHub API
	ErrAPI = errors.New("API error")

	// ErrResourceNotFound indicates a requested resource was not found
	ErrResourceNotFound = errors.New("resource not found")

	// ErrPermissionDenied indicates the token lacks permission
	ErrPermissionDenied = errors.New("permission denied")

	// ErrAuthentication indicates an issue with authentication
	ErrAuthentication = errors.New("authentication error")

	// ErrInternal indicates an internal error in the CLI
	ErrInternal = errors.New("internal error")

	// ErrUserAborted indicates the run was interrupted
	ErrUserAborted = errors.New("user aborted")
)

// Error represents a CLI error with context
type Error struct {
	// Original is the underlying error
	Original error

	// Category is one of the sentinel categories above
	Category error

	// Details contains additional detail about the error
	Details string

	// Suggestions provides hints on how to fix the error
	Suggestions []string
}

func (e *Error) Error() string {
	var msg strings.Builder

	if e.Category != nil {
		msg.WriteString(e.Category.Error())
		msg.WriteString(": ")
	}

	if e.Original != nil {
		msg.WriteString(e.Original.Error())
	}

	if e.Details != "" {
		if e.Original != nil {
			msg.WriteString(" (")
			msg.WriteString(e.Details)
			msg.WriteString(")")
		} else {
			msg.WriteString(e.Details)
		}
	}

	return msg.String()
}

// message is the error text without its category
func (e *Error) message() string {
	switch {
	case e.Original != nil && e.Details != "":
		return fmt.Sprintf("%s (%s)", e.Original, e.Details)
	case e.Original != nil:
		return e.Original.Error()
	default:
		return e.Details
	}
}

func (e *Error) suggestionList() string {
	var msg strings.Builder
	for i, suggestion := range e.Suggestions {
		if i == 0 {
			msg.WriteString("\n")
		}
		msg.WriteString("\n• ")
		msg.WriteString(suggestion)
	}
	return msg.String()
}

func (e *Error) Unwrap() error {
	if e.Original != nil {
		return e.Original
	}
	return e.Category
}

// Is reports a match on either the category or the wrapped error
func (e *Error) Is(target error) bool {
	return errors.Is(e.Category, target) || (e.Original != nil && errors.Is(e.Original, target))
}

// NewError creates a new Error with the given attributes
func NewError(original error, category error, details string, suggestions ...string) *Error {
	return &Error{
		Original:    original,
		Category:    category,
		Details:     details,
		Suggestions: suggestions,
	}
}

// WithSuggestions adds suggestions to an existing error
func WithSuggestions(err error, suggestions ...string) error {
	var cliErr *Error
	if errors.As(err, &cliErr) {
		cliErr.Suggestions = append(cliErr.Suggestions, suggestions...)
		return err
	}
	return NewError(err, nil, "", suggestions...)
}

func NewConfigurationError(err error, details string, suggestions ...string) error {
	return NewError(err, ErrConfiguration, details, suggestions...)
}

func NewValidationError(err error, details string, suggestions ...string) error {
	return NewError(err, ErrValidation, details, suggestions...)
}

func NewAPIError(err error, details string, suggestions ...string) error {
	return NewError(err, ErrAPI, details, suggestions...)
}

func NewResourceNotFoundError(err error, details string, suggestions ...string) error {
	return NewError(err, ErrResourceNotFound, details, suggestions...)
}

func NewPermissionDeniedError(err error, details string, suggestions ...string) error {
	return NewError(err, ErrPermissionDenied, details, suggestions...)
}

func NewAuthenticationError(err error, details string, suggestions ...string) error {
	return NewError(err, ErrAuthentication, details, suggestions...)
}

func NewInternalError(err error, details string, suggestions ...string) error {
	return NewError(err, ErrInternal, details, suggestions...)
}

func NewUserAbortedError(err error, details string, suggestions ...string) error {
	return NewError(err, ErrUserAborted, details, suggestions...)
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrResourceNotFound)
}

func IsValidationError(err error) bool {
	return errors.Is(err, ErrValidation)
}

func IsAPIError(err error) bool {
	return errors.Is(err, ErrAPI)
}

func IsAuthenticationError(err error) bool {
	return errors.Is(err, ErrAuthentication)
}

func IsPermissionDeniedError(err error) bool {
	return errors.Is(err, ErrPermissionDenied)
}

func IsConfigurationError(err error) bool {
	return errors.Is(err, ErrConfiguration)
}

func IsUserAborted(err error) bool {
	return errors.Is(err, ErrUserAborted)
}
