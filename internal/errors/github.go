package errors

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/go-github/v62/github"
)

// WrapGitHubError classifies an error returned by the GitHub client by
// HTTP status and attaches operation context and suggestions
func WrapGitHubError(err error, operation string) error {
	if err == nil {
		return nil
	}

	var cliErr *Error
	if errors.As(err, &cliErr) {
		if operation != "" {
			cliErr.Details = fmt.Sprintf("%s: %s", operation, cliErr.Details)
		}
		return err
	}

	if errors.Is(err, context.Canceled) {
		return NewUserAbortedError(err, fmt.Sprintf("%s: interrupted", operation))
	}

	var rateErr *github.RateLimitError
	if errors.As(err, &rateErr) {
		return NewAPIError(err, fmt.Sprintf("%s: rate limit exceeded", operation),
			fmt.Sprintf("The rate limit resets at %s", rateErr.Rate.Reset.Time.Format("15:04:05 MST")))
	}

	var abuseErr *github.AbuseRateLimitError
	if errors.As(err, &abuseErr) {
		return NewAPIError(err, fmt.Sprintf("%s: secondary rate limit exceeded", operation),
			"Wait a few minutes before re-running the job")
	}

	var respErr *github.ErrorResponse
	if errors.As(err, &respErr) && respErr.Response != nil {
		return handleGitHubResponse(respErr, operation)
	}

	return NewAPIError(err, fmt.Sprintf("API request failed during: %s", operation))
}

func handleGitHubResponse(respErr *github.ErrorResponse, operation string) error {
	statusCode := respErr.Response.StatusCode
	details := fmt.Sprintf("%s failed with status %d", operation, statusCode)

	switch {
	case statusCode == http.StatusNotFound:
		return NewResourceNotFoundError(respErr, details,
			"Check that the release exists and the token can read the repository")
	case statusCode == http.StatusUnauthorized:
		return NewAuthenticationError(respErr, details,
			"Check that GITHUB_TOKEN is set to a valid token")
	case statusCode == http.StatusForbidden:
		return NewPermissionDeniedError(respErr, details,
			"The token needs the contents: write permission to upload release assets")
	case statusCode == http.StatusUnprocessableEntity:
		suggestions := make([]string, 0, len(respErr.Errors))
		for _, e := range respErr.Errors {
			if e.Message != "" {
				suggestions = append(suggestions, fmt.Sprintf("%s.%s: %s", e.Resource, e.Field, e.Message))
			} else {
				suggestions = append(suggestions, fmt.Sprintf("%s.%s: %s", e.Resource, e.Field, e.Code))
			}
		}
		return NewValidationError(respErr, details, suggestions...)
	case statusCode >= 500:
		return NewAPIError(respErr, details,
			"This appears to be a server-side error",
			"Try again later or check https://www.githubstatus.com")
	default:
		return NewAPIError(respErr, details)
	}
}

// HasErrorCode reports whether a GitHub 422 response carries the given
// field-level error code (for example "already_exists")
func HasErrorCode(err error, code string) bool {
	var respErr *github.ErrorResponse
	if !errors.As(err, &respErr) {
		return false
	}
	for _, e := range respErr.Errors {
		if e.Code == code {
			return true
		}
	}
	return false
}
