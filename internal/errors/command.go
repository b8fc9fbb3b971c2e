package errors

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// CommandErrorHandler provides error handling functionality for cobra commands
type CommandErrorHandler struct {
	handler *Handler
}

func NewCommandErrorHandler() *CommandErrorHandler {
	return &CommandErrorHandler{
		handler: NewHandler().WithExitFunc(nil),
	}
}

func (c *CommandErrorHandler) WithVerbose(verbose bool) *CommandErrorHandler {
	c.handler.WithVerbose(verbose)
	return c
}

func (c *CommandErrorHandler) WithAnnotate(annotate bool) *CommandErrorHandler {
	c.handler.WithAnnotate(annotate)
	return c
}

// HandleCommandError writes err to the command's error output, tagged with the command path
func (c *CommandErrorHandler) HandleCommandError(cmd *cobra.Command, err error) {
	if err == nil {
		return
	}

	c.handler.WithWriter(cmd.ErrOrStderr())
	c.handler.HandleWithDetails(err, getCommandPath(cmd))
}

// getCommandPath returns the full path of a command (e.g., "relpub platform")
func getCommandPath(cmd *cobra.Command) string {
	if cmd == nil {
		return ""
	}

	names := []string{cmd.Name()}
	for parent := cmd.Parent(); parent != nil; parent = parent.Parent() {
		names = append([]string{parent.Name()}, names...)
	}

	return strings.Join(names, " ")
}

// ExecuteWithErrorHandling runs a cobra command and returns the process exit code.
// Fatal errors are rendered once, as an annotation when annotate is set.
func ExecuteWithErrorHandling(ctx context.Context, cmd *cobra.Command, verbose, annotate bool) int {
	cmd.SilenceErrors = true

	executed, err := cmd.ExecuteContextC(ctx)
	if err != nil {
		if executed == nil {
			executed = cmd
		}
		NewCommandErrorHandler().
			WithVerbose(verbose).
			WithAnnotate(annotate).
			HandleCommandError(executed, err)
		return GetExitCodeForError(err)
	}

	return ExitCodeSuccess
}

// WrapRunE decorates a RunE function with command specific suggestions
func WrapRunE(fn func(cmd *cobra.Command, args []string) error) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		err := fn(cmd, args)
		if err == nil {
			return nil
		}

		if IsValidationError(err) || IsConfigurationError(err) {
			err = WithSuggestions(err, fmt.Sprintf("Try '%s --help' for more information", cmd.CommandPath()))
		}
		return err
	}
}
