package testutil

import (
	"bytes"
	"testing"

	"github.com/relpub/relpub/pkg/cmd/factory"
	"github.com/spf13/cobra"
)

// CommandInput contains the configuration for a test command
type CommandInput struct {
	Flags   map[string]string
	Args    []string
	Factory *factory.Factory
	NewCmd  func(*factory.Factory) *cobra.Command
}

// CommandOutput captures what a test command printed
type CommandOutput struct {
	Stdout *bytes.Buffer
	Stderr *bytes.Buffer
}

// CreateCommand creates a test command with the given configuration
func CreateCommand(t *testing.T, input CommandInput) (*cobra.Command, CommandOutput) {
	t.Helper()

	if input.Factory == nil {
		input.Factory = CreateFactory(t, nil)
	}

	cmd := input.NewCmd(input.Factory)

	args := []string{}
	for k, v := range input.Flags {
		args = append(args, "--"+k+"="+v)
	}
	args = append(args, input.Args...)
	cmd.SetArgs(args)

	out := CommandOutput{Stdout: &bytes.Buffer{}, Stderr: &bytes.Buffer{}}
	cmd.SetOut(out.Stdout)
	cmd.SetErr(out.Stderr)

	return cmd, out
}
