package platform

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
)

// Result describes how a probe command finished.
type Result struct {
	Stdout []byte
	Stderr []byte
	// ExitCode is -1 when the process did not exit normally
	ExitCode int
	// Signaled is set when the process was terminated by a signal
	Signaled bool
	// Err is set when the process could not be started at all
	Err error
}

// Succeeded reports a clean, zero-status exit
func (r Result) Succeeded() bool {
	return r.Err == nil && !r.Signaled && r.ExitCode == 0
}

// Runner runs a probe command to completion
type Runner interface {
	Run(ctx context.Context, name string, args ...string) Result
}

// ExecRunner runs probes as child processes of the current process
type ExecRunner struct{}

func (ExecRunner) Run(ctx context.Context, name string, args ...string) Result {
	var stdout, stderr bytes.Buffer

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	res := Result{Stdout: stdout.Bytes(), Stderr: stderr.Bytes()}

	var exitErr *exec.ExitError
	switch {
	case err == nil:
		res.ExitCode = 0
	case errors.As(err, &exitErr):
		res.ExitCode = exitErr.ExitCode()
		res.Signaled = !exitErr.Exited()
	default:
		res.ExitCode = -1
		res.Err = err
	}
	return res
}
