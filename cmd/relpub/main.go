package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	bkErrors "github.com/relpub/relpub/internal/errors"
	bkIO "github.com/relpub/relpub/internal/io"
	"github.com/relpub/relpub/internal/version"
	"github.com/relpub/relpub/pkg/cmd/factory"
	"github.com/relpub/relpub/pkg/cmd/root"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	f := factory.New(version.Version)
	cmd, err := root.NewCmdRoot(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create commands: %v\n", err)
		return bkErrors.ExitCodeInternalError
	}

	// RUNNER_DEBUG is set by GitHub when a workflow is re-run with debug logging
	verbose := os.Getenv("RUNNER_DEBUG") == "1"

	return bkErrors.ExecuteWithErrorHandling(ctx, cmd, verbose, bkIO.InActions())
}
