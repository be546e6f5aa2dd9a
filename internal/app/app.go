// Package app wires sha2stream application execution.
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"sha2stream/internal/cli"
	apperrors "sha2stream/internal/errors"
)

// App wires CLI execution.
type App struct {
	stdout io.Writer
	stderr io.Writer
	stdin  io.Reader
}

// New creates an App bound to the process streams.
func New() App {
	return App{stdout: os.Stdout, stderr: os.Stderr, stdin: os.Stdin}
}

// NewWithStreams creates an App bound to the given streams.
func NewWithStreams(stdout, stderr io.Writer, stdin io.Reader) App {
	return App{stdout: stdout, stderr: stderr, stdin: stdin}
}

// Run executes the application and returns a process exit code.
// An interrupt cancels hashing; resumable runs keep their checkpoint.
func (a App) Run(args []string) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	root := cli.NewRootCommand(a.stdout, a.stderr, a.stdin)
	root.SetArgs(args)

	if err := root.ExecuteContext(ctx); err != nil {
		_, _ = fmt.Fprintf(a.stderr, "error: %v\n", err)
		return apperrors.ExitCode(err)
	}

	return 0
}
