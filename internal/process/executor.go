package process

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
)

// Executor runs commands synchronously with inherited standard streams.
//
// Unlike a monitoring proxy there is nothing to intercept here: the child owns
// the terminal for the duration of the run, and the only result the caller
// cares about is the exit code.
type Executor struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// NewExecutor creates an executor wired to the current process's streams
func NewExecutor() *Executor {
	return &Executor{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// Run executes the command and blocks until it exits.
//
// The returned int is the child's exit code. A non-nil error means the command
// never ran to completion on its own terms: the working directory was invalid,
// the executable could not be started, or waiting on it failed. A child that
// starts and exits non-zero is not an error; its exit code is simply returned.
func (e *Executor) Run(ctx context.Context, cmd Command) (int, error) {
	if err := cmd.IsValid(); err != nil {
		return -1, err
	}

	execCmd := exec.CommandContext(ctx, cmd.Executable(), cmd.Args()...)
	execCmd.Dir = cmd.WorkingDir()
	execCmd.Env = cmd.Environ()
	execCmd.Stdin = e.Stdin
	execCmd.Stdout = e.Stdout
	execCmd.Stderr = e.Stderr

	if err := execCmd.Start(); err != nil {
		return -1, fmt.Errorf("failed to start %s: %w", cmd.Executable(), err)
	}

	err := execCmd.Wait()
	if err == nil {
		return 0, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), nil
	}

	return -1, fmt.Errorf("failed waiting for %s: %w", cmd.Executable(), err)
}
