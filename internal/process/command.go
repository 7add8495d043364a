package process

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Command represents a child process invocation with a fully specified
// environment block. The environment travels with the command as an explicit
// value; the launcher's own process environment is never mutated.
type Command struct {
	executable string
	args       []string
	workingDir string
	env        []string
}

// NewCommand creates a new Command value object
func NewCommand(executable string, args []string, workingDir string, env []string) (Command, error) {
	if executable == "" {
		return Command{}, fmt.Errorf("executable cannot be empty")
	}

	if workingDir == "" {
		var err error
		workingDir, err = os.Getwd()
		if err != nil {
			workingDir = "."
		}
	}

	// Resolve working directory to absolute path
	if !filepath.IsAbs(workingDir) {
		absDir, err := filepath.Abs(workingDir)
		if err == nil {
			workingDir = absDir
		}
	}

	return Command{
		executable: executable,
		args:       append([]string(nil), args...),
		workingDir: workingDir,
		env:        append([]string(nil), env...),
	}, nil
}

// Executable returns the command executable
func (c Command) Executable() string {
	return c.executable
}

// Args returns a copy of the command arguments
func (c Command) Args() []string {
	return append([]string(nil), c.args...)
}

// WorkingDir returns the working directory for the command
func (c Command) WorkingDir() string {
	return c.workingDir
}

// Environ returns a copy of the environment block the child will receive
func (c Command) Environ() []string {
	return append([]string(nil), c.env...)
}

// String returns a string representation of the command
func (c Command) String() string {
	if len(c.args) == 0 {
		return c.executable
	}
	return fmt.Sprintf("%s %s", c.executable, strings.Join(c.args, " "))
}

// IsValid validates the command structure
func (c Command) IsValid() error {
	if c.executable == "" {
		return fmt.Errorf("executable cannot be empty")
	}

	if stat, err := os.Stat(c.workingDir); err != nil || !stat.IsDir() {
		return fmt.Errorf("working directory does not exist: %s", c.workingDir)
	}

	return nil
}
