// Package launcher orchestrates one synchronous run of the data collector
// inside its virtual environment: validate the layout, build the activated
// environment block, invoke the interpreter on the script, and report the
// child's exit code.
package launcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/adsb-rx/adsb-launch/internal/config"
	"github.com/adsb-rx/adsb-launch/internal/process"
	"github.com/adsb-rx/adsb-launch/internal/venv"
)

// Options describes a single launch
type Options struct {
	// Venv is the virtual environment to activate for the child.
	Venv venv.Venv

	// WorkDir is the directory the child runs in; it must contain Script.
	WorkDir string

	// Script is the filename of the Python script to run, relative to WorkDir.
	Script string

	// Args are passed to the script verbatim. For the collector this is the
	// single silent flag.
	Args []string

	// Interpreter overrides the virtualenv's own interpreter when non-empty.
	Interpreter string

	// BaseEnv is the environment the activated block is derived from.
	// When nil, the launcher's own environment is used.
	BaseEnv []string
}

// OptionsFromConfig translates the effective configuration into launch options
func OptionsFromConfig(cfg *config.Config) (Options, error) {
	v, err := venv.New(cfg.PyenvRoot, cfg.VenvName)
	if err != nil {
		return Options{}, err
	}

	return Options{
		Venv:        v,
		WorkDir:     cfg.WorkDir,
		Script:      cfg.Script,
		Args:        []string{cfg.SilentFlag},
		Interpreter: cfg.Interpreter,
	}, nil
}

// Launcher runs the collector script
type Launcher struct {
	executor *process.Executor
	logger   *log.Logger
}

// New creates a Launcher
func New(executor *process.Executor, logger *log.Logger) *Launcher {
	return &Launcher{
		executor: executor,
		logger:   logger,
	}
}

// Launch validates the environment layout, then runs the script synchronously
// and returns its exit code.
//
// Every precondition is checked before anything is spawned: a missing
// virtualenv, working directory, or script fails the launch without the target
// ever being invoked. A non-nil error always means the target did not run to
// completion; the int result is only meaningful when the error is nil.
func (l *Launcher) Launch(ctx context.Context, opts Options) (int, error) {
	if err := opts.Venv.Validate(); err != nil {
		return -1, fmt.Errorf("environment activation failed: %w", err)
	}

	if stat, err := os.Stat(opts.WorkDir); err != nil || !stat.IsDir() {
		return -1, fmt.Errorf("working directory does not exist: %s", opts.WorkDir)
	}

	scriptPath := filepath.Join(opts.WorkDir, opts.Script)
	if _, err := os.Stat(scriptPath); err != nil {
		return -1, fmt.Errorf("target script not found: %s", scriptPath)
	}

	env := l.buildEnvironment(opts)

	interpreter := opts.Interpreter
	if interpreter == "" {
		interpreter = opts.Venv.Interpreter()
	}

	args := append([]string{opts.Script}, opts.Args...)

	cmd, err := process.NewCommand(interpreter, args, opts.WorkDir, env)
	if err != nil {
		return -1, err
	}

	l.logger.Debug("launching collector",
		"interpreter", interpreter,
		"script", opts.Script,
		"workdir", opts.WorkDir,
		"venv", opts.Venv.Dir())

	code, err := l.executor.Run(ctx, cmd)
	if err != nil {
		return -1, err
	}

	l.logger.Debug("collector exited", "code", code)
	return code, nil
}

// buildEnvironment constructs the child's environment block: the activated
// virtualenv environment plus the exported layout variables. All five live
// only in the child; the parent environment is never written.
func (l *Launcher) buildEnvironment(opts Options) []string {
	base := opts.BaseEnv
	if base == nil {
		base = os.Environ()
	}

	env := opts.Venv.Environ(base)
	env = venv.Setenv(env, "PYENV_ROOT", opts.Venv.Root())
	env = venv.Setenv(env, "PYENV_ADSB", opts.Venv.ActivateScript())
	env = venv.Setenv(env, "PY_PATH", opts.WorkDir)
	env = venv.Setenv(env, "PY_SRC", opts.Script)

	return env
}
