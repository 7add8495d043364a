// Package venv models pyenv-managed Python virtual environments as explicit
// values. Activation is expressed as the construction of a new environment
// block for a child process, never as mutation of the launcher's own
// environment, so "deactivation" is simply the child exiting.
package venv

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Venv identifies a named virtual environment beneath a pyenv root
type Venv struct {
	root string
	name string
}

// New creates a Venv value object
func New(root, name string) (Venv, error) {
	if root == "" {
		return Venv{}, fmt.Errorf("pyenv root cannot be empty")
	}
	if name == "" {
		return Venv{}, fmt.Errorf("virtualenv name cannot be empty")
	}

	return Venv{root: root, name: name}, nil
}

// Root returns the pyenv root directory
func (v Venv) Root() string {
	return v.root
}

// Name returns the virtualenv name
func (v Venv) Name() string {
	return v.name
}

// Dir returns the virtualenv directory
func (v Venv) Dir() string {
	return filepath.Join(v.root, v.name)
}

// BinDir returns the virtualenv's executable directory
func (v Venv) BinDir() string {
	return filepath.Join(v.Dir(), "bin")
}

// ActivateScript returns the path to the activation entry point
func (v Venv) ActivateScript() string {
	return filepath.Join(v.BinDir(), "activate")
}

// Interpreter returns the path to the virtualenv's Python interpreter
func (v Venv) Interpreter() string {
	return filepath.Join(v.BinDir(), "python")
}

// Validate checks that the virtualenv actually exists on disk: the activate
// script and the interpreter must both be present. Validation runs before
// anything is spawned, so a broken environment fails the launch without the
// target script ever being invoked.
func (v Venv) Validate() error {
	if stat, err := os.Stat(v.Dir()); err != nil || !stat.IsDir() {
		return fmt.Errorf("virtualenv does not exist: %s", v.Dir())
	}

	if _, err := os.Stat(v.ActivateScript()); err != nil {
		return fmt.Errorf("virtualenv activate script not found: %s", v.ActivateScript())
	}

	if _, err := os.Stat(v.Interpreter()); err != nil {
		return fmt.Errorf("virtualenv interpreter not found: %s", v.Interpreter())
	}

	return nil
}

// Environ returns the activated environment block for a child process: the
// base environment with the virtualenv's bin directory prepended to PATH and
// VIRTUAL_ENV pointing at the environment directory. The base slice is not
// modified.
func (v Venv) Environ(base []string) []string {
	env := append([]string(nil), base...)

	env = Setenv(env, "VIRTUAL_ENV", v.Dir())

	path, ok := Getenv(env, "PATH")
	if ok {
		env = Setenv(env, "PATH", v.BinDir()+string(os.PathListSeparator)+path)
	} else {
		env = Setenv(env, "PATH", v.BinDir())
	}

	// PYTHONHOME would override the virtualenv's interpreter selection
	env = Unsetenv(env, "PYTHONHOME")

	return env
}

// Getenv looks up a key in an environment block
func Getenv(env []string, key string) (string, bool) {
	prefix := key + "="
	for i := len(env) - 1; i >= 0; i-- {
		if strings.HasPrefix(env[i], prefix) {
			return env[i][len(prefix):], true
		}
	}
	return "", false
}

// Setenv returns an environment block with key set to value, replacing any
// existing entry for key
func Setenv(env []string, key, value string) []string {
	prefix := key + "="
	out := make([]string, 0, len(env)+1)
	for _, kv := range env {
		if !strings.HasPrefix(kv, prefix) {
			out = append(out, kv)
		}
	}
	return append(out, prefix+value)
}

// Unsetenv returns an environment block with every entry for key removed
func Unsetenv(env []string, key string) []string {
	prefix := key + "="
	out := make([]string, 0, len(env))
	for _, kv := range env {
		if !strings.HasPrefix(kv, prefix) {
			out = append(out, kv)
		}
	}
	return out
}
