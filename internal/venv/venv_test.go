package venv

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// makeVenvLayout creates a minimal on-disk virtualenv for testing
func makeVenvLayout(t *testing.T, root, name string) {
	t.Helper()

	binDir := filepath.Join(root, name, "bin")
	require.NoError(t, os.MkdirAll(binDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(binDir, "activate"), []byte("# activate\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(binDir, "python"), []byte("#!/bin/sh\n"), 0755))
}

func TestNew_ValidatesInput(t *testing.T) {
	tests := []struct {
		name        string
		root        string
		venvName    string
		expectError bool
	}{
		{"ValidInput_ShouldSucceed", "/home/user/pyenv", "adsb_rx", false},
		{"EmptyRoot_ShouldFail", "", "adsb_rx", true},
		{"EmptyName_ShouldFail", "/home/user/pyenv", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := New(tt.root, tt.venvName)

			if tt.expectError {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.root, v.Root())
			assert.Equal(t, tt.venvName, v.Name())
		})
	}
}

func TestVenv_PathDerivation(t *testing.T) {
	v, err := New("/home/user/pyenv", "adsb_rx")
	require.NoError(t, err)

	assert.Equal(t, "/home/user/pyenv/adsb_rx", v.Dir())
	assert.Equal(t, "/home/user/pyenv/adsb_rx/bin", v.BinDir())
	assert.Equal(t, "/home/user/pyenv/adsb_rx/bin/activate", v.ActivateScript())
	assert.Equal(t, "/home/user/pyenv/adsb_rx/bin/python", v.Interpreter())
}

func TestVenv_Validate(t *testing.T) {
	t.Run("CompleteLayout_ShouldSucceed", func(t *testing.T) {
		root := t.TempDir()
		makeVenvLayout(t, root, "adsb_rx")

		v, err := New(root, "adsb_rx")
		require.NoError(t, err)
		assert.NoError(t, v.Validate())
	})

	t.Run("MissingVenvDir_ShouldFail", func(t *testing.T) {
		v, err := New(t.TempDir(), "adsb_rx")
		require.NoError(t, err)
		assert.Error(t, v.Validate())
	})

	t.Run("MissingActivateScript_ShouldFail", func(t *testing.T) {
		root := t.TempDir()
		makeVenvLayout(t, root, "adsb_rx")
		require.NoError(t, os.Remove(filepath.Join(root, "adsb_rx", "bin", "activate")))

		v, err := New(root, "adsb_rx")
		require.NoError(t, err)
		assert.Error(t, v.Validate())
	})

	t.Run("MissingInterpreter_ShouldFail", func(t *testing.T) {
		root := t.TempDir()
		makeVenvLayout(t, root, "adsb_rx")
		require.NoError(t, os.Remove(filepath.Join(root, "adsb_rx", "bin", "python")))

		v, err := New(root, "adsb_rx")
		require.NoError(t, err)
		assert.Error(t, v.Validate())
	})
}

func TestVenv_Environ_ActivatesWithoutMutatingBase(t *testing.T) {
	v, err := New("/pyenv", "adsb_rx")
	require.NoError(t, err)

	base := []string{
		"PATH=/usr/local/bin:/usr/bin",
		"HOME=/home/user",
		"PYTHONHOME=/usr",
	}
	baseCopy := append([]string(nil), base...)

	env := v.Environ(base)

	// Base slice untouched
	assert.Equal(t, baseCopy, base)

	path, ok := Getenv(env, "PATH")
	require.True(t, ok)
	assert.True(t, strings.HasPrefix(path, v.BinDir()+string(os.PathListSeparator)),
		"PATH should start with the venv bin dir, got %q", path)
	assert.Contains(t, path, "/usr/local/bin")

	virtualEnv, ok := Getenv(env, "VIRTUAL_ENV")
	require.True(t, ok)
	assert.Equal(t, v.Dir(), virtualEnv)

	_, ok = Getenv(env, "PYTHONHOME")
	assert.False(t, ok, "PYTHONHOME must be removed from the activated environment")

	home, ok := Getenv(env, "HOME")
	require.True(t, ok)
	assert.Equal(t, "/home/user", home)
}

func TestVenv_Environ_NoPathInBase(t *testing.T) {
	v, err := New("/pyenv", "adsb_rx")
	require.NoError(t, err)

	env := v.Environ([]string{"HOME=/home/user"})

	path, ok := Getenv(env, "PATH")
	require.True(t, ok)
	assert.Equal(t, v.BinDir(), path)
}

// Property: for any base environment, activation always puts the venv bin dir
// first on PATH and never drops unrelated entries.
func TestVenv_Environ_Properties(t *testing.T) {
	v, err := New("/pyenv", "adsb_rx")
	require.NoError(t, err)

	keyGen := rapid.StringMatching(`[A-Z][A-Z0-9_]{0,10}`)
	valGen := rapid.StringMatching(`[a-zA-Z0-9_/.:-]{0,20}`)

	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(0, 8).Draw(t, "n")
		base := make([]string, 0, n)
		for i := 0; i < n; i++ {
			key := keyGen.Draw(t, "key")
			if key == "PATH" || key == "VIRTUAL_ENV" || key == "PYTHONHOME" {
				continue
			}
			base = append(base, key+"="+valGen.Draw(t, "val"))
		}

		env := v.Environ(base)

		path, ok := Getenv(env, "PATH")
		if !ok {
			t.Fatalf("activated environment has no PATH")
		}
		if !strings.HasPrefix(path, v.BinDir()) {
			t.Fatalf("PATH %q does not start with venv bin dir", path)
		}

		// Every unrelated entry survives
		for _, kv := range base {
			found := false
			for _, out := range env {
				if out == kv {
					found = true
					break
				}
			}
			if !found {
				t.Fatalf("entry %q lost during activation", kv)
			}
		}
	})
}

func TestSetenv_Getenv_Unsetenv(t *testing.T) {
	env := []string{"A=1", "B=2"}

	env = Setenv(env, "A", "3")
	val, ok := Getenv(env, "A")
	require.True(t, ok)
	assert.Equal(t, "3", val)

	// Only one entry for the key remains after replacement
	count := 0
	for _, kv := range env {
		if strings.HasPrefix(kv, "A=") {
			count++
		}
	}
	assert.Equal(t, 1, count)

	env = Unsetenv(env, "A")
	_, ok = Getenv(env, "A")
	assert.False(t, ok)

	val, ok = Getenv(env, "B")
	require.True(t, ok)
	assert.Equal(t, "2", val)
}
