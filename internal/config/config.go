package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config describes the launch layout: where the pyenv installation lives,
// which virtualenv to activate, and which script to run from which directory.
// Defaults reproduce the receiver's standard layout under $HOME.
type Config struct {
	PyenvRoot   string `json:"pyenv_root"`
	VenvName    string `json:"venv_name"`
	WorkDir     string `json:"work_dir"`
	Script      string `json:"script"`
	SilentFlag  string `json:"silent_flag"`
	Interpreter string `json:"interpreter,omitempty"`
	Debug       bool   `json:"debug"`
}

// DefaultConfig returns the configuration matching the stock receiver layout
func DefaultConfig() *Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}

	return &Config{
		PyenvRoot:  filepath.Join(home, "pyenv"),
		VenvName:   "adsb_rx",
		WorkDir:    filepath.Join(home, "apps", "adsb_rx"),
		Script:     "get_adsb_data.py",
		SilentFlag: "--silent",
		Debug:      false,
	}
}

// DefaultConfigPath returns the default config file location
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".adsb-launch", "config.json")
}

// Load builds the effective configuration: defaults, then the config file if
// one exists, then environment variable overrides. A missing config file is
// not an error; a malformed one is.
func Load(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath == "" {
		configPath = os.Getenv("ADSB_LAUNCH_CONFIG")
		if configPath == "" {
			configPath = DefaultConfigPath()
		}
	}

	if data, err := os.ReadFile(configPath); err == nil {
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("invalid config file %s: %w", configPath, err)
		}
	}

	applyEnvOverrides(cfg)

	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyEnvOverrides applies ADSB_LAUNCH_* environment variables on top of the
// loaded configuration
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("ADSB_LAUNCH_PYENV_ROOT"); v != "" {
		cfg.PyenvRoot = v
	}
	if v := os.Getenv("ADSB_LAUNCH_VENV"); v != "" {
		cfg.VenvName = v
	}
	if v := os.Getenv("ADSB_LAUNCH_WORK_DIR"); v != "" {
		cfg.WorkDir = v
	}
	if v := os.Getenv("ADSB_LAUNCH_SCRIPT"); v != "" {
		cfg.Script = v
	}
	if v := os.Getenv("ADSB_LAUNCH_INTERPRETER"); v != "" {
		cfg.Interpreter = v
	}
	if v := os.Getenv("ADSB_LAUNCH_DEBUG"); v == "1" || v == "true" {
		cfg.Debug = true
	}
}

// ValidateConfig normalizes recoverable problems and rejects the rest
func ValidateConfig(cfg *Config) error {
	if cfg.SilentFlag == "" {
		cfg.SilentFlag = "--silent"
	}

	if cfg.PyenvRoot == "" {
		return fmt.Errorf("pyenv_root cannot be empty")
	}
	if cfg.VenvName == "" {
		return fmt.Errorf("venv_name cannot be empty")
	}
	if cfg.WorkDir == "" {
		return fmt.Errorf("work_dir cannot be empty")
	}
	if cfg.Script == "" {
		return fmt.Errorf("script cannot be empty")
	}

	return nil
}

// Save writes the configuration to the given path, creating the parent
// directory if necessary
func (c *Config) Save(path string) error {
	if path == "" {
		path = DefaultConfigPath()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}
