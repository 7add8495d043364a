package cli

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/adsb-rx/adsb-launch/internal/config"
)

// InitFlags holds the command-line flags for the init command
type InitFlags struct {
	PyenvRoot      string
	VenvName       string
	WorkDir        string
	Script         string
	NonInteractive bool
}

// NewInitCommand creates the init command
func NewInitCommand() *cobra.Command {
	flags := &InitFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the launcher configuration file",
		Long: `Initialize the launcher configuration, either interactively or via flags.

Run without flags for a guided setup with defaults shown in brackets, or pass
any flag for non-interactive mode. The configuration is written as JSON to the
path given by --config (default $HOME/.adsb-launch/config.json).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd, flags)
		},
	}

	cmd.Flags().StringVar(&flags.PyenvRoot, "pyenv-root", "", "pyenv installation directory")
	cmd.Flags().StringVar(&flags.VenvName, "venv", "", "Virtualenv name beneath the pyenv root")
	cmd.Flags().StringVar(&flags.WorkDir, "work-dir", "", "Directory containing the collector script")
	cmd.Flags().StringVar(&flags.Script, "script", "", "Collector script filename")
	cmd.Flags().BoolVar(&flags.NonInteractive, "non-interactive", false, "Accept defaults for anything not given as a flag")

	return cmd
}

// runInit handles the configuration setup
func runInit(cmd *cobra.Command, flags *InitFlags) error {
	nonInteractive := flags.NonInteractive ||
		flags.PyenvRoot != "" ||
		flags.VenvName != "" ||
		flags.WorkDir != "" ||
		flags.Script != ""

	cfg := config.DefaultConfig()

	if flags.PyenvRoot != "" {
		cfg.PyenvRoot = flags.PyenvRoot
	}
	if flags.VenvName != "" {
		cfg.VenvName = flags.VenvName
	}
	if flags.WorkDir != "" {
		cfg.WorkDir = flags.WorkDir
	}
	if flags.Script != "" {
		cfg.Script = flags.Script
	}

	if !nonInteractive {
		if err := promptForConfig(cmd, cfg); err != nil {
			return err
		}
	}

	if err := config.ValidateConfig(cfg); err != nil {
		return err
	}

	path, _ := cmd.Root().PersistentFlags().GetString("config")
	if path == "" {
		path = config.DefaultConfigPath()
	}

	if err := cfg.Save(path); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Configuration saved to: %s\n", path)
	return nil
}

// promptForConfig walks through each setting, accepting Enter for the default
func promptForConfig(cmd *cobra.Command, cfg *config.Config) error {
	out := cmd.OutOrStdout()
	scanner := bufio.NewScanner(cmd.InOrStdin())

	fmt.Fprintln(out, "adsb-launch configuration setup")
	fmt.Fprintln(out, "Press Enter to accept the default shown in brackets.")
	fmt.Fprintln(out)

	prompts := []struct {
		label string
		value *string
	}{
		{"pyenv root", &cfg.PyenvRoot},
		{"virtualenv name", &cfg.VenvName},
		{"working directory", &cfg.WorkDir},
		{"collector script", &cfg.Script},
	}

	for _, p := range prompts {
		fmt.Fprintf(out, "%s [%s]: ", p.label, *p.value)
		if !scanner.Scan() {
			break
		}
		if input := strings.TrimSpace(scanner.Text()); input != "" {
			*p.value = input
		}
	}

	return scanner.Err()
}
