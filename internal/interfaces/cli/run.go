package cli

import (
	"github.com/spf13/cobra"

	"github.com/adsb-rx/adsb-launch/internal/launcher"
	"github.com/adsb-rx/adsb-launch/internal/logging"
	"github.com/adsb-rx/adsb-launch/internal/process"
)

// NewRunCommand creates the run command
func NewRunCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run the collector once and exit with its exit code",
		Long: `Run the collector script once inside its virtual environment.

The collector inherits stdin, stdout and stderr and receives exactly one
argument, the silent flag. The launcher's exit code equals the collector's
exit code; if any setup step fails (missing virtualenv, working directory or
script) the launcher exits non-zero without running the collector.`,
		Args: cobra.NoArgs,
		RunE: runLaunch,
	}
}

// runLaunch performs one launch. Shared by the run subcommand and the bare
// root invocation.
func runLaunch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logger := logging.NewLogger(cfg.Debug)

	opts, err := launcher.OptionsFromConfig(cfg)
	if err != nil {
		return err
	}

	l := launcher.New(process.NewExecutor(), logger)

	code, err := l.Launch(cmd.Context(), opts)
	if err != nil {
		return err
	}

	if code != 0 {
		return &ExitError{Code: code}
	}

	return nil
}
