package cli

import (
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/adsb-rx/adsb-launch/internal/config"
)

var (
	Version   = "dev"     // Overridden by ldflags
	BuildTime = "unknown" // Overridden by ldflags
)

// NewRootCommand builds the base command. Invoked bare it behaves exactly like
// the original wrapper: run the collector once, silently, and exit with its
// exit code.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "adsb-launch",
		Short: "Run the ADS-B data collector inside its virtual environment",
		Long: `adsb-launch runs the ADS-B data collector (get_adsb_data.py) inside its
pyenv-managed virtual environment.

It validates the environment layout, constructs the activated environment for
the child process, invokes the collector with the silent flag from its working
directory, and exits with the collector's own exit code. The launcher never
mutates its own environment, so nothing it sets outlives the run.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runLaunch,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf("{{.Name}} version {{.Version}}\nBuild time: %s\nGo version: %s\nPlatform: %s/%s\n",
		BuildTime, goVersion(), runtime.GOOS, runtime.GOARCH))

	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging on stderr")
	rootCmd.PersistentFlags().String("config", "", "Config file path (default is $HOME/.adsb-launch/config.json)")

	rootCmd.AddCommand(NewRunCommand())
	rootCmd.AddCommand(NewValidateCommand())
	rootCmd.AddCommand(NewInitCommand())

	return rootCmd
}

// goVersion returns the Go version used to build the binary
func goVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok {
		return info.GoVersion
	}
	return "unknown"
}

// loadConfig builds the effective configuration for a command invocation
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Root().PersistentFlags().GetString("config")

	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if debugFlag, _ := cmd.Root().PersistentFlags().GetBool("debug"); debugFlag {
		cfg.Debug = true
	}

	return cfg, nil
}

// Execute runs the CLI and returns the terminal error, if any
func Execute() error {
	return NewRootCommand().Execute()
}
