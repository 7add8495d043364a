package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/adsb-rx/adsb-launch/internal/venv"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	passStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	failStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	dimStyle    = lipgloss.NewStyle().Faint(true)
)

// NewValidateCommand creates the validate command
func NewValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate the environment layout without running the collector",
		Long: `Validate checks every precondition of a launch without spawning anything:

- the pyenv root directory exists
- the virtualenv exists and has an activate script and interpreter
- the working directory exists
- the collector script is present in the working directory

It exits non-zero if any check fails.`,
		Args: cobra.NoArgs,
		RunE: runValidate,
	}
}

// check is one validation step in the preflight report
type check struct {
	label string
	path  string
	dir   bool
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	v, err := venv.New(cfg.PyenvRoot, cfg.VenvName)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, headerStyle.Render("adsb-launch preflight"))
	fmt.Fprintln(out)

	checks := []check{
		{label: "pyenv root", path: v.Root(), dir: true},
		{label: "virtualenv", path: v.Dir(), dir: true},
		{label: "activate script", path: v.ActivateScript()},
		{label: "interpreter", path: v.Interpreter()},
		{label: "working directory", path: cfg.WorkDir, dir: true},
		{label: "collector script", path: filepath.Join(cfg.WorkDir, cfg.Script)},
	}

	failed := 0
	for _, c := range checks {
		stat, statErr := os.Stat(c.path)
		ok := statErr == nil && (!c.dir || stat.IsDir())

		mark := passStyle.Render("ok")
		if !ok {
			mark = failStyle.Render("missing")
			failed++
		}

		fmt.Fprintf(out, "  %-18s %s  %s\n", c.label, mark, dimStyle.Render(c.path))
	}

	fmt.Fprintln(out)
	if failed > 0 {
		return fmt.Errorf("%d of %d checks failed", failed, len(checks))
	}

	fmt.Fprintln(out, passStyle.Render("Environment is ready."))
	return nil
}
