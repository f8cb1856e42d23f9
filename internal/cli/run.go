package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/runlog-io/runlog/internal/config"
	"github.com/runlog-io/runlog/internal/models"
	"github.com/runlog-io/runlog/internal/runner"
)

// ExitError carries a child process's exit status out through main so the
// wrapper can exit with the same code. It is rendered nowhere: the
// transcript already contains whatever the child had to say.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("command exited with status %d", e.Code)
}

var (
	runPTY    bool
	runQuiet  bool
	runPrefix string
	runLogDir string
)

var runCmd = &cobra.Command{
	Use:   "run [-- command [args...]]",
	Short: "Run a command and log its output",
	Long: `Run a command, duplicating its merged stdout/stderr to the terminal
and to a timestamped log file in the current directory.

Without arguments, runs the command configured in runlog.yaml (or the
global default). Arguments after "--" override the configured command.`,
	Args: cobra.ArbitraryArgs,
	RunE: runRun,
}

func init() {
	runCmd.Flags().BoolVar(&runPTY, "pty", false, "run the command on a pseudo-terminal")
	runCmd.Flags().BoolVarP(&runQuiet, "quiet", "q", false, "write the log without mirroring output to the terminal")
	runCmd.Flags().StringVar(&runPrefix, "prefix", "", "log filename prefix (default from config)")
	runCmd.Flags().StringVar(&runLogDir, "dir", "", "directory for the log file (default: current directory)")
}

func runRun(cmd *cobra.Command, args []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}

	settings, err := config.LoadSettings()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}
	project, err := config.LoadProject(cwd)
	if err != nil {
		return fmt.Errorf("failed to load runlog.yaml: %w", err)
	}

	opts := resolveOptions(settings, project, args)
	opts.Dir = cwd
	opts.Store = sessionStore{}

	// Default signal behavior: an interrupt takes the child down with us.
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	res, err := runner.Run(ctx, opts)
	if err != nil {
		return err
	}

	if settings.KeepSessions > 0 {
		_ = config.PruneSessions(settings.KeepSessions)
	}

	if settings.PropagateExit && res.ExitCode != 0 {
		return &ExitError{Code: res.ExitCode}
	}
	return nil
}

// resolveOptions layers CLI arguments over runlog.yaml over global
// settings, most specific wins.
func resolveOptions(settings *models.Settings, project *models.Project, args []string) runner.Options {
	opts := runner.Options{
		Command: settings.Defaults.Command,
		Prefix:  settings.Defaults.LogPrefix,
		UsePTY:  settings.Defaults.UsePTY,
		LogDir:  settings.Defaults.LogDir,
	}

	if project != nil {
		if len(project.Command) > 0 {
			opts.Command = project.Command
		}
		if project.LogPrefix != "" {
			opts.Prefix = project.LogPrefix
		}
		if project.LogDir != "" {
			opts.LogDir = project.LogDir
		}
		opts.UsePTY = project.UsePTY
	}

	if len(args) > 0 {
		opts.Command = args
	}
	if runPrefix != "" {
		opts.Prefix = runPrefix
	}
	if runLogDir != "" {
		opts.LogDir = runLogDir
	}
	if runPTY {
		opts.UsePTY = true
	}
	opts.Quiet = runQuiet

	return opts
}

// sessionStore adapts the config package to runner.SessionStore.
type sessionStore struct{}

func (sessionStore) Save(s *models.Session) error {
	return config.SaveSession(s)
}
