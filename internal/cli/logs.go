package cli

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/runlog-io/runlog/internal/config"
	"github.com/runlog-io/runlog/internal/models"
	"github.com/runlog-io/runlog/internal/tail"
	"github.com/runlog-io/runlog/internal/tui"
)

var logsCmd = &cobra.Command{
	Use:   "logs",
	Short: "Inspect past run logs",
	Long:  `List, show, tail, and browse logs from past runs.`,
}

var logsListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List recorded runs",
	RunE:    runLogsList,
}

var logsShowCmd = &cobra.Command{
	Use:   "show [id|filename]",
	Short: "Print a run's transcript (latest run if omitted)",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runLogsShow,
}

var logsPathCmd = &cobra.Command{
	Use:   "path [id|filename]",
	Short: "Print the absolute path of a run's log file (latest if omitted)",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runLogsPath,
}

var logsTailCmd = &cobra.Command{
	Use:   "tail [id|filename]",
	Short: "Follow a run's log as it grows (latest run if omitted)",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runLogsTail,
}

var logsBrowseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse run logs interactively",
	RunE: func(cmd *cobra.Command, args []string) error {
		return tui.Run()
	},
}

func init() {
	logsCmd.AddCommand(logsBrowseCmd)
	logsCmd.AddCommand(logsListCmd)
	logsCmd.AddCommand(logsPathCmd)
	logsCmd.AddCommand(logsShowCmd)
	logsCmd.AddCommand(logsTailCmd)
}

func runLogsList(cmd *cobra.Command, args []string) error {
	sessions, err := config.ListSessions()
	if err != nil {
		return fmt.Errorf("failed to list sessions: %w", err)
	}

	if len(sessions) == 0 {
		fmt.Println(styleHint.Render("No runs recorded yet. Try 'runlog run'."))
		return nil
	}

	for _, s := range sessions {
		fmt.Printf("%s  %s  %s  %s  %s\n",
			styleValue.Render(s.SessionID[:8]),
			styleLabel.Render(s.StartedAt.Local().Format("2006-01-02 15:04:05")),
			statusBadge(s),
			styleLabel.Render(formatDuration(s)),
			filepath.Base(s.LogPath),
		)
	}
	return nil
}

func runLogsShow(cmd *cobra.Command, args []string) error {
	s, err := resolveSession(args)
	if err != nil {
		return err
	}

	content, err := config.ReadTranscript(s)
	if err != nil {
		return err
	}
	fmt.Print(content)
	return nil
}

func runLogsPath(cmd *cobra.Command, args []string) error {
	s, err := resolveSession(args)
	if err != nil {
		return err
	}
	fmt.Println(s.LogPath)
	return nil
}

func runLogsTail(cmd *cobra.Command, args []string) error {
	s, err := resolveSession(args)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := tail.Follow(ctx, s.LogPath, os.Stdout); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}

// resolveSession maps an optional CLI ref to a session, defaulting to
// the most recent run.
func resolveSession(args []string) (*models.Session, error) {
	if len(args) > 0 {
		return config.FindSession(args[0])
	}

	s, err := config.LatestSession()
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, fmt.Errorf("no runs recorded yet")
	}
	return s, nil
}

func statusBadge(s *models.Session) string {
	switch s.Status {
	case models.StatusRunning:
		return badgeRunning.Render("running ")
	case models.StatusCompleted:
		return badgeCompleted.Render("exit 0  ")
	case models.StatusFailed:
		return badgeFailed.Render(fmt.Sprintf("exit %-3d", s.ExitCode))
	default:
		return badgeUnknown.Render("unknown ")
	}
}

func formatDuration(s *models.Session) string {
	d := s.Duration()
	if d == 0 {
		return "     -"
	}
	return fmt.Sprintf("%6s", d.Round(time.Second))
}
