// Package runner implements the core run-and-log behavior: spawn a child
// process, duplicate its merged stdout/stderr to the terminal and a
// timestamped log file, and record structured session metadata alongside
// the raw transcript.
package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/creack/pty"
	"github.com/google/uuid"
	"golang.org/x/term"

	"github.com/runlog-io/runlog/internal/models"
)

// exitNotStarted is reported when the child could not be started at all,
// matching the shell's command-not-found status.
const exitNotStarted = 127

// SessionStore persists session metadata as a run progresses.
type SessionStore interface {
	Save(*models.Session) error
}

// Options configures a single run. Ambient state (clock, working
// directory, environment, terminal) is explicit here so runs are
// deterministic under test.
type Options struct {
	Command  []string
	Dir      string       // working directory for the child; "" = process cwd
	LogDir   string       // directory for the log file; "" = Dir
	Prefix   string       // log filename prefix; "" = "Answer"
	UsePTY   bool         // run the child on a pseudo-terminal
	Quiet    bool         // don't mirror the merged stream to the terminal
	Env      []string     // child environment; nil = inherit
	Clock    Clock        // nil = SystemClock
	Terminal io.Writer    // nil = os.Stdout
	Store    SessionStore // nil = metadata not persisted
}

// Result holds the outcome of a run.
type Result struct {
	Session  *models.Session
	LogPath  string
	ExitCode int
}

// Run executes the configured command, tees its merged output to the
// terminal and the timestamped log file, and returns the child's exit
// status. A child that fails to start or exits non-zero is not an error:
// the failure text lands in the transcript and both banners still print.
// Run itself fails only when the log file cannot be written.
func Run(ctx context.Context, opts Options) (*Result, error) {
	if len(opts.Command) == 0 {
		return nil, fmt.Errorf("no command to run")
	}

	clock := opts.Clock
	if clock == nil {
		clock = SystemClock
	}
	terminal := opts.Terminal
	if terminal == nil {
		terminal = os.Stdout
	}
	prefix := opts.Prefix
	if prefix == "" {
		prefix = "Answer"
	}

	dir := opts.Dir
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		dir = cwd
	}
	logDir := opts.LogDir
	if logDir == "" {
		logDir = dir
	}

	// The filename is computed exactly once, from the start time. A run
	// spanning midnight keeps writing to the same file.
	startedAt := clock()
	logPath, err := filepath.Abs(filepath.Join(logDir, LogFileName(prefix, startedAt)))
	if err != nil {
		return nil, err
	}

	// Create truncates: a second run within the same second overwrites
	// the first rather than appending or erroring.
	f, err := os.Create(logPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create log file: %w", err)
	}

	session := &models.Session{
		SessionID: uuid.NewString(),
		Command:   opts.Command,
		Dir:       dir,
		LogPath:   logPath,
		PTY:       opts.UsePTY,
		StartedAt: startedAt.UTC(),
		Status:    models.StatusRunning,
	}
	saveSession(opts.Store, session)

	var sink io.Writer = f
	if !opts.Quiet {
		sink = io.MultiWriter(terminal, f)
	}

	if _, err := io.WriteString(sink, StartBanner(clock())); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write log: %w", err)
	}

	code, teeErr := runChild(ctx, opts, dir, sink)
	if teeErr != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write log: %w", teeErr)
	}

	if _, err := io.WriteString(sink, EndBanner(clock())); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write log: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("failed to close log file: %w", err)
	}

	session.EndedAt = clock().UTC()
	session.ExitCode = code
	if code == 0 {
		session.Status = models.StatusCompleted
	} else {
		session.Status = models.StatusFailed
	}
	saveSession(opts.Store, session)

	// Terminal only, after the tee has fully drained.
	fmt.Fprint(terminal, SavedLine(logPath))

	return &Result{Session: session, LogPath: logPath, ExitCode: code}, nil
}

// saveSession persists metadata best-effort. The transcript is the
// product; a sidecar write failure must not abort the run.
func saveSession(store SessionStore, s *models.Session) {
	if store == nil {
		return
	}
	_ = store.Save(s)
}

// runChild spawns the command and copies its merged output into sink.
// The returned error is a tee failure only; child failures are folded
// into the exit code and the transcript text.
func runChild(ctx context.Context, opts Options, dir string, sink io.Writer) (int, error) {
	cmd := exec.CommandContext(ctx, opts.Command[0], opts.Command[1:]...)
	cmd.Dir = dir
	cmd.Env = opts.Env

	if opts.UsePTY {
		return runPTY(cmd, sink)
	}
	return runPipe(cmd, sink)
}

// runPipe gives the child a single pipe for both stdout and stderr, so
// the merged stream carries the OS interleaving order, then copies it
// into the sink chunk by chunk (no buffering beyond the pipe itself).
func runPipe(cmd *exec.Cmd, sink io.Writer) (int, error) {
	pr, pw, err := os.Pipe()
	if err != nil {
		fmt.Fprintf(sink, "runlog: %v\n", err)
		return exitNotStarted, nil
	}

	cmd.Stdin = os.Stdin
	cmd.Stdout = pw
	cmd.Stderr = pw

	if err := cmd.Start(); err != nil {
		pw.Close()
		pr.Close()
		// Fail soft: the failure is transcript content, not a wrapper error.
		fmt.Fprintf(sink, "runlog: failed to start %q: %v\n", cmd.Path, err)
		return exitNotStarted, nil
	}

	// The child holds its own copy of the write end; closing ours makes
	// the copy loop see EOF when the child exits.
	pw.Close()

	_, copyErr := io.Copy(sink, pr)
	pr.Close()

	waitErr := cmd.Wait()
	if copyErr != nil {
		return childExitCode(waitErr), copyErr
	}
	return childExitCode(waitErr), nil
}

// runPTY runs the child on a pseudo-terminal sized to the invoking
// terminal. A PTY has a single output stream by construction, so the
// merged-stream contract holds here too.
func runPTY(cmd *exec.Cmd, sink io.Writer) (int, error) {
	winSize := &pty.Winsize{Rows: 24, Cols: 80}
	if cols, rows, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		winSize.Cols = uint16(cols)
		winSize.Rows = uint16(rows)
	}

	ptmx, err := pty.StartWithSize(cmd, winSize)
	if err != nil {
		fmt.Fprintf(sink, "runlog: failed to start %q: %v\n", cmd.Path, err)
		return exitNotStarted, nil
	}
	defer ptmx.Close()

	buf := make([]byte, 32*1024)
	for {
		n, rerr := ptmx.Read(buf)
		if n > 0 {
			if _, werr := sink.Write(buf[:n]); werr != nil {
				_ = cmd.Process.Kill()
				_ = cmd.Wait()
				return -1, werr
			}
		}
		if rerr != nil {
			// EIO here just means the child closed its side.
			break
		}
	}

	return childExitCode(cmd.Wait()), nil
}

// childExitCode maps a Wait error to the child's exit status.
func childExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}
