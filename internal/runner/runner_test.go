package runner

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/runlog-io/runlog/internal/models"
)

// fixedClock pins every reading to the same instant.
func fixedClock(t time.Time) Clock {
	return func() time.Time { return t }
}

// memStore collects session saves in order.
type memStore struct {
	saves []models.Session
}

func (m *memStore) Save(s *models.Session) error {
	m.saves = append(m.saves, *s)
	return nil
}

var testStamp = time.Date(2024, 1, 2, 3, 4, 5, 0, time.Local)

func TestLogFileName(t *testing.T) {
	tests := []struct {
		name     string
		prefix   string
		t        time.Time
		expected string
	}{
		{
			name:     "spec example",
			prefix:   "Answer",
			t:        testStamp,
			expected: "Answer_2024-01-02_03-04-05.log",
		},
		{
			name:     "double digit fields",
			prefix:   "Answer",
			t:        time.Date(2025, 11, 30, 23, 59, 58, 0, time.Local),
			expected: "Answer_2025-11-30_23-59-58.log",
		},
		{
			name:     "custom prefix",
			prefix:   "Eval",
			t:        testStamp,
			expected: "Eval_2024-01-02_03-04-05.log",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LogFileName(tt.prefix, tt.t)
			if got != tt.expected {
				t.Errorf("LogFileName(%q, %v) = %q, want %q", tt.prefix, tt.t, got, tt.expected)
			}
		})
	}
}

func TestRunTranscript(t *testing.T) {
	dir := t.TempDir()
	var terminal bytes.Buffer

	res, err := Run(context.Background(), Options{
		Command:  []string{"sh", "-c", "echo hello; echo warn 1>&2"},
		Dir:      dir,
		Clock:    fixedClock(testStamp),
		Terminal: &terminal,
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	wantPath := filepath.Join(dir, "Answer_2024-01-02_03-04-05.log")
	if res.LogPath != wantPath {
		t.Errorf("LogPath = %q, want %q", res.LogPath, wantPath)
	}
	if res.ExitCode != 0 {
		t.Errorf("ExitCode = %d, want 0", res.ExitCode)
	}

	data, err := os.ReadFile(wantPath)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	content := string(data)

	wantStart := "===== Run started: 2024-01-02 03:04:05 =====\n"
	wantEnd := "===== Run finished: 2024-01-02 03:04:05 =====\n"
	if !strings.HasPrefix(content, wantStart) {
		t.Errorf("log does not begin with start banner:\n%s", content)
	}
	if !strings.HasSuffix(content, wantEnd) {
		t.Errorf("log does not end with end banner:\n%s", content)
	}
	body := strings.TrimPrefix(strings.TrimSuffix(content, wantEnd), wantStart)
	if !strings.Contains(body, "hello\n") || !strings.Contains(body, "warn\n") {
		t.Errorf("transcript body missing child output: %q", body)
	}

	// Terminal sees the log content plus exactly one trailing path line.
	wantTerminal := content + "Log saved to: " + wantPath + "\n"
	if terminal.String() != wantTerminal {
		t.Errorf("terminal output = %q, want %q", terminal.String(), wantTerminal)
	}
}

func TestRunSameSecondOverwrites(t *testing.T) {
	dir := t.TempDir()

	for _, msg := range []string{"first", "second"} {
		_, err := Run(context.Background(), Options{
			Command:  []string{"sh", "-c", "echo " + msg},
			Dir:      dir,
			Clock:    fixedClock(testStamp),
			Terminal: &bytes.Buffer{},
		})
		if err != nil {
			t.Fatalf("Run(%s): %v", msg, err)
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected a single log file, got %d", len(entries))
	}

	data, err := os.ReadFile(filepath.Join(dir, entries[0].Name()))
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "first") {
		t.Errorf("second run did not truncate the first run's log:\n%s", data)
	}
	if !strings.Contains(string(data), "second") {
		t.Errorf("second run's output missing from log:\n%s", data)
	}
}

func TestRunNonZeroExit(t *testing.T) {
	dir := t.TempDir()
	var terminal bytes.Buffer
	store := &memStore{}

	res, err := Run(context.Background(), Options{
		Command:  []string{"sh", "-c", "echo failing; exit 3"},
		Dir:      dir,
		Clock:    fixedClock(testStamp),
		Terminal: &terminal,
		Store:    store,
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if res.ExitCode != 3 {
		t.Errorf("ExitCode = %d, want 3", res.ExitCode)
	}
	if res.Session.Status != models.StatusFailed {
		t.Errorf("Status = %q, want %q", res.Session.Status, models.StatusFailed)
	}

	// Fail soft: the log is still complete, banners included.
	data, err := os.ReadFile(res.LogPath)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	content := string(data)
	if !strings.Contains(content, "Run started:") || !strings.Contains(content, "Run finished:") {
		t.Errorf("banners missing from failed run's log:\n%s", content)
	}
	if !strings.Contains(content, "failing\n") {
		t.Errorf("child output missing from failed run's log:\n%s", content)
	}

	// Two saves: one "running" at start, one "failed" at the end.
	if len(store.saves) != 2 {
		t.Fatalf("expected 2 session saves, got %d", len(store.saves))
	}
	if store.saves[0].Status != models.StatusRunning {
		t.Errorf("first save status = %q, want %q", store.saves[0].Status, models.StatusRunning)
	}
	if store.saves[1].ExitCode != 3 {
		t.Errorf("final save exit code = %d, want 3", store.saves[1].ExitCode)
	}
}

func TestRunMissingProgram(t *testing.T) {
	dir := t.TempDir()
	var terminal bytes.Buffer

	res, err := Run(context.Background(), Options{
		Command:  []string{"definitely-not-a-real-program-412"},
		Dir:      dir,
		Clock:    fixedClock(testStamp),
		Terminal: &terminal,
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if res.ExitCode != exitNotStarted {
		t.Errorf("ExitCode = %d, want %d", res.ExitCode, exitNotStarted)
	}

	// The start failure is ordinary transcript content.
	data, err := os.ReadFile(res.LogPath)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	content := string(data)
	if !strings.Contains(content, "failed to start") {
		t.Errorf("start failure not recorded in transcript:\n%s", content)
	}
	if !strings.Contains(content, "Run finished:") {
		t.Errorf("end banner missing after start failure:\n%s", content)
	}
}

func TestRunQuiet(t *testing.T) {
	dir := t.TempDir()
	var terminal bytes.Buffer

	res, err := Run(context.Background(), Options{
		Command:  []string{"sh", "-c", "echo hidden"},
		Dir:      dir,
		Quiet:    true,
		Clock:    fixedClock(testStamp),
		Terminal: &terminal,
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if strings.Contains(terminal.String(), "hidden") {
		t.Errorf("quiet run mirrored child output to the terminal: %q", terminal.String())
	}
	if terminal.String() != "Log saved to: "+res.LogPath+"\n" {
		t.Errorf("quiet run terminal output = %q", terminal.String())
	}

	data, err := os.ReadFile(res.LogPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "hidden\n") {
		t.Errorf("quiet run log missing child output:\n%s", data)
	}
}

func TestRunPTY(t *testing.T) {
	dir := t.TempDir()
	var terminal bytes.Buffer

	res, err := Run(context.Background(), Options{
		Command:  []string{"sh", "-c", "echo pty-out"},
		Dir:      dir,
		UsePTY:   true,
		Clock:    fixedClock(testStamp),
		Terminal: &terminal,
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.ExitCode == exitNotStarted {
		t.Skip("no PTY available in this environment")
	}

	data, err := os.ReadFile(res.LogPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "pty-out") {
		t.Errorf("PTY run log missing child output:\n%s", data)
	}
}

func TestRunNoCommand(t *testing.T) {
	if _, err := Run(context.Background(), Options{}); err == nil {
		t.Error("expected an error for an empty command")
	}
}

func TestBanners(t *testing.T) {
	if got := StartBanner(testStamp); got != "===== Run started: 2024-01-02 03:04:05 =====\n" {
		t.Errorf("StartBanner = %q", got)
	}
	if got := EndBanner(testStamp); got != "===== Run finished: 2024-01-02 03:04:05 =====\n" {
		t.Errorf("EndBanner = %q", got)
	}
	if got := SavedLine("/tmp/x.log"); got != "Log saved to: /tmp/x.log\n" {
		t.Errorf("SavedLine = %q", got)
	}
}
