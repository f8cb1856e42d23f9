package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/runlog-io/runlog/internal/models"
)

func TestLoadYAMLOrDefault(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.yaml")

	// Missing file returns the defaults.
	s, err := loadYAMLOrDefault(path, models.NewSettings)
	if err != nil {
		t.Fatalf("loadYAMLOrDefault: %v", err)
	}
	if !s.PropagateExit {
		t.Error("default settings should propagate the child's exit code")
	}
	if s.Defaults.LogPrefix != "Answer" {
		t.Errorf("default log prefix = %q, want Answer", s.Defaults.LogPrefix)
	}

	// A saved file round-trips.
	s.Defaults.LogPrefix = "Eval"
	s.KeepSessions = 5
	if err := saveYAML(path, s); err != nil {
		t.Fatalf("saveYAML: %v", err)
	}

	got, err := loadYAMLOrDefault(path, models.NewSettings)
	if err != nil {
		t.Fatalf("loadYAMLOrDefault after save: %v", err)
	}
	if got.Defaults.LogPrefix != "Eval" || got.KeepSessions != 5 {
		t.Errorf("got prefix=%q keep=%d, want Eval/5", got.Defaults.LogPrefix, got.KeepSessions)
	}
}

func TestSaveYAMLCreatesParents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "settings.yaml")
	if err := saveYAML(path, models.NewSettings()); err != nil {
		t.Fatalf("saveYAML: %v", err)
	}
	if !fileExists(path) {
		t.Error("saveYAML did not create the file")
	}
}

func TestSaveYAMLReplacesAtomically(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "session.yaml")

	s := &models.Session{SessionID: "first", Status: models.StatusRunning}
	if err := saveYAML(path, s); err != nil {
		t.Fatalf("saveYAML: %v", err)
	}
	s.Status = models.StatusCompleted
	s.ExitCode = 0
	if err := saveYAML(path, s); err != nil {
		t.Fatalf("saveYAML rewrite: %v", err)
	}

	// The rename must leave exactly the target file behind, no temp
	// droppings for ListSessions to trip over.
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != "session.yaml" {
		names := make([]string, len(entries))
		for i, e := range entries {
			names[i] = e.Name()
		}
		t.Fatalf("directory contains %v, want only session.yaml", names)
	}

	var got models.Session
	if err := loadYAML(path, &got); err != nil {
		t.Fatalf("loadYAML: %v", err)
	}
	if got.Status != models.StatusCompleted {
		t.Errorf("Status = %q, want %q", got.Status, models.StatusCompleted)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), models.StatusRunning) {
		t.Errorf("old document content survived the rewrite:\n%s", data)
	}
}

func TestProjectRoundTrip(t *testing.T) {
	dir := t.TempDir()

	// No runlog.yaml: nil, no error.
	p, err := LoadProject(dir)
	if err != nil {
		t.Fatalf("LoadProject: %v", err)
	}
	if p != nil {
		t.Fatalf("LoadProject of an empty dir = %+v, want nil", p)
	}
	if ProjectExists(dir) {
		t.Error("ProjectExists reported true for an empty dir")
	}

	want := models.NewProject("speech-eval")
	want.Command = []string{"python", "eval_w_checkpoint.py"}
	want.UsePTY = true
	if err := SaveProject(dir, want); err != nil {
		t.Fatalf("SaveProject: %v", err)
	}

	if !ProjectExists(dir) {
		t.Error("ProjectExists reported false after save")
	}

	got, err := LoadProject(dir)
	if err != nil {
		t.Fatalf("LoadProject after save: %v", err)
	}
	if got.Name != "speech-eval" || !got.UsePTY {
		t.Errorf("got %+v, want name=speech-eval use_pty=true", got)
	}
	if len(got.Command) != 2 || got.Command[1] != "eval_w_checkpoint.py" {
		t.Errorf("Command = %v", got.Command)
	}
}
