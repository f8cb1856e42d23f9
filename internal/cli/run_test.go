package cli

import (
	"reflect"
	"testing"

	"github.com/runlog-io/runlog/internal/models"
)

func TestResolveOptions(t *testing.T) {
	settings := models.NewSettings()

	project := &models.Project{
		Command:   []string{"python", "eval_w_checkpoint.py"},
		LogPrefix: "Eval",
		UsePTY:    true,
	}

	tests := []struct {
		name        string
		project     *models.Project
		args        []string
		flagPrefix  string
		flagPTY     bool
		wantCommand []string
		wantPrefix  string
		wantPTY     bool
	}{
		{
			name:        "global defaults only",
			wantCommand: []string{"python", "answer.py"},
			wantPrefix:  "Answer",
		},
		{
			name:        "project overrides globals",
			project:     project,
			wantCommand: []string{"python", "eval_w_checkpoint.py"},
			wantPrefix:  "Eval",
			wantPTY:     true,
		},
		{
			name:        "cli args override project command",
			project:     project,
			args:        []string{"sh", "-c", "true"},
			wantCommand: []string{"sh", "-c", "true"},
			wantPrefix:  "Eval",
			wantPTY:     true,
		},
		{
			name:        "flags override everything",
			project:     project,
			flagPrefix:  "Debug",
			wantCommand: []string{"python", "eval_w_checkpoint.py"},
			wantPrefix:  "Debug",
			wantPTY:     true,
		},
		{
			name:        "pty flag turns pty on",
			flagPTY:     true,
			wantCommand: []string{"python", "answer.py"},
			wantPrefix:  "Answer",
			wantPTY:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runPrefix = tt.flagPrefix
			runPTY = tt.flagPTY
			runLogDir = ""
			runQuiet = false
			t.Cleanup(func() {
				runPrefix = ""
				runPTY = false
			})

			opts := resolveOptions(settings, tt.project, tt.args)

			if !reflect.DeepEqual(opts.Command, tt.wantCommand) {
				t.Errorf("Command = %v, want %v", opts.Command, tt.wantCommand)
			}
			if opts.Prefix != tt.wantPrefix {
				t.Errorf("Prefix = %q, want %q", opts.Prefix, tt.wantPrefix)
			}
			if opts.UsePTY != tt.wantPTY {
				t.Errorf("UsePTY = %v, want %v", opts.UsePTY, tt.wantPTY)
			}
		})
	}
}

func TestExitErrorMessage(t *testing.T) {
	err := &ExitError{Code: 3}
	if err.Error() != "command exited with status 3" {
		t.Errorf("Error() = %q", err.Error())
	}
}
