package models

import "time"

// Project represents a per-directory run configuration.
// This corresponds to the runlog.yaml file in the directory runs are
// launched from. Fields left zero fall back to global settings.
type Project struct {
	Version   int       `yaml:"version"`
	Name      string    `yaml:"name"`
	Command   []string  `yaml:"command"`
	LogPrefix string    `yaml:"log_prefix"`
	UsePTY    bool      `yaml:"use_pty"`
	LogDir    string    `yaml:"log_dir"`
	CreatedAt time.Time `yaml:"created_at"`
	UpdatedAt time.Time `yaml:"updated_at"`
}

// NewProject creates a project config with default values.
func NewProject(name string) *Project {
	now := time.Now().UTC()
	return &Project{
		Version:   1,
		Name:      name,
		Command:   []string{"python", "answer.py"},
		LogPrefix: "Answer",
		UsePTY:    false,
		LogDir:    "",
		CreatedAt: now,
		UpdatedAt: now,
	}
}
