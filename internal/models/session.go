// Package models contains shared data structures used across the application.
package models

import "time"

// Session statuses.
const (
	StatusRunning   = "running"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// Session represents metadata for a single recorded run.
// This corresponds to a <session-id>.yaml file in ~/.runlog/sessions/.
// The transcript itself lives in the log file at LogPath and is never
// touched by this structure: banners plus merged child output only.
type Session struct {
	SessionID string    `yaml:"session_id"`
	Command   []string  `yaml:"command"`
	Dir       string    `yaml:"dir"`
	LogPath   string    `yaml:"log_path"`
	PTY       bool      `yaml:"pty"`
	StartedAt time.Time `yaml:"started_at"`
	EndedAt   time.Time `yaml:"ended_at"`
	ExitCode  int       `yaml:"exit_code"`
	Status    string    `yaml:"status"` // "running" | "completed" | "failed"
}

// Duration returns the wall-clock duration of the run.
func (s *Session) Duration() time.Duration {
	if s.EndedAt.IsZero() {
		return 0
	}
	return s.EndedAt.Sub(s.StartedAt)
}
