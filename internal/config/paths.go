// Package config handles configuration loading, saving, and path management.
package config

import (
	"os"
	"path/filepath"
)

const (
	// GlobalDirName is the name of the global runlog directory.
	GlobalDirName = ".runlog"

	// SessionsDirName is the name of the sessions metadata directory.
	SessionsDirName = "sessions"
)

// File names
const (
	SettingsFileName = "settings.yaml"
	ProjectFileName  = "runlog.yaml"
)

// GlobalDir returns the path to the global runlog directory (~/.runlog/).
func GlobalDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, GlobalDirName), nil
}

// GlobalSettingsFile returns the path to the settings.yaml file.
func GlobalSettingsFile() (string, error) {
	dir, err := GlobalDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, SettingsFileName), nil
}

// GlobalSessionsDir returns the path to the sessions metadata directory.
func GlobalSessionsDir() (string, error) {
	dir, err := GlobalDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, SessionsDirName), nil
}

// SessionFile returns the path to a session's metadata file.
func SessionFile(sessionID string) (string, error) {
	dir, err := GlobalSessionsDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, sessionID+".yaml"), nil
}

// ProjectFile returns the path to a directory's runlog.yaml file.
func ProjectFile(dir string) string {
	return filepath.Join(dir, ProjectFileName)
}

// ProjectExists checks if a directory has a runlog.yaml file.
func ProjectExists(dir string) bool {
	_, err := os.Stat(ProjectFile(dir))
	return err == nil
}

// EnsureGlobalDir creates the global runlog directory if it doesn't exist.
func EnsureGlobalDir() error {
	dir, err := GlobalDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0755)
}

// EnsureGlobalSessionsDir creates the sessions metadata directory if it
// doesn't exist.
func EnsureGlobalSessionsDir() error {
	dir, err := GlobalSessionsDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0755)
}
