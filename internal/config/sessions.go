package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/runlog-io/runlog/internal/models"
)

// SaveSession writes a session's metadata file to ~/.runlog/sessions/.
// Called once when the run starts (status "running") and again when it
// ends, so a crash of the wrapper itself leaves a visible "running" record.
func SaveSession(s *models.Session) error {
	if err := EnsureGlobalSessionsDir(); err != nil {
		return fmt.Errorf("failed to ensure sessions dir: %w", err)
	}
	path, err := SessionFile(s.SessionID)
	if err != nil {
		return err
	}
	return saveYAML(path, s)
}

// ListSessions reads all session metadata files and returns them newest first.
func ListSessions() ([]*models.Session, error) {
	dir, err := GlobalSessionsDir()
	if err != nil {
		return nil, err
	}

	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var sessions []*models.Session
	for _, e := range dirEntries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".yaml") {
			continue
		}

		var s models.Session
		if err := loadYAML(filepath.Join(dir, e.Name()), &s); err != nil {
			continue
		}
		if s.SessionID == "" {
			s.SessionID = strings.TrimSuffix(e.Name(), ".yaml")
		}
		sessions = append(sessions, &s)
	}

	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].StartedAt.After(sessions[j].StartedAt)
	})

	return sessions, nil
}

// FindSession resolves a session by ID, ID prefix, or log filename.
func FindSession(ref string) (*models.Session, error) {
	sessions, err := ListSessions()
	if err != nil {
		return nil, err
	}

	for _, s := range sessions {
		if s.SessionID == ref || filepath.Base(s.LogPath) == ref {
			return s, nil
		}
	}
	// Prefix match second, so a full ID always wins.
	for _, s := range sessions {
		if strings.HasPrefix(s.SessionID, ref) {
			return s, nil
		}
	}

	return nil, fmt.Errorf("no session matching %q", ref)
}

// LatestSession returns the most recently started session, or nil if none.
func LatestSession() (*models.Session, error) {
	sessions, err := ListSessions()
	if err != nil {
		return nil, err
	}
	if len(sessions) == 0 {
		return nil, nil
	}
	return sessions[0], nil
}

// ReadTranscript returns a session's transcript content.
func ReadTranscript(s *models.Session) (string, error) {
	data, err := os.ReadFile(s.LogPath)
	if err != nil {
		return "", fmt.Errorf("log not found: %w", err)
	}
	return string(data), nil
}

// PruneSessions removes the oldest session metadata files so at most keep
// remain. Transcript files are never touched. keep <= 0 disables pruning.
func PruneSessions(keep int) error {
	if keep <= 0 {
		return nil
	}

	sessions, err := ListSessions()
	if err != nil {
		return err
	}
	if len(sessions) <= keep {
		return nil
	}

	for _, s := range sessions[keep:] {
		path, err := SessionFile(s.SessionID)
		if err != nil {
			return err
		}
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return err
		}
	}
	return nil
}
