package config

import (
	"time"

	"github.com/runlog-io/runlog/internal/models"
)

// LoadProject loads a directory's runlog.yaml, or nil if the directory
// has none.
func LoadProject(dir string) (*models.Project, error) {
	path := ProjectFile(dir)
	if !fileExists(path) {
		return nil, nil
	}

	var p models.Project
	if err := loadYAML(path, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// SaveProject saves a project config to the directory's runlog.yaml.
func SaveProject(dir string, p *models.Project) error {
	p.UpdatedAt = time.Now().UTC()
	return saveYAML(ProjectFile(dir), p)
}
