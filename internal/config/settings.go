package config

import (
	"github.com/runlog-io/runlog/internal/models"
)

// LoadSettings loads the global settings from ~/.runlog/settings.yaml.
// If the file doesn't exist, returns default settings.
func LoadSettings() (*models.Settings, error) {
	path, err := GlobalSettingsFile()
	if err != nil {
		return nil, err
	}
	return loadYAMLOrDefault(path, models.NewSettings)
}

// SaveSettings saves the global settings to ~/.runlog/settings.yaml.
func SaveSettings(settings *models.Settings) error {
	path, err := GlobalSettingsFile()
	if err != nil {
		return err
	}
	return saveYAML(path, settings)
}
