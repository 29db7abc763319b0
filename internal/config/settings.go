package config

import (
	"fmt"

	"github.com/minimute-app/minimute/internal/models"
)

// LoadSettings loads the global settings from ~/.minimute/settings.yaml.
// If the file doesn't exist, returns default settings.
func LoadSettings() (*models.Settings, error) {
	path, err := GlobalSettingsFile()
	if err != nil {
		return nil, err
	}
	settings, err := LoadYAMLOrDefault(path, models.NewSettings)
	if err != nil {
		return nil, err
	}
	settings.Normalize()
	if _, err := ParseKey(settings.Hotkey); err != nil {
		return nil, fmt.Errorf("invalid hotkey in %s: %w", path, err)
	}
	return settings, nil
}

// SaveSettings saves the global settings to ~/.minimute/settings.yaml.
func SaveSettings(settings *models.Settings) error {
	path, err := GlobalSettingsFile()
	if err != nil {
		return err
	}
	return SaveYAML(path, settings)
}
