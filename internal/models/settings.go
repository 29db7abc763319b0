// Package models holds the on-disk data types of MiniMute.
package models

// DefaultHotkey is the key bound when settings.yaml does not name one.
const DefaultHotkey = "Pause"

// LogConfig holds rotation settings for the log file.
type LogConfig struct {
	MaxSizeMB  int `yaml:"max_size_mb"`
	MaxBackups int `yaml:"max_backups"`
	MaxAgeDays int `yaml:"max_age_days"`
}

// Settings represents global application settings.
// This corresponds to ~/.minimute/settings.yaml.
type Settings struct {
	Version int    `yaml:"version"`
	Hotkey  string `yaml:"hotkey"` // key name ("Pause", "F13") or virtual-key code ("0x13")

	// WatchDevices keeps endpoint handles between hotkey presses and
	// subscribes to device and mute change notifications.
	WatchDevices bool      `yaml:"watch_devices"`
	Log          LogConfig `yaml:"log"`
}

// NewSettings creates settings with default values.
func NewSettings() *Settings {
	return &Settings{
		Version:      1,
		Hotkey:       DefaultHotkey,
		WatchDevices: true,
		Log: LogConfig{
			MaxSizeMB:  1,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
	}
}

// Normalize fills zero values left by a partial settings file.
func (s *Settings) Normalize() {
	def := NewSettings()
	if s.Version == 0 {
		s.Version = def.Version
	}
	if s.Hotkey == "" {
		s.Hotkey = def.Hotkey
	}
	if s.Log.MaxSizeMB <= 0 {
		s.Log.MaxSizeMB = def.Log.MaxSizeMB
	}
	if s.Log.MaxBackups < 0 {
		s.Log.MaxBackups = 0
	}
	if s.Log.MaxAgeDays < 0 {
		s.Log.MaxAgeDays = 0
	}
}
