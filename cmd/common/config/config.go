// Package config provides configuration loading for randplay.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gigurra/randplay/cmd/common"
	"gopkg.in/yaml.v3"
)

// Config represents the randplay configuration file structure.
// Command line flags take precedence over every value here.
type Config struct {
	// Audio file extensions picked up by the scanner
	Extensions []string `yaml:"extensions,omitempty"`

	// Playback backend: auto, beep or exec
	Backend string `yaml:"backend,omitempty"`

	// External player for the exec backend. {file} is replaced by the path,
	// otherwise the path is appended.
	PlayerCommand []string `yaml:"player_command,omitempty"`

	// Upper bound for a single external player run, in seconds
	MaxTrackSeconds int `yaml:"max_track_seconds,omitempty"`

	Progress bool `yaml:"progress"`

	Notifications *NotificationConfig `yaml:"notifications,omitempty"`
}

// NotificationConfig holds settings for desktop notifications.
type NotificationConfig struct {
	Enabled         bool `yaml:"enabled"`
	CooldownSeconds int  `yaml:"cooldown_seconds,omitempty"`
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Extensions:      []string{".wav"},
		Backend:         "auto",
		MaxTrackSeconds: 6 * 60 * 60,
		Progress:        false,
		Notifications: &NotificationConfig{
			Enabled:         false,
			CooldownSeconds: 10,
		},
	}
}

// ConfigPath returns the path to the default config file (~/.randplay/config.yaml).
func ConfigPath() string {
	return filepath.Join(common.ConfigDir(), "config.yaml")
}

// Load loads the config from path, or from ConfigPath when path is empty.
// Returns default config if the file doesn't exist.
func Load(path string) (*Config, error) {
	if path == "" {
		path = ConfigPath()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	// Apply defaults for missing fields
	defaults := DefaultConfig()
	if len(config.Extensions) == 0 {
		config.Extensions = defaults.Extensions
	}
	if config.Backend == "" {
		config.Backend = defaults.Backend
	}
	if config.MaxTrackSeconds <= 0 {
		config.MaxTrackSeconds = defaults.MaxTrackSeconds
	}
	if config.Notifications == nil {
		config.Notifications = defaults.Notifications
	} else if config.Notifications.CooldownSeconds <= 0 {
		config.Notifications.CooldownSeconds = defaults.Notifications.CooldownSeconds
	}

	return &config, nil
}

// Save writes the config to path, or to ConfigPath when path is empty.
func Save(path string, config *Config) error {
	if path == "" {
		path = ConfigPath()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
