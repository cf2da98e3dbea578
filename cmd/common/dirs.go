package common

import (
	"os"
	"path/filepath"
)

// ConfigDir returns the randplay config directory.
// $RANDPLAY_HOME wins, then ~/.randplay.
func ConfigDir() string {
	if dir := os.Getenv("RANDPLAY_HOME"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".randplay")
}
