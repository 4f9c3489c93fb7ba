package config

import (
	"os"
	"path/filepath"
)

// GetKeymirrorHome returns KEYMIRROR_HOME or the ~/.keymirror default
func GetKeymirrorHome() string {
	home := os.Getenv("KEYMIRROR_HOME")
	if home == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return ".keymirror"
		}
		return filepath.Join(homeDir, ".keymirror")
	}
	return ExpandPath(home)
}

// GetSettingsPath returns $KEYMIRROR_HOME/settings.json
func GetSettingsPath() string {
	return filepath.Join(GetKeymirrorHome(), "settings.json")
}

// ExpandPath expands ~ to home directory
func ExpandPath(path string) string {
	if len(path) > 0 && path[0] == '~' {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			if len(path) == 1 {
				return homeDir
			}
			return filepath.Join(homeDir, path[1:])
		}
	}
	return path
}
