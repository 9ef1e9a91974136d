package config

import (
	"os"
	"path/filepath"
)

// DefaultPath returns the global config file location:
// $XDG_CONFIG_HOME/wakedev/config.json, falling back to
// ~/.config/wakedev/config.json.
func DefaultPath() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "wakedev", "config.json")
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "wakedev.json"
	}
	return filepath.Join(homeDir, ".config", "wakedev", "config.json")
}

// WriteTemplate writes the template config to path, creating parent
// directories as needed. Refuses to overwrite unless force is set.
func WriteTemplate(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return os.ErrExist
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(Template), 0644)
}
