package config

import (
	"os"
	"path/filepath"
)

// GetRuntimePath resolves the runtime directory holding the database,
// the .env file and CLI history. Relative paths anchor under the home
// directory so every entry point resolves the same location.
func GetRuntimePath() string {
	path := os.Getenv("MEMBOT_RUNTIME_PATH")
	if path == "" {
		path = ".membot"
	}

	if !filepath.IsAbs(path) {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path)
	}
	return path
}
