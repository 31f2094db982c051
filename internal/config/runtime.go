package config

import (
	"os"
	"path/filepath"
)

const (
	runtimePathEnv     = "ASISTEN_RUNTIME_PATH"
	defaultRuntimePath = ".asisten"
)

// GetRuntimePath returns the runtime directory before any config is parsed,
// so the .env file inside it can be located.
func GetRuntimePath() string {
	return resolveRuntimePath(os.Getenv(runtimePathEnv))
}

// resolveRuntimePath anchors relative paths at the user's home directory.
func resolveRuntimePath(path string) string {
	if path == "" {
		path = defaultRuntimePath
	}

	if !filepath.IsAbs(path) {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path)
	}
	return path
}
