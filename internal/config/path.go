// Package config resolves the tool's settings, file locations and department catalogs.
package config

import (
	"os"
	"path/filepath"
	"strings"
)

// Default locations, before expansion.
const (
	DefaultConfigDir    = "$HOME/.config/qdraw"
	DefaultDatabasePath = "$HOME/.local/share/qdraw/qdraw.db"
	DefaultTokenFile    = "$HOME/.config/qdraw/sheets-token.json"
)

// ExpandPath expands ~ and environment variables in a file path.
func ExpandPath(path string) string {
	if path == "" {
		return path
	}

	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, path[2:])
		}
	} else if path == "~" {
		if home, err := os.UserHomeDir(); err == nil {
			path = home
		}
	}

	return os.ExpandEnv(path)
}

// ExportPath places name inside dir, or the working directory when dir is empty.
// An explicit output path is returned unchanged.
func ExportPath(output, dir, name string) string {
	if output != "" {
		return ExpandPath(output)
	}
	if dir == "" {
		return name
	}
	return filepath.Join(ExpandPath(dir), name)
}
