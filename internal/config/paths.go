package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/planarally/pa-installer/internal/messages"
)

const (
	// AppDir is the per-application directory name under the user config dir.
	AppDir = "PlanarAlly"
	// SettingsFile is the settings file name within AppDir.
	SettingsFile = "installer.toml"
)

var userConfigDir = os.UserConfigDir

// DefaultSettingsPath returns <user config dir>/PlanarAlly/installer.toml.
func DefaultSettingsPath() (string, error) {
	base, err := userConfigDir()
	if err != nil {
		return "", fmt.Errorf(messages.ConfigResolveDirFmt, err)
	}
	return filepath.Join(base, AppDir, SettingsFile), nil
}

// EnsureDir creates the directory holding the settings file at path.
func EnsureDir(path string) (string, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf(messages.ConfigCreateDirFmt, dir, err)
	}
	return dir, nil
}
