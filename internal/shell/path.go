package shell

import (
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"

	"github.com/planarally/pa-installer/internal/install"
)

// ResolveInstallDir expands ~, makes raw absolute and validates it as an install directory.
// Failures are *install.PathError so the caller can reject the input before any work starts.
func ResolveInstallDir(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	expanded, err := homedir.Expand(trimmed)
	if err != nil {
		return "", &install.PathError{Path: raw, Err: err}
	}
	dir := expanded
	if dir != "" {
		abs, err := filepath.Abs(dir)
		if err != nil {
			return "", &install.PathError{Path: raw, Err: err}
		}
		dir = abs
	}
	if err := install.ValidateInstallDir(dir); err != nil {
		return "", err
	}
	return dir, nil
}
