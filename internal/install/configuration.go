package install

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/planarally/pa-installer/internal/messages"
	"github.com/planarally/pa-installer/internal/platform"
)

// Configuration is the input to one install run. It is passed by value and never mutated.
type Configuration struct {
	InstallDir string
	Arch       platform.Arch
	OS         platform.OS
}

// NewConfiguration pairs dir with the probed host architecture and OS.
func NewConfiguration(dir string) Configuration {
	return Configuration{
		InstallDir: filepath.Clean(dir),
		Arch:       platform.DetectArch(),
		OS:         platform.DetectOS(),
	}
}

var createTemp = os.CreateTemp

// ValidateInstallDir checks that dir is an absolute path to an existing, writable directory.
// It returns a *PathError otherwise and performs no writes beyond a removed probe file.
func ValidateInstallDir(dir string) error {
	if strings.TrimSpace(dir) == "" {
		return &PathError{Path: dir, Err: errors.New(messages.InstallDirRequired)}
	}
	if !filepath.IsAbs(dir) {
		return &PathError{Path: dir, Err: fmt.Errorf(messages.InstallDirNotAbsoluteFmt, dir)}
	}
	info, err := os.Stat(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &PathError{Path: dir, Err: fmt.Errorf(messages.InstallDirMissingFmt, dir)}
		}
		return &PathError{Path: dir, Err: fmt.Errorf(messages.InstallDirStatFmt, dir, err)}
	}
	if !info.IsDir() {
		return &PathError{Path: dir, Err: fmt.Errorf(messages.InstallDirNotDirFmt, dir)}
	}
	probe, err := createTemp(dir, ".pa-install-probe-*")
	if err != nil {
		return &PathError{Path: dir, Err: fmt.Errorf(messages.InstallDirNotWritableFmt, dir, err)}
	}
	name := probe.Name()
	_ = probe.Close()
	_ = os.Remove(name)
	return nil
}
