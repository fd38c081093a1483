// Package platform probes the host operating system and word size once per process.
package platform

import (
	"runtime"
	"strings"
)

// Arch is the host word size as used in runtime download names.
type Arch string

// OS is the host operating system family.
type OS string

const (
	Arch32 Arch = "32"
	Arch64 Arch = "64"
)

const (
	Windows OS = "windows"
	Linux   OS = "linux"
	OSX     OS = "osx"
	// Unknown covers hosts the installer does not special-case.
	Unknown OS = "unknown"
)

var (
	goarch = runtime.GOARCH
	goos   = runtime.GOOS
)

// DetectArch reports Arch64 when the host architecture name ends in "64".
func DetectArch() Arch {
	return ArchFromMachine(goarch)
}

// ArchFromMachine maps a machine/architecture name to an Arch.
func ArchFromMachine(machine string) Arch {
	if strings.HasSuffix(strings.TrimSpace(machine), "64") {
		return Arch64
	}
	return Arch32
}

// DetectOS reports the host OS family.
func DetectOS() OS {
	return OSFromGOOS(goos)
}

// OSFromGOOS maps a GOOS value to an OS.
func OSFromGOOS(name string) OS {
	switch name {
	case "windows":
		return Windows
	case "darwin":
		return OSX
	case "linux":
		return Linux
	default:
		return Unknown
	}
}

// PersistsLogFile reports whether a log file should be written on os.
// macOS app bundles run from read-only locations, so logging stays on the console there.
func (o OS) PersistsLogFile() bool {
	return o != OSX
}
