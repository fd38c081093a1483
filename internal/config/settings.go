package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/planarally/pa-installer/internal/messages"
)

// Defaults for a fresh settings store.
const (
	DefaultRuntimeVersion = "3.7.0"
	DefaultRuntimeBaseURL = "https://www.python.org/ftp/python"
	DefaultArchiveURL     = "https://github.com/Kruptein/PlanarAlly/archive/master.zip"
	DefaultManifest       = "requirements.txt"
	DefaultMaxBytes       = int64(256 * 1024 * 1024) // 256 MiB
	DefaultTimeout        = "10m"
	DefaultLogLevel       = "info"
	DefaultLogFile        = "planarallyinstall.log"
)

// DefaultArchiveEntries lists archive members, relative to the archive's top-level directory, that get extracted.
var DefaultArchiveEntries = []string{"requirements.txt", "PlanarAlly"}

// Settings is the persisted installer settings store.
type Settings struct {
	Install  InstallSettings  `toml:"install"`
	Runtime  RuntimeSettings  `toml:"runtime"`
	Archive  ArchiveSettings  `toml:"archive"`
	Download DownloadSettings `toml:"download"`
	Log      LogSettings      `toml:"log"`
}

// InstallSettings remembers the last confirmed install directory.
type InstallSettings struct {
	DefaultDir string `toml:"default_dir,omitempty"`
}

// RuntimeSettings selects the Python build to install.
type RuntimeSettings struct {
	Version string `toml:"version"`
	BaseURL string `toml:"base_url"`
}

// ArchiveSettings describes the application snapshot to fetch.
type ArchiveSettings struct {
	URL      string   `toml:"url"`
	Entries  []string `toml:"entries"`
	Manifest string   `toml:"manifest"`
}

// DownloadSettings bounds HTTP downloads.
type DownloadSettings struct {
	MaxBytes int64  `toml:"max_bytes"`
	Timeout  string `toml:"timeout"`
}

// LogSettings configures the log sink.
type LogSettings struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// Defaults returns the built-in settings.
func Defaults() Settings {
	return Settings{
		Runtime: RuntimeSettings{
			Version: DefaultRuntimeVersion,
			BaseURL: DefaultRuntimeBaseURL,
		},
		Archive: ArchiveSettings{
			URL:      DefaultArchiveURL,
			Entries:  append([]string(nil), DefaultArchiveEntries...),
			Manifest: DefaultManifest,
		},
		Download: DownloadSettings{
			MaxBytes: DefaultMaxBytes,
			Timeout:  DefaultTimeout,
		},
		Log: LogSettings{
			Level: DefaultLogLevel,
			File:  DefaultLogFile,
		},
	}
}

// Load reads settings from path. A missing file yields Defaults.
func Load(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Defaults(), nil
		}
		return Settings{}, fmt.Errorf(messages.ConfigReadFmt, path, err)
	}
	return Parse(data, path)
}

// Parse decodes TOML over Defaults and validates the result.
// source is used in error messages.
func Parse(data []byte, source string) (Settings, error) {
	settings := Defaults()
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&settings); err != nil {
		return Settings{}, fmt.Errorf(messages.ConfigInvalidFmt, source, err)
	}
	if err := settings.Validate(source); err != nil {
		return Settings{}, err
	}
	return settings, nil
}

// Validate checks required fields. source is used in error messages.
func (s Settings) Validate(source string) error {
	if strings.TrimSpace(s.Runtime.Version) == "" {
		return fmt.Errorf(messages.ConfigRuntimeVersionRequiredFmt, source)
	}
	if strings.TrimSpace(s.Archive.URL) == "" {
		return fmt.Errorf(messages.ConfigArchiveURLRequiredFmt, source)
	}
	if len(s.Archive.Entries) == 0 {
		return fmt.Errorf(messages.ConfigArchiveEntriesRequiredFmt, source)
	}
	if strings.TrimSpace(s.Archive.Manifest) == "" {
		return fmt.Errorf(messages.ConfigManifestRequiredFmt, source)
	}
	if s.Download.MaxBytes <= 0 {
		return fmt.Errorf(messages.ConfigMaxBytesInvalidFmt, source)
	}
	if _, err := time.ParseDuration(s.Download.Timeout); err != nil {
		return fmt.Errorf(messages.ConfigInvalidTimeoutFmt, source, s.Download.Timeout, err)
	}
	return nil
}

// DownloadTimeout returns the parsed download timeout, falling back to the default.
func (s Settings) DownloadTimeout() time.Duration {
	d, err := time.ParseDuration(s.Download.Timeout)
	if err != nil || d <= 0 {
		d, _ = time.ParseDuration(DefaultTimeout)
	}
	return d
}

// Save writes settings to path, creating the parent directory.
func Save(path string, settings Settings) error {
	if _, err := EnsureDir(path); err != nil {
		return err
	}
	data, err := toml.Marshal(settings)
	if err != nil {
		return fmt.Errorf(messages.ConfigEncodeFmt, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf(messages.ConfigWriteFmt, path, err)
	}
	return nil
}
