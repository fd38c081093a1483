package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	settings, err := Load(filepath.Join(t.TempDir(), "installer.toml"))
	require.NoError(t, err)
	assert.Equal(t, Defaults(), settings)
	assert.Equal(t, []string{"requirements.txt", "PlanarAlly"}, settings.Archive.Entries)
}

func TestParseOverridesDefaults(t *testing.T) {
	data := []byte(`
[install]
default_dir = "/srv/planarally"

[runtime]
version = "3.8.10"

[archive]
entries = ["requirements.txt", "server"]

[download]
timeout = "30s"
`)
	settings, err := Parse(data, "test.toml")
	require.NoError(t, err)
	assert.Equal(t, "/srv/planarally", settings.Install.DefaultDir)
	assert.Equal(t, "3.8.10", settings.Runtime.Version)
	assert.Equal(t, DefaultRuntimeBaseURL, settings.Runtime.BaseURL)
	assert.Equal(t, []string{"requirements.txt", "server"}, settings.Archive.Entries)
	assert.Equal(t, DefaultManifest, settings.Archive.Manifest)
	assert.Equal(t, 30*time.Second, settings.DownloadTimeout())
}

func TestParseRejectsInvalidInput(t *testing.T) {
	cases := map[string]string{
		"syntax":        "[runtime\nversion=",
		"unknown field": "[runtime]\nflavour = \"pypy\"\n",
		"empty version": "[runtime]\nversion = \"\"\n",
		"no entries":    "[archive]\nentries = []\n",
		"bad timeout":   "[download]\ntimeout = \"soon\"\n",
		"bad max bytes": "[download]\nmax_bytes = 0\n",
		"no manifest":   "[archive]\nmanifest = \" \"\n",
		"no url":        "[archive]\nurl = \"\"\n",
	}
	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(data), "bad.toml")
			require.Error(t, err)
			assert.Contains(t, err.Error(), "bad.toml")
		})
	}
}

func TestSaveThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "installer.toml")
	settings := Defaults()
	settings.Install.DefaultDir = "/opt/pa"

	require.NoError(t, Save(path, settings))
	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, settings, loaded)
}

func TestLoadReadError(t *testing.T) {
	dir := t.TempDir()
	_, err := Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read settings")
}

func TestDefaultSettingsPath(t *testing.T) {
	orig := userConfigDir
	t.Cleanup(func() { userConfigDir = orig })

	userConfigDir = func() (string, error) { return "/home/pa/.config", nil }
	path, err := DefaultSettingsPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/home/pa/.config", "PlanarAlly", "installer.toml"), path)

	userConfigDir = func() (string, error) { return "", errors.New("no home") }
	_, err = DefaultSettingsPath()
	assert.ErrorContains(t, err, "no home")
}

func TestEnsureDirCreatesParent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "installer.toml")
	dir, err := EnsureDir(path)
	require.NoError(t, err)
	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
