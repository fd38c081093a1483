package install

import (
	"fmt"
	"path"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/planarally/pa-installer/internal/messages"
	"github.com/planarally/pa-installer/internal/platform"
)

// RuntimeDirName is the directory under the install dir that receives the Python install.
const RuntimeDirName = "python"

// Command is a child process invocation. The same value is logged, shown and executed.
type Command struct {
	Path string
	Args []string
	Dir  string
}

// String renders the command line, quoting arguments that contain spaces.
func (c Command) String() string {
	parts := make([]string, 0, len(c.Args)+1)
	for _, p := range append([]string{c.Path}, c.Args...) {
		if p == "" || strings.ContainsAny(p, " \t\"") {
			p = strconv.Quote(p)
		}
		parts = append(parts, p)
	}
	return strings.Join(parts, " ")
}

// Plan holds every value one run resolves from its Configuration and Options.
// Building a Plan has no side effects.
type Plan struct {
	Config         Configuration
	RuntimeVersion string
	InstallerFile  string
	InstallerPath  string
	RuntimeURL     string
	RuntimeDir     string
	Interpreter    string
	RuntimeInstall Command
	PipUpgrade     Command
	ArchiveURL     string
	ArchiveEntries []string
	Manifest       string
}

// RuntimeInstallerFilename returns python-<version>-amd64.exe for Arch64 and python-<version>.exe otherwise.
func RuntimeInstallerFilename(version string, arch platform.Arch) string {
	suffix := ""
	if arch == platform.Arch64 {
		suffix = "-amd64"
	}
	return fmt.Sprintf("python-%s%s.exe", version, suffix)
}

// RuntimeURL returns <baseURL>/<version>/<installer filename>.
func RuntimeURL(baseURL string, version string, arch platform.Arch) string {
	return strings.TrimSuffix(baseURL, "/") + "/" + path.Join(version, RuntimeInstallerFilename(version, arch))
}

// InterpreterPath returns the python executable inside runtimeDir.
func InterpreterPath(runtimeDir string, goos platform.OS) string {
	if goos == platform.Windows {
		return filepath.Join(runtimeDir, "python.exe")
	}
	return filepath.Join(runtimeDir, "bin", "python3")
}

// NewPlan resolves the run described by cfg and opts.
func NewPlan(cfg Configuration, opts Options) (Plan, error) {
	opts = opts.withDefaults()
	if cfg.Arch != platform.Arch32 && cfg.Arch != platform.Arch64 {
		return Plan{}, fmt.Errorf(messages.InstallUnsupportedArchFmt, cfg.Arch)
	}
	dir := cfg.InstallDir
	file := RuntimeInstallerFilename(opts.RuntimeVersion, cfg.Arch)
	runtimeDir := filepath.Join(dir, RuntimeDirName)
	interpreter := InterpreterPath(runtimeDir, cfg.OS)
	installerPath := filepath.Join(dir, file)

	return Plan{
		Config:         cfg,
		RuntimeVersion: opts.RuntimeVersion,
		InstallerFile:  file,
		InstallerPath:  installerPath,
		RuntimeURL:     RuntimeURL(opts.RuntimeBaseURL, opts.RuntimeVersion, cfg.Arch),
		RuntimeDir:     runtimeDir,
		Interpreter:    interpreter,
		RuntimeInstall: Command{
			Path: installerPath,
			Args: []string{
				"/passive",
				"TargetDir=" + runtimeDir,
				"AssociateFiles=0",
				"Shortcuts=0",
				"Include_doc=0",
				"Include_dev=0",
				"Include_launcher=0",
				"InstallLauncherAllUsers=0",
				"Include_tcltk=0",
				"Include_test=0",
				"Include_tools=0",
			},
			Dir: dir,
		},
		PipUpgrade: Command{
			Path: interpreter,
			Args: []string{"-m", "pip", "install", "-U", "pip"},
			Dir:  dir,
		},
		ArchiveURL:     opts.ArchiveURL,
		ArchiveEntries: append([]string(nil), opts.ArchiveEntries...),
		Manifest:       opts.Manifest,
	}, nil
}

// ArchiveFilter returns the archive member names to extract once the archive's
// top-level directory is known.
func (p Plan) ArchiveFilter(prefix string) []string {
	filter := make([]string, 0, len(p.ArchiveEntries))
	for _, entry := range p.ArchiveEntries {
		filter = append(filter, path.Join(prefix, strings.Trim(entry, "/")))
	}
	return filter
}

// ManifestPath returns where the dependency manifest lands after extraction.
func (p Plan) ManifestPath(prefix string) string {
	return filepath.Join(p.Config.InstallDir, filepath.FromSlash(prefix), filepath.FromSlash(p.Manifest))
}

// DependencyInstall returns the pip command that installs the extracted manifest.
func (p Plan) DependencyInstall(prefix string) Command {
	return Command{
		Path: p.Interpreter,
		Args: []string{"-m", "pip", "install", "-r", p.ManifestPath(prefix)},
		Dir:  p.Config.InstallDir,
	}
}

// Commands lists the child processes a run executes, in order. The archive
// prefix is unknown until download, so the dependency step uses prefix.
func (p Plan) Commands(prefix string) []Command {
	return []Command{p.RuntimeInstall, p.PipUpgrade, p.DependencyInstall(prefix)}
}
