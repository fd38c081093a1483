package install

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/planarally/pa-installer/internal/archive"
	"github.com/planarally/pa-installer/internal/messages"
)

// Step is one unit of the install sequence.
type Step interface {
	Describe() string
	Execute(ctx context.Context, st *State) error
}

// State carries what earlier steps leave for later ones within a single run.
type State struct {
	Plan     Plan
	System   System
	Fetcher  Fetcher
	Observer Observer
	Log      logrus.FieldLogger

	// RuntimeInstaller holds the downloaded installer until it is written to disk.
	RuntimeInstaller []byte
	// ArchivePrefix is the top-level directory of the extracted archive.
	ArchivePrefix string
}

// Steps returns the install sequence for plan, in execution order.
func Steps(plan Plan) []Step {
	return []Step{
		chdirStep{},
		downloadRuntimeStep{version: plan.RuntimeVersion},
		persistRuntimeStep{file: plan.InstallerFile},
		installRuntimeStep{version: plan.RuntimeVersion},
		upgradePipStep{},
		fetchArchiveStep{},
		installDepsStep{},
	}
}

type chdirStep struct{}

func (chdirStep) Describe() string { return messages.StepChdir }

func (chdirStep) Execute(_ context.Context, st *State) error {
	dir := st.Plan.Config.InstallDir
	if err := st.System.Chdir(dir); err != nil {
		return &PathError{Path: dir, Err: err}
	}
	return nil
}

type downloadRuntimeStep struct{ version string }

func (s downloadRuntimeStep) Describe() string {
	return fmt.Sprintf(messages.StepDownloadRuntimeFmt, s.version)
}

func (downloadRuntimeStep) Execute(ctx context.Context, st *State) error {
	data, err := download(ctx, st, st.Plan.RuntimeURL)
	if err != nil {
		return err
	}
	st.RuntimeInstaller = data
	return nil
}

type persistRuntimeStep struct{ file string }

func (s persistRuntimeStep) Describe() string {
	return fmt.Sprintf(messages.StepPersistRuntimeFmt, s.file)
}

func (persistRuntimeStep) Execute(_ context.Context, st *State) error {
	path := st.Plan.InstallerPath
	if err := st.System.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return &FilesystemError{Path: filepath.Dir(path), Err: err}
	}
	if err := st.System.WriteFile(path, st.RuntimeInstaller, 0o755); err != nil {
		return &FilesystemError{Path: path, Err: err}
	}
	st.RuntimeInstaller = nil
	return nil
}

type installRuntimeStep struct{ version string }

func (s installRuntimeStep) Describe() string {
	return fmt.Sprintf(messages.StepInstallRuntimeFmt, s.version)
}

func (installRuntimeStep) Execute(ctx context.Context, st *State) error {
	return runCommand(ctx, st, st.Plan.RuntimeInstall)
}

type upgradePipStep struct{}

func (upgradePipStep) Describe() string { return messages.StepUpgradePip }

func (upgradePipStep) Execute(ctx context.Context, st *State) error {
	return runCommand(ctx, st, st.Plan.PipUpgrade)
}

type fetchArchiveStep struct{}

func (fetchArchiveStep) Describe() string { return messages.StepFetchArchive }

func (fetchArchiveStep) Execute(ctx context.Context, st *State) error {
	data, err := download(ctx, st, st.Plan.ArchiveURL)
	if err != nil {
		return err
	}
	prefix, err := archive.TopLevelPrefix(data)
	if err != nil {
		return err
	}
	st.Log.WithField("prefix", prefix).Info(messages.InstallLogArchivePrefix)
	if err := archive.Extract(data, st.Plan.Config.InstallDir, st.Plan.ArchiveFilter(prefix)); err != nil {
		return err
	}
	st.ArchivePrefix = prefix
	return nil
}

type installDepsStep struct{}

func (installDepsStep) Describe() string { return messages.StepInstallDeps }

func (installDepsStep) Execute(ctx context.Context, st *State) error {
	return runCommand(ctx, st, st.Plan.DependencyInstall(st.ArchivePrefix))
}

func download(ctx context.Context, st *State, url string) ([]byte, error) {
	data, err := st.Fetcher.Get(ctx, url)
	if err != nil {
		return nil, err
	}
	st.Log.WithFields(logrus.Fields{"url": url, "bytes": len(data)}).Info(messages.InstallLogDownloaded)
	st.Observer.Downloaded(url, int64(len(data)))
	return data, nil
}

func runCommand(ctx context.Context, st *State, cmd Command) error {
	st.Log.WithField("command", cmd.String()).Info(messages.InstallLogCommand)
	if err := st.System.Run(ctx, cmd); err != nil {
		return processError(cmd, err)
	}
	return nil
}
