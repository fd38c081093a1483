package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/planarally/pa-installer/internal/config"
	"github.com/planarally/pa-installer/internal/install"
	"github.com/planarally/pa-installer/internal/logging"
	"github.com/planarally/pa-installer/internal/messages"
	"github.com/planarally/pa-installer/internal/platform"
	"github.com/planarally/pa-installer/internal/shell"
	"github.com/planarally/pa-installer/internal/terminal"
)

var (
	defaultSettingsPath = config.DefaultSettingsPath
	isInteractive       = terminal.IsInteractive
	newPrompter         = func() shell.Prompter { return shell.NewHuhPrompter() }
	newTask             = shell.OrchestratorTask
	runInteractive      = shell.RunInteractive
	runPlain            = shell.RunPlain
)

type rootFlags struct {
	dir            string
	configPath     string
	runtimeVersion string
	logLevel       string
	yes            bool
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}
	cmd := &cobra.Command{
		Use:           messages.RootUse,
		Short:         messages.RootShort,
		Long:          messages.RootLong,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInstall(cmd, flags)
		},
	}
	pf := cmd.PersistentFlags()
	pf.StringVar(&flags.dir, "dir", "", messages.RootFlagDir)
	pf.StringVar(&flags.configPath, "config", "", messages.RootFlagConfig)
	pf.StringVar(&flags.runtimeVersion, "runtime-version", "", messages.RootFlagRuntimeVersion)
	cmd.Flags().BoolVarP(&flags.yes, "yes", "y", false, messages.RootFlagYes)
	cmd.Flags().StringVar(&flags.logLevel, "log-level", "", messages.RootFlagLogLevel)

	cmd.AddCommand(newPlanCmd(flags))
	return cmd
}

// resolveSettingsPath returns the --config path, or the per-user default.
func resolveSettingsPath(flags *rootFlags) (string, error) {
	if strings.TrimSpace(flags.configPath) == "" {
		return defaultSettingsPath()
	}
	expanded, err := homedir.Expand(strings.TrimSpace(flags.configPath))
	if err != nil {
		return "", err
	}
	return filepath.Abs(expanded)
}

// loadSettings reads the settings file and applies flag overrides.
func loadSettings(path string, flags *rootFlags) (config.Settings, error) {
	settings, err := config.Load(path)
	if err != nil {
		return config.Settings{}, err
	}
	if v := strings.TrimSpace(flags.runtimeVersion); v != "" {
		settings.Runtime.Version = v
	}
	if v := strings.TrimSpace(flags.logLevel); v != "" {
		settings.Log.Level = v
	}
	return settings, nil
}

// suggestedDir is the directory offered when none is given: the last confirmed
// install directory, else the settings directory.
func suggestedDir(settings config.Settings, settingsPath string) string {
	if dir := strings.TrimSpace(settings.Install.DefaultDir); dir != "" {
		return dir
	}
	return filepath.Dir(settingsPath)
}

func runInstall(cmd *cobra.Command, flags *rootFlags) error {
	stdout := cmd.OutOrStdout()
	stderr := cmd.ErrOrStderr()

	settingsPath, err := resolveSettingsPath(flags)
	if err != nil {
		return err
	}
	settingsDir, err := config.EnsureDir(settingsPath)
	if err != nil {
		return err
	}
	settings, err := loadSettings(settingsPath, flags)
	if err != nil {
		return err
	}

	interactive := !flags.yes && isInteractive()
	dir, err := chooseInstallDir(flags, suggestedDir(settings, settingsPath), interactive)
	if err != nil {
		shell.Report(stderr, dir, err)
		return &SilentExitError{Code: 1}
	}

	logger, closer, err := logging.New(logging.Options{
		Level:    settings.Log.Level,
		FilePath: filepath.Join(settingsDir, settings.Log.File),
		OS:       platform.DetectOS(),
		Console:  stderr,
	})
	if err != nil {
		return err
	}
	defer func() { _ = closer.Close() }()
	defer logging.Recover(logger, func(code int) { panic(SilentExitError{Code: code}) })

	childOutput := logger.WriterLevel(logrus.InfoLevel)
	defer func() { _ = childOutput.Close() }()

	opts := install.OptionsFromSettings(settings)
	opts.Logger = logger
	opts.System = install.RealSystem{Output: childOutput}
	task := guardTask(logger, newTask(opts, install.NewConfiguration(dir)))

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	if interactive {
		err = runInteractive(ctx, task, stdout)
	} else {
		err = runPlain(ctx, task, stdout)
	}
	shell.Report(stderr, dir, err)
	if err != nil {
		return &SilentExitError{Code: 1}
	}

	if err := saveDefaultDir(settingsPath, dir); err != nil {
		_, _ = fmt.Fprintf(stderr, messages.CLISaveDefaultDirWarnFmt, err)
	}
	return nil
}

// chooseInstallDir resolves the install directory from --dir, the prompt, or
// the suggestion under --yes, and validates it before any work starts.
func chooseInstallDir(flags *rootFlags, suggested string, interactive bool) (string, error) {
	raw := strings.TrimSpace(flags.dir)
	var prompter shell.Prompter
	if interactive {
		prompter = newPrompter()
	}
	if raw == "" {
		switch {
		case interactive:
			answer, err := prompter.InstallDir(suggested)
			if err != nil {
				return "", err
			}
			raw = answer
		case flags.yes:
			raw = suggested
		default:
			return "", errors.New(messages.CLINoDirNonInteractive)
		}
	}
	dir, err := shell.ResolveInstallDir(raw)
	if err != nil {
		return raw, err
	}
	if interactive {
		ok, err := prompter.ConfirmStart(dir)
		if err != nil {
			return dir, err
		}
		if !ok {
			return dir, shell.ErrAborted
		}
	}
	return dir, nil
}

// guardTask turns a panic on the worker goroutine into a logged run failure.
func guardTask(logger logrus.FieldLogger, task shell.Task) shell.Task {
	return func(ctx context.Context, obs install.Observer) (err error) {
		defer logging.CapturePanic(logger, &err)
		return task(ctx, obs)
	}
}

// saveDefaultDir records dir as the next suggestion. Flag overrides are not persisted.
func saveDefaultDir(settingsPath string, dir string) error {
	settings, err := config.Load(settingsPath)
	if err != nil {
		return err
	}
	settings.Install.DefaultDir = dir
	return config.Save(settingsPath, settings)
}
