package install

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/planarally/pa-installer/internal/config"
	"github.com/planarally/pa-installer/internal/fetch"
	"github.com/planarally/pa-installer/internal/messages"
)

// Fetcher downloads a URL into memory. *fetch.Client implements it.
type Fetcher interface {
	Get(ctx context.Context, url string) ([]byte, error)
}

// Observer receives progress events from a run. Calls arrive on the run's goroutine.
type Observer interface {
	StepStarted(index int, total int, description string)
	StepFinished(index int, total int, description string, err error)
	Downloaded(url string, size int64)
	Finished()
}

// NopObserver ignores every event.
type NopObserver struct{}

func (NopObserver) StepStarted(int, int, string)         {}
func (NopObserver) StepFinished(int, int, string, error) {}
func (NopObserver) Downloaded(string, int64)             {}
func (NopObserver) Finished()                            {}

// Options controls orchestrator behavior. Zero fields fall back to defaults.
type Options struct {
	RuntimeVersion string
	RuntimeBaseURL string
	ArchiveURL     string
	ArchiveEntries []string
	Manifest       string
	System         System
	Fetcher        Fetcher
	Observer       Observer
	Logger         logrus.FieldLogger
}

// OptionsFromSettings maps the persisted settings onto Options.
func OptionsFromSettings(s config.Settings) Options {
	return Options{
		RuntimeVersion: s.Runtime.Version,
		RuntimeBaseURL: s.Runtime.BaseURL,
		ArchiveURL:     s.Archive.URL,
		ArchiveEntries: append([]string(nil), s.Archive.Entries...),
		Manifest:       s.Archive.Manifest,
		Fetcher:        fetch.New(s.DownloadTimeout(), s.Download.MaxBytes),
	}
}

func (o Options) withDefaults() Options {
	if o.RuntimeVersion == "" {
		o.RuntimeVersion = config.DefaultRuntimeVersion
	}
	if o.RuntimeBaseURL == "" {
		o.RuntimeBaseURL = config.DefaultRuntimeBaseURL
	}
	if o.ArchiveURL == "" {
		o.ArchiveURL = config.DefaultArchiveURL
	}
	if len(o.ArchiveEntries) == 0 {
		o.ArchiveEntries = append([]string(nil), config.DefaultArchiveEntries...)
	}
	if o.Manifest == "" {
		o.Manifest = config.DefaultManifest
	}
	if o.System == nil {
		o.System = RealSystem{}
	}
	if o.Fetcher == nil {
		o.Fetcher = &fetch.Client{}
	}
	if o.Observer == nil {
		o.Observer = NopObserver{}
	}
	if o.Logger == nil {
		logger := logrus.New()
		logger.SetOutput(io.Discard)
		o.Logger = logger
	}
	return o
}

// Orchestrator runs the install steps in order. One Orchestrator allows a single active run.
type Orchestrator struct {
	opts    Options
	running atomic.Bool
}

// New returns an Orchestrator using opts.
func New(opts Options) *Orchestrator {
	return &Orchestrator{opts: opts.withDefaults()}
}

var newRunID = uuid.NewString

// Run executes every step against cfg and returns the first failure. A nil
// return is the completion signal; Observer.Finished fires just before it.
// Nothing is rolled back on failure, and a finished install is not detected:
// running again repeats every step.
//
// Cancelling ctx stops the run before the next step. A started step always
// runs to completion: steps see ctx values but never its cancellation.
func (o *Orchestrator) Run(ctx context.Context, cfg Configuration) error {
	if !o.running.CompareAndSwap(false, true) {
		return ErrRunInProgress
	}
	defer o.running.Store(false)
	if ctx == nil {
		ctx = context.Background()
	}

	if err := ValidateInstallDir(cfg.InstallDir); err != nil {
		return err
	}
	plan, err := NewPlan(cfg, o.opts)
	if err != nil {
		return err
	}

	log := o.opts.Logger.WithFields(logrus.Fields{
		"run_id":      newRunID(),
		"install_dir": cfg.InstallDir,
		"arch":        cfg.Arch,
		"os":          cfg.OS,
	})

	lock, err := lockDirFn(cfg.InstallDir)
	if err != nil {
		log.WithError(err).Error(messages.InstallLogRunFailed)
		return err
	}
	defer func() { _ = lock.release() }()

	state := &State{
		Plan:     plan,
		System:   o.opts.System,
		Fetcher:  o.opts.Fetcher,
		Observer: o.opts.Observer,
		Log:      log,
	}
	steps := Steps(plan)
	total := len(steps)
	observer := o.opts.Observer

	log.WithField("runtime_url", plan.RuntimeURL).Info(messages.InstallLogRunStarted)
	for i, step := range steps {
		desc := step.Describe()
		if err := ctx.Err(); err != nil {
			err = fmt.Errorf(messages.InstallCancelledBeforeFmt, desc, err)
			log.WithError(err).Warn(messages.InstallLogRunFailed)
			return err
		}
		stepLog := log.WithField("step", desc)
		stepLog.Info(messages.InstallLogStepStarted)
		observer.StepStarted(i+1, total, desc)
		err := step.Execute(context.WithoutCancel(ctx), state)
		observer.StepFinished(i+1, total, desc, err)
		if err != nil {
			stepLog.WithError(err).Error(messages.InstallLogRunFailed)
			return fmt.Errorf(messages.InstallStepFailedFmt, desc, err)
		}
		stepLog.Info(messages.InstallLogStepFinished)
	}

	log.Info(messages.InstallLogRunFinished)
	observer.Finished()
	return nil
}

// IsCancelled reports whether err ended a run because its context was cancelled between steps.
func IsCancelled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
