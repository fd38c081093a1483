// Package shell is the operator-facing side of the installer: it collects the
// install directory, runs the install on a worker goroutine and reports the result.
package shell

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"

	"github.com/planarally/pa-installer/internal/install"
	"github.com/planarally/pa-installer/internal/messages"
)

// Task runs one install, reporting progress to obs. It is called once, off the UI goroutine.
type Task func(ctx context.Context, obs install.Observer) error

// OrchestratorTask adapts an install run for the shell.
func OrchestratorTask(opts install.Options, cfg install.Configuration) Task {
	return func(ctx context.Context, obs install.Observer) error {
		opts.Observer = obs
		return install.New(opts).Run(ctx, cfg)
	}
}

// RunPlain runs task and prints one line per finished step. It is used when
// stdout is not a terminal or the operator asked for no prompts.
func RunPlain(ctx context.Context, task Task, out io.Writer) error {
	return task(ctx, &lineObserver{out: out})
}

type lineObserver struct {
	out io.Writer
}

func (o *lineObserver) StepStarted(int, int, string) {}

func (o *lineObserver) StepFinished(_ int, _ int, description string, err error) {
	if err != nil {
		_, _ = color.New(color.FgRed).Fprintf(o.out, messages.ShellStepFailedFmt, description)
		return
	}
	_, _ = color.New(color.FgGreen).Fprintf(o.out, messages.ShellStepDoneFmt, description)
}

func (o *lineObserver) Downloaded(_ string, size int64) {
	_, _ = fmt.Fprintf(o.out, messages.ShellDownloadedFmt, humanize.IBytes(uint64(size)))
}

func (o *lineObserver) Finished() {}

// Report prints the terminal result of a run. Cancelled runs and download
// timeouts get their own line. Failures after the install started also warn
// that dir may hold a partial install.
func Report(out io.Writer, dir string, err error) {
	if err == nil {
		_, _ = color.New(color.FgGreen).Fprintln(out, messages.ShellFinished)
		return
	}
	if errors.Is(err, ErrAborted) {
		_, _ = color.New(color.FgYellow).Fprintln(out, messages.ShellAborted)
		return
	}
	var dlErr *install.DownloadError
	switch {
	case errors.As(err, &dlErr) && dlErr.Timeout():
		_, _ = color.New(color.FgRed).Fprintf(out, messages.ShellTimedOutFmt, err)
	case install.IsCancelled(err):
		_, _ = color.New(color.FgYellow).Fprintf(out, messages.ShellCancelledFmt, err)
	default:
		_, _ = color.New(color.FgRed).Fprintf(out, messages.ShellFailedFmt, err)
	}
	var pathErr *install.PathError
	if errors.As(err, &pathErr) || errors.Is(err, install.ErrRunInProgress) {
		return
	}
	_, _ = color.New(color.FgYellow).Fprintf(out, messages.ShellPartialInstallFmt, dir)
}
