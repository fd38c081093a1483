package install

import (
	"errors"
	"fmt"
	"os/exec"

	"github.com/planarally/pa-installer/internal/archive"
	"github.com/planarally/pa-installer/internal/fetch"
	"github.com/planarally/pa-installer/internal/messages"
)

// ErrRunInProgress is returned when Run is called while another run is active.
var ErrRunInProgress = errors.New(messages.InstallRunInProgress)

// PathError reports an install directory that is missing, not a directory, or not writable.
type PathError struct {
	Path string
	Err  error
}

func (e *PathError) Error() string {
	return fmt.Sprintf(messages.InstallPathErrorFmt, e.Path, e.Err)
}

func (e *PathError) Unwrap() error {
	return e.Err
}

// DownloadError reports a failed or non-200 download.
type DownloadError = fetch.DownloadError

// ExtractionError reports a malformed archive or an absent filter entry.
type ExtractionError = archive.ExtractionError

// FilesystemError reports a failed write under the install directory.
type FilesystemError struct {
	Path string
	Err  error
}

func (e *FilesystemError) Error() string {
	return fmt.Sprintf(messages.InstallFilesystemErrorFmt, e.Path, e.Err)
}

func (e *FilesystemError) Unwrap() error {
	return e.Err
}

// InstallProcessError reports a child process that could not start, exited
// non-zero or was terminated by a signal. ExitCode is -1 unless the process exited;
// Signal describes the termination when it did not.
type InstallProcessError struct {
	Command  string
	ExitCode int
	Signal   string
	Err      error
}

func (e *InstallProcessError) Error() string {
	switch {
	case e.Signal != "":
		return fmt.Sprintf(messages.InstallProcessTerminatedFmt, e.Command, e.Signal)
	case e.ExitCode < 0:
		return fmt.Sprintf(messages.InstallProcessSpawnErrorFmt, e.Command, e.Err)
	}
	return fmt.Sprintf(messages.InstallProcessErrorFmt, e.Command, e.ExitCode)
}

func (e *InstallProcessError) Unwrap() error {
	return e.Err
}

// processState is the part of *exec.ExitError, via its embedded *os.ProcessState,
// that tells an exited child from a signalled one. An error without it means the
// child never started.
type processState interface {
	ExitCode() int
	Exited() bool
	String() string
}

// processError converts a System.Run failure into an InstallProcessError.
func processError(cmd Command, err error) error {
	procErr := &InstallProcessError{Command: cmd.String(), ExitCode: -1, Err: err}
	var exitErr *exec.ExitError
	var state processState
	switch {
	case errors.As(err, &exitErr):
		state = exitErr
	case errors.As(err, &state):
	default:
		return procErr
	}
	if state.Exited() {
		procErr.ExitCode = state.ExitCode()
		return procErr
	}
	procErr.Signal = state.String()
	return procErr
}
