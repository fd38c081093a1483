package install

import (
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorMessages(t *testing.T) {
	assert.Equal(t, "invalid install path /x: boom", (&PathError{Path: "/x", Err: errors.New("boom")}).Error())
	assert.Equal(t, "failed to write /x/f: disk full", (&FilesystemError{Path: "/x/f", Err: errors.New("disk full")}).Error())
	assert.Equal(t, `command "py -m pip" exited with code 3`, (&InstallProcessError{Command: "py -m pip", ExitCode: 3}).Error())
}

func TestErrorsUnwrap(t *testing.T) {
	assert.ErrorIs(t, &PathError{Err: os.ErrNotExist}, os.ErrNotExist)
	assert.ErrorIs(t, &FilesystemError{Err: os.ErrPermission}, os.ErrPermission)
	assert.ErrorIs(t, &InstallProcessError{Err: os.ErrNotExist, ExitCode: -1}, os.ErrNotExist)
}

func TestProcessErrorExitCode(t *testing.T) {
	cmd := Command{Path: "python", Args: []string{"-V"}}

	var procErr *InstallProcessError
	assert.ErrorAs(t, processError(cmd, exitError{code: 7}), &procErr)
	assert.Equal(t, 7, procErr.ExitCode)
	assert.Equal(t, "python -V", procErr.Command)

	assert.ErrorAs(t, processError(cmd, errors.New("not found")), &procErr)
	assert.Equal(t, -1, procErr.ExitCode)
	assert.Empty(t, procErr.Signal)
	assert.Contains(t, procErr.Error(), "could not be started")
}

func TestProcessErrorSignalIsNotSpawnFailure(t *testing.T) {
	cmd := Command{Path: "installer.exe"}

	var procErr *InstallProcessError
	assert.ErrorAs(t, processError(cmd, signalError{signal: "killed"}), &procErr)
	assert.Equal(t, -1, procErr.ExitCode)
	assert.Equal(t, "signal: killed", procErr.Signal)
	assert.Equal(t, `command "installer.exe" terminated: signal: killed`, procErr.Error())
	assert.NotContains(t, procErr.Error(), "could not be started")
}
