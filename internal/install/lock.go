package install

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/planarally/pa-installer/internal/messages"
)

// LockFileName is the advisory lock held inside the install directory during a run.
const LockFileName = ".pa-install.lock"

type dirLock struct {
	file *os.File
}

var lockDirFn = lockDir

// lockDir takes an exclusive, non-blocking lock on dir so a second installer
// process cannot run against the same directory.
func lockDir(dir string) (*dirLock, error) {
	path := filepath.Join(dir, LockFileName)
	file, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return nil, &FilesystemError{Path: path, Err: err}
	}
	if err := tryLockFile(file); err != nil {
		_ = file.Close()
		return nil, fmt.Errorf(messages.InstallLockFmt, dir, err)
	}
	return &dirLock{file: file}, nil
}

// release unlocks, closes and removes the lock file.
func (l *dirLock) release() error {
	if l == nil || l.file == nil {
		return nil
	}
	name := l.file.Name()
	unlockErr := unlockFile(l.file)
	closeErr := l.file.Close()
	_ = os.Remove(name)
	if unlockErr != nil {
		return unlockErr
	}
	return closeErr
}
