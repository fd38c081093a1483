//go:build !windows

package install

import (
	"os"

	"golang.org/x/sys/unix"
)

var flockFn = unix.Flock

func tryLockFile(file *os.File) error {
	return flockFn(int(file.Fd()), unix.LOCK_EX|unix.LOCK_NB)
}

func unlockFile(file *os.File) error {
	return flockFn(int(file.Fd()), unix.LOCK_UN)
}
