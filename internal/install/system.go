package install

import (
	"context"
	"io"
	"os"
	"os/exec"
)

// System abstracts the process and filesystem operations the install steps perform.
// Tests substitute a fake so no step touches the real working directory or spawns processes.
type System interface {
	Chdir(dir string) error
	MkdirAll(path string, perm os.FileMode) error
	WriteFile(name string, data []byte, perm os.FileMode) error
	Run(ctx context.Context, cmd Command) error
}

// RealSystem implements System using the OS. Child process output goes to Output when set.
type RealSystem struct {
	Output io.Writer
}

// Chdir changes the process working directory.
func (RealSystem) Chdir(dir string) error {
	return os.Chdir(dir)
}

// MkdirAll creates a directory named path, along with any necessary parents.
func (RealSystem) MkdirAll(path string, perm os.FileMode) error {
	return os.MkdirAll(path, perm)
}

// WriteFile writes data to the named file, creating or truncating it.
func (RealSystem) WriteFile(name string, data []byte, perm os.FileMode) error {
	return os.WriteFile(name, data, perm)
}

// Run starts cmd and waits for it to exit. A non-zero exit returns *exec.ExitError.
// Cancelling ctx does not kill the child.
func (s RealSystem) Run(ctx context.Context, cmd Command) error {
	c := exec.CommandContext(context.WithoutCancel(ctx), cmd.Path, cmd.Args...)
	c.Dir = cmd.Dir
	if s.Output != nil {
		c.Stdout = s.Output
		c.Stderr = s.Output
	}
	return c.Run()
}
