package install

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
)

// errNotMocked is returned when a fakeSystem method is called without a mock function set.
var errNotMocked = errors.New("fakeSystem: method not mocked")

// exitError mimics *exec.ExitError for commands that exit non-zero.
type exitError struct{ code int }

func (e exitError) Error() string  { return e.String() }
func (e exitError) String() string { return fmt.Sprintf("exit status %d", e.code) }
func (e exitError) ExitCode() int  { return e.code }
func (e exitError) Exited() bool   { return true }

// signalError mimics *exec.ExitError for a child killed by a signal.
type signalError struct{ signal string }

func (e signalError) Error() string  { return e.String() }
func (e signalError) String() string { return "signal: " + e.signal }
func (e signalError) ExitCode() int  { return -1 }
func (e signalError) Exited() bool   { return false }

// fakeSystem records every call. Chdir and Run succeed unless their Func is set;
// MkdirAll and WriteFile hit the real filesystem so tests can inspect t.TempDir().
type fakeSystem struct {
	mu    sync.Mutex
	calls []string
	ran   []Command

	ChdirFunc     func(dir string) error
	WriteFileFunc func(name string, data []byte, perm os.FileMode) error
	RunFunc       func(ctx context.Context, cmd Command) error
}

func (s *fakeSystem) record(call string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, call)
}

func (s *fakeSystem) Chdir(dir string) error {
	s.record("chdir " + dir)
	if s.ChdirFunc != nil {
		return s.ChdirFunc(dir)
	}
	return nil
}

func (s *fakeSystem) MkdirAll(path string, perm os.FileMode) error {
	s.record("mkdir " + path)
	return os.MkdirAll(path, perm)
}

func (s *fakeSystem) WriteFile(name string, data []byte, perm os.FileMode) error {
	s.record("write " + name)
	if s.WriteFileFunc != nil {
		return s.WriteFileFunc(name, data, perm)
	}
	return os.WriteFile(name, data, perm)
}

func (s *fakeSystem) Run(ctx context.Context, cmd Command) error {
	s.record("run " + cmd.Path)
	s.mu.Lock()
	s.ran = append(s.ran, cmd)
	s.mu.Unlock()
	if s.RunFunc != nil {
		return s.RunFunc(ctx, cmd)
	}
	return nil
}

func (s *fakeSystem) commands() []Command {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Command(nil), s.ran...)
}

// fakeFetcher serves fixed bodies per URL and fails everything else.
type fakeFetcher struct {
	mu     sync.Mutex
	bodies map[string][]byte
	gets   []string
}

func (f *fakeFetcher) Get(_ context.Context, url string) ([]byte, error) {
	f.mu.Lock()
	f.gets = append(f.gets, url)
	f.mu.Unlock()
	if body, ok := f.bodies[url]; ok {
		return body, nil
	}
	return nil, &DownloadError{URL: url, StatusCode: 404}
}

func (f *fakeFetcher) requested() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.gets...)
}

// recordingObserver captures observer events in order.
type recordingObserver struct {
	mu         sync.Mutex
	events     []string
	finished   bool
	onStarted  func(index int)
	onFinished func(index int)
}

func (o *recordingObserver) StepStarted(index int, total int, description string) {
	o.mu.Lock()
	o.events = append(o.events, fmt.Sprintf("start %d/%d %s", index, total, description))
	o.mu.Unlock()
	if o.onStarted != nil {
		o.onStarted(index)
	}
}

func (o *recordingObserver) StepFinished(index int, total int, description string, err error) {
	o.mu.Lock()
	o.events = append(o.events, fmt.Sprintf("end %d/%d %s err=%v", index, total, description, err != nil))
	o.mu.Unlock()
	if o.onFinished != nil {
		o.onFinished(index)
	}
}

func (o *recordingObserver) Downloaded(url string, size int64) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, fmt.Sprintf("downloaded %s %d", url, size))
}

func (o *recordingObserver) Finished() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.finished = true
}
