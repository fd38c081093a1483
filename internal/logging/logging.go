// Package logging builds the installer's process-wide logger.
package logging

import (
	"fmt"
	"io"
	"path/filepath"
	"runtime/debug"

	log "github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/planarally/pa-installer/internal/messages"
	"github.com/planarally/pa-installer/internal/platform"
)

// Name tags every entry so installer lines stand out in shared log files.
const Name = "PlanarAllyInstaller"

// Options selects the log sink.
type Options struct {
	Level string
	// FilePath is the rotating log file. Empty, or an OS that does not persist
	// log files, sends warnings and above to Console instead.
	FilePath string
	OS       platform.OS
	Console  io.Writer
}

// New returns a logger and a closer for its sink. The closer is never nil.
func New(opts Options) (*log.Logger, io.Closer, error) {
	level := log.InfoLevel
	if opts.Level != "" {
		parsed, err := log.ParseLevel(opts.Level)
		if err != nil {
			return nil, nopCloser{}, fmt.Errorf(messages.LoggingInvalidLevelFmt, opts.Level, err)
		}
		level = parsed
	}

	logger := log.New()
	logger.SetFormatter(&log.TextFormatter{
		FullTimestamp:    true,
		DisableColors:    true,
		QuoteEmptyFields: true,
	})
	logger.AddHook(nameHook{})

	if opts.FilePath != "" && opts.OS.PersistsLogFile() {
		sink := &lumberjack.Logger{
			Filename:   filepath.ToSlash(opts.FilePath),
			MaxSize:    5, // MB
			MaxBackups: 3,
			MaxAge:     30, // days
		}
		logger.SetOutput(sink)
		logger.SetLevel(level)
		return logger, sink, nil
	}

	console := opts.Console
	if console == nil {
		console = io.Discard
	}
	logger.SetOutput(console)
	if level > log.WarnLevel {
		level = log.WarnLevel
	}
	logger.SetLevel(level)
	return logger, nopCloser{}, nil
}

// Recover logs a panic with its stack and calls exit(2). Use it deferred at the top of main.
func Recover(logger log.FieldLogger, exit func(int)) {
	r := recover()
	if r == nil {
		return
	}
	logger.WithFields(log.Fields{
		"panic": fmt.Sprint(r),
		"stack": string(debug.Stack()),
	}).Error(messages.LoggingPanic)
	exit(2)
}

type nameHook struct{}

func (nameHook) Levels() []log.Level { return log.AllLevels }

func (nameHook) Fire(entry *log.Entry) error {
	if _, ok := entry.Data["logger"]; !ok {
		entry.Data["logger"] = Name
	}
	return nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// CapturePanic converts a panic on the current goroutine into *errp and logs it
// with its stack. Use it deferred at the top of worker goroutines.
func CapturePanic(logger log.FieldLogger, errp *error) {
	r := recover()
	if r == nil {
		return
	}
	logger.WithFields(log.Fields{
		"panic": fmt.Sprint(r),
		"stack": string(debug.Stack()),
	}).Error(messages.LoggingPanic)
	if errp != nil {
		*errp = fmt.Errorf(messages.LoggingPanicErrFmt, r)
	}
}
