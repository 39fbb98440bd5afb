// Package logger builds the zerolog loggers used across the module.
package logger

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

const permission = 0664

// Build collects logging destinations before Make assembles the logger.
type Build struct {
	writer io.Writer
	path   string
	pretty bool
}

// Log is an assembled logger plus the file it may own.
type Log struct {
	LogFile *os.File
	Logger  zerolog.Logger
}

func New() *Build {
	return &Build{}
}

// FromPath appends log lines to the file at path, creating it if needed.
func (build *Build) FromPath(path string) *Build {
	build.path = path
	return build
}

// FromBuffer writes log lines to w.
func (build *Build) FromBuffer(w io.Writer) *Build {
	build.writer = w
	return build
}

// Pretty renders human-readable console output instead of JSON lines.
func (build *Build) Pretty() *Build {
	build.pretty = true
	return build
}

func (build *Build) Make() (*Log, error) {
	log := new(Log)

	var w io.Writer = os.Stderr
	if build.writer != nil {
		w = build.writer
	}
	if build.path != "" {
		f, err := os.OpenFile(build.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, permission)
		if err != nil {
			return nil, err
		}
		log.LogFile = f
		w = zerolog.SyncWriter(f)
	}
	if build.pretty {
		w = zerolog.ConsoleWriter{Out: w}
	}

	log.Logger = zerolog.New(w).With().Timestamp().Logger()
	return log, nil
}
