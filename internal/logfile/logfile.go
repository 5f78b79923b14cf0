// Package logfile sends the standard logger to stderr and a rotating file.
package logfile

import (
	"errors"
	"io"
	"log"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"
)

// FileName is the active log file inside the log directory.
const FileName = "deskquad.log"

// Options configures rotation.
type Options struct {
	Dir        string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// Sink owns the rotating file writer.
type Sink struct {
	file *lumberjack.Logger
	out  io.Writer
}

// Open creates the log directory and returns a sink writing to stderr and the file.
func Open(opts Options) (*Sink, error) {
	if opts.Dir == "" {
		return nil, errors.New("log dir is required")
	}
	if err := os.MkdirAll(opts.Dir, 0o755); err != nil {
		return nil, err
	}
	file := &lumberjack.Logger{
		Filename:   filepath.Join(opts.Dir, FileName),
		MaxSize:    opts.MaxSizeMB,
		MaxBackups: opts.MaxBackups,
		MaxAge:     opts.MaxAgeDays,
		LocalTime:  true,
	}
	return &Sink{file: file, out: io.MultiWriter(os.Stderr, file)}, nil
}

// Writer returns the combined stderr and file writer.
func (s *Sink) Writer() io.Writer {
	return s.out
}

// Path returns the active log file path.
func (s *Sink) Path() string {
	return s.file.Filename
}

// Install points the standard logger at the sink.
func (s *Sink) Install() {
	log.SetOutput(s.out)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
}

// Rotate closes the current file and starts a new one.
func (s *Sink) Rotate() error {
	return s.file.Rotate()
}

// Close restores stderr logging and closes the file.
func (s *Sink) Close() error {
	log.SetOutput(os.Stderr)
	return s.file.Close()
}
