package main

import (
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// maxLogSize triggers rotation to a single ".1" backup on startup
const maxLogSize = 10 * 1024 * 1024

// setupLogging points the standard logger at path while the terminal is owned
// An empty path discards all logging and returns a nil file
func setupLogging(path string) (*os.File, error) {
	if path == "" {
		log.SetOutput(io.Discard)
		return nil, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, errors.Wrap(err, "create log directory")
	}
	if info, err := os.Stat(path); err == nil && info.Size() > maxLogSize {
		if err := os.Rename(path, path+".1"); err != nil {
			return nil, errors.Wrap(err, "rotate log")
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, errors.Wrapf(err, "open log %s", path)
	}
	log.SetOutput(f)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	return f, nil
}

// subsystem returns a logger sharing the standard output under a bracketed prefix
func subsystem(name string) *log.Logger {
	return log.New(log.Writer(), "["+name+"] ", log.Flags())
}
