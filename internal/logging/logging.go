// Package logging routes logrus output to a file, since the terminal belongs
// to the screen while the browser runs.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// Options selects where log lines go and how verbose they are.
type Options struct {
	Debug bool
	// File is the log destination. Empty means discard, unless Debug is set,
	// in which case DefaultPath is used.
	File string
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// DefaultPath returns $XDG_CACHE_HOME/asfb/asfb.log, or the platform
// equivalent.
func DefaultPath() (string, error) {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "asfb", "asfb.log"), nil
}

// Setup configures the standard logrus logger. The returned closer releases
// the log file.
func Setup(opts Options) (io.Closer, error) {
	return Configure(logrus.StandardLogger(), opts)
}

// Configure applies opts to logger.
func Configure(logger *logrus.Logger, opts Options) (io.Closer, error) {
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
		DisableColors: true,
	})
	if opts.Debug {
		logger.SetLevel(logrus.DebugLevel)
	} else {
		logger.SetLevel(logrus.InfoLevel)
	}

	path := opts.File
	if path == "" && opts.Debug {
		def, err := DefaultPath()
		if err != nil {
			return nil, fmt.Errorf("resolve log path: %w", err)
		}
		path = def
	}
	if path == "" {
		logger.SetOutput(io.Discard)
		return nopCloser{}, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	logger.SetOutput(f)
	return f, nil
}
