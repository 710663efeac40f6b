// Package logging sets up the application logger. The terminal belongs to
// the UI, so everything goes to a rotated file.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	maxSizeMB  = 20
	maxBackups = 3
	maxAgeDays = 28
)

// New returns a logger writing to path at the given level. An empty path
// discards all output.
func New(path, level string) (*logrus.Logger, io.Closer, error) {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, DisableColors: true})

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, nil, fmt.Errorf("parse log level: %w", err)
	}
	log.SetLevel(lvl)

	if path == "" {
		log.SetOutput(io.Discard)
		return log, io.NopCloser(nil), nil
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, fmt.Errorf("create log directory: %w", err)
		}
	}

	out := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    maxSizeMB,
		MaxBackups: maxBackups,
		MaxAge:     maxAgeDays,
	}
	log.SetOutput(out)
	return log, out, nil
}
