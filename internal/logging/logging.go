// Package logging builds the logrus loggers used by the CLI and library.
package logging

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"
)

// DefaultLevel is used when no level is configured.
const DefaultLevel = logrus.WarnLevel

// ErrInvalidLevel is returned for an unrecognised level name.
var ErrInvalidLevel = errors.New("invalid log level")

// ParseLevel maps a level name to a logrus level. Empty means DefaultLevel.
func ParseLevel(name string) (logrus.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "":
		return DefaultLevel, nil
	case "debug":
		return logrus.DebugLevel, nil
	case "info":
		return logrus.InfoLevel, nil
	case "warn", "warning":
		return logrus.WarnLevel, nil
	case "error":
		return logrus.ErrorLevel, nil
	}
	return DefaultLevel, fmt.Errorf("%w: %q (use debug, info, warn or error)", ErrInvalidLevel, name)
}

// New returns a text logger writing to w at level.
func New(w io.Writer, level logrus.Level) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(w)
	logger.SetLevel(level)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
	return logger
}

// Discard returns a logger that drops everything.
func Discard() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	logger.SetLevel(logrus.PanicLevel)
	return logger
}
