package logging

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// NewLogger creates a configured logrus.Logger.
//
// level: debug, info, warn, error
// format: "text" (human-readable) or "json" (structured)
//
// Output goes to stderr; stdout is reserved for reports.
func NewLogger(level logrus.Level, format string) *logrus.Logger {
	return NewLoggerWithWriter(level, format, os.Stderr)
}

// NewLoggerWithWriter creates a logger writing to the given writer.
func NewLoggerWithWriter(level logrus.Level, format string, w io.Writer) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(w)
	logger.SetLevel(level)

	switch strings.ToLower(format) {
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{})
	default:
		logger.SetFormatter(&logrus.TextFormatter{
			DisableColors: true,
			FullTimestamp: true,
		})
	}
	return logger
}

// ParseLevel converts a string log level to logrus.Level.
// Returns logrus.InfoLevel for unrecognized values.
func ParseLevel(s string) logrus.Level {
	level, err := logrus.ParseLevel(strings.TrimSpace(s))
	if err != nil {
		return logrus.InfoLevel
	}
	return level
}

// Discard returns a logger that drops everything, for tests and quiet runs.
func Discard() *logrus.Logger {
	return NewLoggerWithWriter(logrus.PanicLevel, "text", io.Discard)
}
