package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

var std = newLogger(os.Stderr)

func newLogger(out io.Writer) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(out)
	l.SetLevel(logrus.WarnLevel)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
	return l
}

// Init configures the process-wide logger. An unknown level falls back to
// warn. TM_DEBUG overrides the level with debug.
func Init(level, format string, out io.Writer) *logrus.Logger {
	if out == nil {
		out = os.Stderr
	}
	l := newLogger(out)

	if strings.EqualFold(format, "json") {
		l.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: time.RFC3339Nano,
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime:  "ts",
				logrus.FieldKeyLevel: "level",
				logrus.FieldKeyMsg:   "message",
			},
		})
	}

	if lvl, err := logrus.ParseLevel(level); err == nil {
		l.SetLevel(lvl)
	}
	if DebugEnabled() {
		l.SetLevel(logrus.DebugLevel)
	}

	std = l
	return l
}

// Logger returns the process-wide logger
func Logger() *logrus.Logger {
	return std
}

// DebugEnabled returns true if debug mode is enabled via TM_DEBUG environment variable
func DebugEnabled() bool {
	return os.Getenv("TM_DEBUG") != ""
}

// Debugf logs a formatted debug message
func Debugf(format string, args ...interface{}) {
	std.Debugf(format, args...)
}

// Debugln logs a debug message
func Debugln(args ...interface{}) {
	std.Debugln(args...)
}
