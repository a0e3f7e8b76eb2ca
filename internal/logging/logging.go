// Package logging builds the structured loggers used across weave.
package logging

import (
	"fmt"
	"io"
	"strings"

	"github.com/joeycumines/logiface"
	"github.com/joeycumines/stumpy"
)

// Logger is the logger type accepted by every WithLogger option.
type Logger = logiface.Logger[logiface.Event]

// New writes JSON lines to w, without timestamps, for events at level or
// above.
func New(w io.Writer, level logiface.Level) *Logger {
	return stumpy.L.New(
		stumpy.L.WithStumpy(
			stumpy.WithWriter(w),
			stumpy.WithTimeField(""),
		),
		stumpy.L.WithLevel(level),
	).Logger()
}

// Discard returns a disabled logger. A nil logger drops everything.
func Discard() *Logger {
	return nil
}

// ParseLevel accepts the syslog keywords logiface prints ("err", "info",
// "debug"...) plus "error", "warn" and "off".
func ParseLevel(s string) (logiface.Level, error) {
	s = strings.ToLower(strings.TrimSpace(s))

	switch s {
	case "off", "disabled", "":
		return logiface.LevelDisabled, nil
	case "error":
		return logiface.LevelError, nil
	case "warn":
		return logiface.LevelWarning, nil
	}

	for level := logiface.LevelEmergency; level <= logiface.LevelTrace; level++ {
		if level.String() == s {
			return level, nil
		}
	}

	return logiface.LevelDisabled, fmt.Errorf("unknown log level %q", s)
}
