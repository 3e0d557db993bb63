// Package logging provides a small leveled wrapper around the standard
// library logger. Matches the teacher's own direct use of the "log"
// package for sinks (no external logging framework sits in the
// teacher's dependency graph, so none is introduced here).
package logging

import (
	"log"
	"os"
)

// Level controls which messages reach the underlying logger.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Logger is a minimal leveled sink. The router and helper library never
// return logging errors to callers (§6, Logger collaborator).
type Logger struct {
	min    Level
	std    *log.Logger
	prefix string
}

// New creates a Logger writing to stderr with the given prefix.
func New(prefix string, min Level) *Logger {
	return &Logger{
		min:    min,
		std:    log.New(os.Stderr, "", log.LstdFlags|log.Lmicroseconds),
		prefix: prefix,
	}
}

// Debugf logs a debug-level message.
func (l *Logger) Debugf(format string, args ...any) { l.logf(LevelDebug, format, args...) }

// Infof logs an info-level message.
func (l *Logger) Infof(format string, args ...any) { l.logf(LevelInfo, format, args...) }

// Errorf logs an error-level message.
func (l *Logger) Errorf(format string, args ...any) { l.logf(LevelError, format, args...) }

func (l *Logger) logf(level Level, format string, args ...any) {
	if level < l.min {
		return
	}
	l.std.Printf("[%s] %s "+format, append([]any{level, l.prefix}, args...)...)
}

// Noop returns a Logger that discards messages at every level,
// LevelError included.
func Noop() *Logger {
	l := New("", LevelError+1)
	return l
}
