// Package prelog provides the leveled logging convention the rest of the
// codebase uses for diagnostics. It is not a new logging framework: tunaq
// itself never adopted one (cmd/tqserver and server/server.go both call
// log.Printf directly with a hand-rolled level prefix), so this package just
// gives that same convention a single, reusable home instead of repeating
// the prefix string at every call site.
package prelog

import (
	"io"
	"log"
)

// Logger writes level-prefixed lines to an underlying *log.Logger, matching
// the "LEVEL  message" convention used across tunaq's server commands.
type Logger struct {
	std     *log.Logger
	verbose bool
}

// New returns a Logger that writes to w. Debug-level messages are discarded
// unless verbose is true, matching the driver's verbose option.
func New(w io.Writer, verbose bool) *Logger {
	return &Logger{
		std:     log.New(w, "", log.LstdFlags),
		verbose: verbose,
	}
}

// Debugf logs a diagnostic message. It is a no-op unless verbose logging is
// enabled.
func (l *Logger) Debugf(format string, args ...interface{}) {
	if l == nil || !l.verbose {
		return
	}
	l.std.Printf("DEBUG "+format, args...)
}

// Infof logs an informational message.
func (l *Logger) Infof(format string, args ...interface{}) {
	if l == nil {
		return
	}
	l.std.Printf("INFO  "+format, args...)
}

// Warnf logs a warning, such as InfiniteLanguageWarning. Warnings never
// abort a computation; they are purely diagnostic.
func (l *Logger) Warnf(format string, args ...interface{}) {
	if l == nil {
		return
	}
	l.std.Printf("WARN  "+format, args...)
}

// Errorf logs an error message.
func (l *Logger) Errorf(format string, args ...interface{}) {
	if l == nil {
		return
	}
	l.std.Printf("ERROR "+format, args...)
}
